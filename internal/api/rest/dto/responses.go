package dto

// Response is the envelope wrapping every API reply.
type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse builds a success envelope
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{
		Status:  true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse builds a failure envelope
func NewErrorResponse(message string) Response {
	return Response{
		Status:  false,
		Message: message,
	}
}
