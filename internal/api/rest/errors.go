package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openlot/marketplace/internal/api/rest/dto"
	"github.com/openlot/marketplace/internal/domain"
	"github.com/openlot/marketplace/internal/logger"
)

// statusCodeFor maps a domain error to its HTTP status code
func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCollectionNotFound),
		errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrNoResults):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrDuplicateTransaction),
		errors.Is(err, domain.ErrAlreadyOnSale),
		errors.Is(err, domain.ErrNotOnSale),
		errors.Is(err, domain.ErrPriceBelowListing),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrQuantityExceedsStock),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrUnsupportedMediaType):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotCollectionOwner),
		errors.Is(err, domain.ErrOwnershipMismatch):
		return http.StatusForbidden

	default:
		return http.StatusInternalServerError
	}
}

// respondError translates an error into the envelope the API always returns.
// Internal errors are logged with detail but reported generically.
func respondError(c *gin.Context, err error) {
	status := statusCodeFor(err)

	if status == http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(status, dto.NewErrorResponse("Internal server error"))
		return
	}

	c.JSON(status, dto.NewErrorResponse(err.Error()))
}

// respondBadRequest rejects a malformed or invalid request
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
}
