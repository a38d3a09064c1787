package profile

import (
	"context"
	"fmt"
	"net/url"

	"github.com/openlot/marketplace/internal/adapter"
)

// Profile holds the public display identity of a wallet.
type Profile struct {
	WalletAddress string `json:"walletAddress"`
	Username      string `json:"username"`
	AvatarURL     string `json:"profileLogo"`
}

// Service defines the interface for the external user-profile lookup.
// A wallet without a profile yields (nil, nil), not an error.
type Service interface {
	// GetByWallet fetches the display profile for a wallet address
	GetByWallet(ctx context.Context, walletAddress string) (*Profile, error)
}

type profileResponse struct {
	Status bool     `json:"status"`
	Data   *Profile `json:"data"`
}

// HTTPService implements Service against the user-profile API.
type HTTPService struct {
	httpClient adapter.HTTPClient
	apiBaseURL string
}

// NewHTTPService creates a new profile lookup client
func NewHTTPService(httpClient adapter.HTTPClient, apiBaseURL string) Service {
	return &HTTPService{
		httpClient: httpClient,
		apiBaseURL: apiBaseURL,
	}
}

// GetByWallet fetches the display profile for a wallet address
func (s *HTTPService) GetByWallet(ctx context.Context, walletAddress string) (*Profile, error) {
	endpoint := fmt.Sprintf("%s/users/%s", s.apiBaseURL, url.PathEscape(walletAddress))

	var response profileResponse
	if err := s.httpClient.Get(ctx, endpoint, &response); err != nil {
		if adapter.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to call profile API: %w", err)
	}

	return response.Data, nil
}
