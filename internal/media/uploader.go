package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudflare/cloudflare-go"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/openlot/marketplace/internal/adapter"
	"github.com/openlot/marketplace/internal/domain"
	"github.com/openlot/marketplace/internal/logger"
)

// Config holds configuration for Cloudflare Images
type Config struct {
	// AccountID is the Cloudflare account ID for Images
	AccountID string
	// APIToken is the API token for authentication
	APIToken string
	// DeliveryVariant is the image variant used as the durable display URL
	DeliveryVariant string
}

// UploadResult describes an image stored with the media provider.
type UploadResult struct {
	// AssetID is the provider-side identifier of the stored image
	AssetID string
	// URL is the durable delivery URL of the preferred variant
	URL string
	// VariantURLs maps variant names to delivery URLs
	VariantURLs map[string]string
}

// Uploader stores asset artwork with a durable content provider.
type Uploader interface {
	// UploadImage uploads raw image bytes and returns the delivery URLs
	UploadImage(ctx context.Context, data []byte, filename string, metadata map[string]interface{}) (*UploadResult, error)
}

type cloudflareUploader struct {
	cfClient adapter.CloudflareClient
	config   *Config
	rc       *cloudflare.ResourceContainer
}

// NewCloudflareUploader creates an Uploader backed by Cloudflare Images
func NewCloudflareUploader(cfClient adapter.CloudflareClient, config *Config) Uploader {
	return &cloudflareUploader{
		cfClient: cfClient,
		config:   config,
		rc: &cloudflare.ResourceContainer{
			Level:      cloudflare.AccountRouteLevel,
			Identifier: config.AccountID,
		},
	}
}

// UploadImage uploads raw image bytes to Cloudflare Images with retry
func (u *cloudflareUploader) UploadImage(ctx context.Context, data []byte, filename string, metadata map[string]interface{}) (*UploadResult, error) {
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		logger.WarnCtx(ctx, "rejected non-image upload",
			zap.String("filename", filename),
			zap.String("detectedType", mtype.String()),
		)
		return nil, domain.ErrUnsupportedMediaType
	}

	if filepath.Ext(filename) == "" {
		filename = fmt.Sprintf("%s%s", filename, mtype.Extension())
	}

	logger.InfoCtx(ctx, "uploading to Cloudflare Images",
		zap.String("filename", filename),
		zap.Int("size", len(data)),
	)

	var image cloudflare.Image

	operation := func() error {
		var err error
		image, err = u.cfClient.UploadImage(ctx, u.rc, cloudflare.UploadImageParams{
			File:     io.NopCloser(bytes.NewReader(data)),
			Name:     filename,
			Metadata: metadata,
		})
		if err != nil {
			logger.WarnCtx(ctx, "image upload attempt failed, retrying",
				zap.String("filename", filename),
				zap.Error(err),
			)
			return fmt.Errorf("failed to upload image: %w", err)
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 1 * time.Minute
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("image upload failed after retries: %w", err)
	}

	result := u.buildUploadResult(ctx, &image)
	return result, nil
}

// buildUploadResult converts a Cloudflare Image to an UploadResult
func (u *cloudflareUploader) buildUploadResult(ctx context.Context, image *cloudflare.Image) *UploadResult {
	variantURLs := make(map[string]string)
	for _, variantURL := range image.Variants {
		variantName := extractVariantName(variantURL)
		if variantName != "" {
			variantURLs[variantName] = variantURL
		}
	}

	deliveryURL := variantURLs[u.config.DeliveryVariant]
	if deliveryURL == "" {
		// No preferred variant configured or returned, use any
		for _, variantURL := range variantURLs {
			deliveryURL = variantURL
			break
		}
	}

	logger.InfoCtx(ctx, "successfully uploaded to Cloudflare Images",
		zap.String("imageID", image.ID),
		zap.Int("variantCount", len(variantURLs)),
	)

	return &UploadResult{
		AssetID:     image.ID,
		URL:         deliveryURL,
		VariantURLs: variantURLs,
	}
}

// extractVariantName extracts the variant name from a Cloudflare Image variant URL
// Format: https://imagedelivery.net/{account_hash}/{image_id}/{variant_name}
func extractVariantName(variantURL string) string {
	if variantURL == "" {
		return ""
	}
	return path.Base(variantURL)
}
