package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openlot/marketplace/internal/domain"
	"github.com/openlot/marketplace/internal/logger"
	"github.com/openlot/marketplace/internal/media"
	"github.com/openlot/marketplace/internal/profile"
	"github.com/openlot/marketplace/internal/store"
	"github.com/openlot/marketplace/internal/store/schema"
)

// MintParams carries everything needed to mint a new asset. ImageData is the
// raw artwork uploaded by the caller; the engine stores it with the media
// provider before recording the mint.
type MintParams struct {
	WalletAddress   string
	TokenID         string
	ContractAddress string
	CollectionID    string
	CategoryID      string
	Name            string
	Description     string
	TransactionHash string
	Quantity        int64
	IPFSImageURL    string
	MetadataURL     string
	ImageData       []byte
	ImageFilename   string
}

// BuyParams carries the parameters of a purchase.
type BuyParams struct {
	WalletAddress   string
	Key             domain.AssetKey
	TransactionHash string
	Quantity        int64
	Price           float64
}

// ListForSaleParams carries the parameters of a list-for-sale action.
type ListForSaleParams struct {
	WalletAddress   string
	Key             domain.AssetKey
	Price           float64
	TransactionHash string
	Quantity        int64
}

// RemoveFromSaleParams carries the parameters of a delist action. Timestamp
// is the caller-supplied time of the on-chain delist transaction.
type RemoveFromSaleParams struct {
	WalletAddress   string
	Key             domain.AssetKey
	TransactionHash string
	Timestamp       time.Time
}

// ListingDetail is a listing enriched with the display profiles of its
// current owner and original creator. Profile fields stay nil when the
// profile service has no record for a wallet.
type ListingDetail struct {
	schema.Listing
	OwnerProfile   *profile.Profile `json:"ownerProfile,omitempty"`
	CreatorProfile *profile.Profile `json:"creatorProfile,omitempty"`
}

// OwnedResult combines a wallet's holdings: the listing lots it holds and
// the assets whose original stock it still owns.
type OwnedResult struct {
	Listings []schema.Listing `json:"listings"`
	Assets   []schema.Asset   `json:"assets"`
}

// Engine orchestrates marketplace operations on top of the store.
type Engine interface {
	// Mint stores the artwork and records a new asset with its initial lot
	Mint(ctx context.Context, params MintParams) (*schema.Asset, error)
	// Buy executes a purchase against the on-sale lot for a key
	Buy(ctx context.Context, params BuyParams) error
	// ListForSale puts the caller's lot on sale
	ListForSale(ctx context.Context, params ListForSaleParams) error
	// RemoveFromSale takes the caller's lot off sale
	RemoveFromSale(ctx context.Context, params RemoveFromSaleParams) error

	// Listings returns all listing lots
	Listings(ctx context.Context) ([]schema.Listing, error)
	// Listing returns the primary lot for a key with owner and creator profiles
	Listing(ctx context.Context, key domain.AssetKey) (*ListingDetail, error)
	// Assets returns all assets
	Assets(ctx context.Context) ([]schema.Asset, error)
	// OwnedAssets returns the lots and original stock held by a wallet
	OwnedAssets(ctx context.Context, walletAddress string) (*OwnedResult, error)
	// CreatedAssets returns the assets minted by a wallet
	CreatedAssets(ctx context.Context, walletAddress string) ([]schema.Asset, error)
	// OnSaleAssets returns a wallet's lots that are currently on sale
	OnSaleAssets(ctx context.Context, walletAddress string) ([]schema.Listing, error)
	// BuyHistory returns the purchase history of a wallet
	BuyHistory(ctx context.Context, walletAddress string) ([]schema.BuyHistory, error)
}

type engine struct {
	store    store.Store
	profiles profile.Service
	uploader media.Uploader
}

// New creates a marketplace engine
func New(s store.Store, profiles profile.Service, uploader media.Uploader) Engine {
	return &engine{
		store:    s,
		profiles: profiles,
		uploader: uploader,
	}
}

// Mint stores the artwork and records a new asset with its initial lot
func (e *engine) Mint(ctx context.Context, params MintParams) (*schema.Asset, error) {
	if params.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	collection, err := e.store.GetCollection(ctx, params.CollectionID, params.ContractAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if collection == nil {
		return nil, domain.ErrCollectionNotFound
	}
	if collection.CreatorAddress != params.WalletAddress {
		return nil, domain.ErrNotCollectionOwner
	}

	category, err := e.store.GetCategory(ctx, params.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}

	var imageURL string
	if len(params.ImageData) > 0 {
		result, err := e.uploader.UploadImage(ctx, params.ImageData, params.ImageFilename, map[string]interface{}{
			"tokenId":         params.TokenID,
			"contractAddress": params.ContractAddress,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to store artwork: %w", err)
		}
		imageURL = result.URL
	}

	asset, err := e.store.CreateMint(ctx, store.CreateMintInput{
		TokenID:         params.TokenID,
		ContractAddress: params.ContractAddress,
		CollectionID:    params.CollectionID,
		CollectionName:  collection.CollectionName,
		CategoryID:      params.CategoryID,
		CategoryName:    category.Name,
		CreatorAddress:  params.WalletAddress,
		Name:            params.Name,
		Description:     params.Description,
		ImageURL:        imageURL,
		IPFSImageURL:    params.IPFSImageURL,
		MetadataURL:     params.MetadataURL,
		TransactionHash: params.TransactionHash,
		Quantity:        params.Quantity,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "minted asset",
		zap.String("tokenId", params.TokenID),
		zap.String("contractAddress", params.ContractAddress),
		zap.String("creator", params.WalletAddress),
		zap.Int64("quantity", params.Quantity),
	)

	return asset, nil
}

// Buy executes a purchase against the on-sale lot for a key
func (e *engine) Buy(ctx context.Context, params BuyParams) error {
	if params.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if params.Price < 0 {
		return domain.ErrNegativePrice
	}

	if err := e.store.PurchaseListing(ctx, store.PurchaseInput{
		Key:             params.Key,
		BuyerAddress:    params.WalletAddress,
		TransactionHash: params.TransactionHash,
		Quantity:        params.Quantity,
		Price:           params.Price,
	}); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "purchase completed",
		zap.String("tokenId", params.Key.TokenID),
		zap.String("buyer", params.WalletAddress),
		zap.Int64("quantity", params.Quantity),
	)

	return nil
}

// ListForSale puts the caller's lot on sale
func (e *engine) ListForSale(ctx context.Context, params ListForSaleParams) error {
	if params.Price < 0 {
		return domain.ErrNegativePrice
	}
	if params.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	if err := e.store.ListLotForSale(ctx, store.ListForSaleInput{
		Key:             params.Key,
		SellerAddress:   params.WalletAddress,
		Price:           params.Price,
		TransactionHash: params.TransactionHash,
		Quantity:        params.Quantity,
	}); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "lot listed for sale",
		zap.String("tokenId", params.Key.TokenID),
		zap.String("seller", params.WalletAddress),
		zap.Float64("price", params.Price),
	)

	return nil
}

// RemoveFromSale takes the caller's lot off sale
func (e *engine) RemoveFromSale(ctx context.Context, params RemoveFromSaleParams) error {
	if err := e.store.RemoveLotFromSale(ctx, store.RemoveFromSaleInput{
		Key:             params.Key,
		OwnerAddress:    params.WalletAddress,
		TransactionHash: params.TransactionHash,
		Timestamp:       params.Timestamp,
	}); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "lot removed from sale",
		zap.String("tokenId", params.Key.TokenID),
		zap.String("owner", params.WalletAddress),
	)

	return nil
}

// Listings returns all listing lots
func (e *engine) Listings(ctx context.Context) ([]schema.Listing, error) {
	return e.store.GetListings(ctx)
}

// Listing returns the primary lot for a key with owner and creator profiles.
// A missing profile never fails the read.
func (e *engine) Listing(ctx context.Context, key domain.AssetKey) (*ListingDetail, error) {
	lot, err := e.store.GetListingByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if lot == nil {
		return nil, domain.ErrListingNotFound
	}

	detail := &ListingDetail{Listing: *lot}
	detail.OwnerProfile = e.lookupProfile(ctx, lot.OwnerAddress)
	if lot.CreatorAddress == lot.OwnerAddress {
		detail.CreatorProfile = detail.OwnerProfile
	} else {
		detail.CreatorProfile = e.lookupProfile(ctx, lot.CreatorAddress)
	}

	return detail, nil
}

// lookupProfile fetches a wallet profile, logging and swallowing lookup errors
func (e *engine) lookupProfile(ctx context.Context, walletAddress string) *profile.Profile {
	p, err := e.profiles.GetByWallet(ctx, walletAddress)
	if err != nil {
		logger.WarnCtx(ctx, "profile lookup failed",
			zap.String("walletAddress", walletAddress),
			zap.Error(err),
		)
		return nil
	}
	return p
}

// Assets returns all assets. The public catalog read stays a success when
// the catalog is empty.
func (e *engine) Assets(ctx context.Context) ([]schema.Asset, error) {
	return e.store.GetAssets(ctx)
}

// OwnedAssets returns the lots and original stock held by a wallet
func (e *engine) OwnedAssets(ctx context.Context, walletAddress string) (*OwnedResult, error) {
	listings, err := e.store.GetOwnedListings(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	assets, err := e.store.GetOwnedAssets(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 && len(assets) == 0 {
		return nil, domain.ErrNoResults
	}
	return &OwnedResult{Listings: listings, Assets: assets}, nil
}

// CreatedAssets returns the assets minted by a wallet
func (e *engine) CreatedAssets(ctx context.Context, walletAddress string) ([]schema.Asset, error) {
	assets, err := e.store.GetCreatedAssets(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, domain.ErrNoResults
	}
	for _, asset := range assets {
		if asset.CreatorAddress != walletAddress {
			return nil, domain.ErrOwnershipMismatch
		}
	}
	return assets, nil
}

// OnSaleAssets returns a wallet's lots that are currently on sale
func (e *engine) OnSaleAssets(ctx context.Context, walletAddress string) ([]schema.Listing, error) {
	listings, err := e.store.GetOnSaleListings(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, domain.ErrNoResults
	}
	return listings, nil
}

// BuyHistory returns the purchase history of a wallet
func (e *engine) BuyHistory(ctx context.Context, walletAddress string) ([]schema.BuyHistory, error) {
	history, err := e.store.GetBuyHistoryByBuyer(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, domain.ErrNoResults
	}
	return history, nil
}
