package store

import (
	"context"
	"time"

	"github.com/openlot/marketplace/internal/domain"
	"github.com/openlot/marketplace/internal/store/schema"
)

// Store defines the interface for database operations
type Store interface {
	// GetCollection retrieves a collection by its ID within a contract
	GetCollection(ctx context.Context, collectionID, contractAddress string) (*schema.Collection, error)
	// GetCategory retrieves a category by its ID
	GetCategory(ctx context.Context, categoryID string) (*schema.Category, error)

	// CreateMint records a mint: one asset, its initial listing lot, and one
	// create-history row, in a single transaction
	CreateMint(ctx context.Context, input CreateMintInput) (*schema.Asset, error)
	// PurchaseListing executes a purchase against the on-sale lot for a key,
	// splitting off a new buyer-owned lot in a single transaction
	PurchaseListing(ctx context.Context, input PurchaseInput) error
	// ListLotForSale puts the caller's lot on sale and appends a sell-history row
	ListLotForSale(ctx context.Context, input ListForSaleInput) error
	// RemoveLotFromSale takes the caller's lot off sale
	RemoveLotFromSale(ctx context.Context, input RemoveFromSaleInput) error

	// GetListings retrieves all listing lots
	GetListings(ctx context.Context) ([]schema.Listing, error)
	// GetListingByKey retrieves the primary lot for an asset key
	GetListingByKey(ctx context.Context, key domain.AssetKey) (*schema.Listing, error)
	// GetAssetByKey retrieves the asset row for a key
	GetAssetByKey(ctx context.Context, key domain.AssetKey) (*schema.Asset, error)
	// GetAssets retrieves all asset rows
	GetAssets(ctx context.Context) ([]schema.Asset, error)
	// GetOwnedListings retrieves minted lots held by a wallet
	GetOwnedListings(ctx context.Context, owner string) ([]schema.Listing, error)
	// GetOwnedAssets retrieves minted assets whose original stock a wallet holds
	GetOwnedAssets(ctx context.Context, owner string) ([]schema.Asset, error)
	// GetCreatedAssets retrieves assets minted by a wallet
	GetCreatedAssets(ctx context.Context, creator string) ([]schema.Asset, error)
	// GetOnSaleListings retrieves a wallet's lots that are currently on sale
	GetOnSaleListings(ctx context.Context, owner string) ([]schema.Listing, error)
	// GetBuyHistoryByBuyer retrieves purchase history rows for a buyer wallet
	GetBuyHistoryByBuyer(ctx context.Context, buyer string) ([]schema.BuyHistory, error)
}

// CreateMintInput carries everything needed to record a mint. The same
// denormalized display metadata is written to the asset, the initial lot,
// and the create-history row.
type CreateMintInput struct {
	TokenID         string
	ContractAddress string
	CollectionID    string
	CollectionName  string
	CategoryID      string
	CategoryName    string
	CreatorAddress  string
	Name            string
	Description     string
	ImageURL        string
	IPFSImageURL    string
	MetadataURL     string
	TransactionHash string
	Quantity        int64
}

// PurchaseInput carries the parameters of a purchase against an asset key.
type PurchaseInput struct {
	Key             domain.AssetKey
	BuyerAddress    string
	TransactionHash string
	Quantity        int64
	Price           float64
}

// ListForSaleInput carries the parameters of a list-for-sale action.
type ListForSaleInput struct {
	Key             domain.AssetKey
	SellerAddress   string
	Price           float64
	TransactionHash string
	Quantity        int64
}

// RemoveFromSaleInput carries the parameters of a delist action.
type RemoveFromSaleInput struct {
	Key             domain.AssetKey
	OwnerAddress    string
	TransactionHash string
	Timestamp       time.Time
}
