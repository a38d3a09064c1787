package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openlot/marketplace/internal/domain"
	"github.com/openlot/marketplace/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetCollection retrieves a collection by its ID within a contract
func (s *pgStore) GetCollection(ctx context.Context, collectionID, contractAddress string) (*schema.Collection, error) {
	var collection schema.Collection
	err := s.db.WithContext(ctx).
		Where("collection_id = ? AND contract_address = ?", collectionID, contractAddress).
		First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &collection, nil
}

// GetCategory retrieves a category by its ID
func (s *pgStore) GetCategory(ctx context.Context, categoryID string) (*schema.Category, error) {
	var category schema.Category
	err := s.db.WithContext(ctx).Where("category_id = ?", categoryID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// lotResolutionOrder ranks the lots sharing an asset key: the on-sale lot
// wins, exhausted lots lose, ties break on the earliest id so repeated calls
// resolve deterministically.
const lotResolutionOrder = "on_sale DESC, quantity > 0 DESC, id ASC"

// lockLotByKey resolves the target lot for an asset key under a row lock.
func lockLotByKey(tx *gorm.DB, key domain.AssetKey) (*schema.Listing, error) {
	var lot schema.Listing
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token_id = ? AND contract_address = ?", key.TokenID, key.ContractAddress).
		Order(lotResolutionOrder).
		First(&lot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to lock listing: %w", err)
	}
	return &lot, nil
}

// lockOwnedLot resolves the caller's own lot for an asset key under a row
// lock. A key held only by other wallets yields ErrNotOwner; a key with no
// lots at all yields ErrListingNotFound.
func lockOwnedLot(tx *gorm.DB, key domain.AssetKey, owner string) (*schema.Listing, error) {
	var lot schema.Listing
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token_id = ? AND contract_address = ? AND owner_address = ?", key.TokenID, key.ContractAddress, owner).
		Order(lotResolutionOrder).
		First(&lot).Error
	if err == nil {
		return &lot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to lock listing: %w", err)
	}

	var count int64
	if err := tx.Model(&schema.Listing{}).
		Where("token_id = ? AND contract_address = ?", key.TokenID, key.ContractAddress).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}
	if count > 0 {
		return nil, domain.ErrNotOwner
	}
	return nil, domain.ErrListingNotFound
}

// CreateMint records a mint as a single transaction: one asset row, one
// initial listing lot, and one create-history row, all carrying identical
// denormalized display metadata. The mint transaction hash is the idempotency
// key; a replay is rejected before any row is written.
func (s *pgStore) CreateMint(ctx context.Context, input CreateMintInput) (*schema.Asset, error) {
	asset := schema.Asset{
		TokenID:         input.TokenID,
		ContractAddress: input.ContractAddress,
		CollectionID:    input.CollectionID,
		CollectionName:  input.CollectionName,
		CategoryID:      input.CategoryID,
		CategoryName:    input.CategoryName,
		CreatorAddress:  input.CreatorAddress,
		OwnedBy:         input.CreatorAddress,
		Name:            input.Name,
		Description:     input.Description,
		ImageURL:        input.ImageURL,
		IPFSImageURL:    input.IPFSImageURL,
		MetadataURL:     input.MetadataURL,
		IsMinted:        true,
		TransactionHash: input.TransactionHash,
		Quantity:        input.Quantity,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Reject replays of the same mint transaction. The unique index on
		// transaction_hash backstops this check under concurrency.
		var count int64
		if err := tx.Model(&schema.Asset{}).
			Where("transaction_hash = ?", input.TransactionHash).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check transaction hash: %w", err)
		}
		if count > 0 {
			return domain.ErrDuplicateTransaction
		}

		if err := tx.Create(&asset).Error; err != nil {
			return fmt.Errorf("failed to create asset: %w", err)
		}

		lot := schema.Listing{
			TokenID:         input.TokenID,
			ContractAddress: input.ContractAddress,
			CollectionID:    input.CollectionID,
			CollectionName:  input.CollectionName,
			CategoryID:      input.CategoryID,
			CategoryName:    input.CategoryName,
			CreatorAddress:  input.CreatorAddress,
			OwnerAddress:    input.CreatorAddress,
			Name:            input.Name,
			Description:     input.Description,
			ImageURL:        input.ImageURL,
			IPFSImageURL:    input.IPFSImageURL,
			MetadataURL:     input.MetadataURL,
			IsMinted:        true,
			TransactionHash: input.TransactionHash,
			Quantity:        input.Quantity,
		}
		if err := tx.Create(&lot).Error; err != nil {
			return fmt.Errorf("failed to create listing: %w", err)
		}

		history := schema.CreateHistory{
			TokenID:         input.TokenID,
			OwnerAddress:    input.CreatorAddress,
			ContractAddress: input.ContractAddress,
			TransactionHash: input.TransactionHash,
			Quantity:        input.Quantity,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create mint history: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// PurchaseListing executes a purchase in a single transaction: the source lot
// and the asset are both decremented with conditional updates that refuse to
// go negative, a new buyer-owned lot is split off, and one buy-history row is
// appended. The purchase transaction hash is unique; a replay rolls the whole
// transaction back.
func (s *pgStore) PurchaseListing(ctx context.Context, input PurchaseInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lot, err := lockLotByKey(tx, input.Key)
		if err != nil {
			return err
		}

		var asset schema.Asset
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token_id = ? AND contract_address = ?", input.Key.TokenID, input.Key.ContractAddress).
			First(&asset).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAssetNotFound
			}
			return fmt.Errorf("failed to lock asset: %w", err)
		}

		if input.Price < lot.Price {
			return domain.ErrPriceBelowListing
		}
		if input.Quantity > lot.Quantity {
			return domain.ErrQuantityExceedsStock
		}

		// Decrement the source lot. The quantity guard makes the decrement
		// safe against concurrent buyers racing on the same lot.
		lotRemaining := lot.Quantity - input.Quantity
		res := tx.Model(&schema.Listing{}).
			Where("id = ? AND quantity >= ?", lot.ID, input.Quantity).
			Updates(map[string]interface{}{
				"quantity": gorm.Expr("quantity - ?", input.Quantity),
				"on_sale":  lot.OnSale && lotRemaining > 0,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to decrement listing: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrQuantityExceedsStock
		}

		// The bought portion becomes a new lot owned by the buyer.
		buyerLot := schema.Listing{
			TokenID:         lot.TokenID,
			ContractAddress: lot.ContractAddress,
			CollectionID:    lot.CollectionID,
			CollectionName:  lot.CollectionName,
			CategoryID:      lot.CategoryID,
			CategoryName:    lot.CategoryName,
			CreatorAddress:  lot.CreatorAddress,
			OwnerAddress:    input.BuyerAddress,
			Name:            lot.Name,
			Description:     lot.Description,
			ImageURL:        lot.ImageURL,
			IPFSImageURL:    lot.IPFSImageURL,
			MetadataURL:     lot.MetadataURL,
			Price:           input.Price,
			OnSale:          false,
			IsMinted:        true,
			TransactionHash: input.TransactionHash,
			Quantity:        input.Quantity,
		}
		if err := tx.Create(&buyerLot).Error; err != nil {
			return fmt.Errorf("failed to create buyer listing: %w", err)
		}

		// Append the buy history. ON CONFLICT DO NOTHING on the unique
		// transaction hash detects replays; a duplicate aborts the purchase.
		history := schema.BuyHistory{
			TokenID:         lot.TokenID,
			BuyerAddress:    input.BuyerAddress,
			SellerAddress:   lot.OwnerAddress,
			Price:           lot.Price,
			ContractAddress: lot.ContractAddress,
			TransactionHash: input.TransactionHash,
			Quantity:        input.Quantity,
			BoughtAt:        time.Now().UTC(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transaction_hash"}},
			DoNothing: true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create buy history: %w", err)
		}
		if history.ID == 0 {
			return domain.ErrDuplicateTransaction
		}

		if lot.OwnerAddress == asset.OwnedBy {
			// Primary sale: the mint holder's remaining stock shrinks with
			// the lot. The quantity guard refuses to go negative. The asset
			// and buy history keep the asking price even when the buyer
			// overbid; only the buyer's lot records the paid price.
			assetRemaining := asset.Quantity - input.Quantity
			res = tx.Model(&schema.Asset{}).
				Where("id = ? AND quantity >= ?", asset.ID, input.Quantity).
				Updates(map[string]interface{}{
					"quantity": gorm.Expr("quantity - ?", input.Quantity),
					"on_sale":  assetRemaining > 0,
					"price":    lot.Price,
				})
			if res.Error != nil {
				return fmt.Errorf("failed to decrement asset: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrQuantityExceedsStock
			}
			return nil
		}

		// Secondary sale: the mint holder's stock is untouched, only the
		// asset's price and sale flag are refreshed from the remaining lots.
		var onSaleCount int64
		if err := tx.Model(&schema.Listing{}).
			Where("token_id = ? AND contract_address = ? AND on_sale = ?", lot.TokenID, lot.ContractAddress, true).
			Count(&onSaleCount).Error; err != nil {
			return fmt.Errorf("failed to count on-sale listings: %w", err)
		}
		if err := tx.Model(&schema.Asset{}).
			Where("id = ?", asset.ID).
			Updates(map[string]interface{}{
				"on_sale": onSaleCount > 0,
				"price":   lot.Price,
			}).Error; err != nil {
			return fmt.Errorf("failed to update asset: %w", err)
		}

		return nil
	})
}

// ListLotForSale puts a lot on sale in a single transaction: ownership and
// state are validated under a row lock, one sell-history row is appended, and
// the new price and sale flag are mirrored onto the asset.
func (s *pgStore) ListLotForSale(ctx context.Context, input ListForSaleInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lot, err := lockOwnedLot(tx, input.Key, input.SellerAddress)
		if err != nil {
			return err
		}

		if lot.OnSale {
			return domain.ErrAlreadyOnSale
		}
		if input.Quantity > lot.Quantity {
			return domain.ErrQuantityExceedsStock
		}

		history := schema.SellHistory{
			TokenID:         lot.TokenID,
			SellerAddress:   input.SellerAddress,
			Price:           input.Price,
			ContractAddress: lot.ContractAddress,
			TransactionHash: input.TransactionHash,
			Quantity:        input.Quantity,
			ListedAt:        time.Now().UTC(),
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to create sell history: %w", err)
		}

		if err := tx.Model(&schema.Listing{}).
			Where("id = ?", lot.ID).
			Updates(map[string]interface{}{
				"price":            input.Price,
				"transaction_hash": input.TransactionHash,
				"on_sale":          true,
				"quantity":         input.Quantity,
			}).Error; err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}

		if err := tx.Model(&schema.Asset{}).
			Where("token_id = ? AND contract_address = ?", input.Key.TokenID, input.Key.ContractAddress).
			Updates(map[string]interface{}{
				"on_sale": true,
				"price":   input.Price,
			}).Error; err != nil {
			return fmt.Errorf("failed to update asset: %w", err)
		}

		return nil
	})
}

// RemoveLotFromSale takes a lot off sale in a single transaction and clears
// the sale flag on the matching asset.
func (s *pgStore) RemoveLotFromSale(ctx context.Context, input RemoveFromSaleInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lot, err := lockOwnedLot(tx, input.Key, input.OwnerAddress)
		if err != nil {
			return err
		}

		if !lot.OnSale {
			return domain.ErrNotOnSale
		}

		if err := tx.Model(&schema.Listing{}).
			Where("id = ?", lot.ID).
			Updates(map[string]interface{}{
				"on_sale":          false,
				"transaction_hash": input.TransactionHash,
				"delisted_at":      input.Timestamp,
			}).Error; err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}

		// Another owner's lot for the same key may still be on sale
		var onSaleCount int64
		if err := tx.Model(&schema.Listing{}).
			Where("token_id = ? AND contract_address = ? AND on_sale = ?", input.Key.TokenID, input.Key.ContractAddress, true).
			Count(&onSaleCount).Error; err != nil {
			return fmt.Errorf("failed to count on-sale listings: %w", err)
		}

		if err := tx.Model(&schema.Asset{}).
			Where("token_id = ? AND contract_address = ?", input.Key.TokenID, input.Key.ContractAddress).
			Update("on_sale", onSaleCount > 0).Error; err != nil {
			return fmt.Errorf("failed to update asset: %w", err)
		}

		return nil
	})
}

// GetListings retrieves all listing lots
func (s *pgStore) GetListings(ctx context.Context) ([]schema.Listing, error) {
	var listings []schema.Listing
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to get listings: %w", err)
	}
	return listings, nil
}

// GetListingByKey retrieves the primary lot for an asset key using the same
// resolution order as the mutating operations
func (s *pgStore) GetListingByKey(ctx context.Context, key domain.AssetKey) (*schema.Listing, error) {
	var lot schema.Listing
	err := s.db.WithContext(ctx).
		Where("token_id = ? AND contract_address = ?", key.TokenID, key.ContractAddress).
		Order(lotResolutionOrder).
		First(&lot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &lot, nil
}

// GetAssetByKey retrieves the asset row for a key
func (s *pgStore) GetAssetByKey(ctx context.Context, key domain.AssetKey) (*schema.Asset, error) {
	var asset schema.Asset
	err := s.db.WithContext(ctx).
		Where("token_id = ? AND contract_address = ?", key.TokenID, key.ContractAddress).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

// GetAssets retrieves all asset rows
func (s *pgStore) GetAssets(ctx context.Context) ([]schema.Asset, error) {
	var assets []schema.Asset
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to get assets: %w", err)
	}
	return assets, nil
}

// GetOwnedListings retrieves minted lots held by a wallet
func (s *pgStore) GetOwnedListings(ctx context.Context, owner string) ([]schema.Listing, error) {
	var listings []schema.Listing
	err := s.db.WithContext(ctx).
		Where("owner_address = ? AND is_minted = ?", owner, true).
		Order("id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get owned listings: %w", err)
	}
	return listings, nil
}

// GetOwnedAssets retrieves minted assets whose original stock a wallet holds
func (s *pgStore) GetOwnedAssets(ctx context.Context, owner string) ([]schema.Asset, error) {
	var assets []schema.Asset
	err := s.db.WithContext(ctx).
		Where("owned_by = ? AND is_minted = ?", owner, true).
		Order("id ASC").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get owned assets: %w", err)
	}
	return assets, nil
}

// GetCreatedAssets retrieves assets minted by a wallet
func (s *pgStore) GetCreatedAssets(ctx context.Context, creator string) ([]schema.Asset, error) {
	var assets []schema.Asset
	err := s.db.WithContext(ctx).
		Where("creator_address = ?", creator).
		Order("id ASC").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get created assets: %w", err)
	}
	return assets, nil
}

// GetOnSaleListings retrieves a wallet's lots that are currently on sale
func (s *pgStore) GetOnSaleListings(ctx context.Context, owner string) ([]schema.Listing, error) {
	var listings []schema.Listing
	err := s.db.WithContext(ctx).
		Where("owner_address = ? AND on_sale = ?", owner, true).
		Order("id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get on-sale listings: %w", err)
	}
	return listings, nil
}

// GetBuyHistoryByBuyer retrieves purchase history rows for a buyer wallet
func (s *pgStore) GetBuyHistoryByBuyer(ctx context.Context, buyer string) ([]schema.BuyHistory, error) {
	var history []schema.BuyHistory
	err := s.db.WithContext(ctx).
		Where("buyer_address = ?", buyer).
		Order("bought_at DESC").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get buy history: %w", err)
	}
	return history, nil
}
