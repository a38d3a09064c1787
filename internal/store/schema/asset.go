package schema

import (
	"time"
)

// Asset represents the assets table - the authoritative record of every
// minted asset unit and the quantity remaining with its original holder.
type Asset struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// TokenID is the token identifier within the contract (string to support very large numbers)
	TokenID string `gorm:"column:token_id;not null;type:text;index:idx_assets_token_contract,priority:1" json:"tokenId"`
	// ContractAddress is the address of the contract the token belongs to
	ContractAddress string `gorm:"column:contract_address;not null;type:text;index:idx_assets_token_contract,priority:2" json:"contractAddress"`
	// CollectionID references the collection the asset was minted into
	CollectionID string `gorm:"column:collection_id;not null;type:text" json:"collectionId"`
	// CollectionName is denormalized from the collection for join-free reads
	CollectionName string `gorm:"column:collection_name;type:text" json:"collectionName"`
	// CategoryID references the asset's category
	CategoryID string `gorm:"column:category_id;not null;type:text" json:"categoryId"`
	// CategoryName is denormalized from the category for join-free reads
	CategoryName string `gorm:"column:category_name;type:text" json:"categoryName"`
	// CreatorAddress is the wallet that minted the asset
	CreatorAddress string `gorm:"column:creator_address;not null;type:text;index" json:"walletAddress"`
	// OwnedBy is the wallet currently holding the original mint stock
	OwnedBy string `gorm:"column:owned_by;not null;type:text;index" json:"ownedBy"`
	// Name is the display name of the asset
	Name string `gorm:"column:name;not null;type:text" json:"name"`
	// Description is the display description of the asset
	Description string `gorm:"column:description;type:text" json:"description"`
	// ImageURL is the durable content-store URL of the asset image
	ImageURL string `gorm:"column:image_url;type:text" json:"imageUrl"`
	// IPFSImageURL is the gateway URL of the pinned image
	IPFSImageURL string `gorm:"column:ipfs_image_url;type:text" json:"ipfsImageUrl"`
	// MetadataURL is the gateway URL of the asset metadata document
	MetadataURL string `gorm:"column:metadata_url;type:text" json:"metadataUrl"`
	// Price is the latest listing price mirrored onto the asset
	Price float64 `gorm:"column:price;not null;default:0" json:"price"`
	// OnSale indicates the asset still has stock offered for purchase
	OnSale bool `gorm:"column:on_sale;not null;default:false" json:"onSale"`
	// IsMinted indicates the on-chain mint has been recorded
	IsMinted bool `gorm:"column:is_minted;not null;default:false" json:"isMinted"`
	// TransactionHash is the hash of the mint transaction; unique to prevent double-recording
	TransactionHash string `gorm:"column:transaction_hash;not null;uniqueIndex;type:text" json:"transactionHash"`
	// Quantity is the number of units remaining with the original holder; never negative
	Quantity int64 `gorm:"column:quantity;not null;check:quantity >= 0" json:"quantity"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()" json:"createdAt"`
	// UpdatedAt is the timestamp of the most recent mutation
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()" json:"updatedAt"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}
