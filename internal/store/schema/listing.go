package schema

import (
	"time"
)

// Listing represents the listings table - one row per ownership lot of an
// asset. A lot is created at mint time and again whenever a purchase splits
// an existing lot; the bought portion becomes a new lot owned by the buyer.
// Display metadata is denormalized from the asset for join-free reads.
type Listing struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// TokenID is the token identifier within the contract
	TokenID string `gorm:"column:token_id;not null;type:text;index:idx_listings_token_contract,priority:1" json:"tokenId"`
	// ContractAddress is the address of the contract the token belongs to
	ContractAddress string `gorm:"column:contract_address;not null;type:text;index:idx_listings_token_contract,priority:2" json:"contractAddress"`
	// CollectionID references the collection the asset was minted into
	CollectionID string `gorm:"column:collection_id;not null;type:text" json:"collectionId"`
	// CollectionName is denormalized from the collection
	CollectionName string `gorm:"column:collection_name;type:text" json:"collectionName"`
	// CategoryID references the asset's category
	CategoryID string `gorm:"column:category_id;not null;type:text" json:"categoryId"`
	// CategoryName is denormalized from the category
	CategoryName string `gorm:"column:category_name;type:text" json:"categoryName"`
	// CreatorAddress is the wallet that minted the asset
	CreatorAddress string `gorm:"column:creator_address;not null;type:text" json:"walletAddress"`
	// OwnerAddress is the wallet currently holding this lot
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;index" json:"ownedBy"`
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
	// Price is the asking price while the lot is on sale
	Price float64 `gorm:"column:price;not null;default:0" json:"price"`
	// OnSale indicates the lot is currently offered for purchase
	OnSale bool `gorm:"column:on_sale;not null;default:false" json:"onSale"`
	// IsMinted indicates the backing asset's mint has been recorded
	IsMinted bool `gorm:"column:is_minted;not null;default:false" json:"isMinted"`
	// TransactionHash is the hash of the last transaction touching this lot
	TransactionHash string `gorm:"column:transaction_hash;not null;type:text" json:"transactionHash"`
	// Quantity is the number of units in this lot; a lot at 0 is exhausted
	Quantity int64 `gorm:"column:quantity;not null;check:quantity >= 0" json:"quantity"`
	// DelistedAt records when the lot was last removed from sale
	DelistedAt *time.Time `gorm:"column:delisted_at" json:"delistedAt,omitempty"`
	// CreatedAt is the timestamp when this lot was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()" json:"createdAt"`
	// UpdatedAt is the timestamp of the most recent mutation
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()" json:"updatedAt"`
}

// TableName specifies the table name for the Listing model
func (Listing) TableName() string {
	return "listings"
}
