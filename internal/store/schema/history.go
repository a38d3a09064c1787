package schema

import (
	"time"
)

// CreateHistory represents the create_histories table - one append-only row
// per recorded mint.
type CreateHistory struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TokenID         string    `gorm:"column:token_id;not null;type:text" json:"tokenId"`
	OwnerAddress    string    `gorm:"column:owner_address;not null;type:text;index" json:"ownerAddress"`
	ContractAddress string    `gorm:"column:contract_address;not null;type:text" json:"contractAddress"`
	TransactionHash string    `gorm:"column:transaction_hash;not null;uniqueIndex;type:text" json:"transactionHash"`
	Quantity        int64     `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()" json:"createdAt"`
}

// TableName specifies the table name for the CreateHistory model
func (CreateHistory) TableName() string {
	return "create_histories"
}

// BuyHistory represents the buy_histories table - one append-only row per
// purchase, capturing both sides of the trade. The unique transaction hash
// doubles as the purchase idempotency key.
type BuyHistory struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TokenID         string    `gorm:"column:token_id;not null;type:text" json:"tokenId"`
	BuyerAddress    string    `gorm:"column:buyer_address;not null;type:text;index" json:"buyerAddress"`
	SellerAddress   string    `gorm:"column:seller_address;not null;type:text" json:"sellerAddress"`
	Price           float64   `gorm:"column:price;not null" json:"price"`
	ContractAddress string    `gorm:"column:contract_address;not null;type:text" json:"contractAddress"`
	TransactionHash string    `gorm:"column:transaction_hash;not null;uniqueIndex;type:text" json:"transactionHash"`
	Quantity        int64     `gorm:"column:quantity;not null" json:"quantity"`
	BoughtAt        time.Time `gorm:"column:bought_at;not null;default:now()" json:"buyDate"`
}

// TableName specifies the table name for the BuyHistory model
func (BuyHistory) TableName() string {
	return "buy_histories"
}

// SellHistory represents the sell_histories table - one append-only row per
// list-for-sale action.
type SellHistory struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TokenID         string    `gorm:"column:token_id;not null;type:text" json:"tokenId"`
	SellerAddress   string    `gorm:"column:seller_address;not null;type:text;index" json:"sellerAddress"`
	Price           float64   `gorm:"column:price;not null;default:0" json:"price"`
	ContractAddress string    `gorm:"column:contract_address;not null;type:text" json:"contractAddress"`
	TransactionHash string    `gorm:"column:transaction_hash;not null;type:text" json:"transactionHash"`
	Quantity        int64     `gorm:"column:quantity;not null" json:"quantity"`
	ListedAt        time.Time `gorm:"column:listed_at;not null;default:now()" json:"saleDate"`
}

// TableName specifies the table name for the SellHistory model
func (SellHistory) TableName() string {
	return "sell_histories"
}
