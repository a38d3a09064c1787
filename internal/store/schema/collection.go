package schema

import (
	"time"
)

// Collection represents the collections table. Mint authorization checks the
// collection's creator wallet against the caller.
type Collection struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CollectionID    string    `gorm:"column:collection_id;not null;type:text;uniqueIndex:idx_collections_cid_contract,priority:1" json:"collectionId"`
	ContractAddress string    `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_collections_cid_contract,priority:2" json:"contractAddress"`
	CollectionName  string    `gorm:"column:collection_name;not null;type:text" json:"collectionName"`
	CreatorAddress  string    `gorm:"column:creator_address;not null;type:text;index" json:"creatorWalletAddress"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()" json:"createdAt"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}

// Category represents the categories table.
type Category struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CategoryID string    `gorm:"column:category_id;not null;uniqueIndex;type:text" json:"categoryId"`
	Name       string    `gorm:"column:name;not null;type:text" json:"name"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now()" json:"createdAt"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
