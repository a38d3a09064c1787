package dto

import (
	"errors"

	"github.com/openlot/marketplace/internal/domain"
)

// MintRequest is the multipart form payload for minting a new asset.
// The artwork file travels alongside these fields in the "image" part.
type MintRequest struct {
	TokenID         string `form:"tokenId"`
	ContractAddress string `form:"contractAddress"`
	CollectionID    string `form:"collectionId"`
	CategoryID      string `form:"categoryId"`
	Name            string `form:"name"`
	Description     string `form:"description"`
	TransactionHash string `form:"transactionHash"`
	Quantity        int64  `form:"quantity"`
	IPFSImageURL    string `form:"ipfsImageUrl"`
	MetadataURL     string `form:"metadataUrl"`
}

// Validate checks the mint request fields
func (r *MintRequest) Validate() error {
	if r.TokenID == "" {
		return errors.New("tokenId is required")
	}
	if !domain.IsWalletAddress(r.ContractAddress) {
		return errors.New("contractAddress is not a valid address")
	}
	if r.CollectionID == "" {
		return errors.New("collectionId is required")
	}
	if r.CategoryID == "" {
		return errors.New("categoryId is required")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	if !domain.IsTransactionHash(r.TransactionHash) {
		return errors.New("transactionHash is not a valid transaction hash")
	}
	if r.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}

// BuyRequest is the JSON payload for purchasing from a listing.
type BuyRequest struct {
	TokenID         string  `json:"tokenId"`
	ContractAddress string  `json:"contractAddress"`
	TransactionHash string  `json:"transactionHash"`
	Quantity        int64   `json:"quantity"`
	Price           float64 `json:"price"`
}

// Validate checks the buy request fields
func (r *BuyRequest) Validate() error {
	if r.TokenID == "" {
		return errors.New("tokenId is required")
	}
	if !domain.IsWalletAddress(r.ContractAddress) {
		return errors.New("contractAddress is not a valid address")
	}
	if !domain.IsTransactionHash(r.TransactionHash) {
		return errors.New("transactionHash is not a valid transaction hash")
	}
	if r.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// SellRequest is the JSON payload for listing a lot for sale.
type SellRequest struct {
	TokenID         string  `json:"tokenId"`
	ContractAddress string  `json:"contractAddress"`
	Price           float64 `json:"price"`
	TransactionHash string  `json:"transactionHash"`
	Quantity        int64   `json:"quantity"`
}

// Validate checks the sell request fields
func (r *SellRequest) Validate() error {
	if r.TokenID == "" {
		return errors.New("tokenId is required")
	}
	if !domain.IsWalletAddress(r.ContractAddress) {
		return errors.New("contractAddress is not a valid address")
	}
	if !domain.IsTransactionHash(r.TransactionHash) {
		return errors.New("transactionHash is not a valid transaction hash")
	}
	if r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if r.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}

// CancelSaleRequest is the JSON payload for removing a lot from sale.
// Timestamp is the unix time of the on-chain delist transaction, supplied
// by the caller and recorded verbatim.
type CancelSaleRequest struct {
	TokenID         string `json:"tokenId"`
	ContractAddress string `json:"contractAddress"`
	TransactionHash string `json:"transactionHash"`
	Timestamp       int64  `json:"timestamp"`
}

// Validate checks the cancel-sale request fields
func (r *CancelSaleRequest) Validate() error {
	if r.TokenID == "" {
		return errors.New("tokenId is required")
	}
	if !domain.IsWalletAddress(r.ContractAddress) {
		return errors.New("contractAddress is not a valid address")
	}
	if !domain.IsTransactionHash(r.TransactionHash) {
		return errors.New("transactionHash is not a valid transaction hash")
	}
	if r.Timestamp <= 0 {
		return errors.New("timestamp is required")
	}
	return nil
}
