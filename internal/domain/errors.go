package domain

import "errors"

var (
	// ErrCollectionNotFound is returned when a referenced collection does not exist
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrCategoryNotFound is returned when a referenced category does not exist
	ErrCategoryNotFound = errors.New("category not found")

	// ErrAssetNotFound is returned when an asset is not found
	ErrAssetNotFound = errors.New("asset not found")

	// ErrListingNotFound is returned when a listing lot is not found
	ErrListingNotFound = errors.New("listing not found")

	// ErrNoResults is returned by scoped reads when the caller has no matching rows
	ErrNoResults = errors.New("no matching results")

	// ErrDuplicateTransaction is returned when a transaction hash was already recorded
	ErrDuplicateTransaction = errors.New("transaction hash already exists")

	// ErrAlreadyOnSale is returned when listing a lot that is already on sale
	ErrAlreadyOnSale = errors.New("listing is already on sale")

	// ErrNotOnSale is returned when delisting a lot that is not on sale
	ErrNotOnSale = errors.New("listing is not on sale")

	// ErrNotOwner is returned when the caller does not own the target lot
	ErrNotOwner = errors.New("caller is not the owner of this listing")

	// ErrNotCollectionOwner is returned when minting into a collection created by someone else
	ErrNotCollectionOwner = errors.New("caller is not the creator of this collection")

	// ErrOwnershipMismatch is returned when a scoped query yields rows the caller does not own
	ErrOwnershipMismatch = errors.New("query returned assets not created by the caller")

	// ErrPriceBelowListing is returned when an offered price underbids the listing price
	ErrPriceBelowListing = errors.New("price is below the listing price")

	// ErrNegativePrice is returned when a negative price is supplied
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrQuantityExceedsStock is returned when a requested quantity exceeds the lot's quantity
	ErrQuantityExceedsStock = errors.New("requested quantity exceeds available quantity")

	// ErrInvalidQuantity is returned when a non-positive quantity is supplied
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrUnsupportedMediaType is returned when an uploaded file is not an image
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
