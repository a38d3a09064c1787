package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlot/marketplace/internal/domain"
)

const (
	testCreator  = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testBuyer    = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	testStranger = "0xcccccccccccccccccccccccccccccccccccccccc"
	testContract = "0x00000000000000000000000000000000000000c1"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// testTxHash builds a deterministic transaction hash for test fixtures
func testTxHash(n int) string {
	return fmt.Sprintf("0x%064d", n)
}

// buildTestMint creates a mint input for the seeded genesis collection
func buildTestMint(tokenID string, quantity int64, txSeq int) CreateMintInput {
	return CreateMintInput{
		TokenID:         tokenID,
		ContractAddress: testContract,
		CollectionID:    "col-genesis",
		CollectionName:  "Genesis Collection",
		CategoryID:      "cat-art",
		CategoryName:    "Art",
		CreatorAddress:  testCreator,
		Name:            "Test Asset " + tokenID,
		Description:     "A test asset",
		ImageURL:        "https://imagedelivery.net/acc/img-" + tokenID + "/public",
		IPFSImageURL:    "https://ipfs.io/ipfs/Qm" + tokenID,
		MetadataURL:     "https://ipfs.io/ipfs/Qm" + tokenID + "/metadata.json",
		TransactionHash: testTxHash(txSeq),
		Quantity:        quantity,
	}
}

// mintAndList seeds a minted asset and puts its lot on sale
func mintAndList(t *testing.T, s Store, tokenID string, quantity int64, price float64, txSeq int) {
	ctx := context.Background()

	_, err := s.CreateMint(ctx, buildTestMint(tokenID, quantity, txSeq))
	require.NoError(t, err)

	err = s.ListLotForSale(ctx, ListForSaleInput{
		Key:             domain.AssetKey{TokenID: tokenID, ContractAddress: testContract},
		SellerAddress:   testCreator,
		Price:           price,
		TransactionHash: testTxHash(txSeq + 1),
		Quantity:        quantity,
	})
	require.NoError(t, err)
}

// =============================================================================
// Collection and Category Tests
// =============================================================================

func testGetCollection(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("get seeded collection", func(t *testing.T) {
		collection, err := s.GetCollection(ctx, "col-genesis", testContract)
		require.NoError(t, err)
		require.NotNil(t, collection)
		assert.Equal(t, "Genesis Collection", collection.CollectionName)
		assert.Equal(t, testCreator, collection.CreatorAddress)
	})

	t.Run("collection id is scoped to its contract", func(t *testing.T) {
		collection, err := s.GetCollection(ctx, "col-genesis", "0x00000000000000000000000000000000000000c2")
		require.NoError(t, err)
		assert.Nil(t, collection)
	})

	t.Run("unknown collection returns nil", func(t *testing.T) {
		collection, err := s.GetCollection(ctx, "col-missing", testContract)
		require.NoError(t, err)
		assert.Nil(t, collection)
	})
}

func testGetCategory(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("get seeded category", func(t *testing.T) {
		category, err := s.GetCategory(ctx, "cat-art")
		require.NoError(t, err)
		require.NotNil(t, category)
		assert.Equal(t, "Art", category.Name)
	})

	t.Run("unknown category returns nil", func(t *testing.T) {
		category, err := s.GetCategory(ctx, "cat-missing")
		require.NoError(t, err)
		assert.Nil(t, category)
	})
}

// =============================================================================
// Mint Tests
// =============================================================================

func testCreateMint(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("successful mint creates asset, lot, and history", func(t *testing.T) {
		input := buildTestMint("token-1", 10, 100)

		asset, err := s.CreateMint(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.NotZero(t, asset.ID)
		assert.Equal(t, testCreator, asset.CreatorAddress)
		assert.Equal(t, testCreator, asset.OwnedBy)
		assert.Equal(t, int64(10), asset.Quantity)
		assert.True(t, asset.IsMinted)
		assert.False(t, asset.OnSale)
		assert.Equal(t, "Genesis Collection", asset.CollectionName)
		assert.Equal(t, "Art", asset.CategoryName)

		// The initial lot mirrors the asset and is held by the creator
		lot, err := s.GetListingByKey(ctx, domain.AssetKey{TokenID: "token-1", ContractAddress: testContract})
		require.NoError(t, err)
		require.NotNil(t, lot)
		assert.Equal(t, testCreator, lot.OwnerAddress)
		assert.Equal(t, int64(10), lot.Quantity)
		assert.False(t, lot.OnSale)
		assert.True(t, lot.IsMinted)
	})

	t.Run("duplicate transaction hash is rejected", func(t *testing.T) {
		input := buildTestMint("token-2", 5, 101)
		_, err := s.CreateMint(ctx, input)
		require.NoError(t, err)

		replay := buildTestMint("token-2-replay", 5, 101)
		_, err = s.CreateMint(ctx, replay)
		assert.ErrorIs(t, err, domain.ErrDuplicateTransaction)

		// The replay must not have written anything
		asset, err := s.GetAssetByKey(ctx, domain.AssetKey{TokenID: "token-2-replay", ContractAddress: testContract})
		require.NoError(t, err)
		assert.Nil(t, asset)
	})
}

// =============================================================================
// Purchase Tests
// =============================================================================

func testPurchaseListing(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("partial purchase splits the lot and decrements the asset", func(t *testing.T) {
		mintAndList(t, s, "token-10", 10, 2.5, 110)
		key := domain.AssetKey{TokenID: "token-10", ContractAddress: testContract}

		err := s.PurchaseListing(ctx, PurchaseInput{
			Key:             key,
			BuyerAddress:    testBuyer,
			TransactionHash: testTxHash(112),
			Quantity:        4,
			Price:           2.5,
		})
		require.NoError(t, err)

		// Seller lot keeps the remainder and stays on sale
		lot, err := s.GetListingByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, lot)
		assert.Equal(t, testCreator, lot.OwnerAddress)
		assert.Equal(t, int64(6), lot.Quantity)
		assert.True(t, lot.OnSale)

		// Asset stock follows the sale
		asset, err := s.GetAssetByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.Equal(t, int64(6), asset.Quantity)
		assert.True(t, asset.OnSale)

		// Buyer holds a new lot that is not on sale
		buyerLots, err := s.GetOwnedListings(ctx, testBuyer)
		require.NoError(t, err)
		require.Len(t, buyerLots, 1)
		assert.Equal(t, int64(4), buyerLots[0].Quantity)
		assert.False(t, buyerLots[0].OnSale)
		assert.Equal(t, 2.5, buyerLots[0].Price)

		// The trade is recorded once
		history, err := s.GetBuyHistoryByBuyer(ctx, testBuyer)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, testCreator, history[0].SellerAddress)
		assert.Equal(t, int64(4), history[0].Quantity)
		assert.Equal(t, 2.5, history[0].Price)
	})

	t.Run("buying out the lot ends the sale", func(t *testing.T) {
		mintAndList(t, s, "token-11", 6, 1.0, 120)
		key := domain.AssetKey{TokenID: "token-11", ContractAddress: testContract}

		err := s.PurchaseListing(ctx, PurchaseInput{
			Key:             key,
			BuyerAddress:    testBuyer,
			TransactionHash: testTxHash(122),
			Quantity:        6,
			Price:           1.0,
		})
		require.NoError(t, err)

		asset, err := s.GetAssetByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.Equal(t, int64(0), asset.Quantity)
		assert.False(t, asset.OnSale)

		// The exhausted seller lot is off sale; the buyer lot resolves as primary
		lot, err := s.GetListingByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, lot)
		assert.False(t, lot.OnSale)
	})

	t.Run("overbid is paid by the buyer but does not move the asking price", func(t *testing.T) {
		mintAndList(t, s, "token-15", 10, 2.0, 170)
		key := domain.AssetKey{TokenID: "token-15", ContractAddress: testContract}

		err := s.PurchaseListing(ctx, PurchaseInput{
			Key:             key,
			BuyerAddress:    testStranger,
			TransactionHash: testTxHash(172),
			Quantity:        4,
			Price:           3.5,
		})
		require.NoError(t, err)

		// The asset and the trade record keep the listing's asking price
		asset, err := s.GetAssetByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.Equal(t, 2.0, asset.Price)

		history, err := s.GetBuyHistoryByBuyer(ctx, testStranger)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, 2.0, history[0].Price)

		// The buyer's lot records what was actually paid
		buyerLots, err := s.GetOwnedListings(ctx, testStranger)
		require.NoError(t, err)
		require.Len(t, buyerLots, 1)
		assert.Equal(t, 3.5, buyerLots[0].Price)
	})

	t.Run("price below the listing price is rejected", func(t *testing.T) {
		mintAndList(t, s, "token-12", 5, 3.0, 130)

		err := s.PurchaseListing(ctx, PurchaseInput{
			Key:             domain.AssetKey{TokenID: "token-12", ContractAddress: testContract},
			BuyerAddress:    testBuyer,
			TransactionHash: testTxHash(132),
			Quantity:        1,
			Price:           2.9,
		})
		assert.ErrorIs(t, err, domain.ErrPriceBelowListing)
	})

	t.Run("quantity above the lot quantity is rejected", func(t *testing.T) {
		mintAndList(t, s, "token-13", 5, 1.0, 140)

		err := s.PurchaseListing(ctx, PurchaseInput{
			Key:             domain.AssetKey{TokenID: "token-13", ContractAddress: testContract},
			BuyerAddress:    testBuyer,
			TransactionHash: testTxHash(142),
			Quantity:        6,
			Price:           1.0,
		})
		assert.ErrorIs(t, err, domain.ErrQuantityExceedsStock)
	})

	t.Run("replayed purchase transaction hash rolls back", func(t *testing.T) {
		mintAndList(t, s, "token-14", 10, 1.0, 150)
		key := domain.AssetKey{TokenID: "token-14", ContractAddress: testContract}

		err := s.PurchaseListing(ctx, PurchaseInput{
			Key:             key,
			BuyerAddress:    testBuyer,
			TransactionHash: testTxHash(152),
			Quantity:        2,
			Price:           1.0,
		})
		require.NoError(t, err)

		err = s.PurchaseListing(ctx, PurchaseInput{
			Key:             key,
			BuyerAddress:    testBuyer,
			TransactionHash: testTxHash(152),
			Quantity:        2,
			Price:           1.0,
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateTransaction)

		// The replay must not have decremented anything further
		asset, err := s.GetAssetByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.Equal(t, int64(8), asset.Quantity)

		history, err := s.GetBuyHistoryByBuyer(ctx, testBuyer)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("purchase against unknown key fails", func(t *testing.T) {
		err := s.PurchaseListing(ctx, PurchaseInput{
			Key:             domain.AssetKey{TokenID: "token-missing", ContractAddress: testContract},
			BuyerAddress:    testBuyer,
			TransactionHash: testTxHash(160),
			Quantity:        1,
			Price:           1.0,
		})
		assert.ErrorIs(t, err, domain.ErrListingNotFound)
	})
}

// =============================================================================
// List For Sale Tests
// =============================================================================

func testListLotForSale(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("listing puts the lot on sale and mirrors onto the asset", func(t *testing.T) {
		_, err := s.CreateMint(ctx, buildTestMint("token-20", 8, 200))
		require.NoError(t, err)
		key := domain.AssetKey{TokenID: "token-20", ContractAddress: testContract}

		err = s.ListLotForSale(ctx, ListForSaleInput{
			Key:             key,
			SellerAddress:   testCreator,
			Price:           4.2,
			TransactionHash: testTxHash(201),
			Quantity:        8,
		})
		require.NoError(t, err)

		lot, err := s.GetListingByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, lot)
		assert.True(t, lot.OnSale)
		assert.Equal(t, 4.2, lot.Price)
		assert.Equal(t, int64(8), lot.Quantity)
		assert.Equal(t, testTxHash(201), lot.TransactionHash)

		asset, err := s.GetAssetByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.True(t, asset.OnSale)
		assert.Equal(t, 4.2, asset.Price)
		// Listing does not consume stock
		assert.Equal(t, int64(8), asset.Quantity)
	})

	t.Run("only the lot owner can list", func(t *testing.T) {
		_, err := s.CreateMint(ctx, buildTestMint("token-21", 3, 210))
		require.NoError(t, err)

		err = s.ListLotForSale(ctx, ListForSaleInput{
			Key:             domain.AssetKey{TokenID: "token-21", ContractAddress: testContract},
			SellerAddress:   testStranger,
			Price:           1.0,
			TransactionHash: testTxHash(211),
			Quantity:        3,
		})
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("a lot already on sale cannot be listed again", func(t *testing.T) {
		mintAndList(t, s, "token-22", 3, 1.0, 220)

		err := s.ListLotForSale(ctx, ListForSaleInput{
			Key:             domain.AssetKey{TokenID: "token-22", ContractAddress: testContract},
			SellerAddress:   testCreator,
			Price:           2.0,
			TransactionHash: testTxHash(222),
			Quantity:        3,
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyOnSale)
	})

	t.Run("listed quantity cannot exceed the lot quantity", func(t *testing.T) {
		_, err := s.CreateMint(ctx, buildTestMint("token-23", 3, 230))
		require.NoError(t, err)

		err = s.ListLotForSale(ctx, ListForSaleInput{
			Key:             domain.AssetKey{TokenID: "token-23", ContractAddress: testContract},
			SellerAddress:   testCreator,
			Price:           1.0,
			TransactionHash: testTxHash(231),
			Quantity:        4,
		})
		assert.ErrorIs(t, err, domain.ErrQuantityExceedsStock)
	})
}

// =============================================================================
// Remove From Sale Tests
// =============================================================================

func testRemoveLotFromSale(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("delisting clears the sale flags", func(t *testing.T) {
		mintAndList(t, s, "token-30", 5, 1.5, 300)
		key := domain.AssetKey{TokenID: "token-30", ContractAddress: testContract}

		err := s.RemoveLotFromSale(ctx, RemoveFromSaleInput{
			Key:             key,
			OwnerAddress:    testCreator,
			TransactionHash: testTxHash(302),
			Timestamp:       time.Now().UTC(),
		})
		require.NoError(t, err)

		lot, err := s.GetListingByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, lot)
		assert.False(t, lot.OnSale)
		assert.NotNil(t, lot.DelistedAt)
		// Delisting does not change the held quantity
		assert.Equal(t, int64(5), lot.Quantity)

		asset, err := s.GetAssetByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.False(t, asset.OnSale)
	})

	t.Run("only the lot owner can delist", func(t *testing.T) {
		mintAndList(t, s, "token-31", 5, 1.5, 310)

		err := s.RemoveLotFromSale(ctx, RemoveFromSaleInput{
			Key:             domain.AssetKey{TokenID: "token-31", ContractAddress: testContract},
			OwnerAddress:    testStranger,
			TransactionHash: testTxHash(312),
			Timestamp:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("a lot not on sale cannot be delisted", func(t *testing.T) {
		_, err := s.CreateMint(ctx, buildTestMint("token-32", 5, 320))
		require.NoError(t, err)

		err = s.RemoveLotFromSale(ctx, RemoveFromSaleInput{
			Key:             domain.AssetKey{TokenID: "token-32", ContractAddress: testContract},
			OwnerAddress:    testCreator,
			TransactionHash: testTxHash(321),
			Timestamp:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrNotOnSale)
	})
}

// =============================================================================
// Read Tests
// =============================================================================

func testReads(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("listing resolution prefers the on-sale lot", func(t *testing.T) {
		mintAndList(t, s, "token-40", 10, 1.0, 400)
		key := domain.AssetKey{TokenID: "token-40", ContractAddress: testContract}

		// The buyer relists their split lot while the seller lot sells out
		err := s.PurchaseListing(ctx, PurchaseInput{
			Key:             key,
			BuyerAddress:    testBuyer,
			TransactionHash: testTxHash(402),
			Quantity:        10,
			Price:           1.0,
		})
		require.NoError(t, err)

		err = s.ListLotForSale(ctx, ListForSaleInput{
			Key:             key,
			SellerAddress:   testBuyer,
			Price:           9.0,
			TransactionHash: testTxHash(403),
			Quantity:        10,
		})
		require.NoError(t, err)

		lot, err := s.GetListingByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, lot)
		assert.Equal(t, testBuyer, lot.OwnerAddress)
		assert.True(t, lot.OnSale)
		assert.Equal(t, 9.0, lot.Price)
	})

	t.Run("secondary purchase leaves the mint holder's stock untouched", func(t *testing.T) {
		mintAndList(t, s, "token-42", 5, 1.0, 420)
		key := domain.AssetKey{TokenID: "token-42", ContractAddress: testContract}

		err := s.PurchaseListing(ctx, PurchaseInput{
			Key:             key,
			BuyerAddress:    testBuyer,
			TransactionHash: testTxHash(422),
			Quantity:        5,
			Price:           1.0,
		})
		require.NoError(t, err)

		err = s.ListLotForSale(ctx, ListForSaleInput{
			Key:             key,
			SellerAddress:   testBuyer,
			Price:           2.0,
			TransactionHash: testTxHash(423),
			Quantity:        5,
		})
		require.NoError(t, err)

		err = s.PurchaseListing(ctx, PurchaseInput{
			Key:             key,
			BuyerAddress:    testStranger,
			TransactionHash: testTxHash(424),
			Quantity:        2,
			Price:           2.0,
		})
		require.NoError(t, err)

		asset, err := s.GetAssetByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, asset)
		assert.Equal(t, int64(0), asset.Quantity)
		assert.True(t, asset.OnSale)
		assert.Equal(t, 2.0, asset.Price)

		strangerLots, err := s.GetOwnedListings(ctx, testStranger)
		require.NoError(t, err)
		require.Len(t, strangerLots, 1)
		assert.Equal(t, int64(2), strangerLots[0].Quantity)
	})

	t.Run("scoped reads only return the caller's rows", func(t *testing.T) {
		mintAndList(t, s, "token-41", 4, 1.0, 410)
		key := domain.AssetKey{TokenID: "token-41", ContractAddress: testContract}

		err := s.PurchaseListing(ctx, PurchaseInput{
			Key:             key,
			BuyerAddress:    testBuyer,
			TransactionHash: testTxHash(412),
			Quantity:        1,
			Price:           1.0,
		})
		require.NoError(t, err)

		created, err := s.GetCreatedAssets(ctx, testCreator)
		require.NoError(t, err)
		require.NotEmpty(t, created)
		for _, asset := range created {
			assert.Equal(t, testCreator, asset.CreatorAddress)
		}

		created, err = s.GetCreatedAssets(ctx, testStranger)
		require.NoError(t, err)
		assert.Empty(t, created)

		onSale, err := s.GetOnSaleListings(ctx, testBuyer)
		require.NoError(t, err)
		assert.Empty(t, onSale)

		onSale, err = s.GetOnSaleListings(ctx, testCreator)
		require.NoError(t, err)
		require.NotEmpty(t, onSale)
		for _, lot := range onSale {
			assert.Equal(t, testCreator, lot.OwnerAddress)
			assert.True(t, lot.OnSale)
		}

		history, err := s.GetBuyHistoryByBuyer(ctx, testStranger)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("missing keys read as nil without error", func(t *testing.T) {
		lot, err := s.GetListingByKey(ctx, domain.AssetKey{TokenID: "nope", ContractAddress: testContract})
		require.NoError(t, err)
		assert.Nil(t, lot)

		asset, err := s.GetAssetByKey(ctx, domain.AssetKey{TokenID: "nope", ContractAddress: testContract})
		require.NoError(t, err)
		assert.Nil(t, asset)
	})
}

// =============================================================================
// Suite Runner
// =============================================================================

// RunStoreTests runs the full store suite against an implementation.
// newStore must hand back an isolated store per call; any cleanup is
// registered on t by the factory itself.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"GetCollection", testGetCollection},
		{"GetCategory", testGetCategory},
		{"CreateMint", testCreateMint},
		{"PurchaseListing", testPurchaseListing},
		{"ListLotForSale", testListLotForSale},
		{"RemoveLotFromSale", testRemoveLotFromSale},
		{"Reads", testReads},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}
