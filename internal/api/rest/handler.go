package rest

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlot/marketplace/internal/api/middleware"
	"github.com/openlot/marketplace/internal/api/rest/dto"
	"github.com/openlot/marketplace/internal/domain"
	"github.com/openlot/marketplace/internal/engine"
)

// maxArtworkSize caps the uploaded artwork file at 10MB
const maxArtworkSize = 10 * 1024 * 1024

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// Mint records a newly minted asset with its artwork
	// POST /api/v1/nfts
	Mint(c *gin.Context)

	// Buy purchases units from the on-sale listing of an asset
	// POST /api/v1/nfts/buy
	Buy(c *gin.Context)

	// Sell puts the caller's lot on sale
	// POST /api/v1/nfts/sell
	Sell(c *gin.Context)

	// CancelSale takes the caller's lot off sale
	// POST /api/v1/nfts/sell/cancel
	CancelSale(c *gin.Context)

	// ListListings retrieves all listing lots
	// GET /api/v1/nfts/listings
	ListListings(c *gin.Context)

	// GetListing retrieves one listing with owner and creator profiles
	// GET /api/v1/nfts/listing?tokenId=<id>&contractAddress=<address>
	GetListing(c *gin.Context)

	// ListAssets retrieves all assets
	// GET /api/v1/nfts
	ListAssets(c *gin.Context)

	// ListOwned retrieves the caller's holdings
	// GET /api/v1/nfts/owned
	ListOwned(c *gin.Context)

	// ListCreated retrieves the assets minted by the caller
	// GET /api/v1/nfts/created
	ListCreated(c *gin.Context)

	// ListOnSale retrieves the caller's lots currently on sale
	// GET /api/v1/nfts/on-sale
	ListOnSale(c *gin.Context)

	// GetBuyHistory retrieves the caller's purchase history
	// GET /api/v1/nfts/history/bought
	GetBuyHistory(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	engine engine.Engine
}

// NewHandler creates a new REST API handler
func NewHandler(eng engine.Engine) Handler {
	return &handler{
		engine: eng,
	}
}

// Mint records a newly minted asset with its artwork
func (h *handler) Mint(c *gin.Context) {
	var req dto.MintRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondBadRequest(c, "NFT image is required")
		return
	}
	if fileHeader.Size > maxArtworkSize {
		respondBadRequest(c, "NFT image exceeds the maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	imageData, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	asset, err := h.engine.Mint(c.Request.Context(), engine.MintParams{
		WalletAddress:   middleware.WalletAddress(c),
		TokenID:         req.TokenID,
		ContractAddress: req.ContractAddress,
		CollectionID:    req.CollectionID,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		TransactionHash: req.TransactionHash,
		Quantity:        req.Quantity,
		IPFSImageURL:    req.IPFSImageURL,
		MetadataURL:     req.MetadataURL,
		ImageData:       imageData,
		ImageFilename:   fileHeader.Filename,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse("NFT created successfully", asset))
}

// Buy purchases units from the on-sale listing of an asset
func (h *handler) Buy(c *gin.Context) {
	var req dto.BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	err := h.engine.Buy(c.Request.Context(), engine.BuyParams{
		WalletAddress:   middleware.WalletAddress(c),
		Key:             domain.AssetKey{TokenID: req.TokenID, ContractAddress: req.ContractAddress},
		TransactionHash: req.TransactionHash,
		Quantity:        req.Quantity,
		Price:           req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("NFT bought successfully", nil))
}

// Sell puts the caller's lot on sale
func (h *handler) Sell(c *gin.Context) {
	var req dto.SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	err := h.engine.ListForSale(c.Request.Context(), engine.ListForSaleParams{
		WalletAddress:   middleware.WalletAddress(c),
		Key:             domain.AssetKey{TokenID: req.TokenID, ContractAddress: req.ContractAddress},
		Price:           req.Price,
		TransactionHash: req.TransactionHash,
		Quantity:        req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("NFT listed for sale successfully", nil))
}

// CancelSale takes the caller's lot off sale
func (h *handler) CancelSale(c *gin.Context) {
	var req dto.CancelSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	err := h.engine.RemoveFromSale(c.Request.Context(), engine.RemoveFromSaleParams{
		WalletAddress:   middleware.WalletAddress(c),
		Key:             domain.AssetKey{TokenID: req.TokenID, ContractAddress: req.ContractAddress},
		TransactionHash: req.TransactionHash,
		Timestamp:       time.Unix(req.Timestamp, 0).UTC(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("NFT removed from sale successfully", nil))
}

// ListListings retrieves all listing lots
func (h *handler) ListListings(c *gin.Context) {
	listings, err := h.engine.Listings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Get all listings", listings))
}

// GetListing retrieves one listing with owner and creator profiles
func (h *handler) GetListing(c *gin.Context) {
	key := domain.AssetKey{
		TokenID:         c.Query("tokenId"),
		ContractAddress: c.Query("contractAddress"),
	}
	if !key.Valid() {
		respondBadRequest(c, "tokenId and contractAddress are required")
		return
	}

	detail, err := h.engine.Listing(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Get NFT by ID", detail))
}

// ListAssets retrieves all assets
func (h *handler) ListAssets(c *gin.Context) {
	assets, err := h.engine.Assets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Get all NFTs", assets))
}

// ListOwned retrieves the caller's holdings
func (h *handler) ListOwned(c *gin.Context) {
	owned, err := h.engine.OwnedAssets(c.Request.Context(), middleware.WalletAddress(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Get owned NFTs", owned))
}

// ListCreated retrieves the assets minted by the caller
func (h *handler) ListCreated(c *gin.Context) {
	assets, err := h.engine.CreatedAssets(c.Request.Context(), middleware.WalletAddress(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Get created NFTs", assets))
}

// ListOnSale retrieves the caller's lots currently on sale
func (h *handler) ListOnSale(c *gin.Context) {
	listings, err := h.engine.OnSaleAssets(c.Request.Context(), middleware.WalletAddress(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Get NFTs on sale", listings))
}

// GetBuyHistory retrieves the caller's purchase history
func (h *handler) GetBuyHistory(c *gin.Context) {
	history, err := h.engine.BuyHistory(c.Request.Context(), middleware.WalletAddress(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("Get buy history", history))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
