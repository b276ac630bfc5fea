package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	bidding "ebuy/internal/biddingService"
	model "ebuy/internal/models"
	"ebuy/services/bidding/helpers"
	"ebuy/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize      = 25
	idempotencyKeyHeader = "Idempotency-Key"
)

type BiddingServiceInterface interface {
	Now() time.Time
	CreateAuction(ctx context.Context, in bidding.CreateAuctionInput) (*model.Auction, error)
	ListAuctions(ctx context.Context, page, pageSize int) ([]*model.Auction, error)
	GetAuction(ctx context.Context, key string) (*model.Auction, error)
	PlaceBid(ctx context.Context, in bidding.PlaceBidInput) (model.Bid, error)
	GetBids(ctx context.Context, key string) ([]model.PlacedBid, error)
	GetAuctionsByUser(ctx context.Context, userID string) ([]*model.Auction, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// respondError maps err, writes the error envelope and logs it
func respondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+message, fields)
		return
	}
	utils.Warn(handlerName+": "+message, fields)
}

// ListAuctionsHandler handles GET /auctions
func (h *BiddingHandler) ListAuctionsHandler(c *gin.Context) {
	var q helpers.ListAuctionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		helpers.HandleBindError(c, "ListAuctionsHandler", err)
		return
	}
	if q.PageSize == 0 {
		q.PageSize = defaultPageSize
	}

	auctions, err := h.service.ListAuctions(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		respondError(c, "ListAuctionsHandler", err, map[string]any{"page": q.Page, "page_size": q.PageSize})
		return
	}

	views := helpers.ToAuctionViews(auctions, h.service.Now())
	utils.JSONPage(c, http.StatusOK, views, q.Page, q.PageSize, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"page":  q.Page,
		"count": len(views),
	})
}

// CreateAuctionHandler handles POST /auctions
func (h *BiddingHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction, err := h.service.CreateAuction(c.Request.Context(), bidding.CreateAuctionInput{
		Title:     req.Title,
		OwnerID:   req.OwnerID,
		ProductID: req.ProductID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		respondError(c, "CreateAuctionHandler", err, map[string]any{
			"owner_id":   req.OwnerID,
			"product_id": req.ProductID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToAuctionView(auction, h.service.Now()), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_key": auction.Key,
		"owner_id":    auction.OwnerID,
	})
}

// GetAuctionHandler handles GET /auctions/:slug
func (h *BiddingHandler) GetAuctionHandler(c *gin.Context) {
	key := helpers.KeyFromSlug(c.Param("slug"))
	auction, err := h.service.GetAuction(c.Request.Context(), key)
	if err != nil {
		respondError(c, "GetAuctionHandler", err, map[string]any{"auction_key": key})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionView(auction, h.service.Now()), "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{"auction_key": key})
}

// GetBidsHandler handles GET /auctions/:slug/bids
func (h *BiddingHandler) GetBidsHandler(c *gin.Context) {
	key := helpers.KeyFromSlug(c.Param("slug"))
	ctx := c.Request.Context()

	auction, err := h.service.GetAuction(ctx, key)
	if err != nil {
		respondError(c, "GetBidsHandler", err, map[string]any{"auction_key": key})
		return
	}

	bids, err := h.service.GetBids(ctx, key)
	if err != nil {
		respondError(c, "GetBidsHandler", err, map[string]any{"auction_key": key})
		return
	}

	resp := helpers.BidsView{
		Auction: helpers.ToAuctionView(auction, h.service.Now()),
		Bids:    helpers.ToPlacedBidViews(bids),
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_key": key,
		"count":       len(resp.Bids),
	})
}

// PlaceBidHandler handles POST /auctions/:slug/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	key := helpers.KeyFromSlug(c.Param("slug"))

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), bidding.PlaceBidInput{
		AuctionKey:     key,
		UserID:         req.UserID,
		Amount:         req.Amount,
		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		respondError(c, "PlaceBidHandler", err, map[string]any{
			"auction_key": key,
			"user_id":     req.UserID,
			"amount":      req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidView(bid, nil), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":      bid.BidID,
		"auction_key": bid.AuctionKey,
		"user_id":     bid.UserID,
		"amount":      bid.Amount.String(),
	})
}

// GetAuctionsByUserHandler handles GET /users/:user_id/auctions
func (h *BiddingHandler) GetAuctionsByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	auctions, err := h.service.GetAuctionsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "GetAuctionsByUserHandler", err, map[string]any{"user_id": userID})
		return
	}

	views := helpers.ToAuctionViews(auctions, h.service.Now())
	utils.JSONResponse(c, http.StatusOK, views, "auctions retrieved successfully")
	helpers.LogSuccess("GetAuctionsByUserHandler", "auctions retrieved successfully", map[string]any{
		"user_id":        userID,
		"auctions_count": len(views),
	})
}
