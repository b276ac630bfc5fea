package helpers

import "time"

// Request/Response DTOs
type PlaceBidRequest struct {
	UserID string  `json:"user_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type CreateAuctionRequest struct {
	Title     string    `json:"title" binding:"required"`
	OwnerID   string    `json:"owner_id" binding:"required"`
	ProductID string    `json:"product_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
}

type ListAuctionsQuery struct {
	Page     int `form:"page" binding:"omitempty,min=0"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type BidView struct {
	BidID           string  `json:"bid_id"`
	AuctionKey      string  `json:"auction_key"`
	UserID          string  `json:"user_id"`
	UserDisplayName string  `json:"user_display_name,omitempty"`
	Amount          float64 `json:"amount"`
	Timestamp       string  `json:"timestamp"`
}

type CategoryView struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

type ProductView struct {
	ProductID   string         `json:"product_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	Categories  []CategoryView `json:"categories"`
}

type AuctionView struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	Slug       string       `json:"slug"`
	OwnerID    string       `json:"owner_id"`
	OwnerName  string       `json:"owner_name,omitempty"`
	Product    *ProductView `json:"product,omitempty"`
	StartTime  string       `json:"start_time"`
	EndTime    string       `json:"end_time"`
	State      string       `json:"state"`
	BidCount   int          `json:"bid_count"`
	WinningBid *BidView     `json:"winning_bid,omitempty"`
}

type BidsView struct {
	Auction AuctionView `json:"auction"`
	Bids    []BidView   `json:"bids"`
}
