package helpers

import (
	"regexp"
	"strings"
	"time"

	model "ebuy/internal/models"
	"ebuy/utils"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// ToBidView converts a ledger bid; bidder may be nil
func ToBidView(bid model.Bid, bidder *model.User) BidView {
	view := BidView{
		BidID:      bid.BidID,
		AuctionKey: bid.AuctionKey,
		UserID:     bid.UserID,
		Amount:     bid.Amount.Float64(),
		Timestamp:  bid.Timestamp.UTC().Format(time.RFC3339),
	}
	if bidder != nil {
		view.UserDisplayName = bidder.Name()
	}
	return view
}

// ToPlacedBidViews converts bids in the order given
func ToPlacedBidViews(bids []model.PlacedBid) []BidView {
	views := make([]BidView, 0, len(bids))
	for _, b := range bids {
		views = append(views, ToBidView(b.Bid, b.Bidder))
	}
	return views
}

func ToProductView(p *model.Product) *ProductView {
	if p == nil {
		return nil
	}
	categories := make([]CategoryView, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, CategoryView{CategoryID: c.CategoryID, Name: c.Name})
	}
	return &ProductView{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Categories:  categories,
	}
}

// ToAuctionView converts an auction, deriving its state from now
func ToAuctionView(a *model.Auction, now time.Time) AuctionView {
	view := AuctionView{
		Key:       a.Key,
		Title:     a.Title,
		Slug:      Slug(a.Key, a.Title),
		OwnerID:   a.OwnerID,
		Product:   ToProductView(a.Product),
		StartTime: a.StartTime.UTC().Format(time.RFC3339),
		EndTime:   a.EndTime.UTC().Format(time.RFC3339),
		State:     a.State(now).String(),
		BidCount:  a.BidCount(),
	}
	if a.Owner != nil {
		view.OwnerName = a.Owner.Name()
	}
	if winner, ok := a.CurrentWinningBid(); ok {
		w := ToBidView(winner, nil)
		view.WinningBid = &w
	}
	return view
}

func ToAuctionViews(auctions []*model.Auction, now time.Time) []AuctionView {
	views := make([]AuctionView, 0, len(auctions))
	for _, a := range auctions {
		views = append(views, ToAuctionView(a, now))
	}
	return views
}

// Slug builds the "key-title" path segment used in auction links
func Slug(key, title string) string {
	t := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if t == "" {
		return key
	}
	return key + "-" + t
}

// KeyFromSlug extracts the auction key from a "key" or "key-title" segment.
// Keys are UUIDs, which contain dashes themselves.
func KeyFromSlug(slug string) string {
	if len(slug) > utils.IDLength && slug[utils.IDLength] == '-' && utils.IsID(slug[:utils.IDLength]) {
		return slug[:utils.IDLength]
	}
	return slug
}
