package models

import (
	"ebuy/internal/biddingerrors"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuctionState describes where an auction is in its bidding window
type AuctionState int

const (
	AuctionPending AuctionState = iota
	AuctionOpen
	AuctionClosed
)

func (s AuctionState) String() string {
	switch s {
	case AuctionPending:
		return "pending"
	case AuctionOpen:
		return "open"
	case AuctionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Bid represents an accepted bid in an auction ledger. Bids are created by
// Auction.PostBid and never modified afterwards.
type Bid struct {
	BidID      string    `json:"bid_id"`
	AuctionKey string    `json:"auction_key"`
	UserID     string    `json:"user_id"`
	Amount     Money     `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// Auction owns the ordered bid ledger for one product. Bidding state is
// guarded by mu; the schedule and references are fixed at creation.
type Auction struct {
	Key       string
	Title     string
	OwnerID   string
	ProductID string
	StartTime time.Time
	EndTime   time.Time

	// Owner and Product are filled only when the matching relation is loaded
	Owner   *User
	Product *Product

	mu      sync.RWMutex
	version int64
	bids    []Bid
}

// NewAuction creates an auction with an empty ledger
func NewAuction(key, title, ownerID, productID string, start, end time.Time) (*Auction, error) {
	if key == "" || ownerID == "" || productID == "" {
		return nil, fmt.Errorf("%w: key, owner and product are required", biddingerrors.ErrInvalidAuction)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end time %s is not after start time %s",
			biddingerrors.ErrInvalidAuction, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	return &Auction{
		Key:       key,
		Title:     title,
		OwnerID:   ownerID,
		ProductID: productID,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
	}, nil
}

func (a *Auction) EntityKey() string { return a.Key }

func (a *Auction) EntityVersion() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.version
}

func (a *Auction) SetEntityVersion(v int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.version = v
}

// IsOpen reports whether now falls inside the inclusive bidding window
func (a *Auction) IsOpen(now time.Time) bool {
	return a.State(now) == AuctionOpen
}

// State derives the bidding state from the caller's clock
func (a *Auction) State(now time.Time) AuctionState {
	switch {
	case now.Before(a.StartTime):
		return AuctionPending
	case now.After(a.EndTime):
		return AuctionClosed
	default:
		return AuctionOpen
	}
}

// PostBid validates a bid against the window and the current winner and
// appends it to the ledger. The ledger is left untouched on any error.
func (a *Auction) PostBid(bidder User, amount float64, now time.Time) (Bid, error) {
	if bidder.UserID == "" {
		return Bid{}, fmt.Errorf("auction %s: %w - missing bidder", a.Key, biddingerrors.ErrInvalidBid)
	}

	switch a.State(now) {
	case AuctionPending:
		return Bid{}, fmt.Errorf("auction %s: %w - opens at %s", a.Key, biddingerrors.ErrAuctionNotStarted, a.StartTime.Format(time.RFC3339))
	case AuctionClosed:
		return Bid{}, fmt.Errorf("auction %s: %w - closed at %s", a.Key, biddingerrors.ErrAuctionEnded, a.EndTime.Format(time.RFC3339))
	}

	money, err := NewMoney(amount)
	if err != nil {
		return Bid{}, fmt.Errorf("auction %s: %w", a.Key, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	ts := now.UTC()
	if n := len(a.bids); n > 0 {
		last := a.bids[n-1]
		if !money.GreaterThan(last.Amount) {
			return Bid{}, fmt.Errorf("auction %s: %w - current highest bid is %s", a.Key, biddingerrors.ErrBidTooLow, last.Amount)
		}
		// keep the ledger chronological even if the caller's clock steps back
		if ts.Before(last.Timestamp) {
			ts = last.Timestamp
		}
	}

	bid := Bid{
		BidID:      uuid.NewString(),
		AuctionKey: a.Key,
		UserID:     bidder.UserID,
		Amount:     money,
		Timestamp:  ts,
	}
	a.bids = append(a.bids, bid)

	return bid, nil
}

// CurrentWinningBid returns the last accepted bid, which is also the highest
func (a *Auction) CurrentWinningBid() (Bid, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if len(a.bids) == 0 {
		return Bid{}, false
	}
	return a.bids[len(a.bids)-1], true
}

// Bids returns a snapshot of the ledger in acceptance order
func (a *Auction) Bids() []Bid {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Bid(nil), a.bids...)
}

func (a *Auction) BidCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.bids)
}

// HasBidFrom reports whether the user appears in the ledger
func (a *Auction) HasBidFrom(userID string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, b := range a.bids {
		if b.UserID == userID {
			return true
		}
	}
	return false
}

// auctionRecord is the persisted form of an Auction
type auctionRecord struct {
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	OwnerID   string    `json:"owner_id"`
	ProductID string    `json:"product_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Version   int64     `json:"version"`
	Bids      []Bid     `json:"bids"`
}

func (a *Auction) MarshalJSON() ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return json.Marshal(auctionRecord{
		Key:       a.Key,
		Title:     a.Title,
		OwnerID:   a.OwnerID,
		ProductID: a.ProductID,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Version:   a.version,
		Bids:      a.bids,
	})
}

// UnmarshalJSON restores a persisted auction, rejecting records that break
// the ledger invariants.
func (a *Auction) UnmarshalJSON(data []byte) error {
	var rec auctionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	if !rec.EndTime.After(rec.StartTime) {
		return fmt.Errorf("auction %s: %w - end time is not after start time", rec.Key, biddingerrors.ErrInvalidAuction)
	}
	for i, b := range rec.Bids {
		if b.AuctionKey != rec.Key {
			return fmt.Errorf("auction %s: %w - bid %s belongs to auction %s", rec.Key, biddingerrors.ErrInvalidAuction, b.BidID, b.AuctionKey)
		}
		if i > 0 && !b.Amount.GreaterThan(rec.Bids[i-1].Amount) {
			return fmt.Errorf("auction %s: %w - ledger amounts are not increasing", rec.Key, biddingerrors.ErrInvalidAuction)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.Key = rec.Key
	a.Title = rec.Title
	a.OwnerID = rec.OwnerID
	a.ProductID = rec.ProductID
	a.StartTime = rec.StartTime
	a.EndTime = rec.EndTime
	a.version = rec.Version
	a.bids = rec.Bids
	return nil
}
