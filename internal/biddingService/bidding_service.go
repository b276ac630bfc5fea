package bidding

import (
	"context"
	"ebuy/internal/biddingerrors"
	"ebuy/internal/idempotency"
	"ebuy/internal/models"
	"ebuy/internal/repository"
	"ebuy/utils"
	"errors"
	"fmt"
	"time"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	maxSaveAttempts       = 2
)

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	auctions repository.Repository[*models.Auction]
	users    repository.Repository[*models.User]
	products repository.Repository[*models.Product]
	requests idempotency.Store
	now      func() time.Time
	locks    *keyedMutex
}

// Option configures a BiddingService
type Option func(*BiddingService)

// WithClock replaces the wall clock used to timestamp and validate bids
func WithClock(now func() time.Time) Option {
	return func(s *BiddingService) { s.now = now }
}

// WithIdempotencyStore replaces the in-memory duplicate request guard
func WithIdempotencyStore(store idempotency.Store) Option {
	return func(s *BiddingService) { s.requests = store }
}

// CreateAuctionInput carries the fields needed to open an auction
type CreateAuctionInput struct {
	Title     string
	OwnerID   string
	ProductID string
	StartTime time.Time
	EndTime   time.Time
}

// PlaceBidInput carries a bid request; IdempotencyKey is optional
type PlaceBidInput struct {
	AuctionKey     string
	UserID         string
	Amount         float64
	IdempotencyKey string
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(
	auctions repository.Repository[*models.Auction],
	users repository.Repository[*models.User],
	products repository.Repository[*models.Product],
	opts ...Option,
) *BiddingService {
	s := &BiddingService{
		auctions: auctions,
		users:    users,
		products: products,
		requests: idempotency.NewMemoryStore(defaultIdempotencyTTL),
		now:      time.Now,
		locks:    newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock, used to derive auction state for display
func (s *BiddingService) Now() time.Time {
	return s.now().UTC()
}

// CreateAuction validates the owner and product and stores a new auction
func (s *BiddingService) CreateAuction(ctx context.Context, in CreateAuctionInput) (*models.Auction, error) {
	if in.OwnerID == "" || in.ProductID == "" {
		return nil, fmt.Errorf("service: %w - missing ownerID or productID", biddingerrors.ErrInvalidAuction)
	}

	if _, err := s.users.Single(ctx, in.OwnerID); err != nil {
		return nil, fmt.Errorf("service: owner %s: %w", in.OwnerID, repository.NotFoundAs(err, biddingerrors.ErrUserNotFound))
	}
	if _, err := s.products.Single(ctx, in.ProductID); err != nil {
		return nil, fmt.Errorf("service: product %s: %w", in.ProductID, repository.NotFoundAs(err, biddingerrors.ErrProductNotFound))
	}

	auction, err := models.NewAuction(utils.GenerateID(), in.Title, in.OwnerID, in.ProductID, in.StartTime, in.EndTime)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	if err := s.auctions.Save(ctx, auction); err != nil {
		return nil, fmt.Errorf("service: failed to save auction %s: %w", auction.Key, err)
	}

	return auction, nil
}

// ListAuctions returns one page of auctions with owner and product loaded
func (s *BiddingService) ListAuctions(ctx context.Context, page, pageSize int) ([]*models.Auction, error) {
	auctions, err := s.auctions.All(ctx, page, pageSize, repository.RelOwner, repository.RelProduct)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions page %d: %w", page, err)
	}
	return auctions, nil
}

// GetAuction returns one auction with owner and product loaded
func (s *BiddingService) GetAuction(ctx context.Context, key string) (*models.Auction, error) {
	if key == "" {
		return nil, fmt.Errorf("service: %w - empty auction key", biddingerrors.ErrInvalidBid)
	}

	auction, err := s.auctions.Single(ctx, key, repository.RelOwner, repository.RelProduct)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auction %s: %w", key, repository.NotFoundAs(err, biddingerrors.ErrAuctionNotFound))
	}
	return auction, nil
}

// PlaceBid validates and records a user's bid on an auction. Bids on the
// same auction are serialized here; the repository version check covers
// writers in other processes.
func (s *BiddingService) PlaceBid(ctx context.Context, in PlaceBidInput) (bid models.Bid, err error) {
	if in.AuctionKey == "" || in.UserID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing auctionKey or userID", biddingerrors.ErrInvalidBid)
	}

	bidder, err := s.users.Single(ctx, in.UserID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: bidder %s: %w", in.UserID, repository.NotFoundAs(err, biddingerrors.ErrUserNotFound))
	}

	if in.IdempotencyKey != "" {
		requestKey := in.AuctionKey + ":" + in.IdempotencyKey
		ok, reserveErr := s.requests.Reserve(ctx, requestKey)
		if reserveErr != nil {
			return models.Bid{}, fmt.Errorf("service: failed to reserve request key: %w", reserveErr)
		}
		if !ok {
			return models.Bid{}, fmt.Errorf("service: %w - key %s already used", biddingerrors.ErrDuplicateRequest, in.IdempotencyKey)
		}
		defer func() {
			if err == nil {
				return
			}
			if releaseErr := s.requests.Release(context.WithoutCancel(ctx), requestKey); releaseErr != nil {
				utils.Warn("PlaceBid: failed to release request key", map[string]any{
					"auction_key": in.AuctionKey,
					"error":       releaseErr.Error(),
				})
			}
		}()
	}

	unlock := s.locks.Lock(in.AuctionKey)
	defer unlock()

	for attempt := 1; ; attempt++ {
		bid, err = s.postBid(ctx, in.AuctionKey, *bidder, in.Amount)
		if err == nil || !errors.Is(err, biddingerrors.ErrVersionConflict) || attempt == maxSaveAttempts {
			return bid, err
		}
		utils.Warn("PlaceBid: version conflict, retrying", map[string]any{
			"auction_key": in.AuctionKey,
			"attempt":     attempt,
		})
	}
}

func (s *BiddingService) postBid(ctx context.Context, key string, bidder models.User, amount float64) (models.Bid, error) {
	auction, err := s.auctions.Single(ctx, key)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to load auction %s: %w", key, repository.NotFoundAs(err, biddingerrors.ErrAuctionNotFound))
	}

	bid, err := auction.PostBid(bidder, amount, s.now())
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}

	if err := s.auctions.Save(ctx, auction); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid on auction %s by user %s: %w", key, bidder.UserID, err)
	}
	return bid, nil
}

// GetBids returns the auction's bids newest first, with bidders loaded
func (s *BiddingService) GetBids(ctx context.Context, key string) ([]models.PlacedBid, error) {
	if key == "" {
		return nil, fmt.Errorf("service: %w - empty auction key", biddingerrors.ErrInvalidBid)
	}

	auction, err := s.auctions.Single(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", key, repository.NotFoundAs(err, biddingerrors.ErrAuctionNotFound))
	}

	ledger := auction.Bids()
	bidders := make(map[string]*models.User)
	result := make([]models.PlacedBid, 0, len(ledger))

	for i := len(ledger) - 1; i >= 0; i-- {
		b := ledger[i]
		bidder, seen := bidders[b.UserID]
		if !seen {
			bidder, err = s.users.Single(ctx, b.UserID)
			if err != nil && !errors.Is(err, biddingerrors.ErrNotFound) {
				return nil, fmt.Errorf("service: failed to load bidder %s: %w", b.UserID, err)
			}
			bidders[b.UserID] = bidder
		}
		result = append(result, models.PlacedBid{Bid: b, Bidder: bidder})
	}

	return result, nil
}

// GetAuctionsByUser returns all auctions a user has placed bids on
func (s *BiddingService) GetAuctionsByUser(ctx context.Context, userID string) ([]*models.Auction, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", biddingerrors.ErrInvalidBid)
	}

	auctions, err := s.auctions.Query(ctx, func(a *models.Auction) bool {
		return a.HasBidFrom(userID)
	}, repository.RelProduct)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auctions for user %s: %w", userID, err)
	}

	return auctions, nil
}
