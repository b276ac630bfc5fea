package biddingerrors

import "errors"

// Repository-level errors
var (
	ErrNotFound         = errors.New("entity not found")
	ErrEmptyKey         = errors.New("entity key is empty")
	ErrVersionConflict  = errors.New("entity version conflict")
	ErrUnknownRelation  = errors.New("unknown relation")
	ErrInvalidPage      = errors.New("invalid page request")
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateRequest = errors.New("duplicate request")
)

// Bidding rule violations reported by the auction ledger
var (
	ErrAuctionNotStarted = errors.New("auction has not started")
	ErrAuctionEnded      = errors.New("auction has ended")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrInvalidAmount     = errors.New("invalid bid amount")
)

// business logic errors
var (
	ErrInvalidBid     = errors.New("invalid bid")
	ErrInvalidAuction = errors.New("invalid auction")
)
