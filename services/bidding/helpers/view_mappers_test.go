package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"ebuy/internal/biddingerrors"
	model "ebuy/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSlugRoundTrip(t *testing.T) {
	key := uuid.NewString()

	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"plain", "Vintage Camera", key + "-vintage-camera"},
		{"punctuation", "  Mint!! (boxed) -- 1990 ", key + "-mint-boxed-1990"},
		{"no_usable_chars", "***", key},
		{"empty", "", key},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			slug := Slug(key, tc.title)
			require.Equal(t, tc.expected, slug)
			require.Equal(t, key, KeyFromSlug(slug))
		})
	}
}

func TestKeyFromSlugNonUUID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "auction1", KeyFromSlug("auction1"))
	// 36 chars followed by a dash but not a UUID prefix
	notUUID := "abcdefghijklmnopqrstuvwxyz0123456789-title"
	require.Equal(t, notUUID, KeyFromSlug(notUUID))
}

func TestToAuctionView(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a, err := model.NewAuction(uuid.NewString(), "Old Radio", "owner1", "product1", start, start.Add(48*time.Hour))
	require.NoError(t, err)

	view := ToAuctionView(a, start.Add(-time.Minute))
	require.Equal(t, "pending", view.State)
	require.Nil(t, view.WinningBid)
	require.Nil(t, view.Product)
	require.Empty(t, view.OwnerName)

	_, err = a.PostBid(model.User{UserID: "user1"}, 5, start.Add(time.Hour))
	require.NoError(t, err)
	_, err = a.PostBid(model.User{UserID: "user2"}, 7.25, start.Add(2*time.Hour))
	require.NoError(t, err)
	a.Owner = &model.User{UserID: "owner1", FullName: "Owner One"}

	view = ToAuctionView(a, start.Add(3*time.Hour))
	require.Equal(t, "open", view.State)
	require.Equal(t, 2, view.BidCount)
	require.Equal(t, "Owner One", view.OwnerName)
	require.NotNil(t, view.WinningBid)
	require.Equal(t, "user2", view.WinningBid.UserID)
	require.Equal(t, 7.25, view.WinningBid.Amount)
	require.Equal(t, "2026-03-01T11:00:00Z", view.WinningBid.Timestamp)

	view = ToAuctionView(a, start.Add(48*time.Hour+time.Second))
	require.Equal(t, "closed", view.State)
}

func TestToPlacedBidViewsKeepsOrder(t *testing.T) {
	t.Parallel()

	m1, err := model.NewMoney(1)
	require.NoError(t, err)
	m2, err := model.NewMoney(2)
	require.NoError(t, err)

	views := ToPlacedBidViews([]model.PlacedBid{
		{Bid: model.Bid{BidID: "b2", UserID: "u2", Amount: m2}, Bidder: &model.User{UserID: "u2", DisplayName: "Two"}},
		{Bid: model.Bid{BidID: "b1", UserID: "u1", Amount: m1}},
	})
	require.Len(t, views, 2)
	require.Equal(t, "b2", views[0].BidID)
	require.Equal(t, "Two", views[0].UserDisplayName)
	require.Equal(t, "b1", views[1].BidID)
	require.Empty(t, views[1].UserDisplayName)

	require.Empty(t, ToPlacedBidViews(nil))
}

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{biddingerrors.ErrAuctionNotFound, http.StatusNotFound, "auction not found"},
		{biddingerrors.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{biddingerrors.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{biddingerrors.ErrInvalidAmount, http.StatusBadRequest, "invalid bid amount"},
		{biddingerrors.ErrInvalidBid, http.StatusBadRequest, "invalid bid details"},
		{biddingerrors.ErrInvalidAuction, http.StatusBadRequest, "invalid auction details"},
		{biddingerrors.ErrInvalidPage, http.StatusBadRequest, "invalid page request"},
		{biddingerrors.ErrAuctionNotStarted, http.StatusConflict, "auction has not started"},
		{biddingerrors.ErrAuctionEnded, http.StatusConflict, "auction has ended"},
		{biddingerrors.ErrBidTooLow, http.StatusConflict, "bid amount too low"},
		{biddingerrors.ErrDuplicateRequest, http.StatusConflict, "duplicate bid request"},
		{biddingerrors.ErrVersionConflict, http.StatusConflict, "auction was updated concurrently, retry"},
		{fmt.Errorf("wrapped: %w", biddingerrors.ErrBidTooLow), http.StatusConflict, "bid amount too low"},
		{errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.err.Error(), func(t *testing.T) {
			t.Parallel()

			status, msg := MapErrorToHTTP(tc.err)
			require.Equal(t, tc.expectedStatus, status)
			require.Equal(t, tc.expectedMsg, msg)
		})
	}
}
