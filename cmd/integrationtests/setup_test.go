package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	bidding "ebuy/internal/biddingService"
	"ebuy/internal/fixtures"
	model "ebuy/internal/models"
	"ebuy/internal/repository"
	"ebuy/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// T0 is when every seeded auction opens
var T0 = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// testClock is shared by the service under test and the test itself
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// TestServer is a router over seeded in-memory repositories
type TestServer struct {
	Router   *gin.Engine
	Clock    *testClock
	Repos    *repository.Repositories
	Auctions []*model.Auction
	Users    []*model.User
}

// SetupTestServer seeds auctions open from T0 for a week plus bidders,
// and builds the full router around them.
func SetupTestServer(t *testing.T, auctions, users int) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	repos := repository.NewMemoryRepositories()
	clock := &testClock{now: T0}
	seq := fixtures.NewSequence()

	seededAuctions, err := fixtures.Seed(ctx, repos, seq, fixtures.AuctionGenerator{Now: clock.Now}, auctions)
	require.NoError(t, err)
	seededUsers, err := fixtures.SeedUsers(ctx, repos, seq, users)
	require.NoError(t, err)

	service := bidding.NewBiddingService(repos.Auctions, repos.Users, repos.Products, bidding.WithClock(clock.Now))

	return &TestServer{
		Router:   server.SetupRouter(service),
		Clock:    clock,
		Repos:    repos,
		Auctions: seededAuctions,
		Users:    seededUsers,
	}
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the response envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any, headers ...string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// PlaceBid posts a bid at the given time and returns the envelope
func (s *TestServer) PlaceBid(t *testing.T, slug string, userID string, amount float64, at time.Time, headers ...string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	s.Clock.Set(at)
	return ExecuteRequestAndParse(t, s.Router, "POST", "/auctions/"+slug+"/bids", map[string]any{
		"user_id": userID,
		"amount":  amount,
	}, headers...)
}
