package fixtures

import (
	"context"
	"ebuy/internal/models"
	"ebuy/internal/repository"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Test Sequence hands out unique numbers under concurrency
func TestSequence(t *testing.T) {
	t.Parallel()

	seq := NewSequence()
	seen := make(map[int64]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := seq.Next()
			mu.Lock()
			seen[n] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, 100)
	require.Equal(t, int64(100), seq.Next())

	// separate sequences do not share state
	require.Equal(t, int64(0), NewSequence().Next())
}

// Test each generator produces valid entities
func TestGenerators(t *testing.T) {
	t.Parallel()

	seq := NewSequence()

	u := UserGenerator{}.GenerateValid(seq)
	require.NotEmpty(t, u.UserID)
	require.Equal(t, "user_0@email.com", u.EmailAddress)
	require.Equal(t, "Test User #0", u.FullName)

	c := CategoryGenerator{}.GenerateValid(seq)
	require.Equal(t, "Test Category #1", c.Name)

	p := ProductGenerator{}.GenerateValid(seq)
	require.Len(t, p.Categories, 2)
	require.Equal(t, []string{p.Categories[0].CategoryID, p.Categories[1].CategoryID}, p.CategoryIDs)
	require.Equal(t, "http://www.test.com/image.png", p.ImageURL)

	now := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	a := AuctionGenerator{Now: func() time.Time { return now }}.GenerateValid(seq)
	require.True(t, a.StartTime.Equal(now))
	require.True(t, a.EndTime.Equal(now.Add(AuctionLength)))
	require.Equal(t, a.Owner.UserID, a.OwnerID)
	require.Equal(t, a.Product.ProductID, a.ProductID)
	require.True(t, a.IsOpen(now))
	require.Equal(t, 0, a.BidCount())
}

// Test Seed stores full auction graphs that load back with relations
func TestSeed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repos := repository.NewMemoryRepositories()
	seq := NewSequence()

	seeded, err := Seed(ctx, repos, seq, AuctionGenerator{}, 3)
	require.NoError(t, err)
	require.Len(t, seeded, 3)

	for _, a := range seeded {
		got, err := repos.Auctions.Single(ctx, a.Key, repository.RelOwner, repository.RelProduct)
		require.NoError(t, err)
		require.Equal(t, a.Owner.UserID, got.Owner.UserID)
		require.Equal(t, a.Product.Name, got.Product.Name)
		require.Len(t, got.Product.Categories, 2)
	}

	users, err := SeedUsers(ctx, repos, seq, 2)
	require.NoError(t, err)
	require.Len(t, users, 2)

	all, err := repos.Users.Query(ctx, func(*models.User) bool { return true })
	require.NoError(t, err)
	require.Len(t, all, 5)
}
