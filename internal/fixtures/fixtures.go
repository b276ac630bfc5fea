// Package fixtures generates valid entities for seeding and tests.
//
// Each entity type has its own generator; callers pick the generator they
// need. Ids come from a Sequence the caller owns, so two test runs never
// share counter state.
package fixtures

import (
	"context"
	"ebuy/internal/models"
	"ebuy/internal/repository"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuctionLength is how long a generated auction stays open
const AuctionLength = 7 * 24 * time.Hour

// Sequence is a counter owned by whoever generates the data
type Sequence struct {
	mu   sync.Mutex
	next int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next number, starting at 0
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.next
	s.next++
	return n
}

// Generator produces a valid entity of one type
type Generator[T models.Entity] interface {
	GenerateValid(seq *Sequence) T
}

type UserGenerator struct{}

func (UserGenerator) GenerateValid(seq *Sequence) *models.User {
	id := seq.Next()
	return &models.User{
		UserID:       uuid.NewString(),
		EmailAddress: fmt.Sprintf("user_%d@email.com", id),
		FullName:     fmt.Sprintf("Test User #%d", id),
		DisplayName:  fmt.Sprintf("user_%d", id),
	}
}

type CategoryGenerator struct{}

func (CategoryGenerator) GenerateValid(seq *Sequence) *models.Category {
	return &models.Category{
		CategoryID: uuid.NewString(),
		Name:       fmt.Sprintf("Test Category #%d", seq.Next()),
	}
}

// ProductGenerator builds a product in two fresh categories
type ProductGenerator struct {
	Categories Generator[*models.Category]
}

func (g ProductGenerator) GenerateValid(seq *Sequence) *models.Product {
	categories := g.Categories
	if categories == nil {
		categories = CategoryGenerator{}
	}

	first, second := categories.GenerateValid(seq), categories.GenerateValid(seq)
	id := seq.Next()
	return &models.Product{
		ProductID:   uuid.NewString(),
		Name:        fmt.Sprintf("Test product %d", id),
		Description: fmt.Sprintf("Test product %d", id),
		ImageURL:    "http://www.test.com/image.png",
		CategoryIDs: []string{first.CategoryID, second.CategoryID},
		Categories:  []*models.Category{first, second},
	}
}

// AuctionGenerator builds an auction starting now and running for
// AuctionLength, with a fresh owner and product attached
type AuctionGenerator struct {
	Users    Generator[*models.User]
	Products Generator[*models.Product]
	Now      func() time.Time
}

func (g AuctionGenerator) GenerateValid(seq *Sequence) *models.Auction {
	users, products, now := g.Users, g.Products, g.Now
	if users == nil {
		users = UserGenerator{}
	}
	if products == nil {
		products = ProductGenerator{}
	}
	if now == nil {
		now = time.Now
	}

	owner := users.GenerateValid(seq)
	product := products.GenerateValid(seq)
	start := now().UTC()

	auction, err := models.NewAuction(uuid.NewString(), product.Name, owner.UserID, product.ProductID, start, start.Add(AuctionLength))
	if err != nil {
		// the inputs above always satisfy NewAuction
		panic(fmt.Sprintf("fixtures: generated auction is invalid: %v", err))
	}
	auction.Owner = owner
	auction.Product = product
	return auction
}

// Seed generates n auctions and stores them with their owners, products
// and categories
func Seed(ctx context.Context, repos *repository.Repositories, seq *Sequence, gen Generator[*models.Auction], n int) ([]*models.Auction, error) {
	auctions := make([]*models.Auction, 0, n)
	for i := 0; i < n; i++ {
		a := gen.GenerateValid(seq)

		if a.Owner != nil {
			if err := repos.Users.Save(ctx, a.Owner); err != nil {
				return nil, fmt.Errorf("seed owner %s: %w", a.Owner.UserID, err)
			}
		}
		if a.Product != nil {
			for _, c := range a.Product.Categories {
				if err := repos.Categories.Save(ctx, c); err != nil {
					return nil, fmt.Errorf("seed category %s: %w", c.CategoryID, err)
				}
			}
			if err := repos.Products.Save(ctx, a.Product); err != nil {
				return nil, fmt.Errorf("seed product %s: %w", a.Product.ProductID, err)
			}
		}
		if err := repos.Auctions.Save(ctx, a); err != nil {
			return nil, fmt.Errorf("seed auction %s: %w", a.Key, err)
		}

		auctions = append(auctions, a)
	}
	return auctions, nil
}

// SeedUsers generates and stores n users
func SeedUsers(ctx context.Context, repos *repository.Repositories, seq *Sequence, n int) ([]*models.User, error) {
	gen := UserGenerator{}
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		u := gen.GenerateValid(seq)
		if err := repos.Users.Save(ctx, u); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", u.UserID, err)
		}
		users = append(users, u)
	}
	return users, nil
}
