package repository

import (
	"ebuy/internal/models"
	"fmt"
)

// Bucket names used by the BoltDB repositories
const (
	auctionsBucket   = "auctions"
	usersBucket      = "users"
	productsBucket   = "products"
	categoriesBucket = "categories"
)

// Repositories bundles one repository per entity with relations wired
type Repositories struct {
	Auctions   Repository[*models.Auction]
	Users      Repository[*models.User]
	Products   Repository[*models.Product]
	Categories Repository[*models.Category]
}

// NewMemoryRepositories builds in-memory repositories
func NewMemoryRepositories() *Repositories {
	categories := NewMemoryRepo[*models.Category]()
	products := NewMemoryRepo(ProductRelations(categories)...)
	users := NewMemoryRepo[*models.User]()
	auctions := NewMemoryRepo(AuctionRelations(users, products)...)

	return &Repositories{
		Auctions:   auctions,
		Users:      users,
		Products:   products,
		Categories: categories,
	}
}

// NewBoltRepositories builds repositories over one BoltDB file
func NewBoltRepositories(db *BoltDB) (*Repositories, error) {
	categories, err := NewBoltRepo[*models.Category](db, categoriesBucket)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	products, err := NewBoltRepo(db, productsBucket, ProductRelations(categories)...)
	if err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}
	users, err := NewBoltRepo[*models.User](db, usersBucket)
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	auctions, err := NewBoltRepo(db, auctionsBucket, AuctionRelations(users, products)...)
	if err != nil {
		return nil, fmt.Errorf("auctions: %w", err)
	}

	return &Repositories{
		Auctions:   auctions,
		Users:      users,
		Products:   products,
		Categories: categories,
	}, nil
}
