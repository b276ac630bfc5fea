package repository

import (
	"context"
	"ebuy/internal/biddingerrors"
	"ebuy/internal/models"
	"errors"
	"fmt"
)

// Relation names understood by the auction and product repositories
const (
	RelOwner      = "Owner"
	RelProduct    = "Product"
	RelCategories = "Categories"
)

// AuctionRelations wires the Owner and Product relations of auctions to the
// user and product repositories
func AuctionRelations(users Repository[*models.User], products Repository[*models.Product]) []Option[*models.Auction] {
	return []Option[*models.Auction]{
		WithRelation[*models.Auction](RelOwner, func(ctx context.Context, a *models.Auction) error {
			owner, err := users.Single(ctx, a.OwnerID)
			if err != nil {
				return NotFoundAs(err, biddingerrors.ErrUserNotFound)
			}
			a.Owner = owner
			return nil
		}),
		WithRelation[*models.Auction](RelProduct, func(ctx context.Context, a *models.Auction) error {
			product, err := products.Single(ctx, a.ProductID, RelCategories)
			if err != nil {
				return NotFoundAs(err, biddingerrors.ErrProductNotFound)
			}
			a.Product = product
			return nil
		}),
	}
}

// ProductRelations wires the Categories relation of products
func ProductRelations(categories Repository[*models.Category]) []Option[*models.Product] {
	return []Option[*models.Product]{
		WithRelation[*models.Product](RelCategories, func(ctx context.Context, p *models.Product) error {
			loaded := make([]*models.Category, 0, len(p.CategoryIDs))
			for _, id := range p.CategoryIDs {
				c, err := categories.Single(ctx, id)
				if err != nil {
					return fmt.Errorf("category %s: %w", id, err)
				}
				loaded = append(loaded, c)
			}
			p.Categories = loaded
			return nil
		}),
	}
}

// NotFoundAs translates ErrNotFound into a domain-specific not-found error
func NotFoundAs(err, target error) error {
	if errors.Is(err, biddingerrors.ErrNotFound) {
		return fmt.Errorf("%w: %v", target, err)
	}
	return err
}
