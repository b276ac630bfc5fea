package models

// Entity is anything the repository can store under a key
type Entity interface {
	EntityKey() string
}

// Versioned entities are saved with an optimistic concurrency check
type Versioned interface {
	Entity
	EntityVersion() int64
	SetEntityVersion(v int64)
}

// User represents a participant in the auction
type User struct {
	UserID       string `json:"user_id"`
	EmailAddress string `json:"email_address"`
	FullName     string `json:"full_name"`
	DisplayName  string `json:"display_name"`
}

func (u *User) EntityKey() string { return u.UserID }

// Name returns the name shown next to the user's bids
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.FullName
}

// Category groups products
type Category struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

func (c *Category) EntityKey() string { return c.CategoryID }

// Product represents the thing being auctioned
type Product struct {
	ProductID   string   `json:"product_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	CategoryIDs []string `json:"category_ids"`

	// Categories is filled only when the "Categories" relation is loaded
	Categories []*Category `json:"-"`
}

func (p *Product) EntityKey() string { return p.ProductID }

// PlacedBid pairs a ledger bid with the user who placed it, for display
type PlacedBid struct {
	Bid    Bid
	Bidder *User // nil if the user record is gone
}
