package domain

import "time"

// SuperList is a supermarket purchase recorded by a user.
type SuperList struct {
	ID        string
	Username  string
	Order     string
	IssueDate string
	Products  []Product
	Disabled  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is a single receipt line.
type Product struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Units       float64 `json:"units"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
}

// SuperListUpdate carries the mutable list fields. Nil fields are left untouched.
type SuperListUpdate struct {
	Order     *string
	IssueDate *string
	Products  []Product
}

// Empty reports whether the update changes nothing.
func (u SuperListUpdate) Empty() bool {
	return u.Order == nil && u.IssueDate == nil && u.Products == nil
}
