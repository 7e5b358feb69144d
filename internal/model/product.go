package model

import "time"

// ProductInput is the record handed to the classifier for a single decision.
// An empty HintCategoryID means no hint was supplied.
type ProductInput struct {
	Name           string
	Description    string
	HintCategoryID string
	Cost           float64
}

// Text returns the name and description joined for free-text matching.
func (p ProductInput) Text() string {
	if p.Description == "" {
		return p.Name
	}
	return p.Name + " " + p.Description
}

// ProductSample is a read-only snapshot of an existing catalog product used
// for nearest-neighbor comparisons.
type ProductSample struct {
	ID           string
	Name         string
	Description  string
	CategoryID   string
	CategoryName string
}

// Product is a persisted catalog row.
type Product struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Description string
	CategoryID  string
	Cost        float64
	NeedsReview bool
	IsActive    bool
}

// Input converts a stored product back into classifier input.
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Cost:        p.Cost,
	}
}
