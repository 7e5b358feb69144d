package model

import "time"

// GeneralCategoryID is the catch-all category used when nothing better is found.
const GeneralCategoryID = "general"

// GeneralCategoryName is the display name of the catch-all category.
const GeneralCategoryName = "General"

// Category represents a product category in the catalog.
type Category struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Description string
	IsActive    bool
}
