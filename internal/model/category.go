package model

import "time"

// Category groups numbers for browsing (e.g. "Mirror Numbers",
// "Lucky 786").  Slug is the URL-safe identifier used by category pages.
//
// Fields:
//  ID        – unique identifier.
//  Name      – human-friendly category name.
//  Slug      – URL-safe identifier.
//  SortOrder – position in the storefront's category list.
//  CreatedAt – creation timestamp.
type Category struct {
	ID        string    `json:"id"`         // categories.id
	Name      string    `json:"name"`       // categories.name
	Slug      string    `json:"slug"`       // categories.slug
	SortOrder int       `json:"sort_order"` // categories.sort_order
	CreatedAt time.Time `json:"-"`          // categories.created_at
}
