package dto

import "time"

// NameRequest creates or renames a catalog entry.
type NameRequest struct {
	Name string `json:"name"`
}

// CatalogItem is a municipality or position row.
type CatalogItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SupportTypeItem is one fixed support category.
type SupportTypeItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
