package models

import "time"

// Package is a priced template (BHK type x tier). Packages are
// soft-deleted via is_active so referenced rows are never removed.
type Package struct {
	ID           int       `json:"id"`
	CompanyID    int       `json:"company_id"`
	Name         string    `json:"name"`
	BHKType      string    `json:"bhk_type"`
	Tier         string    `json:"tier"`
	BaseRateSqft float64   `json:"base_rate_sqft"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type PackageItem struct {
	ID          int     `json:"id"`
	PackageID   int     `json:"package_id"`
	ItemName    string  `json:"item_name"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	SqFoot      float64 `json:"sq_foot"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	RoomType    string  `json:"room_type"`
	SortOrder   int     `json:"sort_order"`
}

// PackageWithItems includes the package's line items
type PackageWithItems struct {
	Package
	Items []PackageItem `json:"items"`
}

type PackageRequest struct {
	Name         string        `json:"name"`
	BHKType      string        `json:"bhk_type"`
	Tier         string        `json:"tier"`
	BaseRateSqft float64       `json:"base_rate_sqft"`
	Description  string        `json:"description"`
	Items        []PackageItem `json:"items"`
}
