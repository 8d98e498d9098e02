package models

import "time"

// Client belongs to exactly one company. It cannot be deleted while
// any quotation references it.
type Client struct {
	ID              int       `json:"id"`
	CompanyID       int       `json:"company_id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	ProjectLocation string    `json:"project_location"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ClientRequest struct {
	Name            string `json:"name"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	ProjectLocation string `json:"project_location"`
	Notes           string `json:"notes"`
}
