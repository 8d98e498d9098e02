package models

import "time"

// Company is the tenant boundary. Its short code appears in every
// generated document number.
type Company struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	GSTNumber string    `json:"gst_number"`
	LogoPath  string    `json:"logo_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SelectCompanyRequest struct {
	CompanyID int `json:"company_id"`
}

type SelectCompanyResponse struct {
	Token   string   `json:"token"`
	Company *Company `json:"company"`
}

type UpdateCompanyRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	GSTNumber string `json:"gst_number"`
}
