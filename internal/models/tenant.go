package models

// TenantContext identifies the company a request operates on.
// It is built from JWT claims after company selection and passed
// explicitly into every service and repository call.
type TenantContext struct {
	CompanyID   int
	CompanyCode string
	CompanyName string
}
