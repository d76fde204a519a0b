package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "ASC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "DESC" {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not whitelisted.
// Order-by input comes straight from query parameters and must never reach
// the ORDER BY clause unvalidated.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CustomerShadowSortFields contains allowed sort fields for customer shadows
var CustomerShadowSortFields = map[string]bool{
	"id":                   true,
	"created_at":           true,
	"updated_at":           true,
	"external_customer_id": true,
	"email":                true,
	"first_name":           true,
	"last_name":            true,
	"company_name":         true,
	"customer_type":        true,
	"is_active":            true,
	"source":               true,
}

// SellerSortFields contains allowed sort fields for sellers
var SellerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"first_name": true,
	"last_name":  true,
	"active":     true,
}
