package crm

import (
	"strings"

	"github.com/verkoop/backend/internal/domain/shared"
)

// AddressRecord carries the postal address fields of an incoming customer
// record. Empty strings mean "not provided" and never clobber stored values.
type AddressRecord struct {
	Street       string
	ExtNumber    string
	IntNumber    string
	Neighborhood string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// CustomerRecord is a normalized customer snapshot as received from the
// registry (pull) or a sync payload (push). All fields except ExternalID and
// Email are optional; IsActive is tri-state so that an absent flag is
// distinguishable from an explicit false.
type CustomerRecord struct {
	ExternalID   string
	Email        string
	FirstName    string
	LastName     string
	PhoneNumber  string
	CustomerType string
	Description  string
	CompanyName  string
	TaxID        string
	Address      AddressRecord
	IsActive     *bool
	Source       string
	SellerCode   string
}

// HasIdentity reports whether the record carries enough identity to be
// reconciled. Records without it are skipped, not rejected: partial upstream
// data is expected.
func (r CustomerRecord) HasIdentity() bool {
	return strings.TrimSpace(r.ExternalID) != "" && strings.TrimSpace(r.Email) != ""
}

// Validate checks the identifying fields required for a push sync.
func (r CustomerRecord) Validate() error {
	if strings.TrimSpace(r.ExternalID) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "external customer id is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "email is required")
	}
	return nil
}
