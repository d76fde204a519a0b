package crm

import (
	"strings"

	"github.com/verkoop/backend/internal/domain/shared"
)

// Source tags recorded on a shadow the first time it is written. First writer
// wins; later syncs never downgrade provenance.
const (
	SourceRegistrySync = "registry_sync"
	SourceWebsiteForm  = "website_form"
	SourceImport       = "import"
)

// CustomerShadow is the local, eventually-consistent copy of a customer owned
// by the website module. The registry is the system of record; this aggregate
// only ever converges towards it and is never hard-deleted by sync.
type CustomerShadow struct {
	shared.BaseEntity
	ExternalCustomerID string
	Email              string
	FirstName          string
	LastName           string
	PhoneNumber        string
	CustomerType       string
	Description        string
	CompanyName        string
	TaxID              string

	AddressStreet       string
	AddressExtNumber    string
	AddressIntNumber    string
	AddressNeighborhood string
	AddressCity         string
	AddressState        string
	AddressPostalCode   string
	AddressCountry      string

	IsActive bool
	Source   string
}

// NewCustomerShadow creates a shadow for a previously-unseen external id.
func NewCustomerShadow(externalID, email string) (*CustomerShadow, error) {
	externalID = strings.TrimSpace(externalID)
	email = strings.TrimSpace(email)
	if externalID == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "external customer id is required")
	}
	if email == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "email is required")
	}

	return &CustomerShadow{
		BaseEntity:         shared.NewBaseEntity(),
		ExternalCustomerID: externalID,
		Email:              strings.ToLower(email),
		IsActive:           true,
	}, nil
}

// ApplyRecord reconciles the shadow with an incoming record using the
// defensive merge rule: a field present (non-empty) in the record overwrites
// the stored value, an absent field leaves it untouched. Source is only set
// when still unset. ExternalCustomerID is immutable once set. Returns true
// when anything actually changed. The update timestamp advances on every
// reconciliation, changed or not, so it marks the last time the registry
// was heard from about this customer.
func (s *CustomerShadow) ApplyRecord(rec CustomerRecord) bool {
	changed := false

	if email := strings.ToLower(strings.TrimSpace(rec.Email)); email != "" && email != s.Email {
		s.Email = email
		changed = true
	}

	changed = mergeField(&s.FirstName, rec.FirstName) || changed
	changed = mergeField(&s.LastName, rec.LastName) || changed
	changed = mergeField(&s.PhoneNumber, rec.PhoneNumber) || changed
	changed = mergeField(&s.CustomerType, rec.CustomerType) || changed
	changed = mergeField(&s.Description, rec.Description) || changed
	changed = mergeField(&s.CompanyName, rec.CompanyName) || changed
	changed = mergeField(&s.TaxID, rec.TaxID) || changed

	changed = mergeField(&s.AddressStreet, rec.Address.Street) || changed
	changed = mergeField(&s.AddressExtNumber, rec.Address.ExtNumber) || changed
	changed = mergeField(&s.AddressIntNumber, rec.Address.IntNumber) || changed
	changed = mergeField(&s.AddressNeighborhood, rec.Address.Neighborhood) || changed
	changed = mergeField(&s.AddressCity, rec.Address.City) || changed
	changed = mergeField(&s.AddressState, rec.Address.State) || changed
	changed = mergeField(&s.AddressPostalCode, rec.Address.PostalCode) || changed
	changed = mergeField(&s.AddressCountry, rec.Address.Country) || changed

	if rec.IsActive != nil && s.IsActive != *rec.IsActive {
		s.IsActive = *rec.IsActive
		changed = true
	}

	// Provenance: first writer wins.
	if s.Source == "" && rec.Source != "" {
		s.Source = rec.Source
		changed = true
	}

	s.Touch()
	return changed
}

// Deactivate marks the shadow inactive. Sync never hard-deletes.
func (s *CustomerShadow) Deactivate() {
	if s.IsActive {
		s.IsActive = false
		s.Touch()
	}
}

// FullName joins the non-empty name parts.
func (s *CustomerShadow) FullName() string {
	parts := make([]string, 0, 2)
	if s.FirstName != "" {
		parts = append(parts, s.FirstName)
	}
	if s.LastName != "" {
		parts = append(parts, s.LastName)
	}
	return strings.Join(parts, " ")
}

func mergeField(dst *string, src string) bool {
	src = strings.TrimSpace(src)
	if src == "" || src == *dst {
		return false
	}
	*dst = src
	return true
}
