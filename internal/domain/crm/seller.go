package crm

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/verkoop/backend/internal/domain/shared"
)

// Seller is a sales representative customers can be assigned to. Code is the
// stable business identifier used in upstream payloads; the uuid is internal.
type Seller struct {
	shared.BaseEntity
	Code               string
	FirstName          string
	LastName           string
	Email              string
	PhoneNumber        string
	MaxDiscountPercent decimal.Decimal
	Active             bool
}

// NewSeller creates an active seller. Codes are stored uppercase so lookups
// are case-insensitive without needing a functional index.
func NewSeller(code, firstName, lastName string) (*Seller, error) {
	code = NormalizeSellerCode(code)
	if code == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "seller code is required")
	}
	if strings.TrimSpace(firstName) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "seller first name is required")
	}

	return &Seller{
		BaseEntity:         shared.NewBaseEntity(),
		Code:               code,
		FirstName:          strings.TrimSpace(firstName),
		LastName:           strings.TrimSpace(lastName),
		MaxDiscountPercent: decimal.Zero,
		Active:             true,
	}, nil
}

// DisplayName returns the name shown in customer projections, falling back to
// the code when no name was captured.
func (s *Seller) DisplayName() string {
	parts := make([]string, 0, 2)
	if s.FirstName != "" {
		parts = append(parts, s.FirstName)
	}
	if s.LastName != "" {
		parts = append(parts, s.LastName)
	}
	if len(parts) == 0 {
		return s.Code
	}
	return strings.Join(parts, " ")
}

// SetMaxDiscount bounds the discount a seller may grant.
func (s *Seller) SetMaxDiscount(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("VALIDATION_ERROR", "max discount must be between 0 and 100")
	}
	s.MaxDiscountPercent = pct
	s.Touch()
	return nil
}

// Deactivate removes the seller from new-assignment eligibility. Existing
// assignments are untouched.
func (s *Seller) Deactivate() {
	if s.Active {
		s.Active = false
		s.Touch()
	}
}

// NormalizeSellerCode trims and uppercases a seller code.
func NormalizeSellerCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
