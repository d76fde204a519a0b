package crm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verkoop/backend/internal/domain/crm"
)

// =============================================================================
// Sync DTOs
// =============================================================================

// AddressPayload carries the postal address of a sync payload.
type AddressPayload struct {
	Street       string `json:"street" binding:"max=200"`
	ExtNumber    string `json:"ext_number" binding:"max=20"`
	IntNumber    string `json:"int_number" binding:"max=20"`
	Neighborhood string `json:"neighborhood" binding:"max=100"`
	City         string `json:"city" binding:"max=100"`
	State        string `json:"state" binding:"max=100"`
	PostalCode   string `json:"postal_code" binding:"max=20"`
	Country      string `json:"country" binding:"max=100"`
}

// CustomerSyncPayload is a pushed customer snapshot. The phone number may
// arrive under any of three upstream field names; PhoneValue picks the first
// non-empty one.
type CustomerSyncPayload struct {
	ExternalID   string         `json:"external_id" binding:"required,max=100"`
	Email        string         `json:"email" binding:"required,email,max=200"`
	FirstName    string         `json:"first_name" binding:"max=100"`
	LastName     string         `json:"last_name" binding:"max=100"`
	PhoneNumber  string         `json:"phone_number" binding:"max=50"`
	Phone        string         `json:"phone" binding:"max=50"`
	Gsm          string         `json:"gsm" binding:"max=50"`
	CustomerType string         `json:"customer_type" binding:"max=50"`
	Description  string         `json:"description"`
	CompanyName  string         `json:"company_name" binding:"max=200"`
	TaxID        string         `json:"tax_id" binding:"max=50"`
	Address      AddressPayload `json:"address"`
	IsActive     *bool          `json:"is_active"`
	Source       string         `json:"source" binding:"max=50"`
	SellerCode   string         `json:"seller_code" binding:"omitempty,seller_code"`
}

// PhoneValue returns the first non-empty phone alias.
func (p CustomerSyncPayload) PhoneValue() string {
	for _, v := range []string{p.PhoneNumber, p.Phone, p.Gsm} {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// ToRecord converts the payload into a domain record.
func (p CustomerSyncPayload) ToRecord() crm.CustomerRecord {
	source := p.Source
	if source == "" {
		source = crm.SourceWebsiteForm
	}
	return crm.CustomerRecord{
		ExternalID:   strings.TrimSpace(p.ExternalID),
		Email:        strings.TrimSpace(p.Email),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PhoneNumber:  p.PhoneValue(),
		CustomerType: p.CustomerType,
		Description:  p.Description,
		CompanyName:  p.CompanyName,
		TaxID:        p.TaxID,
		Address: crm.AddressRecord{
			Street:       p.Address.Street,
			ExtNumber:    p.Address.ExtNumber,
			IntNumber:    p.Address.IntNumber,
			Neighborhood: p.Address.Neighborhood,
			City:         p.Address.City,
			State:        p.Address.State,
			PostalCode:   p.Address.PostalCode,
			Country:      p.Address.Country,
		},
		IsActive:   p.IsActive,
		Source:     source,
		SellerCode: p.SellerCode,
	}
}

// SyncSummary counts the outcome of a pull sync run.
type SyncSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// PullSyncResponse is the result of a pull from the registry.
type PullSyncResponse struct {
	Summary   SyncSummary              `json:"summary"`
	Customers []CustomerShadowResponse `json:"customers"`
}

// SyncCustomerResponse is the result of a push sync of a single customer.
type SyncCustomerResponse struct {
	Created  bool                   `json:"created"`
	Customer CustomerShadowResponse `json:"customer"`
}

// =============================================================================
// Customer DTOs
// =============================================================================

// SellerInfo is the current-seller projection embedded in customer responses.
type SellerInfo struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

// AddressResponse mirrors the stored address fields.
type AddressResponse struct {
	Street       string `json:"street"`
	ExtNumber    string `json:"ext_number"`
	IntNumber    string `json:"int_number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// CustomerShadowResponse represents a customer shadow in API responses.
type CustomerShadowResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ExternalCustomerID string          `json:"external_customer_id"`
	Email              string          `json:"email"`
	FirstName          string          `json:"first_name"`
	LastName           string          `json:"last_name"`
	FullName           string          `json:"full_name"`
	PhoneNumber        string          `json:"phone_number"`
	CustomerType       string          `json:"customer_type"`
	Description        string          `json:"description"`
	CompanyName        string          `json:"company_name"`
	TaxID              string          `json:"tax_id"`
	Address            AddressResponse `json:"address"`
	IsActive           bool            `json:"is_active"`
	Source             string          `json:"source"`
	CurrentSeller      *SellerInfo     `json:"current_seller,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewCustomerShadowResponse builds a response from a shadow and its optional
// current seller.
func NewCustomerShadowResponse(shadow *crm.CustomerShadow, seller *crm.Seller) CustomerShadowResponse {
	resp := CustomerShadowResponse{
		ID:                 shadow.ID,
		ExternalCustomerID: shadow.ExternalCustomerID,
		Email:              shadow.Email,
		FirstName:          shadow.FirstName,
		LastName:           shadow.LastName,
		FullName:           shadow.FullName(),
		PhoneNumber:        shadow.PhoneNumber,
		CustomerType:       shadow.CustomerType,
		Description:        shadow.Description,
		CompanyName:        shadow.CompanyName,
		TaxID:              shadow.TaxID,
		Address: AddressResponse{
			Street:       shadow.AddressStreet,
			ExtNumber:    shadow.AddressExtNumber,
			IntNumber:    shadow.AddressIntNumber,
			Neighborhood: shadow.AddressNeighborhood,
			City:         shadow.AddressCity,
			State:        shadow.AddressState,
			PostalCode:   shadow.AddressPostalCode,
			Country:      shadow.AddressCountry,
		},
		IsActive:  shadow.IsActive,
		Source:    shadow.Source,
		CreatedAt: shadow.CreatedAt,
		UpdatedAt: shadow.UpdatedAt,
	}
	if seller != nil {
		resp.CurrentSeller = &SellerInfo{
			ID:   seller.ID,
			Code: seller.Code,
			Name: seller.DisplayName(),
		}
	}
	return resp
}

// =============================================================================
// Assignment DTOs
// =============================================================================

// AssignSellerRequest selects a seller by id or by code. At least one of the
// two must be present.
type AssignSellerRequest struct {
	SellerID   *uuid.UUID `json:"seller_id"`
	SellerCode string     `json:"seller_code" binding:"omitempty,seller_code"`
}

// SellerRef is the internal form of a seller selector. An empty ref means no
// assignment was requested.
type SellerRef struct {
	ID   *uuid.UUID
	Code string
}

// IsEmpty reports whether the ref selects nothing.
func (r SellerRef) IsEmpty() bool {
	return r.ID == nil && strings.TrimSpace(r.Code) == ""
}

// AssignmentHistoryItem is one edge of a customer's assignment history.
type AssignmentHistoryItem struct {
	ID           uuid.UUID  `json:"id"`
	SellerID     uuid.UUID  `json:"seller_id"`
	SellerCode   string     `json:"seller_code"`
	SellerName   string     `json:"seller_name"`
	AssignedBy   string     `json:"assigned_by"`
	AssignedAt   time.Time  `json:"assigned_at"`
	UnassignedAt *time.Time `json:"unassigned_at,omitempty"`
}

// =============================================================================
// Seller DTOs
// =============================================================================

// SellerResponse represents a seller in API responses.
type SellerResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Code               string          `json:"code"`
	FirstName          string          `json:"first_name"`
	LastName           string          `json:"last_name"`
	DisplayName        string          `json:"display_name"`
	Email              string          `json:"email"`
	PhoneNumber        string          `json:"phone_number"`
	MaxDiscountPercent decimal.Decimal `json:"max_discount_percent"`
	Active             bool            `json:"active"`
	AssignedCustomers  int64           `json:"assigned_customers"`
	CreatedAt          time.Time       `json:"created_at"`
}

// NewSellerResponse builds a response from a seller.
func NewSellerResponse(seller *crm.Seller, assignedCustomers int64) SellerResponse {
	return SellerResponse{
		ID:                 seller.ID,
		Code:               seller.Code,
		FirstName:          seller.FirstName,
		LastName:           seller.LastName,
		DisplayName:        seller.DisplayName(),
		Email:              seller.Email,
		PhoneNumber:        seller.PhoneNumber,
		MaxDiscountPercent: seller.MaxDiscountPercent,
		Active:             seller.Active,
		AssignedCustomers:  assignedCustomers,
		CreatedAt:          seller.CreatedAt,
	}
}
