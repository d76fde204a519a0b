package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/verkoop/backend/internal/domain/crm"
)

// CustomerShadowModel is the persistence model for the CustomerShadow domain entity.
type CustomerShadowModel struct {
	BaseModel
	ExternalCustomerID string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email              string `gorm:"type:varchar(200);not null;index"`
	FirstName          string `gorm:"type:varchar(100)"`
	LastName           string `gorm:"type:varchar(100)"`
	PhoneNumber        string `gorm:"type:varchar(50)"`
	CustomerType       string `gorm:"type:varchar(50)"`
	Description        string `gorm:"type:text"`
	CompanyName        string `gorm:"type:varchar(200)"`
	TaxID              string `gorm:"type:varchar(50)"`

	AddressStreet       string `gorm:"type:varchar(200)"`
	AddressExtNumber    string `gorm:"type:varchar(20)"`
	AddressIntNumber    string `gorm:"type:varchar(20)"`
	AddressNeighborhood string `gorm:"type:varchar(100)"`
	AddressCity         string `gorm:"type:varchar(100)"`
	AddressState        string `gorm:"type:varchar(100)"`
	AddressPostalCode   string `gorm:"type:varchar(20)"`
	AddressCountry      string `gorm:"type:varchar(100)"`

	IsActive bool   `gorm:"not null;default:true"`
	Source   string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (CustomerShadowModel) TableName() string {
	return "customer_shadows"
}

// ToDomain converts the persistence model to a domain CustomerShadow entity.
func (m *CustomerShadowModel) ToDomain() *crm.CustomerShadow {
	return &crm.CustomerShadow{
		BaseEntity:          m.BaseModel.ToDomain(),
		ExternalCustomerID:  m.ExternalCustomerID,
		Email:               m.Email,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		PhoneNumber:         m.PhoneNumber,
		CustomerType:        m.CustomerType,
		Description:         m.Description,
		CompanyName:         m.CompanyName,
		TaxID:               m.TaxID,
		AddressStreet:       m.AddressStreet,
		AddressExtNumber:    m.AddressExtNumber,
		AddressIntNumber:    m.AddressIntNumber,
		AddressNeighborhood: m.AddressNeighborhood,
		AddressCity:         m.AddressCity,
		AddressState:        m.AddressState,
		AddressPostalCode:   m.AddressPostalCode,
		AddressCountry:      m.AddressCountry,
		IsActive:            m.IsActive,
		Source:              m.Source,
	}
}

// FromDomain populates the persistence model from a domain CustomerShadow entity.
func (m *CustomerShadowModel) FromDomain(s *crm.CustomerShadow) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.ExternalCustomerID = s.ExternalCustomerID
	m.Email = s.Email
	m.FirstName = s.FirstName
	m.LastName = s.LastName
	m.PhoneNumber = s.PhoneNumber
	m.CustomerType = s.CustomerType
	m.Description = s.Description
	m.CompanyName = s.CompanyName
	m.TaxID = s.TaxID
	m.AddressStreet = s.AddressStreet
	m.AddressExtNumber = s.AddressExtNumber
	m.AddressIntNumber = s.AddressIntNumber
	m.AddressNeighborhood = s.AddressNeighborhood
	m.AddressCity = s.AddressCity
	m.AddressState = s.AddressState
	m.AddressPostalCode = s.AddressPostalCode
	m.AddressCountry = s.AddressCountry
	m.IsActive = s.IsActive
	m.Source = s.Source
}

// SellerModel is the persistence model for the Seller domain entity.
type SellerModel struct {
	BaseModel
	Code               string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	FirstName          string          `gorm:"type:varchar(100);not null"`
	LastName           string          `gorm:"type:varchar(100)"`
	Email              string          `gorm:"type:varchar(200)"`
	PhoneNumber        string          `gorm:"type:varchar(50)"`
	MaxDiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Active             bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SellerModel) TableName() string {
	return "sellers"
}

// ToDomain converts the persistence model to a domain Seller entity.
func (m *SellerModel) ToDomain() *crm.Seller {
	return &crm.Seller{
		BaseEntity:         m.BaseModel.ToDomain(),
		Code:               m.Code,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Email:              m.Email,
		PhoneNumber:        m.PhoneNumber,
		MaxDiscountPercent: m.MaxDiscountPercent,
		Active:             m.Active,
	}
}

// FromDomain populates the persistence model from a domain Seller entity.
func (m *SellerModel) FromDomain(s *crm.Seller) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Code = s.Code
	m.FirstName = s.FirstName
	m.LastName = s.LastName
	m.Email = s.Email
	m.PhoneNumber = s.PhoneNumber
	m.MaxDiscountPercent = s.MaxDiscountPercent
	m.Active = s.Active
}

// SellerAssignmentModel is the persistence model for the SellerAssignment
// domain entity. The at-most-one-open-per-customer rule is backed by a
// partial unique index created in the SQL migrations.
type SellerAssignmentModel struct {
	BaseModel
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	SellerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssignedBy   string     `gorm:"type:varchar(100);not null;default:''"`
	AssignedAt   time.Time  `gorm:"not null"`
	UnassignedAt *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (SellerAssignmentModel) TableName() string {
	return "customer_seller_assignments"
}

// ToDomain converts the persistence model to a domain SellerAssignment entity.
func (m *SellerAssignmentModel) ToDomain() *crm.SellerAssignment {
	return &crm.SellerAssignment{
		BaseEntity:   m.BaseModel.ToDomain(),
		CustomerID:   m.CustomerID,
		SellerID:     m.SellerID,
		AssignedBy:   m.AssignedBy,
		AssignedAt:   m.AssignedAt,
		UnassignedAt: m.UnassignedAt,
	}
}

// FromDomain populates the persistence model from a domain SellerAssignment entity.
func (m *SellerAssignmentModel) FromDomain(a *crm.SellerAssignment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.CustomerID = a.CustomerID
	m.SellerID = a.SellerID
	m.AssignedBy = a.AssignedBy
	m.AssignedAt = a.AssignedAt
	m.UnassignedAt = a.UnassignedAt
}

// DomainEventModel is the persistence model for the append-only event log.
type DomainEventModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EventType  string    `gorm:"type:varchar(100);not null;index"`
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_domain_events_entity"`
	EntityID   string    `gorm:"type:varchar(100);index:idx_domain_events_entity"`
	Payload    string    `gorm:"type:jsonb;not null"`
	OccurredAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (DomainEventModel) TableName() string {
	return "domain_events"
}

// ToDomain converts the persistence model to a domain event record.
func (m *DomainEventModel) ToDomain() *crm.DomainEventRecord {
	return &crm.DomainEventRecord{
		ID:         m.ID,
		EventType:  m.EventType,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Payload:    m.Payload,
		OccurredAt: m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain event record.
func (m *DomainEventModel) FromDomain(e *crm.DomainEventRecord) {
	m.ID = e.ID
	m.EventType = e.EventType
	m.EntityType = e.EntityType
	m.EntityID = e.EntityID
	m.Payload = e.Payload
	m.OccurredAt = e.OccurredAt
}
