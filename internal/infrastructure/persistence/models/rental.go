package models

import (
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	StoreAggregateModel
	InvoiceNumber   string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_store_number,priority:2"`
	CustomerID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	CustomerName    string                 `gorm:"type:varchar(200);not null"`
	ProductID       *uuid.UUID             `gorm:"type:uuid;index"`
	TotalPrice      decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	DepositAmount   decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Status          rental.InvoiceStatus   `gorm:"type:varchar(20);not null;default:'RESERVED';index"`
	CollectionDate  *time.Time             `gorm:"index"`
	ReturnDate      *time.Time             `gorm:"index"`
	ReturnCondition rental.ReturnCondition `gorm:"type:varchar(20)"`
	Notes           string                 `gorm:"type:text"`
	DeliveredAt     *time.Time
	ReturnedAt      *time.Time
	ClosedAt        *time.Time
	CanceledAt      *time.Time
	CancelReason    string     `gorm:"type:varchar(500)"`
	DeletedAt       *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *rental.Invoice {
	return &rental.Invoice{
		StoreAggregateRoot: shared.StoreAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			StoreID: m.StoreID,
		},
		InvoiceNumber:   m.InvoiceNumber,
		CustomerID:      m.CustomerID,
		CustomerName:    m.CustomerName,
		ProductID:       m.ProductID,
		TotalPrice:      m.TotalPrice,
		DepositAmount:   m.DepositAmount,
		Status:          m.Status,
		CollectionDate:  m.CollectionDate,
		ReturnDate:      m.ReturnDate,
		ReturnCondition: m.ReturnCondition,
		Notes:           m.Notes,
		DeliveredAt:     m.DeliveredAt,
		ReturnedAt:      m.ReturnedAt,
		ClosedAt:        m.ClosedAt,
		CanceledAt:      m.CanceledAt,
		CancelReason:    m.CancelReason,
		DeletedAt:       m.DeletedAt,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *rental.Invoice) {
	m.FromDomainStoreAggregateRoot(inv.StoreAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.CustomerID = inv.CustomerID
	m.CustomerName = inv.CustomerName
	m.ProductID = inv.ProductID
	m.TotalPrice = inv.TotalPrice
	m.DepositAmount = inv.DepositAmount
	m.Status = inv.Status
	m.CollectionDate = inv.CollectionDate
	m.ReturnDate = inv.ReturnDate
	m.ReturnCondition = inv.ReturnCondition
	m.Notes = inv.Notes
	m.DeliveredAt = inv.DeliveredAt
	m.ReturnedAt = inv.ReturnedAt
	m.ClosedAt = inv.ClosedAt
	m.CanceledAt = inv.CanceledAt
	m.CancelReason = inv.CancelReason
	m.DeletedAt = inv.DeletedAt
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *rental.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// PaymentEventModel is the persistence model for ledger entries.
type PaymentEventModel struct {
	BaseModel
	StoreID        uuid.UUID                 `gorm:"type:uuid;not null;index:idx_payment_event_store_invoice,priority:1"`
	InvoiceID      uuid.UUID                 `gorm:"type:uuid;not null;index:idx_payment_event_store_invoice,priority:2"`
	Kind           rental.PaymentKind        `gorm:"type:varchar(20);not null;index"`
	Method         rental.PaymentMethod      `gorm:"type:varchar(20);not null"`
	Amount         decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	OccurredOn     time.Time                 `gorm:"not null;index"`
	CreatedBy      *uuid.UUID                `gorm:"type:uuid"`
	Notes          string                    `gorm:"type:text"`
	Status         rental.PaymentEventStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	ReversedAt     *time.Time
	ReversedBy     *uuid.UUID `gorm:"type:uuid"`
	ReversalReason string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PaymentEventModel) TableName() string {
	return "payment_events"
}

// ToDomain converts the persistence model to a domain PaymentEvent entity.
func (m *PaymentEventModel) ToDomain() *rental.PaymentEvent {
	return &rental.PaymentEvent{
		BaseEntity:     m.BaseModel.ToDomain(),
		StoreID:        m.StoreID,
		InvoiceID:      m.InvoiceID,
		Kind:           m.Kind,
		Method:         m.Method,
		Amount:         m.Amount,
		OccurredOn:     m.OccurredOn,
		CreatedBy:      m.CreatedBy,
		Notes:          m.Notes,
		Status:         m.Status,
		ReversedAt:     m.ReversedAt,
		ReversedBy:     m.ReversedBy,
		ReversalReason: m.ReversalReason,
	}
}

// FromDomain populates the persistence model from a domain PaymentEvent entity.
func (m *PaymentEventModel) FromDomain(e *rental.PaymentEvent) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.StoreID = e.StoreID
	m.InvoiceID = e.InvoiceID
	m.Kind = e.Kind
	m.Method = e.Method
	m.Amount = e.Amount
	m.OccurredOn = e.OccurredOn
	m.CreatedBy = e.CreatedBy
	m.Notes = e.Notes
	m.Status = e.Status
	m.ReversedAt = e.ReversedAt
	m.ReversedBy = e.ReversedBy
	m.ReversalReason = e.ReversalReason
}

// PaymentEventModelFromDomain creates a new persistence model from a domain PaymentEvent.
func PaymentEventModelFromDomain(e *rental.PaymentEvent) *PaymentEventModel {
	m := &PaymentEventModel{}
	m.FromDomain(e)
	return m
}

// StatusHistoryModel is the persistence model for the transition audit trail.
type StatusHistoryModel struct {
	BaseModel
	StoreID    uuid.UUID            `gorm:"type:uuid;not null;index:idx_status_history_store_invoice,priority:1"`
	InvoiceID  uuid.UUID            `gorm:"type:uuid;not null;index:idx_status_history_store_invoice,priority:2"`
	FromStatus rental.InvoiceStatus `gorm:"type:varchar(20);not null"`
	ToStatus   rental.InvoiceStatus `gorm:"type:varchar(20);not null"`
	ChangedBy  uuid.UUID            `gorm:"type:uuid;not null"`
	Notes      string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StatusHistoryModel) TableName() string {
	return "invoice_status_history"
}

// ToDomain converts the persistence model to a domain StatusHistoryEntry entity.
func (m *StatusHistoryModel) ToDomain() *rental.StatusHistoryEntry {
	return &rental.StatusHistoryEntry{
		BaseEntity: m.BaseModel.ToDomain(),
		StoreID:    m.StoreID,
		InvoiceID:  m.InvoiceID,
		FromStatus: m.FromStatus,
		ToStatus:   m.ToStatus,
		ChangedBy:  m.ChangedBy,
		Notes:      m.Notes,
	}
}

// FromDomain populates the persistence model from a domain StatusHistoryEntry entity.
func (m *StatusHistoryModel) FromDomain(e *rental.StatusHistoryEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.StoreID = e.StoreID
	m.InvoiceID = e.InvoiceID
	m.FromStatus = e.FromStatus
	m.ToStatus = e.ToStatus
	m.ChangedBy = e.ChangedBy
	m.Notes = e.Notes
}

// StatusHistoryModelFromDomain creates a new persistence model from a domain StatusHistoryEntry.
func StatusHistoryModelFromDomain(e *rental.StatusHistoryEntry) *StatusHistoryModel {
	m := &StatusHistoryModel{}
	m.FromDomain(e)
	return m
}
