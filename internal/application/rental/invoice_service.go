package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceService creates and queries invoices. Transitions live on the
// LifecycleService; money movements live on the LedgerService.
type InvoiceService struct {
	invoices     rental.InvoiceRepository
	tx           rental.TransactionManager
	availability *AvailabilityService
	logger       *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoices rental.InvoiceRepository,
	tx rental.TransactionManager,
	availability *AvailabilityService,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices:     invoices,
		tx:           tx,
		availability: availability,
		logger:       logger,
	}
}

// CreateInvoiceRequest carries everything needed to reserve an invoice.
// Product and dates are optional; a pure sale has neither.
type CreateInvoiceRequest struct {
	StoreID       uuid.UUID
	InvoiceNumber string
	CustomerID    uuid.UUID
	CustomerName  string
	TotalPrice    decimal.Decimal
	DepositAmount decimal.Decimal
	Notes         string
	// Rental window, set together or not at all
	ProductID      *uuid.UUID
	CollectionDate *time.Time
	ReturnDate     *time.Time
}

// CreateInvoice reserves a new invoice. When a rental window is requested the
// double-booking check runs first; the invoice is only persisted when the
// window is free.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*rental.Invoice, error) {
	invoice, err := rental.NewInvoice(
		req.StoreID,
		req.InvoiceNumber,
		req.CustomerID,
		req.CustomerName,
		valueobject.NewMoneyUSD(req.TotalPrice),
		valueobject.NewMoneyUSD(req.DepositAmount),
	)
	if err != nil {
		return nil, err
	}
	invoice.Notes = req.Notes

	hasWindow := req.ProductID != nil || req.CollectionDate != nil || req.ReturnDate != nil
	if hasWindow {
		if req.ProductID == nil || req.CollectionDate == nil || req.ReturnDate == nil {
			return nil, shared.NewValidationError("INVALID_RENTAL_WINDOW",
				"Product, collection date and return date must be set together")
		}
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, repos rental.Repositories) error {
		if hasWindow {
			check, err := s.availability.CheckAvailabilityWith(ctx, repos.Invoices, CheckAvailabilityRequest{
				StoreID:        req.StoreID,
				ProductID:      *req.ProductID,
				CollectionDate: *req.CollectionDate,
				ReturnDate:     *req.ReturnDate,
			})
			if err != nil {
				return err
			}
			if !check.Available {
				return shared.NewDomainError("DOUBLE_BOOKING",
					fmt.Sprintf("Product is already booked for an overlapping window (%d conflicts)", len(check.Conflicts)))
			}
			r, err := valueRange(*req.CollectionDate, *req.ReturnDate)
			if err != nil {
				return err
			}
			if err := invoice.SetRentalWindow(*req.ProductID, r); err != nil {
				return err
			}
		}
		if err := repos.Invoices.Save(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("invoice creation rejected",
			zap.String("store_id", req.StoreID.String()),
			zap.String("invoice_number", req.InvoiceNumber),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("invoice reserved",
		zap.String("store_id", req.StoreID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	invoice.ClearDomainEvents()

	return invoice, nil
}

// GetInvoice loads one invoice, soft-deleted ones included
func (s *InvoiceService) GetInvoice(ctx context.Context, storeID, invoiceID uuid.UUID) (*rental.Invoice, error) {
	return s.invoices.FindByID(ctx, storeID, invoiceID)
}

// ListInvoices lists invoices for a store with filtering and pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, storeID uuid.UUID, filter rental.InvoiceFilter) (shared.Paginated[rental.Invoice], error) {
	invoices, total, err := s.invoices.FindAll(ctx, storeID, filter)
	if err != nil {
		return shared.Paginated[rental.Invoice]{}, err
	}
	return shared.NewPaginated(invoices, total, filter.Page, filter.PageSize), nil
}
