package crm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/verkoop/backend/internal/domain/crm"
	"github.com/verkoop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SyncService reconciles customer shadows with the central registry. Push
// syncs arrive as single payloads; pull syncs fetch the whole registry
// listing and reconcile record by record.
type SyncService struct {
	txm      crm.TxManager
	registry crm.RegistryClient
	logger   *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(txm crm.TxManager, registry crm.RegistryClient, logger *zap.Logger) *SyncService {
	return &SyncService{
		txm:      txm,
		registry: registry,
		logger:   logger,
	}
}

// SyncCustomer applies a single pushed customer snapshot. Upsert, optional
// seller assignment and the emitted events commit in one transaction.
func (s *SyncService) SyncCustomer(ctx context.Context, payload CustomerSyncPayload) (*SyncCustomerResponse, error) {
	rec := payload.ToRecord()
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	var resp *SyncCustomerResponse
	err := s.txm.WithinTx(ctx, func(ctx context.Context, repos crm.Repos) error {
		shadow, created, err := s.upsertRecord(ctx, repos, rec)
		if err != nil {
			return err
		}

		if rec.SellerCode != "" {
			if err := s.assignFromSync(ctx, repos, shadow, rec.SellerCode); err != nil {
				return err
			}
		}

		seller, err := currentSeller(ctx, repos, shadow)
		if err != nil {
			return err
		}

		resp = &SyncCustomerResponse{
			Created:  created,
			Customer: NewCustomerShadowResponse(shadow, seller),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// PullFromRegistry fetches the registry listing and reconciles every record.
// The fetch fails fast before any write; after that each record gets its own
// transaction so one bad record cannot poison the batch.
func (s *SyncService) PullFromRegistry(ctx context.Context) (*PullSyncResponse, error) {
	records, err := s.registry.FetchCustomers(ctx)
	if err != nil {
		return nil, err
	}

	result := &PullSyncResponse{
		Customers: make([]CustomerShadowResponse, 0, len(records)),
	}

	for _, rec := range records {
		if !rec.HasIdentity() {
			result.Summary.Skipped++
			continue
		}
		rec.Source = crm.SourceRegistrySync

		var (
			created bool
			shadowR CustomerShadowResponse
		)
		err := s.txm.WithinTx(ctx, func(ctx context.Context, repos crm.Repos) error {
			shadow, wasCreated, err := s.upsertRecord(ctx, repos, rec)
			if err != nil {
				return err
			}
			created = wasCreated

			if rec.SellerCode != "" {
				if err := s.assignFromSync(ctx, repos, shadow, rec.SellerCode); err != nil {
					return err
				}
			}

			seller, err := currentSeller(ctx, repos, shadow)
			if err != nil {
				return err
			}
			shadowR = NewCustomerShadowResponse(shadow, seller)
			return nil
		})
		if err != nil {
			s.logger.Error("customer record sync failed",
				zap.String("external_customer_id", rec.ExternalID),
				zap.Error(err))
			result.Summary.Skipped++
			continue
		}

		if created {
			result.Summary.Created++
		} else {
			result.Summary.Updated++
		}
		result.Customers = append(result.Customers, shadowR)
	}

	// Total counts processed records only; skipped ones are reported apart.
	result.Summary.Total = result.Summary.Created + result.Summary.Updated

	s.logger.Info("registry pull sync finished",
		zap.Int("total", result.Summary.Total),
		zap.Int("created", result.Summary.Created),
		zap.Int("updated", result.Summary.Updated),
		zap.Int("skipped", result.Summary.Skipped))

	return result, nil
}

// upsertRecord reconciles one record: lookup by external id, fall back to
// email, create when unseen. The shadow is saved on every applied record so
// updated_at marks the reconciliation, and a CustomerSynced event is
// appended alongside.
func (s *SyncService) upsertRecord(ctx context.Context, repos crm.Repos, rec crm.CustomerRecord) (*crm.CustomerShadow, bool, error) {
	shadow, err := repos.Shadows.FindByExternalID(ctx, rec.ExternalID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}
	if shadow == nil {
		shadow, err = repos.Shadows.FindByEmail(ctx, rec.Email)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, false, err
		}
	}

	created := false
	if shadow == nil {
		shadow, err = crm.NewCustomerShadow(rec.ExternalID, rec.Email)
		if err != nil {
			return nil, false, err
		}
		created = true
	}

	shadow.ApplyRecord(rec)
	if err := repos.Shadows.Save(ctx, shadow); err != nil {
		return nil, false, err
	}

	event, err := crm.NewDomainEventRecord(crm.EventCustomerSynced, crm.EntityTypeCustomer, shadow.ExternalCustomerID, crm.CustomerSyncedPayload{
		CustomerID:         shadow.ID,
		ExternalCustomerID: shadow.ExternalCustomerID,
		Email:              shadow.Email,
		Created:            created,
		Source:             shadow.Source,
	})
	if err != nil {
		return nil, false, err
	}
	if err := repos.Events.Append(ctx, event); err != nil {
		return nil, false, err
	}

	return shadow, created, nil
}

// assignFromSync resolves a seller code carried by a sync record. Resolution
// failure is a soft fail: the sync proceeds without an assignment.
func (s *SyncService) assignFromSync(ctx context.Context, repos crm.Repos, shadow *crm.CustomerShadow, sellerCode string) error {
	seller, err := repos.Sellers.FindByCode(ctx, sellerCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("seller referenced by sync record not found, skipping assignment",
				zap.String("seller_code", sellerCode),
				zap.String("external_customer_id", shadow.ExternalCustomerID))
			return nil
		}
		return err
	}
	return openAssignment(ctx, repos, shadow, seller, crm.AssignedBySync, time.Now())
}

// openAssignment closes any active assignment and opens a new one for the
// given seller, tagged with the requesting actor and recording a
// CustomerAssignedToSeller event. Re-assignment to the current seller still
// closes and reopens.
func openAssignment(ctx context.Context, repos crm.Repos, shadow *crm.CustomerShadow, seller *crm.Seller, assignedBy string, now time.Time) error {
	var previousSellerID *uuid.UUID

	open, err := repos.Assignments.FindOpenByCustomerID(ctx, shadow.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if open != nil {
		prev := open.SellerID
		previousSellerID = &prev
		if err := open.Close(now); err != nil {
			return err
		}
		if err := repos.Assignments.Save(ctx, open); err != nil {
			return err
		}
	}

	assignment := crm.NewSellerAssignment(shadow.ID, seller.ID, assignedBy, now)
	if err := repos.Assignments.Save(ctx, assignment); err != nil {
		return err
	}

	event, err := crm.NewDomainEventRecord(crm.EventCustomerAssignedToSeller, crm.EntityTypeCustomer, shadow.ExternalCustomerID, crm.CustomerAssignedPayload{
		CustomerID:       shadow.ID,
		SellerID:         seller.ID,
		SellerCode:       seller.Code,
		PreviousSellerID: previousSellerID,
		AssignedBy:       assignedBy,
		AssignedAt:       now,
	})
	if err != nil {
		return err
	}
	return repos.Events.Append(ctx, event)
}

// currentSeller loads the seller of the customer's open assignment, if any.
func currentSeller(ctx context.Context, repos crm.Repos, shadow *crm.CustomerShadow) (*crm.Seller, error) {
	open, err := repos.Assignments.FindOpenByCustomerID(ctx, shadow.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return repos.Sellers.FindByID(ctx, open.SellerID)
}
