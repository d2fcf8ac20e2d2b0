package rental

import (
	"context"

	"github.com/google/uuid"
)

// Permissions gating privileged ledger and lifecycle operations
const (
	PermissionDeletePayment = "payments:delete"
	PermissionCancelInvoice = "invoices:cancel"
)

// PermissionChecker is the collaborator consulted before privileged
// operations. The core never reads ambient session state; the actor is
// always an explicit parameter.
type PermissionChecker interface {
	HasPermission(ctx context.Context, storeID, actorID uuid.UUID, permission string) (bool, error)
}
