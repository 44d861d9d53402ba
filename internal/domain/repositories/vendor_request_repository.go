package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"rimmarsa.backend/internal/domain/entities"
	"rimmarsa.backend/pkg/utils"
)

// VendorRequestRepository defines vendor application data operations.
// The Mark* and UpdatePendingPassword methods only touch rows still pending and
// report whether a row was changed.
type VendorRequestRepository interface {
	Create(ctx context.Context, req *entities.VendorRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.VendorRequest, error)
	GetPendingByID(ctx context.Context, id uuid.UUID) (*entities.VendorRequest, error)
	ExistsPendingByPhone(ctx context.Context, phone string) (bool, error)
	List(ctx context.Context, filter entities.VendorRequestFilter, pagination utils.PaginationParams) ([]*entities.VendorRequest, int64, error)
	MarkApproved(ctx context.Context, id, vendorID, adminID uuid.UUID, at time.Time) (bool, error)
	MarkRejected(ctx context.Context, id, adminID uuid.UUID, reason string, at time.Time) (bool, error)
	UpdatePendingPassword(ctx context.Context, id uuid.UUID, password string) (bool, error)
}
