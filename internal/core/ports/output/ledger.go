package ports

import (
	"context"

	"github.com/google/uuid"

	"api-dispatcher-service/internal/core/domain"
)

// DeploymentLedger records deployments so they can be found and removed after
// a restart.
type DeploymentLedger interface {
	Record(ctx context.Context, d *domain.Deployment) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Deployment, error)
	List(ctx context.Context) ([]*domain.Deployment, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.DeploymentStatus) error
}
