package kitchen

import (
	"context"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/geo"
)

type Repository interface {
	// core
	Create(ctx context.Context, k *Kitchen) error
	FindByID(ctx context.Context, id string) (*Kitchen, error)
	FindByCook(ctx context.Context, cookID string) (*Kitchen, error)
	Update(ctx context.Context, k *Kitchen) error
	UpdateStatus(ctx context.Context, id string, status string) (*Kitchen, error)
	Deactivate(ctx context.Context, id string) error
	AddPhotos(ctx context.Context, id string, urls []string) error

	// geo candidate queries — the discovery engine's feed. All of these
	// return only buyer-visible kitchens (approved/pending, active).
	// FindNearby is nearest-first; limit <= 0 means unlimited.
	FindNearby(ctx context.Context, center geo.Point, maxDistanceMeters float64, limit int) ([]*Kitchen, error)
	FindWithinRegion(ctx context.Context, center geo.Point, radiusMeters float64) ([]*Kitchen, error)
	FindAllVisible(ctx context.Context) ([]*Kitchen, error)
	FindVisibleByIDs(ctx context.Context, ids []string) ([]*Kitchen, error)
}
