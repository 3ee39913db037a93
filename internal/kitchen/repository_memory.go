package kitchen

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/geo"
)

// InMemoryRepository backs tests and local development. It enforces the
// same invariants as the Postgres repository, including the one-active-
// kitchen-per-cook uniqueness rule.
type InMemoryRepository struct {
	mu       sync.RWMutex
	kitchens map[string]*Kitchen
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		kitchens: make(map[string]*Kitchen),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, k *Kitchen) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.kitchens {
		if existing.CookID == k.CookID && existing.IsActive {
			return apperror.Conflict("kitchen already exists for this cook")
		}
	}

	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	k.IsActive = true
	now := time.Now()
	k.CreatedAt = now
	k.UpdatedAt = now

	clone := *k
	r.kitchens[k.ID] = &clone
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*Kitchen, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.kitchens[id]
	if !ok {
		return nil, apperror.NotFound("kitchen not found")
	}
	clone := *k
	return &clone, nil
}

func (r *InMemoryRepository) FindByCook(ctx context.Context, cookID string) (*Kitchen, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range r.kitchens {
		if k.CookID == cookID && k.IsActive {
			clone := *k
			return &clone, nil
		}
	}
	return nil, apperror.NotFound("kitchen not found")
}

func (r *InMemoryRepository) Update(ctx context.Context, k *Kitchen) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.kitchens[k.ID]
	if !ok {
		return apperror.NotFound("kitchen not found")
	}

	existing.Name = k.Name
	existing.Description = k.Description
	existing.Photos = k.Photos
	existing.Address = k.Address
	existing.Location = k.Location
	existing.Cuisines = k.Cuisines
	existing.FSSAILicense = k.FSSAILicense
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status string) (*Kitchen, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, ok := r.kitchens[id]
	if !ok {
		return nil, apperror.NotFound("kitchen not found")
	}
	k.Status = status
	k.UpdatedAt = time.Now()

	clone := *k
	return &clone, nil
}

func (r *InMemoryRepository) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, ok := r.kitchens[id]
	if !ok {
		return apperror.NotFound("kitchen not found")
	}
	k.IsActive = false
	k.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) AddPhotos(ctx context.Context, id string, urls []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, ok := r.kitchens[id]
	if !ok {
		return apperror.NotFound("kitchen not found")
	}
	k.Photos = append(k.Photos, urls...)
	k.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) FindNearby(
	ctx context.Context,
	center geo.Point,
	maxDistanceMeters float64,
	limit int,
) ([]*Kitchen, error) {

	candidates, err := r.FindWithinRegion(ctx, center, maxDistanceMeters)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return geo.Distance(center, candidates[i].Location) <
			geo.Distance(center, candidates[j].Location)
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func (r *InMemoryRepository) FindWithinRegion(
	ctx context.Context,
	center geo.Point,
	radiusMeters float64,
) ([]*Kitchen, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Kitchen
	for _, k := range r.kitchens {
		if !k.Visible() {
			continue
		}
		if geo.Distance(center, k.Location) > radiusMeters {
			continue
		}
		clone := *k
		result = append(result, &clone)
	}
	return result, nil
}

func (r *InMemoryRepository) FindAllVisible(ctx context.Context) ([]*Kitchen, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Kitchen
	for _, k := range r.kitchens {
		if !k.Visible() {
			continue
		}
		clone := *k
		result = append(result, &clone)
	}
	return result, nil
}

func (r *InMemoryRepository) FindVisibleByIDs(ctx context.Context, ids []string) ([]*Kitchen, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Kitchen
	for _, id := range ids {
		k, ok := r.kitchens[id]
		if !ok || !k.Visible() {
			continue
		}
		clone := *k
		result = append(result, &clone)
	}
	return result, nil
}
