package menu

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
)

// InMemoryRepository backs tests and local development, enforcing the same
// per-day uniqueness rule the Postgres unique index enforces.
type InMemoryRepository struct {
	mu    sync.RWMutex
	menus map[string]*Menu
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		menus: make(map[string]*Menu),
	}
}

func cloneMenu(m *Menu) *Menu {
	clone := *m
	clone.Dishes = make([]Dish, len(m.Dishes))
	copy(clone.Dishes, m.Dishes)
	return &clone
}

func (r *InMemoryRepository) Create(ctx context.Context, m *Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start, end := DayWindow(m.Date)
	for _, existing := range r.menus {
		if existing.KitchenID != m.KitchenID || !existing.IsActive {
			continue
		}
		if !existing.Date.Before(start) && existing.Date.Before(end) {
			return apperror.Conflict("menu already exists for this date")
		}
	}

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.IsActive = true
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	r.menus[m.ID] = cloneMenu(m)
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.menus[id]
	if !ok {
		return nil, apperror.NotFound("menu not found")
	}
	return cloneMenu(m), nil
}

func (r *InMemoryRepository) FindByKitchen(ctx context.Context, kitchenID string) ([]*Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Menu
	for _, m := range r.menus {
		if m.KitchenID == kitchenID && m.IsActive {
			result = append(result, cloneMenu(m))
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (r *InMemoryRepository) FindByKitchenAndDate(
	ctx context.Context,
	kitchenID string,
	date time.Time,
) (*Menu, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	start, end := DayWindow(date)
	for _, m := range r.menus {
		if m.KitchenID != kitchenID || !m.IsActive {
			continue
		}
		if !m.Date.Before(start) && m.Date.Before(end) {
			return cloneMenu(m), nil
		}
	}
	return nil, apperror.NotFound("menu not found")
}

func (r *InMemoryRepository) Update(ctx context.Context, m *Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.menus[m.ID]
	if !ok {
		return apperror.NotFound("menu not found")
	}

	existing.Dishes = make([]Dish, len(m.Dishes))
	copy(existing.Dishes, m.Dishes)
	existing.IsActive = m.IsActive
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRepository) UpdateDishStatus(
	ctx context.Context,
	menuID string,
	dishID string,
	status string,
) (*Menu, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.menus[menuID]
	if !ok {
		return nil, apperror.NotFound("menu not found")
	}

	for i := range m.Dishes {
		if m.Dishes[i].ID == dishID {
			m.Dishes[i].Status = status
			m.UpdatedAt = time.Now()
			return cloneMenu(m), nil
		}
	}
	return nil, apperror.NotFound("dish not found")
}

func (r *InMemoryRepository) DecrementDishQuantity(
	ctx context.Context,
	menuID string,
	dishID string,
	by int,
) (*Menu, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.menus[menuID]
	if !ok {
		return nil, apperror.NotFound("menu not found")
	}

	for i := range m.Dishes {
		if m.Dishes[i].ID == dishID {
			remaining := m.Dishes[i].AvailableQuantity - by
			if remaining < 0 {
				remaining = 0
			}
			m.Dishes[i].AvailableQuantity = remaining
			m.UpdatedAt = time.Now()
			return cloneMenu(m), nil
		}
	}
	return nil, apperror.NotFound("dish not found")
}

func (r *InMemoryRepository) FindActiveInWindow(
	ctx context.Context,
	from, to time.Time,
	textQuery string,
) ([]*Menu, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(textQuery)

	var result []*Menu
	for _, m := range r.menus {
		if !m.IsActive {
			continue
		}
		if m.Date.Before(from) || !m.Date.Before(to) {
			continue
		}
		if needle != "" && !menuMatchesText(m, needle) {
			continue
		}
		result = append(result, cloneMenu(m))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func menuMatchesText(m *Menu, needle string) bool {
	for _, d := range m.Dishes {
		if strings.Contains(strings.ToLower(d.Name), needle) ||
			strings.Contains(strings.ToLower(d.Description), needle) {
			return true
		}
	}
	return false
}
