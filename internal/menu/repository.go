package menu

import (
	"context"
	"time"
)

type Repository interface {
	// Create fails with Conflict when an active menu already exists for
	// the kitchen on the menu's calendar day.
	Create(ctx context.Context, m *Menu) error

	FindByID(ctx context.Context, id string) (*Menu, error)
	FindByKitchen(ctx context.Context, kitchenID string) ([]*Menu, error)
	FindByKitchenAndDate(ctx context.Context, kitchenID string, date time.Time) (*Menu, error)

	Update(ctx context.Context, m *Menu) error
	UpdateDishStatus(ctx context.Context, menuID, dishID, status string) (*Menu, error)

	// DecrementDishQuantity reduces a dish's available quantity by the
	// given amount, clamping at zero. The dish's status is never touched.
	DecrementDishQuantity(ctx context.Context, menuID, dishID string, by int) (*Menu, error)

	// FindActiveInWindow returns active menus whose date falls in
	// [from, to), newest first. textQuery, when non-empty, restricts to
	// menus containing a dish whose name or description matches it
	// (case-insensitive substring).
	FindActiveInWindow(ctx context.Context, from, to time.Time, textQuery string) ([]*Menu, error)
}
