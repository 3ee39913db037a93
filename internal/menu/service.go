package menu

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/kitchen"
)

// KitchenDirectory resolves menu ownership. Satisfied by the kitchen
// repository; every mutating call re-verifies against it, never a cache.
type KitchenDirectory interface {
	FindByID(ctx context.Context, id string) (*kitchen.Kitchen, error)
}

type Service struct {
	repo     Repository
	kitchens KitchenDirectory
}

func NewService(repo Repository, kitchens KitchenDirectory) *Service {
	return &Service{repo: repo, kitchens: kitchens}
}

type DishInput struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	DietType          string   `json:"diet_type"`
	Price             float64  `json:"price"`
	Photos            []string `json:"photos"`
	Quantity          int      `json:"quantity"`
	AvailableQuantity *int     `json:"available_quantity"`
}

func buildDish(in DishInput) (Dish, error) {
	if in.Name == "" {
		return Dish{}, apperror.Validation("dish name is required")
	}
	if !ValidCategories[in.Category] {
		return Dish{}, apperror.Validation("unknown category: " + in.Category)
	}
	dietType := in.DietType
	if dietType == "" {
		dietType = "veg"
	}
	if !ValidDietTypes[dietType] {
		return Dish{}, apperror.Validation("unknown diet type: " + dietType)
	}
	if in.Price < 0 {
		return Dish{}, apperror.Validation("price must be non-negative")
	}
	if in.Quantity < 0 {
		return Dish{}, apperror.Validation("quantity must be non-negative")
	}

	available := in.Quantity
	if in.AvailableQuantity != nil {
		available = *in.AvailableQuantity
	}
	if available < 0 || available > in.Quantity {
		return Dish{}, apperror.Validation("available quantity must be between 0 and quantity")
	}

	photos := in.Photos
	if photos == nil {
		photos = []string{}
	}

	return Dish{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Description:       in.Description,
		Category:          in.Category,
		DietType:          dietType,
		Price:             in.Price,
		Photos:            photos,
		Quantity:          in.Quantity,
		AvailableQuantity: available,
		Status:            DishAvailable,
	}, nil
}

func (s *Service) requireOwner(ctx context.Context, kitchenID, cookID string) (*kitchen.Kitchen, error) {
	k, err := s.kitchens.FindByID(ctx, kitchenID)
	if err != nil {
		return nil, err
	}
	if k.CookID != cookID {
		return nil, apperror.Forbidden("not the kitchen owner")
	}
	return k, nil
}

// --------------------------------------------------
// Create menu (one per kitchen per day)
// --------------------------------------------------
func (s *Service) CreateMenu(
	ctx context.Context,
	kitchenID string,
	cookID string,
	date time.Time,
	dishes []DishInput,
) (*Menu, error) {

	if _, err := s.requireOwner(ctx, kitchenID, cookID); err != nil {
		return nil, err
	}

	built := make([]Dish, 0, len(dishes))
	for _, in := range dishes {
		d, err := buildDish(in)
		if err != nil {
			return nil, err
		}
		built = append(built, d)
	}

	// Fast user-facing pre-check; the store's unique index is the real
	// enforcement under concurrency.
	if _, err := s.repo.FindByKitchenAndDate(ctx, kitchenID, date); err == nil {
		return nil, apperror.Conflict("menu already exists for this date")
	} else if !apperror.IsKind(err, apperror.KindNotFound) {
		return nil, err
	}

	m := &Menu{
		ID:        uuid.New().String(),
		KitchenID: kitchenID,
		Date:      date,
		Dishes:    built,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) GetMenu(ctx context.Context, menuID string) (*Menu, error) {
	return s.repo.FindByID(ctx, menuID)
}

func (s *Service) GetMenusByKitchen(ctx context.Context, kitchenID string) ([]*Menu, error) {
	return s.repo.FindByKitchen(ctx, kitchenID)
}

// --------------------------------------------------
// Update menu dishes (owner only; date is immutable)
// --------------------------------------------------
func (s *Service) UpdateMenu(
	ctx context.Context,
	menuID string,
	cookID string,
	dishes []DishInput,
) (*Menu, error) {

	m, err := s.repo.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwner(ctx, m.KitchenID, cookID); err != nil {
		return nil, err
	}

	built := make([]Dish, 0, len(dishes))
	for _, in := range dishes {
		d, err := buildDish(in)
		if err != nil {
			return nil, err
		}
		built = append(built, d)
	}

	m.Dishes = built
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// --------------------------------------------------
// Toggle dish status (owner only, operator-set)
// --------------------------------------------------
func (s *Service) ToggleDishStatus(
	ctx context.Context,
	menuID string,
	dishID string,
	status string,
	cookID string,
) (*Menu, error) {

	if !ValidDishStatus[status] {
		return nil, apperror.Validation("unknown dish status: " + status)
	}

	m, err := s.repo.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwner(ctx, m.KitchenID, cookID); err != nil {
		return nil, err
	}

	return s.repo.UpdateDishStatus(ctx, menuID, dishID, status)
}

// --------------------------------------------------
// Decrement dish stock (owner only)
// --------------------------------------------------
// Stock and status are independent: hitting zero never flips the dish to
// sold_out, that stays an operator decision.
func (s *Service) DecrementDishStock(
	ctx context.Context,
	menuID string,
	dishID string,
	by int,
	cookID string,
) (*Menu, error) {

	if by <= 0 {
		return nil, apperror.Validation("quantity must be positive")
	}

	m, err := s.repo.FindByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwner(ctx, m.KitchenID, cookID); err != nil {
		return nil, err
	}

	return s.repo.DecrementDishQuantity(ctx, menuID, dishID, by)
}

// --------------------------------------------------
// Copy yesterday's menu to today
// --------------------------------------------------
// Two-step check-then-act: both failure modes (no menu yesterday, menu
// already present today) are user errors, and concurrent identical calls
// are settled by the store's unique index.
func (s *Service) CopyYesterday(ctx context.Context, kitchenID, cookID string) (*Menu, error) {
	if _, err := s.requireOwner(ctx, kitchenID, cookID); err != nil {
		return nil, err
	}

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	source, err := s.repo.FindByKitchenAndDate(ctx, kitchenID, yesterday)
	if apperror.IsKind(err, apperror.KindNotFound) {
		return nil, apperror.NotFound("no menu found for yesterday")
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByKitchenAndDate(ctx, kitchenID, now); err == nil {
		return nil, apperror.Conflict("menu already exists for today")
	} else if !apperror.IsKind(err, apperror.KindNotFound) {
		return nil, err
	}

	dishes := make([]Dish, 0, len(source.Dishes))
	for _, d := range source.Dishes {
		// Stock does not carry over: fresh day, full quantity, available.
		dishes = append(dishes, Dish{
			ID:                uuid.New().String(),
			Name:              d.Name,
			Description:       d.Description,
			Category:          d.Category,
			DietType:          d.DietType,
			Price:             d.Price,
			Photos:            d.Photos,
			Quantity:          d.Quantity,
			AvailableQuantity: d.Quantity,
			Status:            DishAvailable,
		})
	}

	m := &Menu{
		ID:        uuid.New().String(),
		KitchenID: kitchenID,
		Date:      now,
		Dishes:    dishes,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
