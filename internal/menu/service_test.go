package menu

import (
	"context"
	"testing"
	"time"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/geo"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/kitchen"
)

func newTestService(t *testing.T) (*Service, *kitchen.Kitchen) {
	t.Helper()

	kitchens := kitchen.NewInMemoryRepository()
	k := &kitchen.Kitchen{
		CookID:   "cook-1",
		Name:     "Sharma Rasoi",
		Location: geo.NewPoint(77.2090, 28.6139),
		Status:   kitchen.StatusApproved,
	}
	if err := kitchens.Create(context.Background(), k); err != nil {
		t.Fatalf("seed kitchen: %v", err)
	}

	return NewService(NewInMemoryRepository(), kitchens), k
}

func dalInput() DishInput {
	return DishInput{
		Name:     "Dal Tadka",
		Category: "lunch",
		Price:    120,
		Quantity: 10,
	}
}

func TestCreateMenuDefaults(t *testing.T) {
	svc, k := newTestService(t)

	m, err := svc.CreateMenu(context.Background(), k.ID, "cook-1", time.Now(), []DishInput{dalInput()})
	if err != nil {
		t.Fatalf("create menu failed: %v", err)
	}
	if len(m.Dishes) != 1 {
		t.Fatalf("expected 1 dish, got %d", len(m.Dishes))
	}

	d := m.Dishes[0]
	if d.DietType != "veg" {
		t.Errorf("expected diet type to default to veg, got %q", d.DietType)
	}
	if d.AvailableQuantity != d.Quantity {
		t.Errorf("expected available quantity to default to quantity, got %d/%d", d.AvailableQuantity, d.Quantity)
	}
	if d.Status != DishAvailable {
		t.Errorf("expected new dish to be available, got %q", d.Status)
	}
	if d.ID == "" {
		t.Error("expected a generated dish id")
	}
}

func TestCreateMenuValidation(t *testing.T) {
	svc, k := newTestService(t)
	ctx := context.Background()

	badCategory := dalInput()
	badCategory.Category = "brunch"
	if _, err := svc.CreateMenu(ctx, k.ID, "cook-1", time.Now(), []DishInput{badCategory}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for unknown category, got %v", err)
	}

	tooMany := 15
	overStock := dalInput()
	overStock.AvailableQuantity = &tooMany
	if _, err := svc.CreateMenu(ctx, k.ID, "cook-1", time.Now(), []DishInput{overStock}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for available > quantity, got %v", err)
	}

	negPrice := dalInput()
	negPrice.Price = -5
	if _, err := svc.CreateMenu(ctx, k.ID, "cook-1", time.Now(), []DishInput{negPrice}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for negative price, got %v", err)
	}
}

func TestCreateMenuSameDayConflicts(t *testing.T) {
	svc, k := newTestService(t)
	ctx := context.Background()

	morning := time.Date(2026, 8, 30, 8, 0, 0, 0, time.Local)
	evening := time.Date(2026, 8, 30, 19, 0, 0, 0, time.Local)

	if _, err := svc.CreateMenu(ctx, k.ID, "cook-1", morning, []DishInput{dalInput()}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateMenu(ctx, k.ID, "cook-1", evening, []DishInput{dalInput()})
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Errorf("expected conflict for second menu on the same day, got %v", err)
	}

	// The next day is a fresh slot.
	nextDay := morning.AddDate(0, 0, 1)
	if _, err := svc.CreateMenu(ctx, k.ID, "cook-1", nextDay, []DishInput{dalInput()}); err != nil {
		t.Errorf("expected create on the next day to succeed, got %v", err)
	}
}

func TestCreateMenuRejectsNonOwner(t *testing.T) {
	svc, k := newTestService(t)

	_, err := svc.CreateMenu(context.Background(), k.ID, "cook-2", time.Now(), []DishInput{dalInput()})
	if !apperror.IsKind(err, apperror.KindForbidden) {
		t.Errorf("expected forbidden for non-owner, got %v", err)
	}
}

func TestToggleDishStatus(t *testing.T) {
	svc, k := newTestService(t)
	ctx := context.Background()

	m, err := svc.CreateMenu(ctx, k.ID, "cook-1", time.Now(), []DishInput{dalInput()})
	if err != nil {
		t.Fatalf("create menu failed: %v", err)
	}
	dishID := m.Dishes[0].ID

	updated, err := svc.ToggleDishStatus(ctx, m.ID, dishID, DishSoldOut, "cook-1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if updated.Dishes[0].Status != DishSoldOut {
		t.Errorf("expected %q, got %q", DishSoldOut, updated.Dishes[0].Status)
	}
	// Status is operator-set; stock is untouched.
	if updated.Dishes[0].AvailableQuantity != 10 {
		t.Errorf("expected stock unchanged, got %d", updated.Dishes[0].AvailableQuantity)
	}

	if _, err := svc.ToggleDishStatus(ctx, m.ID, dishID, "gone", "cook-1"); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}
	if _, err := svc.ToggleDishStatus(ctx, m.ID, dishID, DishAvailable, "cook-2"); !apperror.IsKind(err, apperror.KindForbidden) {
		t.Errorf("expected forbidden for non-owner toggle, got %v", err)
	}
}

func TestDecrementDishStock(t *testing.T) {
	svc, k := newTestService(t)
	ctx := context.Background()

	m, err := svc.CreateMenu(ctx, k.ID, "cook-1", time.Now(), []DishInput{dalInput()})
	if err != nil {
		t.Fatalf("create menu failed: %v", err)
	}
	dishID := m.Dishes[0].ID

	updated, err := svc.DecrementDishStock(ctx, m.ID, dishID, 4, "cook-1")
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if updated.Dishes[0].AvailableQuantity != 6 {
		t.Errorf("expected 6 remaining, got %d", updated.Dishes[0].AvailableQuantity)
	}

	// Over-decrement clamps at zero and leaves status alone.
	updated, err = svc.DecrementDishStock(ctx, m.ID, dishID, 100, "cook-1")
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if updated.Dishes[0].AvailableQuantity != 0 {
		t.Errorf("expected stock clamped at 0, got %d", updated.Dishes[0].AvailableQuantity)
	}
	if updated.Dishes[0].Status != DishAvailable {
		t.Errorf("expected status untouched at zero stock, got %q", updated.Dishes[0].Status)
	}

	if _, err := svc.DecrementDishStock(ctx, m.ID, dishID, 0, "cook-1"); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for non-positive amount, got %v", err)
	}
	if _, err := svc.DecrementDishStock(ctx, m.ID, dishID, 1, "cook-2"); !apperror.IsKind(err, apperror.KindForbidden) {
		t.Errorf("expected forbidden for non-owner, got %v", err)
	}
}

func TestCopyYesterdayResetsStock(t *testing.T) {
	repo := NewInMemoryRepository()
	kitchens := kitchen.NewInMemoryRepository()
	ctx := context.Background()

	k := &kitchen.Kitchen{CookID: "cook-1", Name: "Sharma Rasoi", Status: kitchen.StatusApproved}
	if err := kitchens.Create(ctx, k); err != nil {
		t.Fatalf("seed kitchen: %v", err)
	}
	svc := NewService(repo, kitchens)

	// Yesterday's menu, partially sold and flipped sold_out by the cook.
	yesterday := &Menu{
		KitchenID: k.ID,
		Date:      time.Now().AddDate(0, 0, -1),
		Dishes: []Dish{{
			ID:                "dish-old",
			Name:              "Dal Tadka",
			Category:          "lunch",
			DietType:          "veg",
			Price:             120,
			Quantity:          20,
			AvailableQuantity: 5,
			Status:            DishSoldOut,
		}},
	}
	if err := repo.Create(ctx, yesterday); err != nil {
		t.Fatalf("seed yesterday: %v", err)
	}

	copied, err := svc.CopyYesterday(ctx, k.ID, "cook-1")
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}

	d := copied.Dishes[0]
	if d.AvailableQuantity != 20 {
		t.Errorf("expected stock reset to full quantity, got %d", d.AvailableQuantity)
	}
	if d.Status != DishAvailable {
		t.Errorf("expected copied dish to be available, got %q", d.Status)
	}
	if d.ID == "dish-old" {
		t.Error("expected copied dish to get a fresh id")
	}
	copiedStart, _ := DayWindow(copied.Date)
	todayStart, _ := DayWindow(time.Now())
	if !copiedStart.Equal(todayStart) {
		t.Errorf("expected copied menu dated today, got %v", copied.Date)
	}

	// Running it again must hit the today-already-exists case.
	if _, err := svc.CopyYesterday(ctx, k.ID, "cook-1"); !apperror.IsKind(err, apperror.KindConflict) {
		t.Errorf("expected conflict on second copy, got %v", err)
	}
}

func TestCopyYesterdayWithoutSource(t *testing.T) {
	svc, k := newTestService(t)

	_, err := svc.CopyYesterday(context.Background(), k.ID, "cook-1")
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("expected not found when yesterday has no menu, got %v", err)
	}
}

func TestDayWindowBoundaries(t *testing.T) {
	noon := time.Date(2026, 8, 30, 12, 30, 0, 0, time.Local)
	start, end := DayWindow(noon)

	if !start.Equal(time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)) {
		t.Errorf("unexpected window start: %v", start)
	}
	if !end.Equal(time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)) {
		t.Errorf("unexpected window end: %v", end)
	}

	lastSecond := end.Add(-time.Second)
	if lastSecond.Before(start) || !lastSecond.Before(end) {
		t.Error("23:59:59 should fall inside the day window")
	}
	midnight := end
	if !midnight.Before(start) && midnight.Before(end) {
		t.Error("the next midnight must fall outside the day window")
	}
}
