// Package discovery is the single geo/filter/rank engine behind every
// buyer-facing query. The kitchen and search route groups both consume it,
// so the two can never drift apart.
package discovery

import (
	"context"
	"time"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/geo"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/kitchen"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/menu"
)

const (
	// DefaultRadiusMeters applies whenever a center is given without an
	// explicit radius.
	DefaultRadiusMeters = 5000.0

	// KitchenResultCap bounds kitchen search results.
	KitchenResultCap = 50

	// DefaultTrendingLimit bounds trending results unless the caller asks
	// for a different limit.
	DefaultTrendingLimit = 10
)

type Engine struct {
	kitchens kitchen.Repository
	menus    menu.Repository
}

func NewEngine(kitchens kitchen.Repository, menus menu.Repository) *Engine {
	return &Engine{kitchens: kitchens, menus: menus}
}

type KitchenFilters struct {
	Center            *geo.Point
	MaxDistanceMeters float64
	Cuisines          []string
	MinRating         float64
	SortBy            string
}

type DishFilters struct {
	Query             string
	Category          string
	DietType          string
	MinPrice          *float64
	MaxPrice          *float64
	Center            *geo.Point
	MaxDistanceMeters float64
	SortBy            string
}

type DishResult struct {
	Dish    menu.Dish        `json:"dish"`
	Kitchen *kitchen.Kitchen `json:"kitchen"`
	MenuID  string           `json:"menu_id"`
}

type MenuWithKitchen struct {
	Menu    *menu.Menu       `json:"menu"`
	Kitchen *kitchen.Kitchen `json:"kitchen"`
}

type TrendingDish struct {
	DishResult
	TrendingScore int `json:"trending_score"`
}

func radiusOrDefault(r float64) float64 {
	if r <= 0 {
		return DefaultRadiusMeters
	}
	return r
}

// candidateKitchens resolves the geo-filtered candidate set: within-region
// when a center is given (unordered, so any sort key can be applied
// downstream), every visible kitchen otherwise.
func (e *Engine) candidateKitchens(
	ctx context.Context,
	center *geo.Point,
	maxDistanceMeters float64,
) ([]*kitchen.Kitchen, error) {

	if center == nil {
		return e.kitchens.FindAllVisible(ctx)
	}
	return e.kitchens.FindWithinRegion(ctx, *center, radiusOrDefault(maxDistanceMeters))
}

// --------------------------------------------------
// Kitchen search
// --------------------------------------------------
func (e *Engine) SearchKitchens(ctx context.Context, f KitchenFilters) ([]*kitchen.Kitchen, error) {
	// Nearest-first rides the distance-ordered near-query; every other
	// sort key works off the unordered candidate set.
	sortedByDistance := f.Center != nil && (f.SortBy == "" || f.SortBy == SortDistance)

	var (
		candidates []*kitchen.Kitchen
		err        error
	)
	if sortedByDistance {
		candidates, err = e.kitchens.FindNearby(ctx, *f.Center, radiusOrDefault(f.MaxDistanceMeters), 0)
	} else {
		candidates, err = e.candidateKitchens(ctx, f.Center, f.MaxDistanceMeters)
	}
	if err != nil {
		return nil, err
	}

	filtered := candidates[:0]
	for _, k := range candidates {
		if len(f.Cuisines) > 0 && !hasAnyCuisine(k, f.Cuisines) {
			continue
		}
		if f.MinRating > 0 && k.Rating < f.MinRating {
			continue
		}
		filtered = append(filtered, k)
	}

	if !sortedByDistance {
		if err := RankKitchens(filtered, f.SortBy, f.Center); err != nil {
			return nil, err
		}
	}

	if len(filtered) > KitchenResultCap {
		filtered = filtered[:KitchenResultCap]
	}
	return filtered, nil
}

func hasAnyCuisine(k *kitchen.Kitchen, wanted []string) bool {
	for _, w := range wanted {
		for _, c := range k.Cuisines {
			if c == w {
				return true
			}
		}
	}
	return false
}

// --------------------------------------------------
// Nearby kitchens (plain radius query, nearest first)
// --------------------------------------------------
func (e *Engine) NearbyKitchens(
	ctx context.Context,
	center geo.Point,
	maxDistanceMeters float64,
) ([]*kitchen.Kitchen, error) {
	return e.kitchens.FindNearby(ctx, center, radiusOrDefault(maxDistanceMeters), 0)
}

// --------------------------------------------------
// Today's menus joined to their kitchens
// --------------------------------------------------
func (e *Engine) TodayMenus(
	ctx context.Context,
	center *geo.Point,
	maxDistanceMeters float64,
) ([]MenuWithKitchen, error) {

	from, to := menu.DayWindow(time.Now())
	menus, err := e.menus.FindActiveInWindow(ctx, from, to, "")
	if err != nil {
		return nil, err
	}

	kitchenMap, err := e.kitchenMapFor(ctx, menus, center, maxDistanceMeters)
	if err != nil {
		return nil, err
	}

	results := make([]MenuWithKitchen, 0, len(menus))
	for _, m := range menus {
		k, ok := kitchenMap[m.KitchenID]
		if !ok {
			// Dangling kitchen reference: stores are eventually
			// consistent, so exclude silently rather than error.
			continue
		}
		results = append(results, MenuWithKitchen{Menu: m, Kitchen: k})
	}
	return results, nil
}

// kitchenMapFor resolves the owning kitchens of a menu batch, restricted to
// the geo candidate set when a center is supplied.
func (e *Engine) kitchenMapFor(
	ctx context.Context,
	menus []*menu.Menu,
	center *geo.Point,
	maxDistanceMeters float64,
) (map[string]*kitchen.Kitchen, error) {

	kitchenMap := make(map[string]*kitchen.Kitchen)

	if center != nil {
		candidates, err := e.kitchens.FindWithinRegion(ctx, *center, radiusOrDefault(maxDistanceMeters))
		if err != nil {
			return nil, err
		}
		for _, k := range candidates {
			kitchenMap[k.ID] = k
		}
		return kitchenMap, nil
	}

	seen := make(map[string]bool)
	ids := make([]string, 0, len(menus))
	for _, m := range menus {
		if !seen[m.KitchenID] {
			seen[m.KitchenID] = true
			ids = append(ids, m.KitchenID)
		}
	}

	kitchens, err := e.kitchens.FindVisibleByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, k := range kitchens {
		kitchenMap[k.ID] = k
	}
	return kitchenMap, nil
}

// --------------------------------------------------
// Dish search
// --------------------------------------------------
func (e *Engine) SearchDishes(ctx context.Context, f DishFilters) ([]DishResult, error) {
	from, to := menu.DayWindow(time.Now())

	// The text filter is applied at the store (menu granularity); dishes
	// of a matched menu are not re-filtered by text, matching the
	// index-level match semantics.
	menus, err := e.menus.FindActiveInWindow(ctx, from, to, f.Query)
	if err != nil {
		return nil, err
	}

	kitchenMap, err := e.kitchenMapFor(ctx, menus, f.Center, f.MaxDistanceMeters)
	if err != nil {
		return nil, err
	}

	var results []DishResult
	for _, m := range menus {
		k, ok := kitchenMap[m.KitchenID]
		if !ok {
			continue
		}

		for _, d := range m.Dishes {
			if d.Status != menu.DishAvailable {
				continue
			}
			if f.Category != "" && d.Category != f.Category {
				continue
			}
			if f.DietType != "" && d.DietType != f.DietType {
				continue
			}
			if f.MinPrice != nil && d.Price < *f.MinPrice {
				continue
			}
			if f.MaxPrice != nil && d.Price > *f.MaxPrice {
				continue
			}

			results = append(results, DishResult{
				Dish:    d,
				Kitchen: k,
				MenuID:  m.ID,
			})
		}
	}

	if err := RankDishes(results, f.SortBy, f.Center); err != nil {
		return nil, err
	}
	return results, nil
}

// --------------------------------------------------
// Trending dishes
// --------------------------------------------------
func (e *Engine) TrendingDishes(
	ctx context.Context,
	center *geo.Point,
	maxDistanceMeters float64,
	limit int,
) ([]TrendingDish, error) {

	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	from, to := menu.DayWindow(time.Now())
	menus, err := e.menus.FindActiveInWindow(ctx, from, to, "")
	if err != nil {
		return nil, err
	}

	kitchenMap, err := e.kitchenMapFor(ctx, menus, center, maxDistanceMeters)
	if err != nil {
		return nil, err
	}

	var dishes []TrendingDish
	for _, m := range menus {
		k, ok := kitchenMap[m.KitchenID]
		if !ok {
			continue
		}

		for _, d := range m.Dishes {
			if d.Status != menu.DishAvailable {
				continue
			}
			dishes = append(dishes, TrendingDish{
				DishResult: DishResult{
					Dish:    d,
					Kitchen: k,
					MenuID:  m.ID,
				},
				TrendingScore: d.UnitsSold() + k.TotalOrders,
			})
		}
	}

	RankTrending(dishes)

	if len(dishes) > limit {
		dishes = dishes[:limit]
	}
	return dishes, nil
}
