package discovery

import (
	"sort"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/geo"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/kitchen"
)

// Sort keys accepted by the ranking engine.
const (
	SortDistance   = "distance"
	SortRating     = "rating"
	SortPriceLow   = "price_low"
	SortPriceHigh  = "price_high"
	SortPopularity = "popularity"
)

// RankKitchens orders kitchens in place. Unknown keys fall back to the
// default (newest first); distance requires a center.
func RankKitchens(kitchens []*kitchen.Kitchen, sortBy string, center *geo.Point) error {
	switch sortBy {
	case SortDistance:
		if center == nil {
			return apperror.Validation("distance sort requires a location")
		}
		sort.SliceStable(kitchens, func(i, j int) bool {
			return geo.Distance(*center, kitchens[i].Location) <
				geo.Distance(*center, kitchens[j].Location)
		})
	case SortRating:
		sort.SliceStable(kitchens, func(i, j int) bool {
			return kitchens[i].Rating > kitchens[j].Rating
		})
	case SortPopularity:
		sort.SliceStable(kitchens, func(i, j int) bool {
			return kitchens[i].TotalOrders > kitchens[j].TotalOrders
		})
	default:
		sort.SliceStable(kitchens, func(i, j int) bool {
			return kitchens[i].CreatedAt.After(kitchens[j].CreatedAt)
		})
	}
	return nil
}

// RankDishes orders dish results in place. The empty key keeps retrieval
// order (menus arrive newest first); unknown keys do the same, matching
// kitchen search's lenient handling.
func RankDishes(results []DishResult, sortBy string, center *geo.Point) error {
	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Dish.Price < results[j].Dish.Price
		})
	case SortPriceHigh:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Dish.Price > results[j].Dish.Price
		})
	case SortRating:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Kitchen.Rating > results[j].Kitchen.Rating
		})
	case SortPopularity:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Kitchen.TotalOrders > results[j].Kitchen.TotalOrders
		})
	case SortDistance:
		if center == nil {
			return apperror.Validation("distance sort requires a location")
		}
		sort.SliceStable(results, func(i, j int) bool {
			return geo.Distance(*center, results[i].Kitchen.Location) <
				geo.Distance(*center, results[j].Kitchen.Location)
		})
	}
	return nil
}

// RankTrending orders by descending trending score; ties keep retrieval
// order.
func RankTrending(dishes []TrendingDish) {
	sort.SliceStable(dishes, func(i, j int) bool {
		return dishes[i].TrendingScore > dishes[j].TrendingScore
	})
}
