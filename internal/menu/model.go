package menu

import "time"

// Dish statuses. Operator-set: a dish can read "available" with zero stock
// left; nothing here auto-transitions on quantity changes.
const (
	DishAvailable   = "available"
	DishSoldOut     = "sold_out"
	DishUnavailable = "unavailable"
)

var ValidDishStatus = map[string]bool{
	DishAvailable:   true,
	DishSoldOut:     true,
	DishUnavailable: true,
}

var ValidCategories = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snacks":    true,
	"dessert":   true,
	"beverages": true,
}

var ValidDietTypes = map[string]bool{
	"veg":     true,
	"non_veg": true,
	"vegan":   true,
	"egg":     true,
}

// Dish is owned by its menu; it has no lifecycle of its own.
type Dish struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	DietType          string   `json:"diet_type"`
	Price             float64  `json:"price"`
	Photos            []string `json:"photos"`
	Quantity          int      `json:"quantity"`
	AvailableQuantity int      `json:"available_quantity"`
	Status            string   `json:"status"`
}

// UnitsSold is derived stock movement, the dish half of the trending score.
func (d Dish) UnitsSold() int {
	return d.Quantity - d.AvailableQuantity
}

type Menu struct {
	ID        string    `json:"id"`
	KitchenID string    `json:"kitchen_id"`
	Date      time.Time `json:"date"`
	Dishes    []Dish    `json:"dishes"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayWindow returns the [local midnight, next local midnight) interval
// containing t. Menu visibility ("today's menus") and the per-day
// uniqueness rule are both defined over this window.
func DayWindow(t time.Time) (time.Time, time.Time) {
	local := t.Local()
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1)
}
