package kitchen

import (
	"time"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/geo"
)

// Kitchen lifecycle statuses. Admin moves kitchens between them; only
// approved and pending kitchens are visible to buyers.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusSuspended = "suspended"
)

// Cuisines a kitchen may tag itself with.
var ValidCuisines = map[string]bool{
	"north_indian":  true,
	"south_indian":  true,
	"chinese":       true,
	"continental":   true,
	"italian":       true,
	"mexican":       true,
	"bengali":       true,
	"gujarati":      true,
	"punjabi":       true,
	"maharashtrian": true,
	"rajasthani":    true,
	"street_food":   true,
	"desserts":      true,
	"bakery":        true,
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type Kitchen struct {
	ID           string    `json:"id"`
	CookID       string    `json:"cook_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Photos       []string  `json:"photos"`
	Address      Address   `json:"address"`
	Location     geo.Point `json:"location"`
	Cuisines     []string  `json:"cuisines"`
	Status       string    `json:"status"`
	FSSAILicense string    `json:"fssai_license,omitempty"`
	Rating       float64   `json:"rating"`
	TotalRatings int       `json:"total_ratings"`
	TotalOrders  int       `json:"total_orders"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Visible reports whether buyers may see this kitchen. Rejected and
// suspended kitchens stay hidden; soft-deactivated ones too.
func (k *Kitchen) Visible() bool {
	return k.IsActive && (k.Status == StatusApproved || k.Status == StatusPending)
}
