package discovery

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/geo"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

func parseFloatParam(c *gin.Context, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &v, true
}

// parseCenter reads optional lng/lat. Both must be present together.
func parseCenter(c *gin.Context) (*geo.Point, bool) {
	lng, ok := parseFloatParam(c, "lng")
	if !ok {
		return nil, false
	}
	lat, ok := parseFloatParam(c, "lat")
	if !ok {
		return nil, false
	}

	if lng == nil && lat == nil {
		return nil, true
	}
	if lng == nil || lat == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng and lat must be supplied together"})
		return nil, false
	}

	p := geo.NewPoint(*lng, *lat)
	return &p, true
}

func parseMaxDistance(c *gin.Context) (float64, bool) {
	d, ok := parseFloatParam(c, "maxDistance")
	if !ok {
		return 0, false
	}
	if d == nil {
		return 0, true
	}
	return *d, true
}

// --------------------------------------------------
// GET /kitchens/search (public)
// --------------------------------------------------
func (h *Handler) SearchKitchens(c *gin.Context) {
	center, ok := parseCenter(c)
	if !ok {
		return
	}
	maxDistance, ok := parseMaxDistance(c)
	if !ok {
		return
	}
	minRating, ok := parseFloatParam(c, "minRating")
	if !ok {
		return
	}

	filters := KitchenFilters{
		Center:            center,
		MaxDistanceMeters: maxDistance,
		SortBy:            c.Query("sortBy"),
	}
	if cuisines := c.Query("cuisines"); cuisines != "" {
		filters.Cuisines = strings.Split(cuisines, ",")
	}
	if minRating != nil {
		filters.MinRating = *minRating
	}

	kitchens, err := h.engine.SearchKitchens(c.Request.Context(), filters)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(kitchens),
		"kitchens": kitchens,
	})
}

// --------------------------------------------------
// GET /kitchens/nearby (public)
// --------------------------------------------------
func (h *Handler) NearbyKitchens(c *gin.Context) {
	center, ok := parseCenter(c)
	if !ok {
		return
	}
	if center == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng and lat are required"})
		return
	}
	maxDistance, ok := parseMaxDistance(c)
	if !ok {
		return
	}

	kitchens, err := h.engine.NearbyKitchens(c.Request.Context(), *center, maxDistance)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(kitchens),
		"kitchens": kitchens,
	})
}

// --------------------------------------------------
// GET /menus/today (public)
// --------------------------------------------------
func (h *Handler) TodayMenus(c *gin.Context) {
	center, ok := parseCenter(c)
	if !ok {
		return
	}
	maxDistance, ok := parseMaxDistance(c)
	if !ok {
		return
	}

	menus, err := h.engine.TodayMenus(c.Request.Context(), center, maxDistance)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(menus),
		"menus": menus,
	})
}

// --------------------------------------------------
// GET /dishes/search (public)
// --------------------------------------------------
func (h *Handler) SearchDishes(c *gin.Context) {
	center, ok := parseCenter(c)
	if !ok {
		return
	}
	maxDistance, ok := parseMaxDistance(c)
	if !ok {
		return
	}
	minPrice, ok := parseFloatParam(c, "minPrice")
	if !ok {
		return
	}
	maxPrice, ok := parseFloatParam(c, "maxPrice")
	if !ok {
		return
	}

	filters := DishFilters{
		Query:             c.Query("query"),
		Category:          c.Query("category"),
		DietType:          c.Query("dietType"),
		MinPrice:          minPrice,
		MaxPrice:          maxPrice,
		Center:            center,
		MaxDistanceMeters: maxDistance,
		SortBy:            c.Query("sortBy"),
	}

	dishes, err := h.engine.SearchDishes(c.Request.Context(), filters)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(dishes),
		"dishes": dishes,
	})
}

// --------------------------------------------------
// GET /dishes/trending (public)
// --------------------------------------------------
func (h *Handler) TrendingDishes(c *gin.Context) {
	center, ok := parseCenter(c)
	if !ok {
		return
	}
	maxDistance, ok := parseMaxDistance(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = v
	}

	dishes, err := h.engine.TrendingDishes(c.Request.Context(), center, maxDistance, limit)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(dishes),
		"dishes": dishes,
	})
}
