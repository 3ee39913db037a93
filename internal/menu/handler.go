package menu

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /kitchens/:id/menus (cook)
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Date   string      `json:"date"`
		Dishes []DishInput `json:"dishes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
		return
	}

	cookID := c.GetString("userID")
	if cookID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.service.CreateMenu(
		c.Request.Context(),
		c.Param("id"),
		cookID,
		date,
		req.Dishes,
	)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// --------------------------------------------------
// GET /kitchens/:id/menus (public)
// --------------------------------------------------
func (h *Handler) ListByKitchen(c *gin.Context) {
	menus, err := h.service.GetMenusByKitchen(c.Request.Context(), c.Param("id"))
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
// PUT /kitchens/menus/:menuId (cook)
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req struct {
		Dishes []DishInput `json:"dishes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cookID := c.GetString("userID")
	if cookID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.service.UpdateMenu(
		c.Request.Context(),
		c.Param("menuId"),
		cookID,
		req.Dishes,
	)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// PATCH /kitchens/menus/:menuId/dishes/:dishId/status (cook)
// --------------------------------------------------
func (h *Handler) ToggleDishStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cookID := c.GetString("userID")
	if cookID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.service.ToggleDishStatus(
		c.Request.Context(),
		c.Param("menuId"),
		c.Param("dishId"),
		req.Status,
		cookID,
	)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// PATCH /kitchens/menus/:menuId/dishes/:dishId/quantity (cook)
// --------------------------------------------------
func (h *Handler) DecrementDishQuantity(c *gin.Context) {
	var req struct {
		By int `json:"by"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cookID := c.GetString("userID")
	if cookID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.service.DecrementDishStock(
		c.Request.Context(),
		c.Param("menuId"),
		c.Param("dishId"),
		req.By,
		cookID,
	)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// --------------------------------------------------
// POST /kitchens/:id/menus/copy-yesterday (cook)
// --------------------------------------------------
func (h *Handler) CopyYesterday(c *gin.Context) {
	cookID := c.GetString("userID")
	if cookID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	m, err := h.service.CopyYesterday(c.Request.Context(), c.Param("id"), cookID)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, m)
}
