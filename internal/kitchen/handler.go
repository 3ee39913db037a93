package kitchen

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
)

type Handler struct {
	service *Service
}

type AdminHandler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func NewAdminHandler(service *Service) *AdminHandler {
	return &AdminHandler{service: service}
}

type kitchenRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Street       string   `json:"street"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	Lng          float64  `json:"lng"`
	Lat          float64  `json:"lat"`
	Cuisines     []string `json:"cuisines"`
	FSSAILicense string   `json:"fssai_license"`
}

func (r kitchenRequest) toInput() RegisterInput {
	return RegisterInput{
		Name:        r.Name,
		Description: r.Description,
		Address: Address{
			Street:  r.Street,
			City:    r.City,
			State:   r.State,
			Pincode: r.Pincode,
		},
		Lng:          r.Lng,
		Lat:          r.Lat,
		Cuisines:     r.Cuisines,
		FSSAILicense: r.FSSAILicense,
	}
}

// --------------------------------------------------
// POST /kitchens (cook)
// --------------------------------------------------
func (h *Handler) Register(c *gin.Context) {
	var req kitchenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cookID := c.GetString("userID")
	if cookID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	k, err := h.service.Register(c.Request.Context(), cookID, req.toInput())
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, k)
}

// --------------------------------------------------
// GET /kitchens/me (cook)
// --------------------------------------------------
func (h *Handler) GetMine(c *gin.Context) {
	cookID := c.GetString("userID")
	if cookID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	k, err := h.service.GetMine(c.Request.Context(), cookID)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, k)
}

// --------------------------------------------------
// GET /kitchens/:id (public)
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	k, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, k)
}

// --------------------------------------------------
// PUT /kitchens/:id (cook, owner only)
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req kitchenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cookID := c.GetString("userID")
	if cookID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	k, err := h.service.Update(c.Request.Context(), c.Param("id"), cookID, req.toInput())
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, k)
}

// --------------------------------------------------
// POST /kitchens/:id/photos (cook, owner only)
// --------------------------------------------------
func (h *Handler) UploadPhotos(c *gin.Context) {
	cookID := c.GetString("userID")
	if cookID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil || form.File["photos"] == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photos are required"})
		return
	}

	urls, err := h.service.UploadPhotos(
		c.Request.Context(),
		c.Param("id"),
		cookID,
		form.File["photos"],
	)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "photos uploaded successfully",
		"photos":  urls,
	})
}

// --------------------------------------------------
// DELETE /kitchens/:id (cook, owner only, soft delete)
// --------------------------------------------------
func (h *Handler) Deactivate(c *gin.Context) {
	cookID := c.GetString("userID")
	if cookID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), c.Param("id"), cookID); err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "kitchen deactivated"})
}

// --------------------------------------------------
// Admin status transitions
// --------------------------------------------------
func (h *AdminHandler) Approve(c *gin.Context) {
	k, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, k)
}

func (h *AdminHandler) Reject(c *gin.Context) {
	k, err := h.service.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, k)
}

func (h *AdminHandler) Suspend(c *gin.Context) {
	k, err := h.service.Suspend(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, k)
}
