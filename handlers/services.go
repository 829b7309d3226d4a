package handlers

import (
	"net/http"

	"localbooker/services/catalog"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the public catalog and its admin CRUD.
type ServiceHandler struct {
	Catalog catalog.CatalogService
}

// ListServicesHandler handles GET /services. The listing is enriched with the
// status of whatever booking currently occupies each service.
func (h *ServiceHandler) ListServicesHandler(c *gin.Context) {
	listings, err := h.Catalog.ListWithBookingState(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, listings)
}

// GetServiceHandler handles GET /services/id/:id.
func (h *ServiceHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Catalog.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}

type serviceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// CreateServiceHandler handles POST /admin/services.
func (h *ServiceHandler) CreateServiceHandler(c *gin.Context) {
	var input serviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc, err := h.Catalog.CreateService(c.Request.Context(), input.Name, input.Description, input.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateServiceHandler handles PUT /admin/services/update/:id.
func (h *ServiceHandler) UpdateServiceHandler(c *gin.Context) {
	var input serviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc, err := h.Catalog.UpdateService(c.Request.Context(), c.Param("id"), input.Name, input.Description, input.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteServiceHandler handles DELETE /admin/services/delete/:id.
func (h *ServiceHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Catalog.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}
