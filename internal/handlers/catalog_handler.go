package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postad/postad-api/internal/services"
)

// CatalogHandler serves the option lists behind the form's selects
type CatalogHandler struct {
	service services.CatalogServiceInterface
}

func NewCatalogHandler(service services.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) GetBrands(c *gin.Context) {
	brands, err := h.service.Brands(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *CatalogHandler) GetModels(c *gin.Context) {
	models, err := h.service.Models(c.Request.Context(), c.Query("brand"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"models": models})
}

func (h *CatalogHandler) GetVariants(c *gin.Context) {
	variants, err := h.service.Variants(c.Request.Context(), c.Query("model"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"variants": variants})
}

func (h *CatalogHandler) GetRegions(c *gin.Context) {
	regions, err := h.service.Regions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"regions": regions})
}

func (h *CatalogHandler) GetCities(c *gin.Context) {
	cities, err := h.service.Cities(c.Request.Context(), c.Query("region"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

func (h *CatalogHandler) GetOptions(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context(), c.Param("group"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"options": options})
}
