package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adspace-chat/internal/services"
)

// CatalogHandler serves business pages and adspace listings.
type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterPublicRoutes mounts the read-only endpoints.
func (h *CatalogHandler) RegisterPublicRoutes(r gin.IRouter) {
	r.GET("/adspaces", h.ListAdspaces)
	r.GET("/adspaces/types", h.ListTypes)
	r.GET("/adspaces/:adspace_id", h.GetAdspace)
	r.GET("/businesses/:business_id", h.GetBusiness)
}

// RegisterPrivateRoutes mounts the endpoints that need a caller.
func (h *CatalogHandler) RegisterPrivateRoutes(r gin.IRouter) {
	r.GET("/adspaces/mine", h.ListMyAdspaces)
	r.POST("/adspaces", h.CreateAdspace)
	r.PUT("/adspaces/:adspace_id", h.UpdateAdspace)
	r.GET("/businesses/mine", h.MyBusiness)
}

func (h *CatalogHandler) ListAdspaces(c *gin.Context) {
	items, err := h.catalog.ListAdspaces(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adspaces": items})
}

func (h *CatalogHandler) ListMyAdspaces(c *gin.Context) {
	items, err := h.catalog.ListMyAdspaces(c.Request.Context(), callerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adspaces": items})
}

func (h *CatalogHandler) ListTypes(c *gin.Context) {
	types, err := h.catalog.AdspaceTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"types": types})
}

func (h *CatalogHandler) GetAdspace(c *gin.Context) {
	adspaceID, ok := pathID(c, "adspace_id")
	if !ok {
		return
	}
	item, err := h.catalog.GetAdspace(c.Request.Context(), adspaceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CatalogHandler) CreateAdspace(c *gin.Context) {
	var in services.AdspaceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgValidation})
		return
	}
	created, err := h.catalog.CreateAdspace(c.Request.Context(), callerFromContext(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler) UpdateAdspace(c *gin.Context) {
	adspaceID, ok := pathID(c, "adspace_id")
	if !ok {
		return
	}
	var in services.AdspaceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgValidation})
		return
	}
	updated, err := h.catalog.UpdateAdspace(c.Request.Context(), callerFromContext(c), adspaceID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CatalogHandler) GetBusiness(c *gin.Context) {
	businessID, ok := pathID(c, "business_id")
	if !ok {
		return
	}
	detail, err := h.catalog.GetBusiness(c.Request.Context(), businessID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *CatalogHandler) MyBusiness(c *gin.Context) {
	business, err := h.catalog.MyBusiness(c.Request.Context(), callerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}
