package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/wilayah_api/internal/models"
)

// GetRegency handles GET /regencies/:id
func (h *TerritoryHandler) GetRegency(c *gin.Context) {
	id, ok := parseID(c, "regency")
	if !ok {
		return
	}
	regency, err := h.repo.GetRegency(storeContext(c), id)
	respondOne(c, "regency", regency, err)
}

// CreateRegency handles POST /regencies
func (h *TerritoryHandler) CreateRegency(c *gin.Context) {
	var req models.RegencyRequest
	if !bindBody(c, &req) {
		return
	}
	id, err := h.repo.CreateRegency(storeContext(c), req.Regency())
	respondCreated(c, "regency", id, err)
}

// UpdateRegency handles PUT /regencies/:id
func (h *TerritoryHandler) UpdateRegency(c *gin.Context) {
	id, ok := parseID(c, "regency")
	if !ok {
		return
	}
	var req models.RegencyRequest
	if !bindBody(c, &req) {
		return
	}
	respondWrite(c, "update", "regency", h.repo.UpdateRegency(storeContext(c), id, req.Regency()))
}

// DeleteRegency handles DELETE /regencies/:id
func (h *TerritoryHandler) DeleteRegency(c *gin.Context) {
	id, ok := parseID(c, "regency")
	if !ok {
		return
	}
	respondWrite(c, "delete", "regency", h.repo.DeleteRegency(storeContext(c), id))
}

// ListDistrictsByRegency handles GET /regencies/:id/districts
func (h *TerritoryHandler) ListDistrictsByRegency(c *gin.Context) {
	id, ok := parseID(c, "regency")
	if !ok {
		return
	}
	districts, err := h.repo.ListDistrictsByRegency(storeContext(c), id)
	respondList(c, "districts", districts, err)
}
