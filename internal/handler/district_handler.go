package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/wilayah_api/internal/models"
)

// GetDistrict handles GET /districts/:id
func (h *TerritoryHandler) GetDistrict(c *gin.Context) {
	id, ok := parseID(c, "district")
	if !ok {
		return
	}
	district, err := h.repo.GetDistrict(storeContext(c), id)
	respondOne(c, "district", district, err)
}

// CreateDistrict handles POST /districts
func (h *TerritoryHandler) CreateDistrict(c *gin.Context) {
	var req models.DistrictRequest
	if !bindBody(c, &req) {
		return
	}
	id, err := h.repo.CreateDistrict(storeContext(c), req.District())
	respondCreated(c, "district", id, err)
}

// UpdateDistrict handles PUT /districts/:id
func (h *TerritoryHandler) UpdateDistrict(c *gin.Context) {
	id, ok := parseID(c, "district")
	if !ok {
		return
	}
	var req models.DistrictRequest
	if !bindBody(c, &req) {
		return
	}
	respondWrite(c, "update", "district", h.repo.UpdateDistrict(storeContext(c), id, req.District()))
}

// DeleteDistrict handles DELETE /districts/:id
func (h *TerritoryHandler) DeleteDistrict(c *gin.Context) {
	id, ok := parseID(c, "district")
	if !ok {
		return
	}
	respondWrite(c, "delete", "district", h.repo.DeleteDistrict(storeContext(c), id))
}

// ListVillagesByDistrict handles GET /districts/:id/villages
func (h *TerritoryHandler) ListVillagesByDistrict(c *gin.Context) {
	id, ok := parseID(c, "district")
	if !ok {
		return
	}
	villages, err := h.repo.ListVillagesByDistrict(storeContext(c), id)
	respondList(c, "villages", villages, err)
}
