package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/wilayah_api/internal/models"
	"github.com/GTDGit/wilayah_api/internal/utils"
)

// GetVillage handles GET /villages/:id
func (h *TerritoryHandler) GetVillage(c *gin.Context) {
	id, ok := parseID(c, "village")
	if !ok {
		return
	}
	village, err := h.repo.GetVillage(storeContext(c), id)
	respondOne(c, "village", village, err)
}

// CreateVillage handles POST /villages
func (h *TerritoryHandler) CreateVillage(c *gin.Context) {
	var req models.VillageRequest
	if !bindBody(c, &req) {
		return
	}
	id, err := h.repo.CreateVillage(storeContext(c), req.Village())
	respondCreated(c, "village", id, err)
}

// UpdateVillage handles PUT /villages/:id
func (h *TerritoryHandler) UpdateVillage(c *gin.Context) {
	id, ok := parseID(c, "village")
	if !ok {
		return
	}
	var req models.VillageRequest
	if !bindBody(c, &req) {
		return
	}
	respondWrite(c, "update", "village", h.repo.UpdateVillage(storeContext(c), id, req.Village()))
}

// DeleteVillage handles DELETE /villages/:id
func (h *TerritoryHandler) DeleteVillage(c *gin.Context) {
	id, ok := parseID(c, "village")
	if !ok {
		return
	}
	respondWrite(c, "delete", "village", h.repo.DeleteVillage(storeContext(c), id))
}

// GetFullAdminData returns the province, regency and district of a village
// GET /villages/:id/details
func (h *TerritoryHandler) GetFullAdminData(c *gin.Context) {
	id, ok := parseID(c, "village")
	if !ok {
		return
	}
	data, err := h.repo.GetFullAdminData(storeContext(c), id)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch admin data: "+err.Error())
		return
	}
	if data == nil {
		utils.Error(c, http.StatusNotFound, "Village not found")
		return
	}
	utils.OK(c, data)
}
