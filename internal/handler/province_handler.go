package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/wilayah_api/internal/models"
)

// ListProvinces returns all provinces
// GET /provinces
func (h *TerritoryHandler) ListProvinces(c *gin.Context) {
	provinces, err := h.repo.ListProvinces(storeContext(c))
	respondList(c, "provinces", provinces, err)
}

// CreateProvince inserts a province
// POST /provinces
func (h *TerritoryHandler) CreateProvince(c *gin.Context) {
	var req models.ProvinceRequest
	if !bindBody(c, &req) {
		return
	}
	id, err := h.repo.CreateProvince(storeContext(c), req.Province())
	respondCreated(c, "province", id, err)
}

// GetProvince returns one province
// GET /provinces/:id
func (h *TerritoryHandler) GetProvince(c *gin.Context) {
	id, ok := parseID(c, "province")
	if !ok {
		return
	}
	province, err := h.repo.GetProvince(storeContext(c), id)
	respondOne(c, "province", province, err)
}

// UpdateProvince rewrites a province
// PUT /provinces/:id
func (h *TerritoryHandler) UpdateProvince(c *gin.Context) {
	id, ok := parseID(c, "province")
	if !ok {
		return
	}
	var req models.ProvinceRequest
	if !bindBody(c, &req) {
		return
	}
	respondWrite(c, "update", "province", h.repo.UpdateProvince(storeContext(c), id, req.Province()))
}

// DeleteProvince removes a province
// DELETE /provinces/:id
func (h *TerritoryHandler) DeleteProvince(c *gin.Context) {
	id, ok := parseID(c, "province")
	if !ok {
		return
	}
	respondWrite(c, "delete", "province", h.repo.DeleteProvince(storeContext(c), id))
}

// ListRegenciesByProvince returns all regencies for a given province
// GET /provinces/:id/regencies
func (h *TerritoryHandler) ListRegenciesByProvince(c *gin.Context) {
	id, ok := parseID(c, "province")
	if !ok {
		return
	}
	regencies, err := h.repo.ListRegenciesByProvince(storeContext(c), id)
	respondList(c, "regencies", regencies, err)
}
