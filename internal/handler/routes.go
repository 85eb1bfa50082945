package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the territory endpoints. Regency, district and village
// writes are exposed alongside the province ones.
func RegisterRoutes(r gin.IRouter, h *TerritoryHandler) {
	provinces := r.Group("/provinces")
	{
		provinces.GET("", h.ListProvinces)
		provinces.POST("", h.CreateProvince)
		provinces.GET("/:id", h.GetProvince)
		provinces.PUT("/:id", h.UpdateProvince)
		provinces.DELETE("/:id", h.DeleteProvince)
		provinces.GET("/:id/regencies", h.ListRegenciesByProvince)
	}

	regencies := r.Group("/regencies")
	{
		regencies.POST("", h.CreateRegency)
		regencies.GET("/:id", h.GetRegency)
		regencies.PUT("/:id", h.UpdateRegency)
		regencies.DELETE("/:id", h.DeleteRegency)
		regencies.GET("/:id/districts", h.ListDistrictsByRegency)
	}

	districts := r.Group("/districts")
	{
		districts.POST("", h.CreateDistrict)
		districts.GET("/:id", h.GetDistrict)
		districts.PUT("/:id", h.UpdateDistrict)
		districts.DELETE("/:id", h.DeleteDistrict)
		districts.GET("/:id/villages", h.ListVillagesByDistrict)
	}

	villages := r.Group("/villages")
	{
		villages.POST("", h.CreateVillage)
		villages.GET("/:id", h.GetVillage)
		villages.PUT("/:id", h.UpdateVillage)
		villages.DELETE("/:id", h.DeleteVillage)
		villages.GET("/:id/details", h.GetFullAdminData)
	}
}
