package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/wilayah_api/internal/models"
	"github.com/GTDGit/wilayah_api/internal/repository"
	"github.com/GTDGit/wilayah_api/internal/utils"
)

// TerritoryStore is the data access the territory endpoints need.
// *repository.TerritoryRepository satisfies it.
type TerritoryStore interface {
	ListProvinces(ctx context.Context) ([]models.Province, error)
	GetProvince(ctx context.Context, id int64) (*models.Province, error)
	CreateProvince(ctx context.Context, p *models.Province) (int64, error)
	UpdateProvince(ctx context.Context, id int64, p *models.Province) error
	DeleteProvince(ctx context.Context, id int64) error

	ListRegenciesByProvince(ctx context.Context, provinceID int64) ([]models.Regency, error)
	GetRegency(ctx context.Context, id int64) (*models.Regency, error)
	CreateRegency(ctx context.Context, r *models.Regency) (int64, error)
	UpdateRegency(ctx context.Context, id int64, r *models.Regency) error
	DeleteRegency(ctx context.Context, id int64) error

	ListDistrictsByRegency(ctx context.Context, regencyID int64) ([]models.District, error)
	GetDistrict(ctx context.Context, id int64) (*models.District, error)
	CreateDistrict(ctx context.Context, d *models.District) (int64, error)
	UpdateDistrict(ctx context.Context, id int64, d *models.District) error
	DeleteDistrict(ctx context.Context, id int64) error

	ListVillagesByDistrict(ctx context.Context, districtID int64) ([]models.Village, error)
	GetVillage(ctx context.Context, id int64) (*models.Village, error)
	CreateVillage(ctx context.Context, v *models.Village) (int64, error)
	UpdateVillage(ctx context.Context, id int64, v *models.Village) error
	DeleteVillage(ctx context.Context, id int64) error

	GetFullAdminData(ctx context.Context, villageID int64) (*models.FullAdminData, error)
}

// TerritoryHandler handles territory-related HTTP requests
type TerritoryHandler struct {
	repo TerritoryStore
}

// NewTerritoryHandler creates a new TerritoryHandler
func NewTerritoryHandler(repo TerritoryStore) *TerritoryHandler {
	return &TerritoryHandler{repo: repo}
}

// storeContext detaches the request context from client cancellation: a
// disconnect must not abort a statement that is already running.
func storeContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// parseID reads the :id path parameter, writing a 400 on failure.
func parseID(c *gin.Context, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid "+entity+" ID")
		return 0, false
	}
	return id, true
}

// bindBody decodes a create/update body, writing a 400 on failure.
func bindBody(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func respondList[T any](c *gin.Context, plural string, items []T, err error) {
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch "+plural+": "+err.Error())
		return
	}
	utils.OK(c, items)
}

func respondOne[T any](c *gin.Context, entity string, item *T, err error) {
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch "+entity+": "+err.Error())
		return
	}
	if item == nil {
		utils.Error(c, http.StatusNotFound, title(entity)+" not found")
		return
	}
	utils.OK(c, item)
}

func respondCreated(c *gin.Context, entity string, id int64, err error) {
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create "+entity+": "+err.Error())
		return
	}
	utils.Created(c, id)
}

// respondWrite maps update/delete outcomes. A write that matched no row is a 404.
func respondWrite(c *gin.Context, verb, entity string, err error) {
	switch {
	case err == nil:
		utils.NoContent(c)
	case errors.Is(err, repository.ErrNotFound):
		utils.Error(c, http.StatusNotFound, title(entity)+" not found")
	default:
		utils.Error(c, http.StatusInternalServerError, "Failed to "+verb+" "+entity+": "+err.Error())
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
