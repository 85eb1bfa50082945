package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/GTDGit/wilayah_api/internal/models"
)

const fullAdminDataQuery = `
	SELECT
		p.code AS province_code,
		p.name AS province_name,
		r.code AS regency_code,
		r.name AS regency_name,
		d.code AS district_code,
		d.name AS district_name,
		v.code AS village_code,
		v.name AS village_name
	FROM villages v
	JOIN districts d ON v.district_id = d.id
	JOIN regencies r ON d.regency_id = r.id
	JOIN provinces p ON r.province_id = p.id
	WHERE v.id = ?`

// TerritoryRepository handles database operations for the administrative
// hierarchy. Every method holds an exclusive lock on the connection for its
// whole duration, so no two statements ever run against the store at once.
type TerritoryRepository struct {
	mu       sync.Mutex
	db       *sqlx.DB
	lockWait prometheus.Observer

	provinces table[models.Province]
	regencies table[models.Regency]
	districts table[models.District]
	villages  table[models.Village]
}

// Option configures a TerritoryRepository.
type Option func(*TerritoryRepository)

// WithLockWaitObserver records how long each operation waited for the connection.
func WithLockWaitObserver(o prometheus.Observer) Option {
	return func(r *TerritoryRepository) {
		r.lockWait = o
	}
}

// NewLockWaitHistogram creates and registers the lock wait histogram.
func NewLockWaitHistogram(reg prometheus.Registerer) (prometheus.Histogram, error) {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "territory_repository_lock_wait_seconds",
		Help:    "Time spent waiting for exclusive access to the database connection.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
	if err := reg.Register(h); err != nil {
		return nil, err
	}
	return h, nil
}

// NewTerritoryRepository creates a new TerritoryRepository
func NewTerritoryRepository(db *sqlx.DB, opts ...Option) *TerritoryRepository {
	r := &TerritoryRepository{
		db: db,
		provinces: newTable("provinces", "", func(p *models.Province) []any {
			return []any{p.Code, p.Name}
		}),
		regencies: newTable("regencies", "province_id", func(p *models.Regency) []any {
			return []any{p.Code, p.Name, p.ProvinceID}
		}),
		districts: newTable("districts", "regency_id", func(p *models.District) []any {
			return []any{p.Code, p.Name, p.RegencyID}
		}),
		villages: newTable("villages", "district_id", func(p *models.Village) []any {
			return []any{p.Code, p.Name, p.DistrictID}
		}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *TerritoryRepository) lock() func() {
	start := time.Now()
	r.mu.Lock()
	if r.lockWait != nil {
		r.lockWait.Observe(time.Since(start).Seconds())
	}
	return r.mu.Unlock
}

// Ping checks that the store is reachable.
func (r *TerritoryRepository) Ping(ctx context.Context) error {
	defer r.lock()()
	if err := r.db.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

// ListProvinces returns all provinces
func (r *TerritoryRepository) ListProvinces(ctx context.Context) ([]models.Province, error) {
	defer r.lock()()
	return r.provinces.list(ctx, r.db)
}

// GetProvince returns the province with the given id, or nil if there is none.
func (r *TerritoryRepository) GetProvince(ctx context.Context, id int64) (*models.Province, error) {
	defer r.lock()()
	return r.provinces.get(ctx, r.db, id)
}

// CreateProvince inserts a province and returns its new id.
func (r *TerritoryRepository) CreateProvince(ctx context.Context, p *models.Province) (int64, error) {
	defer r.lock()()
	return r.provinces.create(ctx, r.db, p)
}

// UpdateProvince rewrites the code and name of a province.
func (r *TerritoryRepository) UpdateProvince(ctx context.Context, id int64, p *models.Province) error {
	defer r.lock()()
	return r.provinces.updateByID(ctx, r.db, id, p)
}

// DeleteProvince removes a province. Its regencies are left in place.
func (r *TerritoryRepository) DeleteProvince(ctx context.Context, id int64) error {
	defer r.lock()()
	return r.provinces.deleteByID(ctx, r.db, id)
}

// ListRegenciesByProvince returns all regencies for a given province id
func (r *TerritoryRepository) ListRegenciesByProvince(ctx context.Context, provinceID int64) ([]models.Regency, error) {
	defer r.lock()()
	return r.regencies.listByParent(ctx, r.db, provinceID)
}

func (r *TerritoryRepository) GetRegency(ctx context.Context, id int64) (*models.Regency, error) {
	defer r.lock()()
	return r.regencies.get(ctx, r.db, id)
}

func (r *TerritoryRepository) CreateRegency(ctx context.Context, p *models.Regency) (int64, error) {
	defer r.lock()()
	return r.regencies.create(ctx, r.db, p)
}

func (r *TerritoryRepository) UpdateRegency(ctx context.Context, id int64, p *models.Regency) error {
	defer r.lock()()
	return r.regencies.updateByID(ctx, r.db, id, p)
}

func (r *TerritoryRepository) DeleteRegency(ctx context.Context, id int64) error {
	defer r.lock()()
	return r.regencies.deleteByID(ctx, r.db, id)
}

// ListDistrictsByRegency returns all districts for a given regency id
func (r *TerritoryRepository) ListDistrictsByRegency(ctx context.Context, regencyID int64) ([]models.District, error) {
	defer r.lock()()
	return r.districts.listByParent(ctx, r.db, regencyID)
}

func (r *TerritoryRepository) GetDistrict(ctx context.Context, id int64) (*models.District, error) {
	defer r.lock()()
	return r.districts.get(ctx, r.db, id)
}

func (r *TerritoryRepository) CreateDistrict(ctx context.Context, p *models.District) (int64, error) {
	defer r.lock()()
	return r.districts.create(ctx, r.db, p)
}

func (r *TerritoryRepository) UpdateDistrict(ctx context.Context, id int64, p *models.District) error {
	defer r.lock()()
	return r.districts.updateByID(ctx, r.db, id, p)
}

func (r *TerritoryRepository) DeleteDistrict(ctx context.Context, id int64) error {
	defer r.lock()()
	return r.districts.deleteByID(ctx, r.db, id)
}

// ListVillagesByDistrict returns all villages for a given district id
func (r *TerritoryRepository) ListVillagesByDistrict(ctx context.Context, districtID int64) ([]models.Village, error) {
	defer r.lock()()
	return r.villages.listByParent(ctx, r.db, districtID)
}

func (r *TerritoryRepository) GetVillage(ctx context.Context, id int64) (*models.Village, error) {
	defer r.lock()()
	return r.villages.get(ctx, r.db, id)
}

func (r *TerritoryRepository) CreateVillage(ctx context.Context, p *models.Village) (int64, error) {
	defer r.lock()()
	return r.villages.create(ctx, r.db, p)
}

func (r *TerritoryRepository) UpdateVillage(ctx context.Context, id int64, p *models.Village) error {
	defer r.lock()()
	return r.villages.updateByID(ctx, r.db, id, p)
}

func (r *TerritoryRepository) DeleteVillage(ctx context.Context, id int64) error {
	defer r.lock()()
	return r.villages.deleteByID(ctx, r.db, id)
}

// GetFullAdminData resolves a village to its province, regency and district.
// A broken link anywhere in the chain yields nil.
func (r *TerritoryRepository) GetFullAdminData(ctx context.Context, villageID int64) (*models.FullAdminData, error) {
	defer r.lock()()

	var d models.FullAdminData
	err := r.db.GetContext(ctx, &d, r.db.Rebind(fullAdminDataQuery), villageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get full admin data", err)
	}
	return &d, nil
}
