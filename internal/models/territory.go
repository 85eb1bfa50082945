package models

// Province represents a province in Indonesia
type Province struct {
	ID   *int64 `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`
}

// Regency represents a regency (kabupaten/kota) in Indonesia
type Regency struct {
	ID         *int64 `json:"id" db:"id"`
	Code       string `json:"code" db:"code"`
	Name       string `json:"name" db:"name"`
	ProvinceID *int64 `json:"province_id" db:"province_id"`
}

// District represents a district (kecamatan) in Indonesia
type District struct {
	ID        *int64 `json:"id" db:"id"`
	Code      string `json:"code" db:"code"`
	Name      string `json:"name" db:"name"`
	RegencyID *int64 `json:"regency_id" db:"regency_id"`
}

// Village represents a village (kelurahan/desa) in Indonesia
type Village struct {
	ID         *int64 `json:"id" db:"id"`
	Code       string `json:"code" db:"code"`
	Name       string `json:"name" db:"name"`
	DistrictID *int64 `json:"district_id" db:"district_id"`
}

// FullAdminData is the full ancestor chain of a single village. It is never
// stored; the JSON keys follow the public contract where a regency is a
// "city" and a district is a "region".
type FullAdminData struct {
	ProvinceCode string `json:"province_code" db:"province_code"`
	ProvinceName string `json:"province_name" db:"province_name"`
	RegencyCode  string `json:"city_code" db:"regency_code"`
	RegencyName  string `json:"city_name" db:"regency_name"`
	DistrictCode string `json:"region_code" db:"district_code"`
	DistrictName string `json:"region_name" db:"district_name"`
	VillageCode  string `json:"village_code" db:"village_code"`
	VillageName  string `json:"village_name" db:"village_name"`
}

// TerritoryRequest carries the fields every level shares in a create or
// update body. Only a missing key is rejected; an empty string is a valid
// code or name.
type TerritoryRequest struct {
	Code *string `json:"code" binding:"required"`
	Name *string `json:"name" binding:"required"`
}

// ProvinceRequest is the body of POST /provinces and PUT /provinces/:id.
type ProvinceRequest struct {
	TerritoryRequest
}

// Province converts the request into a row value.
func (r *ProvinceRequest) Province() *Province {
	return &Province{Code: *r.Code, Name: *r.Name}
}

// RegencyRequest is the body of regency writes.
type RegencyRequest struct {
	TerritoryRequest
	ProvinceID *int64 `json:"province_id"`
}

func (r *RegencyRequest) Regency() *Regency {
	return &Regency{Code: *r.Code, Name: *r.Name, ProvinceID: r.ProvinceID}
}

// DistrictRequest is the body of district writes.
type DistrictRequest struct {
	TerritoryRequest
	RegencyID *int64 `json:"regency_id"`
}

func (r *DistrictRequest) District() *District {
	return &District{Code: *r.Code, Name: *r.Name, RegencyID: r.RegencyID}
}

// VillageRequest is the body of village writes.
type VillageRequest struct {
	TerritoryRequest
	DistrictID *int64 `json:"district_id"`
}

func (r *VillageRequest) Village() *Village {
	return &Village{Code: *r.Code, Name: *r.Name, DistrictID: r.DistrictID}
}

// CreatedResponse is returned after a successful insert.
type CreatedResponse struct {
	ID int64 `json:"id"`
}
