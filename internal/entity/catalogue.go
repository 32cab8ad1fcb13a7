package entity

// Region of service delivery, grouped by state for display.
type Region struct {
	Id    int    `json:"id" db:"id"`
	State string `json:"state" db:"state"`
	Name  string `json:"name" db:"name"`
}

type RegionGroup struct {
	Name       string   `json:"name"`
	SubRegions []Region `json:"subRegions"`
}

// ServiceType is a purchasable service within a category. FeeType drives the
// alert shown alongside its prices (fixed or hourly).
type ServiceType struct {
	Id       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
	FeeType  string `json:"feeType" db:"fee_type"`
}

type ServiceCategoryGroup struct {
	Name          string        `json:"name"`
	SubCategories []ServiceType `json:"subCategories"`
}

// db model for a supplier's price in a region, valid between DateFrom and
// DateTo inclusive.
type ServiceTypePrice struct {
	Id            int     `json:"id" db:"id"`
	SupplierCode  int64   `json:"supplierCode" db:"supplier_code"`
	SupplierName  string  `json:"supplierName" db:"supplier_name"`
	ServiceTypeId int     `json:"serviceTypeId" db:"service_type_id"`
	RegionId      int     `json:"regionId" db:"region_id"`
	Price         float64 `json:"price" db:"price"`
	DateFrom      string  `json:"dateFrom" db:"date_from"`
	DateTo        string  `json:"dateTo" db:"date_to"`
}

type PriceAlert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// controller model for the buyer-facing price catalogue
type PriceCatalogue struct {
	Alert  PriceAlert         `json:"alert"`
	Prices []ServiceTypePrice `json:"prices"`
}
