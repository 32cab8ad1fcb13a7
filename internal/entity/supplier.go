package entity

// db model. Code is the stable natural key used throughout the marketplace,
// distinct from the row id.
type Supplier struct {
	Id              int                 `json:"-" db:"id"`
	Code            int64               `json:"code" db:"code"`
	Name            string              `json:"name" db:"name"`
	ABN             string              `json:"abn" db:"abn"`
	ContactEmail    string              `json:"contactEmail" db:"contact_email"`
	AssessedDomains []string            `json:"assessedDomains" db:"-"`
	Frameworks      []SupplierFramework `json:"frameworks" db:"-"`
}

func (s *Supplier) HasAssessedDomain(name string) bool {
	for _, d := range s.AssessedDomains {
		if d == name {
			return true
		}
	}

	return false
}

// SupplierFramework is one framework membership. Ordering matters: only the
// first membership is consulted by the eligibility rules.
type SupplierFramework struct {
	SupplierCode  int64  `json:"supplierCode" db:"supplier_code"`
	FrameworkId   int    `json:"-" db:"framework_id"`
	FrameworkSlug string `json:"framework" db:"framework_slug"`
}

// User is the acting account resolved by the surrounding session layer.
type User struct {
	Email        string
	Role         string
	SupplierCode int64
}
