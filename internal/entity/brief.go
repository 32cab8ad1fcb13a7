package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// db model. Lot and framework columns are denormalized onto the brief at
// read time so a single fetch carries everything eligibility needs.
type Brief struct {
	Id              uuid.UUID `json:"id" db:"id"`
	Status          string    `json:"status" db:"status"`
	LotId           int       `json:"-" db:"lot_id"`
	LotSlug         string    `json:"lot" db:"lot_slug"`
	FrameworkId     int       `json:"-" db:"framework_id"`
	FrameworkSlug   string    `json:"framework" db:"framework_slug"`
	FrameworkStatus string    `json:"-" db:"framework_status"`
	Data            BriefData `json:"data" db:"data"`
	OwnerEmails     []string  `json:"-" db:"-"`
	CreatedAt       string    `json:"createdAt" db:"created_at"`
	PublishedAt     string    `json:"publishedAt,omitempty" db:"published_at"`
	ClosedAt        string    `json:"closedAt,omitempty" db:"closed_at"`
}

func (b *Brief) IsOwnedBy(email string) bool {
	for _, e := range b.OwnerEmails {
		if e == email {
			return true
		}
	}

	return false
}

// service + repo input model
type CreateBriefInput struct {
	LotId       int
	FrameworkId int
	OwnerEmail  string
	Data        BriefData
}

// controller model
type BriefOutputModel struct {
	Id          string    `json:"id"`
	Status      string    `json:"status"`
	Lot         string    `json:"lot"`
	Framework   string    `json:"framework"`
	Data        BriefData `json:"data"`
	CreatedAt   string    `json:"createdAt"`
	PublishedAt string    `json:"publishedAt,omitempty"`
	ClosedAt    string    `json:"closedAt,omitempty"`
}

// controller model for single-brief reads
type BriefView struct {
	Brief              *BriefOutputModel `json:"brief"`
	BriefResponseCount int               `json:"briefResponseCount"`
	InvitedSellerCount int               `json:"invitedSellerCount"`
	IsInvitedSeller    bool              `json:"isInvitedSeller"`
}

// BriefData is the open attribute bag stored in the brief's JSONB column.
// No structural schema is enforced; individual policies read known keys.
type BriefData map[string]interface{}

func (d BriefData) String(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}

	return ""
}

func (d BriefData) Strings(key string) []string {
	raw, ok := d[key].([]interface{})
	if !ok {
		return nil
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}

	return values
}

// Sellers returns the invite mapping keyed by supplier code.
func (d BriefData) Sellers() map[string]interface{} {
	if v, ok := d["sellers"].(map[string]interface{}); ok {
		return v
	}

	return nil
}

func (d BriefData) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(d)
}

func (d *BriefData) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = BriefData{}
		return nil
	}

	return fmt.Errorf("cannot scan %T into BriefData", src)
}
