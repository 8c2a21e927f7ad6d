package models

import "database/sql"

// Adspace is an advertising space listed by a business.
type Adspace struct {
	ID                int             `db:"id"`
	BusinessID        int             `db:"business_id"`
	TypeID            int             `db:"type_id"`
	TypeName          string          `db:"type_name"`
	Name              string          `db:"name"`
	Description       sql.NullString  `db:"description"`
	ImageURL          string          `db:"image_url"`
	MaxWidth          float64         `db:"max_width"`
	MaxHeight         float64         `db:"max_height"`
	IsBarterAvailable bool            `db:"is_barter_available"`
	PricePerWeek      sql.NullFloat64 `db:"price_per_week"`
	InUse             bool            `db:"in_use"`
}

type AdspaceType struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

// AdspaceInput carries writable adspace fields.
type AdspaceInput struct {
	Name              string
	Description       sql.NullString
	TypeID            int
	MaxWidth          float64
	MaxHeight         float64
	IsBarterAvailable bool
	PricePerWeek      sql.NullFloat64
}

// AdspaceWithBusiness is an adspace joined with its owning business.
type AdspaceWithBusiness struct {
	Adspace
	Business Business
	Owner    User
	Tags     []Tag
}

// ChatAdspace is an adspace linked to a chat together with the business it
// resolves to. The business columns are NULL when the business is missing.
type ChatAdspace struct {
	Adspace
	ResolvedBusinessID sql.NullInt64  `db:"resolved_business_id"`
	BusinessName       sql.NullString `db:"business_name"`
	BusinessLogoURL    sql.NullString `db:"business_logo_url"`
	BusinessOwnerID    sql.NullInt64  `db:"business_owner_id"`
}

// HasBusiness reports whether the owning business could be resolved.
func (a ChatAdspace) HasBusiness() bool {
	return a.ResolvedBusinessID.Valid
}
