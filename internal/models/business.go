package models

import (
	"database/sql"
	"time"
)

// Business is a company profile owned by one user.
type Business struct {
	ID             int            `db:"id"`
	OwnerID        int            `db:"owner_id"`
	Name           string         `db:"name"`
	Description    string         `db:"description"`
	Address        string         `db:"address"`
	Website        sql.NullString `db:"website"`
	NIP            string         `db:"nip"`
	PKD            string         `db:"pkd"`
	ImageURL       sql.NullString `db:"image_url"`
	LogoURL        sql.NullString `db:"logo_url"`
	TargetAudience string         `db:"target_audience"`
	Latitude       float64        `db:"latitude"`
	Longitude      float64        `db:"longitude"`
}

type Tag struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

// Rating is a score left by a user for a business.
type Rating struct {
	ID         int            `db:"id"`
	BusinessID int            `db:"business_id"`
	UserID     int            `db:"user_id"`
	Score      int            `db:"score"`
	Comment    sql.NullString `db:"comment"`
	CreatedAt  time.Time      `db:"created_at"`
}

// BusinessWithRelations bundles a business with the relations the API exposes.
type BusinessWithRelations struct {
	Business
	Owner    User
	Tags     []Tag
	Adspaces []Adspace
	Ratings  []RatingWithUser
}

type RatingWithUser struct {
	Rating
	User User
}
