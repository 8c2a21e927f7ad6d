package models

import "database/sql"

// User is a marketplace account.
type User struct {
	ID       int            `db:"id"`
	Name     string         `db:"name"`
	Email    string         `db:"email"`
	ImageURL sql.NullString `db:"image_url"`
}
