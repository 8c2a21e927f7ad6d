// Package dto converts persisted rows into API shapes. Mappers are pure and
// total: NULL columns become absent optional values, never errors.
package dto

import (
	"adspace-chat/internal/models"
	"adspace-chat/internal/optional"
)

type User struct {
	ID       int                    `json:"id"`
	Name     string                 `json:"name"`
	Email    string                 `json:"email"`
	ImageURL optional.Value[string] `json:"image_url,omitzero"`
}

func MapUser(u models.User) User {
	return User{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		ImageURL: optional.FromNullString(u.ImageURL),
	}
}

// UsersByID indexes users for participant lookups.
func UsersByID(users []models.User) map[int]models.User {
	byID := make(map[int]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID
}

// mapKnownUser falls back to a bare id when the user row is missing.
func mapKnownUser(id int, users map[int]models.User) User {
	if u, ok := users[id]; ok {
		return MapUser(u)
	}
	return User{ID: id}
}
