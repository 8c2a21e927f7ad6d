package dto

import (
	"time"

	"github.com/samber/lo"

	"adspace-chat/internal/models"
	"adspace-chat/internal/optional"
)

type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Business struct {
	ID             int                    `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Address        string                 `json:"address"`
	Website        optional.Value[string] `json:"website,omitzero"`
	NIP            string                 `json:"nip"`
	PKD            string                 `json:"pkd"`
	ImageURL       optional.Value[string] `json:"image_url,omitzero"`
	LogoURL        optional.Value[string] `json:"logo_url,omitzero"`
	TargetAudience string                 `json:"target_audience"`
	Tags           []Tag                  `json:"tags"`
	Coords         Coordinates            `json:"coords"`
	Owner          User                   `json:"owner"`
}

type BusinessWithAdspaces struct {
	Business
	Adspaces []Adspace `json:"adspaces"`
}

type Rating struct {
	ID         int                    `json:"id"`
	BusinessID int                    `json:"business_id"`
	UserID     int                    `json:"user_id"`
	Score      int                    `json:"score"`
	Comment    optional.Value[string] `json:"comment,omitzero"`
	CreatedAt  time.Time              `json:"created_at"`
	User       User                   `json:"user"`
}

type BusinessDetail struct {
	Business
	Adspaces      []AdspaceCard           `json:"adspaces"`
	Ratings       []Rating                `json:"ratings"`
	AverageRating optional.Value[float64] `json:"average_rating,omitzero"`
}

func MapBusiness(b models.Business, owner models.User, tags []models.Tag) Business {
	return Business{
		ID:             b.ID,
		Name:           b.Name,
		Description:    b.Description,
		Address:        b.Address,
		Website:        optional.FromNullString(b.Website),
		NIP:            b.NIP,
		PKD:            b.PKD,
		ImageURL:       optional.FromNullString(b.ImageURL),
		LogoURL:        optional.FromNullString(b.LogoURL),
		TargetAudience: b.TargetAudience,
		Tags:           lo.Map(tags, func(t models.Tag, _ int) Tag { return Tag{ID: t.ID, Name: t.Name} }),
		Coords:         Coordinates{Latitude: b.Latitude, Longitude: b.Longitude},
		Owner:          MapUser(owner),
	}
}

func MapRating(r models.RatingWithUser) Rating {
	return Rating{
		ID:         r.ID,
		BusinessID: r.BusinessID,
		UserID:     r.UserID,
		Score:      r.Score,
		Comment:    optional.FromNullString(r.Comment),
		CreatedAt:  r.CreatedAt,
		User:       MapUser(r.User),
	}
}

// AverageRating is the mean score, absent when there are no ratings.
func AverageRating(ratings []Rating) optional.Value[float64] {
	if len(ratings) == 0 {
		return optional.None[float64]()
	}
	sum := lo.SumBy(ratings, func(r Rating) int { return r.Score })
	return optional.Some(float64(sum) / float64(len(ratings)))
}

func MapBusinessWithAdspaces(b models.BusinessWithRelations) BusinessWithAdspaces {
	return BusinessWithAdspaces{
		Business: MapBusiness(b.Business, b.Owner, b.Tags),
		Adspaces: lo.Map(b.Adspaces, func(a models.Adspace, _ int) Adspace { return MapAdspace(a) }),
	}
}

func MapBusinessDetail(b models.BusinessWithRelations) BusinessDetail {
	ratings := lo.Map(b.Ratings, func(r models.RatingWithUser, _ int) Rating { return MapRating(r) })
	return BusinessDetail{
		Business:      MapBusiness(b.Business, b.Owner, b.Tags),
		Adspaces:      lo.Map(b.Adspaces, func(a models.Adspace, _ int) AdspaceCard { return MapAdspaceCard(a) }),
		Ratings:       ratings,
		AverageRating: AverageRating(ratings),
	}
}
