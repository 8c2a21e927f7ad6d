package dto

import (
	"github.com/samber/lo"

	"adspace-chat/internal/models"
	"adspace-chat/internal/optional"
)

type AdspaceType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type AdspaceCard struct {
	ID                int                     `json:"id"`
	Name              string                  `json:"name"`
	ImageURL          string                  `json:"image_url"`
	Type              string                  `json:"type"`
	PricePerWeek      optional.Value[float64] `json:"price_per_week,omitzero"`
	IsBarterAvailable bool                    `json:"is_barter_available"`
	InUse             bool                    `json:"in_use"`
}

type Adspace struct {
	ID                int                     `json:"id"`
	BusinessID        int                     `json:"business_id"`
	Name              string                  `json:"name"`
	Description       optional.Value[string]  `json:"description,omitzero"`
	ImageURL          string                  `json:"image_url"`
	Type              AdspaceType             `json:"type"`
	MaxWidth          float64                 `json:"max_width"`
	MaxHeight         float64                 `json:"max_height"`
	PricePerWeek      optional.Value[float64] `json:"price_per_week,omitzero"`
	IsBarterAvailable bool                    `json:"is_barter_available"`
	InUse             bool                    `json:"in_use"`
}

type AdspaceWithBusiness struct {
	Adspace
	Business Business `json:"business"`
}

func MapAdspaceType(t models.AdspaceType) AdspaceType {
	return AdspaceType{ID: t.ID, Name: t.Name}
}

func MapAdspaceCard(a models.Adspace) AdspaceCard {
	return AdspaceCard{
		ID:                a.ID,
		Name:              a.Name,
		ImageURL:          a.ImageURL,
		Type:              a.TypeName,
		PricePerWeek:      optional.FromNullFloat64(a.PricePerWeek),
		IsBarterAvailable: a.IsBarterAvailable,
		InUse:             a.InUse,
	}
}

func MapAdspace(a models.Adspace) Adspace {
	return Adspace{
		ID:                a.ID,
		BusinessID:        a.BusinessID,
		Name:              a.Name,
		Description:       optional.FromNullString(a.Description),
		ImageURL:          a.ImageURL,
		Type:              AdspaceType{ID: a.TypeID, Name: a.TypeName},
		MaxWidth:          a.MaxWidth,
		MaxHeight:         a.MaxHeight,
		PricePerWeek:      optional.FromNullFloat64(a.PricePerWeek),
		IsBarterAvailable: a.IsBarterAvailable,
		InUse:             a.InUse,
	}
}

func MapAdspaceWithBusiness(a models.AdspaceWithBusiness) AdspaceWithBusiness {
	return AdspaceWithBusiness{
		Adspace:  MapAdspace(a.Adspace),
		Business: MapBusiness(a.Business, a.Owner, a.Tags),
	}
}

func MapAdspacesWithBusiness(items []models.AdspaceWithBusiness) []AdspaceWithBusiness {
	return lo.Map(items, func(a models.AdspaceWithBusiness, _ int) AdspaceWithBusiness {
		return MapAdspaceWithBusiness(a)
	})
}
