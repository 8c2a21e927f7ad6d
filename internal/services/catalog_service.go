package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"adspace-chat/internal/cache"
	"adspace-chat/internal/dto"
	"adspace-chat/internal/models"
	"adspace-chat/internal/observability"
	"adspace-chat/internal/optional"
	"adspace-chat/internal/repositories"
)

// AdspaceInput is the writable part of a listing.
type AdspaceInput struct {
	Name              string                  `json:"name" validate:"required,max=120"`
	Description       optional.Value[string]  `json:"description"`
	TypeID            int                     `json:"type_id" validate:"required,gt=0"`
	MaxWidth          float64                 `json:"max_width" validate:"gt=0"`
	MaxHeight         float64                 `json:"max_height" validate:"gt=0"`
	IsBarterAvailable bool                    `json:"is_barter_available"`
	PricePerWeek      optional.Value[float64] `json:"price_per_week"`
}

func (in AdspaceInput) toModel() models.AdspaceInput {
	return models.AdspaceInput{
		Name:              in.Name,
		Description:       optional.ToNullString(in.Description),
		TypeID:            in.TypeID,
		MaxWidth:          in.MaxWidth,
		MaxHeight:         in.MaxHeight,
		IsBarterAvailable: in.IsBarterAvailable,
		PricePerWeek:      optional.ToNullFloat64(in.PricePerWeek),
	}
}

// CatalogService serves businesses and their adspace listings.
type CatalogService struct {
	adspaces   repositories.AdspaceRepository
	businesses repositories.BusinessRepository
	cache      BusinessCache
	validate   *validator.Validate
}

func NewCatalogService(adspaces repositories.AdspaceRepository, businesses repositories.BusinessRepository, businessCache BusinessCache) *CatalogService {
	if businessCache == nil {
		businessCache = cache.NewNoopBusinessCache()
	}
	return &CatalogService{
		adspaces:   adspaces,
		businesses: businesses,
		cache:      businessCache,
		validate:   validator.New(),
	}
}

func (s *CatalogService) ListAdspaces(ctx context.Context) ([]dto.AdspaceWithBusiness, error) {
	items, err := s.adspaces.ListAdspaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list adspaces: %w", err)
	}
	return dto.MapAdspacesWithBusiness(items), nil
}

func (s *CatalogService) ListMyAdspaces(ctx context.Context, caller Caller) ([]dto.AdspaceWithBusiness, error) {
	items, err := s.adspaces.ListAdspacesByOwner(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list own adspaces: %w", err)
	}
	return dto.MapAdspacesWithBusiness(items), nil
}

func (s *CatalogService) AdspaceTypes(ctx context.Context) ([]dto.AdspaceType, error) {
	types, err := s.adspaces.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list adspace types: %w", err)
	}
	result := make([]dto.AdspaceType, 0, len(types))
	for _, t := range types {
		result = append(result, dto.MapAdspaceType(t))
	}
	return result, nil
}

func (s *CatalogService) GetAdspace(ctx context.Context, adspaceID int) (dto.AdspaceWithBusiness, error) {
	item, err := s.adspaces.GetAdspace(ctx, adspaceID)
	if err != nil {
		if errors.Is(err, repositories.ErrAdspaceNotFound) {
			return dto.AdspaceWithBusiness{}, fmt.Errorf("adspace %d: %w", adspaceID, ErrNotFound)
		}
		return dto.AdspaceWithBusiness{}, fmt.Errorf("load adspace: %w", err)
	}
	return dto.MapAdspaceWithBusiness(item), nil
}

// CreateAdspace adds a listing to the caller's business.
func (s *CatalogService) CreateAdspace(ctx context.Context, caller Caller, in AdspaceInput) (dto.Adspace, error) {
	if err := s.validateInput(in); err != nil {
		return dto.Adspace{}, err
	}

	business, err := s.businesses.GetBusinessByOwner(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrBusinessNotFound) {
			return dto.Adspace{}, fmt.Errorf("caller %d has no business: %w", caller.ID, ErrInvalidOperation)
		}
		return dto.Adspace{}, fmt.Errorf("load business: %w", err)
	}

	adspace, err := s.adspaces.CreateAdspace(ctx, business.ID, in.toModel())
	if err != nil {
		return dto.Adspace{}, fmt.Errorf("create adspace: %w", err)
	}
	s.invalidate(ctx, business.ID)
	return dto.MapAdspace(adspace), nil
}

// UpdateAdspace overwrites a listing owned by the caller.
func (s *CatalogService) UpdateAdspace(ctx context.Context, caller Caller, adspaceID int, in AdspaceInput) (dto.Adspace, error) {
	if err := s.validateInput(in); err != nil {
		return dto.Adspace{}, err
	}

	current, err := s.adspaces.GetAdspace(ctx, adspaceID)
	if err != nil {
		if errors.Is(err, repositories.ErrAdspaceNotFound) {
			return dto.Adspace{}, fmt.Errorf("adspace %d: %w", adspaceID, ErrNotFound)
		}
		return dto.Adspace{}, fmt.Errorf("load adspace: %w", err)
	}
	if current.Business.OwnerID != caller.ID {
		return dto.Adspace{}, fmt.Errorf("adspace %d: %w", adspaceID, ErrForbidden)
	}

	adspace, err := s.adspaces.UpdateAdspace(ctx, adspaceID, in.toModel())
	if err != nil {
		if errors.Is(err, repositories.ErrAdspaceNotFound) {
			return dto.Adspace{}, fmt.Errorf("adspace %d: %w", adspaceID, ErrNotFound)
		}
		return dto.Adspace{}, fmt.Errorf("update adspace: %w", err)
	}
	s.invalidate(ctx, current.BusinessID)
	return dto.MapAdspace(adspace), nil
}

func (s *CatalogService) validateInput(in AdspaceInput) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("adspace input: %v: %w", err, ErrValidation)
	}
	if price, ok := in.PricePerWeek.Get(); ok && price < 0 {
		return fmt.Errorf("adspace input: negative price: %w", ErrValidation)
	}
	return nil
}

// GetBusiness returns the business page, served from cache when possible.
func (s *CatalogService) GetBusiness(ctx context.Context, businessID int) (dto.BusinessDetail, error) {
	detail, err := s.cache.Get(ctx, businessID)
	if err == nil {
		observability.IncBusinessCache("hit")
		return detail, nil
	}
	if errors.Is(err, cache.ErrMiss) {
		observability.IncBusinessCache("miss")
	} else {
		observability.IncBusinessCache("error")
		log.Printf("business cache get failed: business_id=%d err=%v", businessID, err)
	}

	business, err := s.businesses.GetBusinessWithRelations(ctx, businessID)
	if err != nil {
		if errors.Is(err, repositories.ErrBusinessNotFound) {
			return dto.BusinessDetail{}, fmt.Errorf("business %d: %w", businessID, ErrNotFound)
		}
		return dto.BusinessDetail{}, fmt.Errorf("load business: %w", err)
	}

	detail = dto.MapBusinessDetail(business)
	if err := s.cache.Set(ctx, businessID, detail); err != nil {
		log.Printf("business cache set failed: business_id=%d err=%v", businessID, err)
	}
	return detail, nil
}

// MyBusiness returns the caller's business with its listings.
func (s *CatalogService) MyBusiness(ctx context.Context, caller Caller) (dto.BusinessWithAdspaces, error) {
	business, err := s.businesses.GetBusinessByOwner(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrBusinessNotFound) {
			return dto.BusinessWithAdspaces{}, fmt.Errorf("caller %d has no business: %w", caller.ID, ErrNotFound)
		}
		return dto.BusinessWithAdspaces{}, fmt.Errorf("load business: %w", err)
	}

	full, err := s.businesses.GetBusinessWithRelations(ctx, business.ID)
	if err != nil {
		return dto.BusinessWithAdspaces{}, fmt.Errorf("load business relations: %w", err)
	}
	return dto.MapBusinessWithAdspaces(full), nil
}

func (s *CatalogService) invalidate(ctx context.Context, businessID int) {
	if err := s.cache.Delete(ctx, businessID); err != nil {
		log.Printf("business cache invalidate failed: business_id=%d err=%v", businessID, err)
	}
}
