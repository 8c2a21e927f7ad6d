package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"adspace-chat/internal/models"
)

var ErrAdspaceNotFound = errors.New("adspace not found")

const adspaceColumns = `a.id, a.business_id, a.type_id, t.name AS type_name, a.name, a.description, a.image_url,
    a.max_width, a.max_height, a.is_barter_available, a.price_per_week, a.in_use`

const adspaceWithBusinessQuery = `SELECT ` + adspaceColumns + `,
        b.owner_id AS b_owner_id, b.name AS b_name, b.description AS b_description, b.address AS b_address,
        b.website AS b_website, b.nip AS b_nip, b.pkd AS b_pkd, b.image_url AS b_image_url,
        b.logo_url AS b_logo_url, b.target_audience AS b_target_audience,
        b.latitude AS b_latitude, b.longitude AS b_longitude,
        u.name AS u_name, u.email AS u_email, u.image_url AS u_image_url
    FROM adspaces a
    JOIN adspace_types t ON t.id = a.type_id
    JOIN businesses b ON b.id = a.business_id
    JOIN users u ON u.id = b.owner_id`

// AdspaceRepository abstracts adspace persistence.
type AdspaceRepository interface {
	ListAdspaces(ctx context.Context) ([]models.AdspaceWithBusiness, error)
	ListAdspacesByOwner(ctx context.Context, ownerID int) ([]models.AdspaceWithBusiness, error)
	GetAdspace(ctx context.Context, adspaceID int) (models.AdspaceWithBusiness, error)
	ListTypes(ctx context.Context) ([]models.AdspaceType, error)
	CreateAdspace(ctx context.Context, businessID int, in models.AdspaceInput) (models.Adspace, error)
	UpdateAdspace(ctx context.Context, adspaceID int, in models.AdspaceInput) (models.Adspace, error)
}

// AdspaceRepo is a sqlx implementation of AdspaceRepository.
type AdspaceRepo struct {
	db *sqlx.DB
}

// NewAdspaceRepo constructs an AdspaceRepo.
func NewAdspaceRepo(db *sqlx.DB) *AdspaceRepo {
	return &AdspaceRepo{db: db}
}

type adspaceRow struct {
	models.Adspace
	OwnerID       int            `db:"b_owner_id"`
	BName         string         `db:"b_name"`
	BDescription  string         `db:"b_description"`
	BAddress      string         `db:"b_address"`
	BWebsite      sql.NullString `db:"b_website"`
	BNIP          string         `db:"b_nip"`
	BPKD          string         `db:"b_pkd"`
	BImageURL     sql.NullString `db:"b_image_url"`
	BLogoURL      sql.NullString `db:"b_logo_url"`
	BTargetAud    string         `db:"b_target_audience"`
	BLatitude     float64        `db:"b_latitude"`
	BLongitude    float64        `db:"b_longitude"`
	OwnerName     string         `db:"u_name"`
	OwnerEmail    string         `db:"u_email"`
	OwnerImageURL sql.NullString `db:"u_image_url"`
}

func (row adspaceRow) toModel() models.AdspaceWithBusiness {
	return models.AdspaceWithBusiness{
		Adspace: row.Adspace,
		Business: models.Business{
			ID:             row.BusinessID,
			OwnerID:        row.OwnerID,
			Name:           row.BName,
			Description:    row.BDescription,
			Address:        row.BAddress,
			Website:        row.BWebsite,
			NIP:            row.BNIP,
			PKD:            row.BPKD,
			ImageURL:       row.BImageURL,
			LogoURL:        row.BLogoURL,
			TargetAudience: row.BTargetAud,
			Latitude:       row.BLatitude,
			Longitude:      row.BLongitude,
		},
		Owner: models.User{ID: row.OwnerID, Name: row.OwnerName, Email: row.OwnerEmail, ImageURL: row.OwnerImageURL},
	}
}

func (r *AdspaceRepo) selectWithBusiness(ctx context.Context, where string, args ...any) ([]models.AdspaceWithBusiness, error) {
	var rows []adspaceRow
	if err := r.db.SelectContext(ctx, &rows, adspaceWithBusinessQuery+where+` ORDER BY a.id`, args...); err != nil {
		return nil, err
	}

	tags, err := loadTags(ctx, r.db, lo.Map(rows, func(row adspaceRow, _ int) int { return row.BusinessID }))
	if err != nil {
		return nil, err
	}

	result := make([]models.AdspaceWithBusiness, 0, len(rows))
	for _, row := range rows {
		item := row.toModel()
		item.Tags = tags[row.BusinessID]
		result = append(result, item)
	}
	return result, nil
}

// ListAdspaces returns every listing with its business.
func (r *AdspaceRepo) ListAdspaces(ctx context.Context) ([]models.AdspaceWithBusiness, error) {
	return r.selectWithBusiness(ctx, "")
}

// ListAdspacesByOwner returns listings of businesses owned by the user.
func (r *AdspaceRepo) ListAdspacesByOwner(ctx context.Context, ownerID int) ([]models.AdspaceWithBusiness, error) {
	return r.selectWithBusiness(ctx, ` WHERE b.owner_id=$1`, ownerID)
}

// GetAdspace fetches a single listing with its business.
func (r *AdspaceRepo) GetAdspace(ctx context.Context, adspaceID int) (models.AdspaceWithBusiness, error) {
	items, err := r.selectWithBusiness(ctx, ` WHERE a.id=$1`, adspaceID)
	if err != nil {
		return models.AdspaceWithBusiness{}, err
	}
	if len(items) == 0 {
		return models.AdspaceWithBusiness{}, ErrAdspaceNotFound
	}
	return items[0], nil
}

// ListTypes returns all adspace types.
func (r *AdspaceRepo) ListTypes(ctx context.Context) ([]models.AdspaceType, error) {
	types := []models.AdspaceType{}
	err := r.db.SelectContext(ctx, &types, `SELECT id, name FROM adspace_types ORDER BY name`)
	return types, err
}

// CreateAdspace inserts a listing for the business.
func (r *AdspaceRepo) CreateAdspace(ctx context.Context, businessID int, in models.AdspaceInput) (models.Adspace, error) {
	var id int
	err := r.db.QueryRowxContext(ctx, `INSERT INTO adspaces
            (business_id, type_id, name, description, max_width, max_height, is_barter_available, price_per_week)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		businessID, in.TypeID, in.Name, in.Description, in.MaxWidth, in.MaxHeight, in.IsBarterAvailable, in.PricePerWeek).
		Scan(&id)
	if err != nil {
		return models.Adspace{}, err
	}
	return r.getAdspace(ctx, id)
}

// UpdateAdspace overwrites the writable fields of a listing.
func (r *AdspaceRepo) UpdateAdspace(ctx context.Context, adspaceID int, in models.AdspaceInput) (models.Adspace, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE adspaces SET type_id=$2, name=$3, description=$4, max_width=$5,
            max_height=$6, is_barter_available=$7, price_per_week=$8
        WHERE id=$1`,
		adspaceID, in.TypeID, in.Name, in.Description, in.MaxWidth, in.MaxHeight, in.IsBarterAvailable, in.PricePerWeek)
	if err != nil {
		return models.Adspace{}, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return models.Adspace{}, err
	}
	if count == 0 {
		return models.Adspace{}, ErrAdspaceNotFound
	}
	return r.getAdspace(ctx, adspaceID)
}

func (r *AdspaceRepo) getAdspace(ctx context.Context, adspaceID int) (models.Adspace, error) {
	var adspace models.Adspace
	err := r.db.GetContext(ctx, &adspace, `SELECT `+adspaceColumns+` FROM adspaces a
        JOIN adspace_types t ON t.id = a.type_id WHERE a.id=$1`, adspaceID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Adspace{}, ErrAdspaceNotFound
	}
	return adspace, err
}
