package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"adspace-chat/internal/models"
	"adspace-chat/internal/optional"
)

var ErrBusinessNotFound = errors.New("business not found")

const businessColumns = `b.id, b.owner_id, b.name, b.description, b.address, b.website, b.nip, b.pkd,
    b.image_url, b.logo_url, b.target_audience, b.latitude, b.longitude`

// BusinessRepository abstracts business persistence.
type BusinessRepository interface {
	GetBusiness(ctx context.Context, businessID int) (models.Business, error)
	GetBusinessByOwner(ctx context.Context, ownerID int) (models.Business, error)
	FirstAdspaceID(ctx context.Context, businessID int) (optional.Value[int], error)
	GetBusinessWithRelations(ctx context.Context, businessID int) (models.BusinessWithRelations, error)
}

// BusinessRepo is a sqlx implementation of BusinessRepository.
type BusinessRepo struct {
	db *sqlx.DB
}

// NewBusinessRepo constructs a BusinessRepo.
func NewBusinessRepo(db *sqlx.DB) *BusinessRepo {
	return &BusinessRepo{db: db}
}

// GetBusiness fetches a business by id.
func (r *BusinessRepo) GetBusiness(ctx context.Context, businessID int) (models.Business, error) {
	var business models.Business
	err := r.db.GetContext(ctx, &business, `SELECT `+businessColumns+` FROM businesses b WHERE b.id=$1`, businessID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Business{}, ErrBusinessNotFound
	}
	return business, err
}

// GetBusinessByOwner fetches the first business owned by the user.
func (r *BusinessRepo) GetBusinessByOwner(ctx context.Context, ownerID int) (models.Business, error) {
	var business models.Business
	err := r.db.GetContext(ctx, &business, `SELECT `+businessColumns+` FROM businesses b WHERE b.owner_id=$1 ORDER BY b.id LIMIT 1`, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Business{}, ErrBusinessNotFound
	}
	return business, err
}

// FirstAdspaceID returns the oldest adspace of the business, if it has any.
func (r *BusinessRepo) FirstAdspaceID(ctx context.Context, businessID int) (optional.Value[int], error) {
	var id int
	err := r.db.GetContext(ctx, &id, `SELECT id FROM adspaces WHERE business_id=$1 ORDER BY id LIMIT 1`, businessID)
	if errors.Is(err, sql.ErrNoRows) {
		return optional.None[int](), nil
	}
	if err != nil {
		return optional.None[int](), err
	}
	return optional.Some(id), nil
}

// GetBusinessWithRelations loads a business with owner, tags, adspaces and ratings.
func (r *BusinessRepo) GetBusinessWithRelations(ctx context.Context, businessID int) (models.BusinessWithRelations, error) {
	business, err := r.GetBusiness(ctx, businessID)
	if err != nil {
		return models.BusinessWithRelations{}, err
	}
	result := models.BusinessWithRelations{Business: business}

	if err := r.db.GetContext(ctx, &result.Owner, `SELECT id, name, email, image_url FROM users WHERE id=$1`, business.OwnerID); err != nil {
		return models.BusinessWithRelations{}, err
	}

	tags, err := loadTags(ctx, r.db, []int{business.ID})
	if err != nil {
		return models.BusinessWithRelations{}, err
	}
	result.Tags = tags[business.ID]

	result.Adspaces = []models.Adspace{}
	if err := r.db.SelectContext(ctx, &result.Adspaces, `SELECT `+adspaceColumns+`
        FROM adspaces a JOIN adspace_types t ON t.id = a.type_id
        WHERE a.business_id=$1 ORDER BY a.id`, business.ID); err != nil {
		return models.BusinessWithRelations{}, err
	}

	var ratings []struct {
		ID         int            `db:"id"`
		BusinessID int            `db:"business_id"`
		UserID     int            `db:"user_id"`
		Score      int            `db:"score"`
		Comment    sql.NullString `db:"comment"`
		CreatedAt  time.Time      `db:"created_at"`
		UserName   string         `db:"user_name"`
		UserEmail  string         `db:"user_email"`
		UserImage  sql.NullString `db:"user_image_url"`
	}
	if err := r.db.SelectContext(ctx, &ratings, `SELECT r.id, r.business_id, r.user_id, r.score, r.comment, r.created_at,
            u.name AS user_name, u.email AS user_email, u.image_url AS user_image_url
        FROM ratings r JOIN users u ON u.id = r.user_id
        WHERE r.business_id=$1 ORDER BY r.created_at DESC`, business.ID); err != nil {
		return models.BusinessWithRelations{}, err
	}
	result.Ratings = make([]models.RatingWithUser, 0, len(ratings))
	for _, row := range ratings {
		result.Ratings = append(result.Ratings, models.RatingWithUser{
			Rating: models.Rating{
				ID:         row.ID,
				BusinessID: row.BusinessID,
				UserID:     row.UserID,
				Score:      row.Score,
				Comment:    row.Comment,
				CreatedAt:  row.CreatedAt,
			},
			User: models.User{ID: row.UserID, Name: row.UserName, Email: row.UserEmail, ImageURL: row.UserImage},
		})
	}

	return result, nil
}

// loadTags returns tags grouped by business id.
func loadTags(ctx context.Context, db *sqlx.DB, businessIDs []int) (map[int][]models.Tag, error) {
	grouped := make(map[int][]models.Tag, len(businessIDs))
	if len(businessIDs) == 0 {
		return grouped, nil
	}

	var rows []struct {
		BusinessID int    `db:"business_id"`
		ID         int    `db:"id"`
		Name       string `db:"name"`
	}
	ids := lo.Map(lo.Uniq(businessIDs), func(id int, _ int) int64 { return int64(id) })
	if err := db.SelectContext(ctx, &rows, `SELECT bt.business_id, t.id, t.name FROM business_tags bt
        JOIN tags t ON t.id = bt.tag_id WHERE bt.business_id = ANY($1) ORDER BY t.name`, pq.Array(ids)); err != nil {
		return nil, err
	}
	for _, row := range rows {
		grouped[row.BusinessID] = append(grouped[row.BusinessID], models.Tag{ID: row.ID, Name: row.Name})
	}
	return grouped, nil
}
