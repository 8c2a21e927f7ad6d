package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"adspace-chat/internal/models"
)

// UserRepository reads marketplace accounts.
type UserRepository interface {
	GetUsers(ctx context.Context, ids []int) ([]models.User, error)
}

type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetUsers fetches multiple users in one query. Unknown ids are skipped.
func (r *UserRepo) GetUsers(ctx context.Context, ids []int) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	id64s := lo.Map(lo.Uniq(ids), func(id int, _ int) int64 { return int64(id) })
	err := r.db.SelectContext(ctx, &users, `SELECT id, name, email, image_url FROM users WHERE id = ANY($1) ORDER BY id`, pq.Array(id64s))
	return users, err
}
