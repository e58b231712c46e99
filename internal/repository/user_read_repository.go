package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/accountly/user-service/internal/models"
	localredis "github.com/accountly/user-service/internal/redis"
)

const userViewKeyPrefix = "user:view:"

// DefaultPerPage is the page size used when the caller supplies no limit.
const DefaultPerPage = 15

// UserReadRepository handles all read operations for users. Single-user
// lookups go through Redis first, falling back to PostgreSQL on a miss;
// listings always read PostgreSQL so pagination stays consistent.
type UserReadRepository struct {
	db    *sql.DB
	cache *localredis.ViewCache[models.UserView]
}

func NewUserReadRepository(db *sql.DB, redisClient *goredis.Client) *UserReadRepository {
	return &UserReadRepository{
		db:    db,
		cache: localredis.NewViewCache[models.UserView](redisClient, 0),
	}
}

// GetViewByID returns a UserView from Redis first, then PostgreSQL.
func (r *UserReadRepository) GetViewByID(ctx context.Context, id string) (*models.UserView, error) {
	cacheKey := userViewKeyPrefix + id

	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	query := `
		SELECT id, email, fullname, profile_photo, active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	var view models.UserView
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&view.ID, &view.Email, &view.Fullname, &view.ProfilePhoto,
		&view.Active, &view.CreatedAt, &view.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	r.CacheView(ctx, &view)
	return &view, nil
}

// List returns one page of users in a stable creation order.
// page and perPage fall back to 1 and DefaultPerPage when non-positive.
func (r *UserReadRepository) List(ctx context.Context, page, perPage int) (*models.Page, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	query := `
		SELECT id, email, fullname, profile_photo, active, created_at, updated_at
		FROM users
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.UserView, 0, perPage)
	for rows.Next() {
		var view models.UserView
		if err := rows.Scan(
			&view.ID, &view.Email, &view.Fullname, &view.ProfilePhoto,
			&view.Active, &view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &models.Page{Data: users, Page: page, PerPage: perPage, Total: total}, nil
}

// CacheView stores or refreshes the Redis read model for a user.
func (r *UserReadRepository) CacheView(ctx context.Context, view *models.UserView) {
	r.cache.Set(ctx, userViewKeyPrefix+view.ID, view)
}

// InvalidateView drops the cached read model after a mutation so the next
// read rebuilds it from PostgreSQL.
func (r *UserReadRepository) InvalidateView(ctx context.Context, userID string) {
	r.cache.Delete(ctx, userViewKeyPrefix+userID)
}
