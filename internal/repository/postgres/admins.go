package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/domain"
	"github.com/yangart/storefront/pkg/errors"
)

type adminRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *sql.DB, logger *zap.Logger) *adminRepository {
	return &adminRepository{
		db:     db,
		logger: logger,
	}
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admins
		WHERE username = $1
	`

	var admin domain.Admin
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "admin", ID: username}
	}
	if err != nil {
		r.logger.Error("Failed to get admin by username", zap.Error(err))
		return nil, err
	}

	return &admin, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (id, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := time.Now()
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = now
	}
	if admin.UpdatedAt.IsZero() {
		admin.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		admin.ID,
		admin.Username,
		admin.PasswordHash,
		admin.CreatedAt,
		admin.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return &errors.ErrConflict{Resource: "admin", Message: "username already exists"}
	}
	if err != nil {
		r.logger.Error("Failed to create admin", zap.Error(err))
		return err
	}

	return nil
}
