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

type offerRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *sql.DB, logger *zap.Logger) *offerRepository {
	return &offerRepository{
		db:     db,
		logger: logger,
	}
}

const offerColumns = `id, coupon_name, discount, minimum_purchase, active, created_at, updated_at`

func scanOffer(row rowScanner) (*domain.Offer, error) {
	var offer domain.Offer
	err := row.Scan(
		&offer.ID,
		&offer.CouponName,
		&offer.Discount,
		&offer.MinimumPurchase,
		&offer.Active,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) List(ctx context.Context) ([]*domain.Offer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+offerColumns+` FROM offers ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("Failed to query offers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	offers := make([]*domain.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			r.logger.Error("Failed to scan offer", zap.Error(err))
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}

func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	offer, err := scanOffer(r.db.QueryRowContext(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "offer", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get offer by ID", zap.Error(err))
		return nil, err
	}
	return offer, nil
}

func (r *offerRepository) GetByCouponName(ctx context.Context, name string) (*domain.Offer, error) {
	offer, err := scanOffer(r.db.QueryRowContext(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE coupon_name = $1`, name))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "offer", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get offer by coupon name", zap.Error(err))
		return nil, err
	}
	return offer, nil
}

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	query := `
		INSERT INTO offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now()
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = now
	}
	if offer.UpdatedAt.IsZero() {
		offer.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		offer.ID,
		offer.CouponName,
		offer.Discount,
		offer.MinimumPurchase,
		offer.Active,
		offer.CreatedAt,
		offer.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return &errors.ErrConflict{Resource: "offer", Message: "Coupon already exists"}
	}
	if err != nil {
		r.logger.Error("Failed to create offer", zap.Error(err))
		return err
	}
	return nil
}

func (r *offerRepository) Update(ctx context.Context, offer *domain.Offer) error {
	query := `
		UPDATE offers
		SET coupon_name = $2, discount = $3, minimum_purchase = $4, active = $5, updated_at = $6
		WHERE id = $1
	`

	offer.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		offer.ID,
		offer.CouponName,
		offer.Discount,
		offer.MinimumPurchase,
		offer.Active,
		offer.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return &errors.ErrConflict{Resource: "offer", Message: "Coupon already exists"}
	}
	if err != nil {
		r.logger.Error("Failed to update offer", zap.Error(err))
		return err
	}
	return requireAffected(result, "offer", offer.ID)
}

func (r *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete offer", zap.Error(err))
		return err
	}
	return requireAffected(result, "offer", id)
}
