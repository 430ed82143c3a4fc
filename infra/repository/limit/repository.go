// Package limit implements the withdrawal-limit store on PostgreSQL via gorm.
package limit

import (
	"context"
	"errors"

	"github.com/cashfold/checking/pkg/dto"
	repo "github.com/cashfold/checking/pkg/repository/limit"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New creates the limit repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// GetByUserAndCurrency implements limit.Repository. Returns (nil, nil) when
// no caps are configured for the pair.
func (r *repository) GetByUserAndCurrency(ctx context.Context, userID, currency string) (*dto.LimitRead, error) {
	var row WithdrawalLimit
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND currency = ?", userID, currency).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.LimitRead{
		ID:           row.ID,
		UserID:       row.UserID,
		Currency:     row.Currency,
		DailyMinor:   row.DailyLimit,
		MonthlyMinor: row.MonthlyLimit,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

// Upsert implements limit.Repository. The (user_id, currency) unique index
// is the conflict target.
func (r *repository) Upsert(ctx context.Context, upsert dto.LimitUpsert) error {
	row := WithdrawalLimit{
		ID:           upsert.ID,
		UserID:       upsert.UserID,
		Currency:     upsert.Currency,
		DailyLimit:   upsert.DailyMinor,
		MonthlyLimit: upsert.MonthlyMinor,
		UpdatedAt:    upsert.UpdatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "currency"}},
			DoUpdates: clause.AssignmentColumns([]string{"daily_limit", "monthly_limit", "updated_at"}),
		}).
		Create(&row).Error
}
