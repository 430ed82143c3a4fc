// Package account implements the account store on PostgreSQL via gorm.
package account

import (
	"context"
	"errors"
	"strings"

	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/dto"
	repo "github.com/cashfold/checking/pkg/repository/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates the account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements account.Repository.
func (r *repository) Create(ctx context.Context, create dto.AccountCreate) error {
	row := Account{
		ID:       create.ID,
		UserID:   create.UserID,
		Currency: create.Currency,
		Balance:  create.BalanceMinor,
		Version:  0,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrAccountAlreadyExists
	}
	return err
}

// Get implements account.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	var row Account
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&row), nil
}

// GetByUserAndCurrency implements account.Repository.
func (r *repository) GetByUserAndCurrency(ctx context.Context, userID, currency string) (*dto.AccountRead, error) {
	var row Account
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND currency = ?", userID, currency).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return mapModelToDTO(&row), nil
}

// UpdateBalance implements account.Repository. The write is conditional on
// the stored version still matching the one the caller read; zero rows
// affected means another writer got there first.
func (r *repository) UpdateBalance(ctx context.Context, update dto.AccountBalanceUpdate) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ? AND version = ?", update.ID, update.ExpectedVersion).
		Updates(map[string]any{
			"balance":    update.BalanceMinor,
			"version":    update.ExpectedVersion + 1,
			"updated_at": update.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

// mapModelToDTO maps a database row to the read record. Explicit field
// mapping only; no reflection-based reconstruction.
func mapModelToDTO(row *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:           row.ID,
		UserID:       row.UserID,
		Currency:     row.Currency,
		BalanceMinor: row.Balance,
		Version:      row.Version,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// The postgres driver reports SQLSTATE 23505 for unique violations.
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key")
}
