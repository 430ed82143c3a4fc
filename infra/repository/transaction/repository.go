// Package transaction implements the ledger store on PostgreSQL via gorm.
package transaction

import (
	"context"
	"time"

	"github.com/cashfold/checking/pkg/domain"
	"github.com/cashfold/checking/pkg/dto"
	repo "github.com/cashfold/checking/pkg/repository/transaction"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates the transaction repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements transaction.Repository.
func (r *repository) Create(ctx context.Context, create dto.TransactionCreate) error {
	row := Transaction{
		ID:          create.ID,
		AccountID:   create.AccountID,
		UserID:      create.UserID,
		Currency:    create.Currency,
		Amount:      create.AmountMinor,
		Type:        create.Type,
		Description: create.Description,
		CreatedAt:   create.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// ListByUserAndCurrency implements transaction.Repository.
func (r *repository) ListByUserAndCurrency(ctx context.Context, userID, currency, txType string, limit int) ([]dto.TransactionRead, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND currency = ?", userID, currency)
	if txType != "" {
		q = q.Where("type = ?", txType)
	}
	var rows []Transaction
	err := q.
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

// SumWithdrawalsInWindow implements transaction.Repository. The window is
// half-open [startInclusive, endExclusive).
func (r *repository) SumWithdrawalsInWindow(ctx context.Context, userID, currency string, startInclusive, endExclusive time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND currency = ? AND type = ? AND created_at >= ? AND created_at < ?",
			userID, currency, string(domain.TransactionWithdrawal), startInclusive, endExclusive).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func mapModelToDTO(row *Transaction) dto.TransactionRead {
	return dto.TransactionRead{
		ID:          row.ID,
		AccountID:   row.AccountID,
		UserID:      row.UserID,
		Currency:    row.Currency,
		AmountMinor: row.Amount,
		Type:        row.Type,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}
