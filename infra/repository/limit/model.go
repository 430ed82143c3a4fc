package limit

import (
	"time"

	"github.com/google/uuid"
)

// WithdrawalLimit is the database record for the caps of one (user, currency)
// pair. Usage is never stored here; it is derived from the transactions table.
type WithdrawalLimit struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_withdrawal_limits_user_currency"`
	Currency     string    `gorm:"type:varchar(3);not null;uniqueIndex:idx_withdrawal_limits_user_currency"`
	DailyLimit   int64     `gorm:"not null"`
	MonthlyLimit int64     `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the WithdrawalLimit model.
func (WithdrawalLimit) TableName() string {
	return "withdrawal_limits"
}
