package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is the database record for one ledger entry. Rows are
// append-only; there is no update path.
type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID      string    `gorm:"type:varchar(128);not null;index:idx_transactions_user_currency_created"`
	Currency    string    `gorm:"type:varchar(3);not null;index:idx_transactions_user_currency_created"`
	Amount      int64     `gorm:"not null"`
	Type        string    `gorm:"type:varchar(16);not null"`
	Description string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"index:idx_transactions_user_currency_created"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
