package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is the database record for a checking account. The (user_id,
// currency) pair is unique; version is the optimistic-concurrency token
// bumped on every balance write.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_accounts_user_currency"`
	Currency  string    `gorm:"type:varchar(3);not null;uniqueIndex:idx_accounts_user_currency"`
	Balance   int64     `gorm:"not null"`
	Version   int64     `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
