package dto

import (
	"time"

	"github.com/google/uuid"
)

// LimitRead is a read-optimized record for withdrawal-limit queries.
type LimitRead struct {
	ID           uuid.UUID
	UserID       string
	Currency     string
	DailyMinor   int64
	MonthlyMinor int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LimitUpsert is the record for creating or replacing the caps of one
// (user, currency) pair.
type LimitUpsert struct {
	ID           uuid.UUID
	UserID       string
	Currency     string
	DailyMinor   int64
	MonthlyMinor int64
	UpdatedAt    time.Time
}
