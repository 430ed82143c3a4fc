// Package dto holds the flat data records exchanged between the service
// layer and the stores. Mapping to and from storage rows is explicit; no
// reflection-based reconstruction.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountRead is a read-optimized record for account queries. BalanceMinor is
// in the smallest currency unit; Version is the optimistic-concurrency token
// the conditional update is keyed on.
type AccountRead struct {
	ID           uuid.UUID
	UserID       string
	Currency     string
	BalanceMinor int64
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountCreate is the record for provisioning a new account.
type AccountCreate struct {
	ID           uuid.UUID
	UserID       string
	Currency     string
	BalanceMinor int64
}

// AccountBalanceUpdate is the record for the conditional balance update. The
// store must apply it only while the stored version still equals
// ExpectedVersion.
type AccountBalanceUpdate struct {
	ID              uuid.UUID
	BalanceMinor    int64
	ExpectedVersion int64
	UpdatedAt       time.Time
}
