package domain

import "time"

// Audit carries the creation and last-mutation timestamps shared by mutable
// entities. Composed by value; there is no shared base entity.
type Audit struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newAudit(now time.Time) Audit {
	return Audit{CreatedAt: now, UpdatedAt: now}
}

func (a *Audit) touch(now time.Time) {
	a.UpdatedAt = now
}
