package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque bearer-token session. The token carries no claims;
// everything lives in this row. A user may hold any number of concurrent
// sessions. Expired rows are deleted lazily on validation.
type Session struct {
	Token     string    `json:"token" gorm:"primaryKey;size:64"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
