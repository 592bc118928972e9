package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog rows are append-only; nothing updates or deletes them.
// ActorID is nil for system-initiated actions such as the cleanup sweep.
type AuditLog struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID   *string   `gorm:"type:uuid;index" json:"actorId"`
	Action    string    `gorm:"not null;index" json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
