package entity

import (
	"github.com/google/uuid"
)

// Audit event types recorded by the write paths.
const (
	AuditTypeCreateBriefResponse = "create_brief_response"
	AuditTypeDeleteBrief         = "delete_brief"
	AuditTypeUpdateBrief         = "update_brief"
)

// AuditEvent is an append-only record of who did what to which object.
type AuditEvent struct {
	Id         uuid.UUID              `json:"id" db:"id"`
	Type       string                 `json:"type" db:"type"`
	User       string                 `json:"user" db:"user_email"`
	Data       map[string]interface{} `json:"data" db:"data"`
	ObjectType string                 `json:"objectType" db:"object_type"`
	ObjectId   string                 `json:"objectId" db:"object_id"`
	CreatedAt  string                 `json:"createdAt" db:"created_at"`
}
