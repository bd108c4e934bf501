// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// AuditLog is one access decision or data change.
type AuditLog struct {
	Timestamp     time.Time       `json:"timestamp"`
	UserID        string          `json:"user_id"`
	Role          string          `json:"role,omitempty"`
	TenantID      string          `json:"tenant_id,omitempty"`
	Action        string          `json:"action"`
	ResourceType  string          `json:"resource_type,omitempty"`
	ResourceID    string          `json:"resource_id,omitempty"`
	AccessGranted bool            `json:"access_granted"`
	DenialKind    string          `json:"denial_kind,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}

// Query filters audit logs. Empty strings match everything.
type Query struct {
	From       time.Time
	To         time.Time
	UserID     string
	TenantID   string
	ResourceID string
	Size       int
}
