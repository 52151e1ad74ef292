package dto

type ChainReportResponseDTO struct {
	AccountUUID string `json:"account_uuid"`
	Entries     int    `json:"entries"`
	Valid       bool   `json:"valid"`
	BrokenAtID  int64  `json:"broken_at_id,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

type AuditRecordDTO struct {
	ID         int64          `json:"id"`
	ActorEmail string         `json:"actor_email,omitempty"`
	ActorRole  string         `json:"actor_role,omitempty"`
	Action     string         `json:"action" example:"CREDIT_ALLOCATED"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	OldValues  map[string]any `json:"old_values,omitempty"`
	NewValues  map[string]any `json:"new_values,omitempty"`
	CreatedAt  string         `json:"created_at"`
}
