package entity

import "time"

// AssignmentStatusActive seul statut porté par sales_assignments : les autres étapes
// du cycle de vie vivent dans leurs propres tables (copie transactionnelle puis suppression).
const AssignmentStatusActive = "active"

// Assignment lien de propriété entre un utilisateur commercial et un prospect.
// Au plus une ligne active par couple (sales_user_id, lead_email) — contrainte unique en base.
type Assignment struct {
	ID          string            `json:"id"`
	SalesUserID string            `json:"sales_user_id"`
	SourceTable string            `json:"source_table"` // crm_contacts | apollo_contacts
	SourceID    string            `json:"source_id"`
	LeadEmail   string            `json:"lead_email"`
	Status      string            `json:"status"`
	CustomData  map[string]string `json:"custom_data,omitempty"` // notes libres, date d'action, etc. (jsonb)
	AssignedBy  string            `json:"assigned_by"`
	AssignedAt  time.Time         `json:"assigned_at"`
}
