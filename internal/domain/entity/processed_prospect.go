package entity

import "time"

// Stage table de destination d'un prospect traité.
type Stage string

const (
	StageTraite    Stage = "traite"     // prospects_traites
	StageARappeler Stage = "a_rappeler" // prospects_a_rappeler
)

// Valid indique si le stage est connu.
func (s Stage) Valid() bool {
	return s == StageTraite || s == StageARappeler
}

// ProcessedProspect copie d'un Assignment après l'action "traiter", enrichie de l'issue.
// Créé exclusivement par la transition de cycle de vie, jamais directement par un utilisateur.
// ReminderSentAt n'est renseigné que dans prospects_a_rappeler (garde d'idempotence des rappels).
type ProcessedProspect struct {
	ID             string            `json:"id"`
	AssignmentID   string            `json:"assignment_id"`
	SalesUserID    string            `json:"sales_user_id"`
	SourceTable    string            `json:"source_table"`
	SourceID       string            `json:"source_id"`
	LeadEmail      string            `json:"lead_email"`
	StatutProspect string            `json:"statut_prospect"`
	NotesSales     string            `json:"notes_sales"`
	DateAction     time.Time         `json:"date_action"`
	CallbackDate   *time.Time        `json:"callback_date,omitempty"`
	CustomData     map[string]string `json:"custom_data,omitempty"`
	AssignedBy     string            `json:"assigned_by"`
	AssignedAt     time.Time         `json:"assigned_at"`
	CompletedAt    time.Time         `json:"completed_at"`
	ReminderSentAt *time.Time        `json:"reminder_sent_at,omitempty"`
}
