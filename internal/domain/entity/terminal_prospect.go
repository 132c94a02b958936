package entity

import "time"

// ValidatedProspect état terminal de succès : rendez-vous pris. Immuable une fois créé.
type ValidatedProspect struct {
	ID                    string     `json:"id"`
	ProcessedID           string     `json:"processed_id"`
	SalesUserID           string     `json:"sales_user_id"`
	SourceTable           string     `json:"source_table"`
	SourceID              string     `json:"source_id"`
	LeadEmail             string     `json:"lead_email"`
	StatutProspect        string     `json:"statut_prospect"`
	NotesSales            string     `json:"notes_sales"`
	DateAction            time.Time  `json:"date_action"`
	CallbackDate          *time.Time `json:"callback_date,omitempty"`
	RdvDate               time.Time  `json:"rdv_date"`
	RdvNotes              string     `json:"rdv_notes"`
	CommentaireValidation string     `json:"commentaire_validation"`
	ValidatedBy           string     `json:"validated_by"`
	ValidatedAt           time.Time  `json:"validated_at"`
}

// ArchivedProspect état terminal de rejet. Immuable une fois créé.
type ArchivedProspect struct {
	ID               string     `json:"id"`
	ProcessedID      string     `json:"processed_id"`
	SalesUserID      string     `json:"sales_user_id"`
	SourceTable      string     `json:"source_table"`
	SourceID         string     `json:"source_id"`
	LeadEmail        string     `json:"lead_email"`
	StatutProspect   string     `json:"statut_prospect"`
	NotesSales       string     `json:"notes_sales"`
	DateAction       time.Time  `json:"date_action"`
	CallbackDate     *time.Time `json:"callback_date,omitempty"`
	CommentaireRejet string     `json:"commentaire_rejet"`
	RaisonRejet      string     `json:"raison_rejet"`
	RejectedBy       string     `json:"rejected_by"`
	ArchivedAt       time.Time  `json:"archived_at"`
}
