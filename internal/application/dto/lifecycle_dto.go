package dto

import "time"

// AssignRequest affectation en masse de contacts sélectionnés à un commercial.
type AssignRequest struct {
	SalesUserID    string   `json:"salesUserId"`
	SourceTable    string   `json:"sourceTable"` // crm_contacts | apollo_contacts
	SelectedRowIDs []string `json:"selectedRowIds"`
}

// AssignReport résultat d'une affectation en masse : les doublons sont signalés,
// pas silencieusement créés.
type AssignReport struct {
	Assigned int      `json:"assigned"`
	Skipped  []string `json:"skipped,omitempty"` // emails déjà affectés à ce commercial
}

// TraiterRequest issue enregistrée pour une affectation active.
// CallbackDate est obligatoire si le statut appartient à l'ensemble à rappel obligatoire.
type TraiterRequest struct {
	Statut        string     `json:"statut"`
	ActionDate    time.Time  `json:"actionDate"`
	CallbackDate  *time.Time `json:"callbackDate"`
	SalesNote     string     `json:"salesNote"`
	UpdateSources bool       `json:"updateSources"` // variante qui propage le statut vers crm_contacts/apollo_contacts
}

// ValiderRequest transition terminale de succès. RdvDate doit être dans le futur.
type ValiderRequest struct {
	Stage       string    `json:"stage"` // traite | a_rappeler
	Commentaire string    `json:"commentaire"`
	RdvDate     time.Time `json:"rdvDate"`
	RdvNotes    string    `json:"rdvNotes"`
}

// RejeterRequest transition terminale de rejet.
type RejeterRequest struct {
	Stage       string `json:"stage"`
	Commentaire string `json:"commentaire"`
	Raison      string `json:"raison"`
}

// ImportRowError erreur d'une ligne du CSV, collectée sans interrompre l'import.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport bilan d'un import CSV.
type ImportReport struct {
	Inserted int              `json:"inserted"`
	Updated  int              `json:"updated"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// ReminderReport bilan d'un passage du job de rappels.
type ReminderReport struct {
	UsersNotified int      `json:"users_notified"`
	Prospects     int      `json:"prospects"`
	FailedUsers   []string `json:"failed_users,omitempty"`
}
