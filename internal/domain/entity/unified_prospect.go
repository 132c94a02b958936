package entity

import "time"

// SourceFlags indique quelles sources possèdent une fiche pour l'email.
type SourceFlags struct {
	CRM     bool `json:"crm"`
	HubSpot bool `json:"hubspot"`
	Apollo  bool `json:"apollo"`
}

// Count retourne le nombre de sources présentes.
func (s SourceFlags) Count() int {
	n := 0
	if s.CRM {
		n++
	}
	if s.HubSpot {
		n++
	}
	if s.Apollo {
		n++
	}
	return n
}

// UnifiedProspect vue fusionnée d'un prospect, identifié par email.
// Chaque champ est résolu par priorité CRM > HubSpot > Apollo, champ par champ :
// une fiche CRM existante mais vide sur un champ laisse passer la valeur HubSpot.
// Entité dérivée : jamais persistée telle quelle.
type UnifiedProspect struct {
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Company       string `json:"company"`
	Phone         string `json:"phone"`
	Industry      string `json:"industry"`
	EmployeeCount int    `json:"employee_count"`

	// Statuts propres à chaque source, non fusionnés (vocabulaires distincts).
	ZohoStatus   string `json:"zoho_status"`
	HSLeadStatus string `json:"hs_lead_status"`
	ApolloStage  string `json:"apollo_stage"`

	Sources     SourceFlags `json:"sources"`
	SourceCount int         `json:"source_count"`
	CreatedAt   time.Time   `json:"created_at"` // plus ancienne date de création parmi les sources
}
