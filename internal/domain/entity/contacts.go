package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tables sources de contacts. L'email est la clé d'unification entre elles.
const (
	SourceTableCRM     = "crm_contacts"
	SourceTableHubSpot = "hubspot_contacts"
	SourceTableApollo  = "apollo_contacts"
)

// CRMContact contact issu du CRM interne (vocabulaire de statut Zoho).
// Source prioritaire lors de la fusion.
type CRMContact struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Company       string    `json:"company"`
	Phone         string    `json:"phone"`
	Mobile        string    `json:"mobile"`
	ZohoStatus    string    `json:"zoho_status"`
	Industry      string    `json:"industry"`
	EmployeeCount int       `json:"employee_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HubSpotContact contact synchronisé depuis HubSpot.
type HubSpotContact struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Company       string    `json:"company"`
	Phone         string    `json:"phone"`
	HSLeadStatus  string    `json:"hs_lead_status"`
	Industry      string    `json:"industry"`
	EmployeeCount int       `json:"employee_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ApolloContact contact enrichi via Apollo. AnnualRevenue vient de l'enrichissement société.
type ApolloContact struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Company       string          `json:"company"`
	Phone         string          `json:"phone"`
	Stage         string          `json:"stage"`
	Industry      string          `json:"industry"`
	EmployeeCount int             `json:"employee_count"`
	AnnualRevenue decimal.Decimal `json:"annual_revenue"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BrevoActivity overlay d'activité email en lecture seule (jamais fusionné par priorité).
type BrevoActivity struct {
	Email          string     `json:"email"`
	OpensCount     int        `json:"opens_count"`
	ClicksCount    int        `json:"clicks_count"`
	LastCampaign   string     `json:"last_campaign"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
}
