package dto

import (
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
)

// UnifiedQueryRequest paramètres de la liste unifiée, tels que reçus de l'UI.
type UnifiedQueryRequest struct {
	Page     int    `query:"page"`
	PageSize int    `query:"pageSize"`
	Search   string `query:"search"`

	Sources []string `query:"sources"` // sous-ensemble de {crm, hubspot, apollo}

	// Filtres de statut par champ source.
	ZohoStatuses   []string `query:"zohoStatus"`
	HSLeadStatuses []string `query:"hsLeadStatus"`
	ApolloStages   []string `query:"apolloStage"`

	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`

	// Filtres avancés.
	Company      string `query:"company"`
	Industry     string `query:"industry"`
	MinEmployees int    `query:"minEmployees"`
	MaxEmployees int    `query:"maxEmployees"`
	From         string `query:"from"` // YYYY-MM-DD
	To           string `query:"to"`
}

// UnifiedListResponse page de la vue unifiée.
type UnifiedListResponse struct {
	Data       []*entity.UnifiedProspect `json:"data"`
	Count      int                       `json:"count"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"pageSize"`
	TotalPages int                       `json:"totalPages"`
}

// ProspectDetailResponse vue fusionnée d'un prospect + fiches sources + overlay Brevo.
type ProspectDetailResponse struct {
	Prospect *entity.UnifiedProspect `json:"prospect"`

	// Fiches brutes par source, nil si absentes (sourceData).
	CRM     *entity.CRMContact     `json:"crm,omitempty"`
	HubSpot *entity.HubSpotContact `json:"hubspot,omitempty"`
	Apollo  *entity.ApolloContact  `json:"apollo,omitempty"`

	// Activité email Brevo (lecture seule, jamais fusionnée).
	Brevo *entity.BrevoActivity `json:"brevo,omitempty"`
}
