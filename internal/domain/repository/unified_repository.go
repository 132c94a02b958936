package repository

import (
	"context"
	"time"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
)

// Colonnes de tri acceptées par la vue unifiée.
const (
	SortByEmail     = "email"
	SortByLastName  = "last_name"
	SortByCompany   = "company"
	SortByCreatedAt = "created_at"
)

// UnifiedQuery paramètres de la requête paginée sur la vue unifiée.
// Search est supposé déjà normalisé (minuscules, sans accents).
type UnifiedQuery struct {
	Page     int
	PageSize int
	Search   string

	// Sous-ensemble de {crm, hubspot, apollo} ; vide = toutes les sources.
	Sources []string

	// Filtres de statut par champ source : zoho_status, hs_lead_status, stage -> valeurs.
	StatusFilters map[string][]string

	SortBy    string
	SortOrder string // asc | desc

	// Filtres avancés.
	Company      string
	Industry     string
	MinEmployees *int
	MaxEmployees *int
	From         *time.Time
	To           *time.Time
}

// UnifiedPage résultat paginé de la vue unifiée.
type UnifiedPage struct {
	Data  []*entity.UnifiedProspect
	Count int
}

// UnifiedProspectRepository projection en lecture seule sur les trois tables sources.
// La fusion par priorité est exécutée en SQL (COALESCE sur FULL OUTER JOIN).
type UnifiedProspectRepository interface {
	List(ctx context.Context, q UnifiedQuery) (*UnifiedPage, error)
}
