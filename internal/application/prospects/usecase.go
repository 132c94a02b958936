package prospects

import (
	"context"
	"time"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/prospect"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// QueryUseCase requêtes en lecture sur la vue unifiée des prospects.
type QueryUseCase struct {
	unifiedRepo repository.UnifiedProspectRepository
	crmRepo     repository.CRMContactRepository
	hubspotRepo repository.HubSpotContactRepository
	apolloRepo  repository.ApolloContactRepository
	brevoRepo   repository.BrevoActivityRepository
}

// NewQueryUseCase construit le cas d'usage.
func NewQueryUseCase(
	unifiedRepo repository.UnifiedProspectRepository,
	crmRepo repository.CRMContactRepository,
	hubspotRepo repository.HubSpotContactRepository,
	apolloRepo repository.ApolloContactRepository,
	brevoRepo repository.BrevoActivityRepository,
) *QueryUseCase {
	return &QueryUseCase{
		unifiedRepo: unifiedRepo,
		crmRepo:     crmRepo,
		hubspotRepo: hubspotRepo,
		apolloRepo:  apolloRepo,
		brevoRepo:   brevoRepo,
	}
}

// List exécute la requête unifiée paginée : normalise la recherche, borne la pagination,
// traduit les filtres UI en prédicats du repository.
func (uc *QueryUseCase) List(ctx context.Context, in dto.UnifiedQueryRequest) (*dto.UnifiedListResponse, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	q := repository.UnifiedQuery{
		Page:      page,
		PageSize:  pageSize,
		Search:    prospect.NormalizeSearch(in.Search),
		Sources:   sanitizeSources(in.Sources),
		SortBy:    sanitizeSortBy(in.SortBy),
		SortOrder: sanitizeSortOrder(in.SortOrder),
		Company:   prospect.NormalizeSearch(in.Company),
		Industry:  prospect.NormalizeSearch(in.Industry),
	}

	q.StatusFilters = map[string][]string{}
	if len(in.ZohoStatuses) > 0 {
		q.StatusFilters["zoho_status"] = in.ZohoStatuses
	}
	if len(in.HSLeadStatuses) > 0 {
		q.StatusFilters["hs_lead_status"] = in.HSLeadStatuses
	}
	if len(in.ApolloStages) > 0 {
		q.StatusFilters["stage"] = in.ApolloStages
	}

	if in.MinEmployees > 0 {
		v := in.MinEmployees
		q.MinEmployees = &v
	}
	if in.MaxEmployees > 0 {
		v := in.MaxEmployees
		q.MaxEmployees = &v
	}
	if t, err := parseDate(in.From); err == nil && t != nil {
		q.From = t
	}
	if t, err := parseDate(in.To); err == nil && t != nil {
		// borne haute inclusive : fin de journée
		end := t.Add(24*time.Hour - time.Nanosecond)
		q.To = &end
	}

	res, err := uc.unifiedRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	totalPages := res.Count / pageSize
	if res.Count%pageSize != 0 {
		totalPages++
	}
	return &dto.UnifiedListResponse{
		Data:       res.Data,
		Count:      res.Count,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// GetByEmail assemble la vue détaillée d'un prospect : fiches sources, fusion par
// priorité (en Go, même règle que la liste SQL) et overlay Brevo.
// Une source injoignable contribue simplement rien ; seul « aucune source » est une erreur.
func (uc *QueryUseCase) GetByEmail(ctx context.Context, email string) (*dto.ProspectDetailResponse, error) {
	if email == "" {
		return nil, domain.ErrInvalidInput
	}

	// Les erreurs par source sont volontairement avalées : l'absence d'une source
	// ne doit pas faire échouer la projection entière.
	crm, _ := uc.crmRepo.GetByEmail(email)
	hs, _ := uc.hubspotRepo.GetByEmail(email)
	ap, _ := uc.apolloRepo.GetByEmail(email)

	merged := prospect.Merge(crm, hs, ap)
	if merged == nil {
		return nil, domain.ErrNotFound
	}

	brevo, _ := uc.brevoRepo.GetByEmail(email)

	return &dto.ProspectDetailResponse{
		Prospect: merged,
		CRM:      crm,
		HubSpot:  hs,
		Apollo:   ap,
		Brevo:    brevo,
	}, nil
}

func sanitizeSources(in []string) []string {
	var out []string
	for _, s := range in {
		switch s {
		case "crm", "hubspot", "apollo":
			out = append(out, s)
		}
	}
	return out
}

func sanitizeSortBy(s string) string {
	switch s {
	case repository.SortByEmail, repository.SortByLastName, repository.SortByCompany, repository.SortByCreatedAt:
		return s
	default:
		return repository.SortByCreatedAt
	}
}

func sanitizeSortOrder(s string) string {
	if s == "asc" {
		return "asc"
	}
	return "desc"
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
