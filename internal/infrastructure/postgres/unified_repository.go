package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

var _ repository.UnifiedProspectRepository = (*UnifiedProspectRepo)(nil)

// UnifiedProspectRepo projection en lecture seule sur les trois tables sources.
// La fusion par priorité CRM > HubSpot > Apollo se fait champ par champ dans le SQL :
// NULLIF vide les chaînes vides pour qu'une fiche CRM présente mais incomplète laisse
// passer la valeur HubSpot, puis Apollo.
type UnifiedProspectRepo struct {
	q Querier
}

// NewUnifiedProspectRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewUnifiedProspectRepository(q Querier) *UnifiedProspectRepo {
	return &UnifiedProspectRepo{q: q}
}

// Le CTE matérialise la vue fusionnée ; les filtres s'appliquent dessus.
// LEAST ignore les NULL : created_at est la plus ancienne date parmi les sources.
const unifiedCTE = `
	WITH unified AS (
		SELECT
			COALESCE(c.email, h.email, a.email) AS email,
			COALESCE(NULLIF(c.first_name, ''), NULLIF(h.first_name, ''), NULLIF(a.first_name, ''), '') AS first_name,
			COALESCE(NULLIF(c.last_name, ''), NULLIF(h.last_name, ''), NULLIF(a.last_name, ''), '') AS last_name,
			COALESCE(NULLIF(c.company, ''), NULLIF(h.company, ''), NULLIF(a.company, ''), '') AS company,
			COALESCE(NULLIF(c.phone, ''), NULLIF(c.mobile, ''), NULLIF(h.phone, ''), NULLIF(a.phone, ''), '') AS phone,
			COALESCE(NULLIF(c.industry, ''), NULLIF(h.industry, ''), NULLIF(a.industry, ''), '') AS industry,
			COALESCE(NULLIF(c.employee_count, 0), NULLIF(h.employee_count, 0), NULLIF(a.employee_count, 0), 0) AS employee_count,
			COALESCE(c.zoho_status, '') AS zoho_status,
			COALESCE(h.hs_lead_status, '') AS hs_lead_status,
			COALESCE(a.stage, '') AS apollo_stage,
			(c.email IS NOT NULL) AS in_crm,
			(h.email IS NOT NULL) AS in_hubspot,
			(a.email IS NOT NULL) AS in_apollo,
			LEAST(c.created_at, h.created_at, a.created_at) AS created_at
		FROM crm_contacts c
		FULL OUTER JOIN hubspot_contacts h ON h.email = c.email
		FULL OUTER JOIN apollo_contacts a ON a.email = COALESCE(c.email, h.email)
	)`

// List exécute la requête paginée : un COUNT filtré puis la page demandée.
func (r *UnifiedProspectRepo) List(ctx context.Context, q repository.UnifiedQuery) (*repository.UnifiedPage, error) {
	where, args := buildUnifiedFilters(q)

	countQuery := unifiedCTE + `
	SELECT count(*) FROM unified` + where
	var count int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, fmt.Errorf("count unified prospects: %w", err)
	}

	orderBy := unifiedSortColumn(q.SortBy)
	direction := "ASC"
	if strings.EqualFold(q.SortOrder, "desc") {
		direction = "DESC"
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	dataQuery := unifiedCTE + fmt.Sprintf(`
	SELECT email, first_name, last_name, company, phone, industry, employee_count,
		zoho_status, hs_lead_status, apollo_stage, in_crm, in_hubspot, in_apollo, created_at
	FROM unified%s
	ORDER BY %s %s, email ASC
	LIMIT $%d OFFSET $%d`, where, orderBy, direction, limitArg, offsetArg)
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := r.q.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list unified prospects: %w", err)
	}
	defer rows.Close()

	var list []*entity.UnifiedProspect
	for rows.Next() {
		var p entity.UnifiedProspect
		if err := rows.Scan(&p.Email, &p.FirstName, &p.LastName, &p.Company, &p.Phone,
			&p.Industry, &p.EmployeeCount, &p.ZohoStatus, &p.HSLeadStatus, &p.ApolloStage,
			&p.Sources.CRM, &p.Sources.HubSpot, &p.Sources.Apollo, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unified prospect: %w", err)
		}
		p.SourceCount = p.Sources.Count()
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.UnifiedPage{Data: list, Count: count}, nil
}

// buildUnifiedFilters construit la clause WHERE avec des arguments positionnels.
func buildUnifiedFilters(q repository.UnifiedQuery) (string, []any) {
	var preds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Search != "" {
		// La recherche arrive déjà en minuscules sans accents ; unaccent aligne les colonnes.
		p := arg("%" + q.Search + "%")
		preds = append(preds, fmt.Sprintf(
			`unaccent(lower(email || ' ' || first_name || ' ' || last_name || ' ' || company)) LIKE %s`, p))
	}

	if len(q.Sources) > 0 {
		var flags []string
		for _, s := range q.Sources {
			switch s {
			case "crm":
				flags = append(flags, "in_crm")
			case "hubspot":
				flags = append(flags, "in_hubspot")
			case "apollo":
				flags = append(flags, "in_apollo")
			}
		}
		if len(flags) > 0 {
			preds = append(preds, "("+strings.Join(flags, " OR ")+")")
		}
	}

	for _, field := range []string{"zoho_status", "hs_lead_status"} {
		if values := q.StatusFilters[field]; len(values) > 0 {
			preds = append(preds, fmt.Sprintf("%s = ANY(%s)", field, arg(values)))
		}
	}
	if values := q.StatusFilters["stage"]; len(values) > 0 {
		preds = append(preds, fmt.Sprintf("apollo_stage = ANY(%s)", arg(values)))
	}

	if q.Company != "" {
		preds = append(preds, fmt.Sprintf("company ILIKE %s", arg("%"+q.Company+"%")))
	}
	if q.Industry != "" {
		preds = append(preds, fmt.Sprintf("industry ILIKE %s", arg("%"+q.Industry+"%")))
	}
	if q.MinEmployees != nil {
		preds = append(preds, fmt.Sprintf("employee_count >= %s", arg(*q.MinEmployees)))
	}
	if q.MaxEmployees != nil {
		preds = append(preds, fmt.Sprintf("employee_count <= %s", arg(*q.MaxEmployees)))
	}
	if q.From != nil {
		preds = append(preds, fmt.Sprintf("created_at >= %s", arg(*q.From)))
	}
	if q.To != nil {
		preds = append(preds, fmt.Sprintf("created_at <= %s", arg(*q.To)))
	}

	if len(preds) == 0 {
		return "", args
	}
	return "\n	WHERE " + strings.Join(preds, " AND "), args
}

// unifiedSortColumn borne la colonne de tri à la liste blanche.
func unifiedSortColumn(sortBy string) string {
	switch sortBy {
	case repository.SortByEmail, repository.SortByLastName, repository.SortByCompany, repository.SortByCreatedAt:
		return sortBy
	}
	return repository.SortByCreatedAt
}
