package prospect

import (
	"time"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
)

// Merge construit la vue unifiée d'un prospect à partir des fiches sources.
// Priorité fixe CRM > HubSpot > Apollo, résolue champ par champ : la première valeur
// non vide gagne, même si une source plus prioritaire possède une fiche (mais un champ vide).
// Projection pure, sans effet de bord. Retourne nil si aucune source n'a de fiche.
func Merge(crm *entity.CRMContact, hs *entity.HubSpotContact, ap *entity.ApolloContact) *entity.UnifiedProspect {
	if crm == nil && hs == nil && ap == nil {
		return nil
	}

	// Valeurs par source, dans l'ordre de priorité. Une source absente contribue vide.
	var (
		emails, firstNames, lastNames, companies, phones, industries []string
		employeeCounts                                               []int
		createdDates                                                 []time.Time
	)
	if crm != nil {
		emails = append(emails, crm.Email)
		firstNames = append(firstNames, crm.FirstName)
		lastNames = append(lastNames, crm.LastName)
		companies = append(companies, crm.Company)
		phones = append(phones, coalesce(crm.Phone, crm.Mobile))
		industries = append(industries, crm.Industry)
		employeeCounts = append(employeeCounts, crm.EmployeeCount)
		createdDates = append(createdDates, crm.CreatedAt)
	}
	if hs != nil {
		emails = append(emails, hs.Email)
		firstNames = append(firstNames, hs.FirstName)
		lastNames = append(lastNames, hs.LastName)
		companies = append(companies, hs.Company)
		phones = append(phones, hs.Phone)
		industries = append(industries, hs.Industry)
		employeeCounts = append(employeeCounts, hs.EmployeeCount)
		createdDates = append(createdDates, hs.CreatedAt)
	}
	if ap != nil {
		emails = append(emails, ap.Email)
		firstNames = append(firstNames, ap.FirstName)
		lastNames = append(lastNames, ap.LastName)
		companies = append(companies, ap.Company)
		phones = append(phones, ap.Phone)
		industries = append(industries, ap.Industry)
		employeeCounts = append(employeeCounts, ap.EmployeeCount)
		createdDates = append(createdDates, ap.CreatedAt)
	}

	flags := entity.SourceFlags{CRM: crm != nil, HubSpot: hs != nil, Apollo: ap != nil}
	p := &entity.UnifiedProspect{
		Email:         coalesce(emails...),
		FirstName:     coalesce(firstNames...),
		LastName:      coalesce(lastNames...),
		Company:       coalesce(companies...),
		Phone:         coalesce(phones...),
		Industry:      coalesce(industries...),
		EmployeeCount: coalesceInt(employeeCounts...),
		Sources:       flags,
		SourceCount:   flags.Count(),
		CreatedAt:     oldest(createdDates...),
	}

	// Statuts propres aux sources : pas de fusion, les vocabulaires diffèrent.
	if crm != nil {
		p.ZohoStatus = crm.ZohoStatus
	}
	if hs != nil {
		p.HSLeadStatus = hs.HSLeadStatus
	}
	if ap != nil {
		p.ApolloStage = ap.Stage
	}
	return p
}

// coalesce retourne la première chaîne non vide.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// coalesceInt retourne la première valeur strictement positive (0 = non renseigné).
func coalesceInt(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// oldest retourne la plus ancienne date non nulle.
func oldest(dates ...time.Time) time.Time {
	var min time.Time
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if min.IsZero() || d.Before(min) {
			min = d
		}
	}
	return min
}
