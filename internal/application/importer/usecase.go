package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

// ImportUseCase charge un CSV dans l'une des tables sources.
// L'en-tête pilote le mapping des colonnes ; les lignes invalides sont collectées
// dans le bilan sans interrompre l'import.
type ImportUseCase struct {
	crmRepo     repository.CRMContactRepository
	hubspotRepo repository.HubSpotContactRepository
	apolloRepo  repository.ApolloContactRepository
}

// NewImportUseCase construit le cas d'usage.
func NewImportUseCase(
	crmRepo repository.CRMContactRepository,
	hubspotRepo repository.HubSpotContactRepository,
	apolloRepo repository.ApolloContactRepository,
) *ImportUseCase {
	return &ImportUseCase{crmRepo: crmRepo, hubspotRepo: hubspotRepo, apolloRepo: apolloRepo}
}

// Import lit le flux CSV et alimente la table source indiquée.
// Clé d'upsert : email. Retourne le bilan insérés/mis à jour/échoués.
func (uc *ImportUseCase) Import(sourceTable string, r io.Reader) (*dto.ImportReport, error) {
	switch sourceTable {
	case entity.SourceTableCRM, entity.SourceTableHubSpot, entity.SourceTableApollo:
	default:
		return nil, domain.ErrInvalidInput
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("lecture de l'en-tête CSV: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[normalizeHeader(name)] = i
	}
	if _, ok := cols["email"]; !ok {
		return nil, domain.ErrInvalidInput
	}

	report := &dto.ImportReport{}
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, dto.ImportRowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		row := rowReader{cols: cols, record: record}
		email := strings.ToLower(strings.TrimSpace(row.get("email")))
		if email == "" || !strings.Contains(email, "@") {
			report.Failed++
			report.Errors = append(report.Errors, dto.ImportRowError{Row: rowNum, Reason: "email manquant ou invalide"})
			continue
		}

		inserted, err := uc.upsertRow(sourceTable, email, row)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, dto.ImportRowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		if inserted {
			report.Inserted++
		} else {
			report.Updated++
		}
	}
	return report, nil
}

func (uc *ImportUseCase) upsertRow(sourceTable, email string, row rowReader) (bool, error) {
	now := time.Now()
	switch sourceTable {
	case entity.SourceTableCRM:
		return uc.crmRepo.Upsert(&entity.CRMContact{
			ID:            uuid.New().String(),
			Email:         email,
			FirstName:     row.get("first_name", "prenom"),
			LastName:      row.get("last_name", "nom"),
			Company:       row.get("company", "societe"),
			Phone:         row.get("phone", "telephone"),
			Mobile:        row.get("mobile"),
			ZohoStatus:    row.get("zoho_status", "statut"),
			Industry:      row.get("industry", "secteur"),
			EmployeeCount: row.getInt("employee_count", "effectif"),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	case entity.SourceTableHubSpot:
		return uc.hubspotRepo.Upsert(&entity.HubSpotContact{
			ID:            uuid.New().String(),
			Email:         email,
			FirstName:     row.get("first_name", "prenom"),
			LastName:      row.get("last_name", "nom"),
			Company:       row.get("company", "societe"),
			Phone:         row.get("phone", "telephone"),
			HSLeadStatus:  row.get("hs_lead_status", "lead_status"),
			Industry:      row.get("industry", "secteur"),
			EmployeeCount: row.getInt("employee_count", "effectif"),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	case entity.SourceTableApollo:
		return uc.apolloRepo.Upsert(&entity.ApolloContact{
			ID:            uuid.New().String(),
			Email:         email,
			FirstName:     row.get("first_name", "prenom"),
			LastName:      row.get("last_name", "nom"),
			Company:       row.get("company", "societe"),
			Phone:         row.get("phone", "telephone"),
			Stage:         row.get("stage"),
			Industry:      row.get("industry", "secteur"),
			EmployeeCount: row.getInt("employee_count", "effectif"),
			AnnualRevenue: row.getDecimal("annual_revenue", "ca_annuel"),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return false, domain.ErrInvalidInput
}

// rowReader accès tolérant aux colonnes : alias d'en-têtes acceptés, valeur vide sinon.
type rowReader struct {
	cols   map[string]int
	record []string
}

func (r rowReader) get(names ...string) string {
	for _, name := range names {
		if i, ok := r.cols[name]; ok && i < len(r.record) {
			return strings.TrimSpace(r.record[i])
		}
	}
	return ""
}

func (r rowReader) getInt(names ...string) int {
	v := r.get(names...)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func (r rowReader) getDecimal(names ...string) decimal.Decimal {
	v := r.get(names...)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
