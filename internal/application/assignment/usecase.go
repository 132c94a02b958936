package assignment

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

// AssignUseCase affectation de prospects aux commerciaux.
type AssignUseCase struct {
	assignmentRepo repository.AssignmentRepository
	userRepo       repository.SalesUserRepository
	crmRepo        repository.CRMContactRepository
	apolloRepo     repository.ApolloContactRepository
}

// NewAssignUseCase construit le cas d'usage.
func NewAssignUseCase(
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.SalesUserRepository,
	crmRepo repository.CRMContactRepository,
	apolloRepo repository.ApolloContactRepository,
) *AssignUseCase {
	return &AssignUseCase{
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		crmRepo:        crmRepo,
		apolloRepo:     apolloRepo,
	}
}

// Assign crée une affectation active par contact sélectionné, assigned_by = appelant.
// L'index unique en base sur (sales_user_id, lead_email) actif fait le tri : un doublon
// (deux admins qui affectent en même temps, ou une ligne déjà affectée) est signalé
// dans Skipped au lieu d'être créé en double. Aucune notification n'est envoyée ici.
func (uc *AssignUseCase) Assign(assignedBy string, in dto.AssignRequest) (*dto.AssignReport, error) {
	if in.SalesUserID == "" || len(in.SelectedRowIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceTable != entity.SourceTableCRM && in.SourceTable != entity.SourceTableApollo {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByID(in.SalesUserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, domain.ErrUserNotFound
	}

	// Résoudre les emails des lignes sélectionnées dans la table source.
	emails, err := uc.resolveEmails(in.SourceTable, in.SelectedRowIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &dto.AssignReport{}
	for id, email := range emails {
		a := &entity.Assignment{
			ID:          uuid.New().String(),
			SalesUserID: in.SalesUserID,
			SourceTable: in.SourceTable,
			SourceID:    id,
			LeadEmail:   email,
			Status:      entity.AssignmentStatusActive,
			AssignedBy:  assignedBy,
			AssignedAt:  now,
		}
		if err := uc.assignmentRepo.Create(a); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				report.Skipped = append(report.Skipped, email)
				continue
			}
			return nil, err
		}
		report.Assigned++
	}
	return report, nil
}

// resolveEmails retourne id -> email pour les contacts trouvés. Les ids inconnus sont ignorés.
func (uc *AssignUseCase) resolveEmails(sourceTable string, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	switch sourceTable {
	case entity.SourceTableCRM:
		contacts, err := uc.crmRepo.GetByIDs(ids)
		if err != nil {
			return nil, err
		}
		for _, c := range contacts {
			if c.Email != "" {
				out[c.ID] = c.Email
			}
		}
	case entity.SourceTableApollo:
		contacts, err := uc.apolloRepo.GetByIDs(ids)
		if err != nil {
			return nil, err
		}
		for _, c := range contacts {
			if c.Email != "" {
				out[c.ID] = c.Email
			}
		}
	}
	return out, nil
}

// List retourne les affectations actives d'un commercial (ou toutes si salesUserID vide).
func (uc *AssignUseCase) List(salesUserID string, limit, offset int) ([]*entity.Assignment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if salesUserID == "" {
		return uc.assignmentRepo.ListAll(limit, offset)
	}
	return uc.assignmentRepo.ListBySalesUser(salesUserID, limit, offset)
}
