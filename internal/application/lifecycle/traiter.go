package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/prospect"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

// TraiterUseCase transition Active -> Traité / À rappeler.
// L'affectation n'est jamais mutée : copie vers la table de destination puis suppression,
// dans une seule transaction (TxRunner).
type TraiterUseCase struct {
	txRunner       TxRunner
	assignmentRepo repository.AssignmentRepository
}

// NewTraiterUseCase construit le cas d'usage.
func NewTraiterUseCase(txRunner TxRunner, assignmentRepo repository.AssignmentRepository) *TraiterUseCase {
	return &TraiterUseCase{txRunner: txRunner, assignmentRepo: assignmentRepo}
}

// Traiter enregistre l'issue d'une affectation active.
// Validation avant toute écriture : statut à rappel obligatoire sans date de rappel =>
// ErrCallbackRequired, aucune ligne créée. La destination dépend de la politique de
// rappel : prospects_a_rappeler si le statut impose un suivi, sinon prospects_traites.
func (uc *TraiterUseCase) Traiter(ctx context.Context, assignmentID string, in dto.TraiterRequest) (*entity.ProcessedProspect, error) {
	if assignmentID == "" || in.Statut == "" || in.ActionDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if prospect.CallbackRequired(in.Statut) && in.CallbackDate == nil {
		return nil, domain.ErrCallbackRequired
	}

	a, err := uc.assignmentRepo.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}

	stage := entity.StageTraite
	if prospect.CallbackRequired(in.Statut) {
		stage = entity.StageARappeler
	}

	processed := &entity.ProcessedProspect{
		ID:             uuid.New().String(),
		AssignmentID:   a.ID,
		SalesUserID:    a.SalesUserID,
		SourceTable:    a.SourceTable,
		SourceID:       a.SourceID,
		LeadEmail:      a.LeadEmail,
		StatutProspect: in.Statut,
		NotesSales:     in.SalesNote,
		DateAction:     in.ActionDate,
		CallbackDate:   in.CallbackDate,
		CustomData:     a.CustomData,
		AssignedBy:     a.AssignedBy,
		AssignedAt:     a.AssignedAt,
		CompletedAt:    time.Now(),
	}

	err = uc.txRunner.Run(ctx, func(
		assignmentRepo repository.AssignmentRepository,
		processedRepo repository.ProcessedRepository,
		crmRepo repository.CRMContactRepository,
		apolloRepo repository.ApolloContactRepository,
	) error {
		if err := processedRepo.Create(stage, processed); err != nil {
			return err
		}
		if err := assignmentRepo.Delete(a.ID); err != nil {
			return err
		}
		if !in.UpdateSources {
			return nil
		}
		// Variante "TraiterProspectForm" : propager le statut vers les fiches sources,
		// dans la même transaction que la transition.
		switch a.SourceTable {
		case entity.SourceTableCRM:
			return crmRepo.UpdateStatus(a.SourceID, in.Statut)
		case entity.SourceTableApollo:
			return apolloRepo.UpdateStage(a.SourceID, in.Statut)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return processed, nil
}
