package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

// TerminalUseCase transitions terminales : Traité / À rappeler -> Validé ou Archivé.
// Même motif que "traiter" : copie intégrale puis suppression, en une transaction.
// Les tables terminales sont immuables ; aucun chemin de retour n'existe.
type TerminalUseCase struct {
	txRunner      TerminalTxRunner
	processedRepo repository.ProcessedRepository
}

// NewTerminalUseCase construit le cas d'usage.
func NewTerminalUseCase(txRunner TerminalTxRunner, processedRepo repository.ProcessedRepository) *TerminalUseCase {
	return &TerminalUseCase{txRunner: txRunner, processedRepo: processedRepo}
}

// Valider passe un prospect traité en validé (rendez-vous pris).
// Commentaire obligatoire ; la date de RDV doit être dans le futur, sinon ErrPastDate
// et aucune écriture.
func (uc *TerminalUseCase) Valider(ctx context.Context, processedID, validatedBy string, in dto.ValiderRequest) (*entity.ValidatedProspect, error) {
	stage := entity.Stage(in.Stage)
	if processedID == "" || in.Commentaire == "" || !stage.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.RdvDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !in.RdvDate.After(time.Now()) {
		return nil, domain.ErrPastDate
	}

	p, err := uc.processedRepo.GetByID(stage, processedID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	validated := &entity.ValidatedProspect{
		ID:                    uuid.New().String(),
		ProcessedID:           p.ID,
		SalesUserID:           p.SalesUserID,
		SourceTable:           p.SourceTable,
		SourceID:              p.SourceID,
		LeadEmail:             p.LeadEmail,
		StatutProspect:        p.StatutProspect,
		NotesSales:            p.NotesSales,
		DateAction:            p.DateAction,
		CallbackDate:          p.CallbackDate,
		RdvDate:               in.RdvDate,
		RdvNotes:              in.RdvNotes,
		CommentaireValidation: in.Commentaire,
		ValidatedBy:           validatedBy,
		ValidatedAt:           time.Now(),
	}

	err = uc.txRunner.RunTerminal(ctx, func(
		processedRepo repository.ProcessedRepository,
		validatedRepo repository.ValidatedProspectRepository,
		archivedRepo repository.ArchivedProspectRepository,
	) error {
		if err := validatedRepo.Create(validated); err != nil {
			return err
		}
		return processedRepo.Delete(stage, p.ID)
	})
	if err != nil {
		return nil, err
	}
	return validated, nil
}

// Rejeter archive un prospect traité. Commentaire obligatoire, raison catégorisée optionnelle.
func (uc *TerminalUseCase) Rejeter(ctx context.Context, processedID, rejectedBy string, in dto.RejeterRequest) (*entity.ArchivedProspect, error) {
	stage := entity.Stage(in.Stage)
	if processedID == "" || in.Commentaire == "" || !stage.Valid() {
		return nil, domain.ErrInvalidInput
	}

	p, err := uc.processedRepo.GetByID(stage, processedID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	archived := &entity.ArchivedProspect{
		ID:               uuid.New().String(),
		ProcessedID:      p.ID,
		SalesUserID:      p.SalesUserID,
		SourceTable:      p.SourceTable,
		SourceID:         p.SourceID,
		LeadEmail:        p.LeadEmail,
		StatutProspect:   p.StatutProspect,
		NotesSales:       p.NotesSales,
		DateAction:       p.DateAction,
		CallbackDate:     p.CallbackDate,
		CommentaireRejet: in.Commentaire,
		RaisonRejet:      in.Raison,
		RejectedBy:       rejectedBy,
		ArchivedAt:       time.Now(),
	}

	err = uc.txRunner.RunTerminal(ctx, func(
		processedRepo repository.ProcessedRepository,
		validatedRepo repository.ValidatedProspectRepository,
		archivedRepo repository.ArchivedProspectRepository,
	) error {
		if err := archivedRepo.Create(archived); err != nil {
			return err
		}
		return processedRepo.Delete(stage, p.ID)
	})
	if err != nil {
		return nil, err
	}
	return archived, nil
}
