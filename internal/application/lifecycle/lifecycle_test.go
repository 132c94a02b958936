package lifecycle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/prospect"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

// ─────────────────────────────────────────────
// Fakes en mémoire
// ─────────────────────────────────────────────

type fakeAssignmentRepo struct {
	byID    map[string]*entity.Assignment
	deleted []string
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{byID: make(map[string]*entity.Assignment)}
}

func (r *fakeAssignmentRepo) Create(a *entity.Assignment) error {
	r.byID[a.ID] = a
	return nil
}
func (r *fakeAssignmentRepo) GetByID(id string) (*entity.Assignment, error) {
	return r.byID[id], nil
}
func (r *fakeAssignmentRepo) ListBySalesUser(string, int, int) ([]*entity.Assignment, error) {
	return nil, nil
}
func (r *fakeAssignmentRepo) ListAll(int, int) ([]*entity.Assignment, error) { return nil, nil }
func (r *fakeAssignmentRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeProcessedRepo struct {
	rows map[entity.Stage]map[string]*entity.ProcessedProspect
}

func newFakeProcessedRepo() *fakeProcessedRepo {
	return &fakeProcessedRepo{rows: map[entity.Stage]map[string]*entity.ProcessedProspect{
		entity.StageTraite:    {},
		entity.StageARappeler: {},
	}}
}

func (r *fakeProcessedRepo) Create(stage entity.Stage, p *entity.ProcessedProspect) error {
	r.rows[stage][p.ID] = p
	return nil
}
func (r *fakeProcessedRepo) GetByID(stage entity.Stage, id string) (*entity.ProcessedProspect, error) {
	return r.rows[stage][id], nil
}
func (r *fakeProcessedRepo) List(entity.Stage, string, int, int) ([]*entity.ProcessedProspect, error) {
	return nil, nil
}
func (r *fakeProcessedRepo) Delete(stage entity.Stage, id string) error {
	if _, ok := r.rows[stage][id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows[stage], id)
	return nil
}
func (r *fakeProcessedRepo) ListDueReminders(time.Time) ([]*entity.ProcessedProspect, error) {
	return nil, nil
}
func (r *fakeProcessedRepo) MarkRemindersSent([]string, time.Time) error { return nil }

type fakeCRMRepo struct {
	statusByID map[string]string
}

func (r *fakeCRMRepo) Upsert(*entity.CRMContact) (bool, error)          { return false, nil }
func (r *fakeCRMRepo) GetByEmail(string) (*entity.CRMContact, error)    { return nil, nil }
func (r *fakeCRMRepo) GetByIDs([]string) ([]*entity.CRMContact, error)  { return nil, nil }
func (r *fakeCRMRepo) UpdateStatus(id, zohoStatus string) error {
	if r.statusByID == nil {
		r.statusByID = make(map[string]string)
	}
	r.statusByID[id] = zohoStatus
	return nil
}

type fakeApolloRepo struct{}

func (fakeApolloRepo) Upsert(*entity.ApolloContact) (bool, error)         { return false, nil }
func (fakeApolloRepo) GetByEmail(string) (*entity.ApolloContact, error)   { return nil, nil }
func (fakeApolloRepo) GetByIDs([]string) ([]*entity.ApolloContact, error) { return nil, nil }
func (fakeApolloRepo) UpdateStage(string, string) error                   { return nil }

type fakeValidatedRepo struct {
	rows []*entity.ValidatedProspect
}

func (r *fakeValidatedRepo) Create(v *entity.ValidatedProspect) error {
	r.rows = append(r.rows, v)
	return nil
}
func (r *fakeValidatedRepo) List(string, int, int) ([]*entity.ValidatedProspect, error) {
	return r.rows, nil
}

type fakeArchivedRepo struct {
	rows []*entity.ArchivedProspect
}

func (r *fakeArchivedRepo) Create(a *entity.ArchivedProspect) error {
	r.rows = append(r.rows, a)
	return nil
}
func (r *fakeArchivedRepo) List(string, int, int) ([]*entity.ArchivedProspect, error) {
	return r.rows, nil
}

// fakeTxRunner exécute le callback sur les fakes, avec la sémantique d'une transaction :
// exécution sérialisée, et restauration de l'état si le callback échoue.
type fakeTxRunner struct {
	mu          sync.Mutex
	assignments *fakeAssignmentRepo
	processed   *fakeProcessedRepo
	crm         *fakeCRMRepo
	apollo      fakeApolloRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.AssignmentRepository,
	repository.ProcessedRepository,
	repository.CRMContactRepository,
	repository.ApolloContactRepository,
) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	savedAssignments := copyAssignments(f.assignments.byID)
	savedProcessed := copyProcessed(f.processed.rows)
	if err := fn(f.assignments, f.processed, f.crm, f.apollo); err != nil {
		f.assignments.byID = savedAssignments
		f.processed.rows = savedProcessed
		return err
	}
	return nil
}

type fakeTerminalTxRunner struct {
	mu        sync.Mutex
	processed *fakeProcessedRepo
	validated *fakeValidatedRepo
	archived  *fakeArchivedRepo
}

func (f *fakeTerminalTxRunner) RunTerminal(_ context.Context, fn func(
	repository.ProcessedRepository,
	repository.ValidatedProspectRepository,
	repository.ArchivedProspectRepository,
) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	savedProcessed := copyProcessed(f.processed.rows)
	savedValidated := append([]*entity.ValidatedProspect(nil), f.validated.rows...)
	savedArchived := append([]*entity.ArchivedProspect(nil), f.archived.rows...)
	if err := fn(f.processed, f.validated, f.archived); err != nil {
		f.processed.rows = savedProcessed
		f.validated.rows = savedValidated
		f.archived.rows = savedArchived
		return err
	}
	return nil
}

func copyAssignments(in map[string]*entity.Assignment) map[string]*entity.Assignment {
	out := make(map[string]*entity.Assignment, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyProcessed(in map[entity.Stage]map[string]*entity.ProcessedProspect) map[entity.Stage]map[string]*entity.ProcessedProspect {
	out := make(map[entity.Stage]map[string]*entity.ProcessedProspect, len(in))
	for stage, rows := range in {
		c := make(map[string]*entity.ProcessedProspect, len(rows))
		for k, v := range rows {
			c[k] = v
		}
		out[stage] = c
	}
	return out
}

// ─────────────────────────────────────────────
// Traiter
// ─────────────────────────────────────────────

func seedAssignment(repo *fakeAssignmentRepo) *entity.Assignment {
	a := &entity.Assignment{
		ID:          "assign-1",
		SalesUserID: "user-1",
		SourceTable: entity.SourceTableCRM,
		SourceID:    "crm-42",
		LeadEmail:   "jean.dupont@exemple.fr",
		Status:      entity.AssignmentStatusActive,
		AssignedBy:  "admin-1",
		AssignedAt:  time.Now().Add(-24 * time.Hour),
	}
	repo.byID[a.ID] = a
	return a
}

func newTraiterFixture() (*TraiterUseCase, *fakeAssignmentRepo, *fakeProcessedRepo, *fakeCRMRepo) {
	assignments := newFakeAssignmentRepo()
	processed := newFakeProcessedRepo()
	crm := &fakeCRMRepo{}
	tx := &fakeTxRunner{assignments: assignments, processed: processed, crm: crm}
	return NewTraiterUseCase(tx, assignments), assignments, processed, crm
}

func TestTraiter_StatutSansRappel_VaDansTraites(t *testing.T) {
	uc, assignments, processed, _ := newTraiterFixture()
	a := seedAssignment(assignments)

	p, err := uc.Traiter(context.Background(), a.ID, dto.TraiterRequest{
		Statut:     prospect.StatutPasInteresse,
		ActionDate: time.Now(),
		SalesNote:  "pas de budget cette année",
	})
	require.NoError(t, err)

	// Copie intégrale + suppression de l'affectation
	assert.Len(t, processed.rows[entity.StageTraite], 1)
	assert.Empty(t, processed.rows[entity.StageARappeler])
	assert.Empty(t, assignments.byID)
	assert.Equal(t, a.ID, p.AssignmentID)
	assert.Equal(t, a.LeadEmail, p.LeadEmail)
	assert.Equal(t, a.AssignedBy, p.AssignedBy)
	assert.Equal(t, a.AssignedAt, p.AssignedAt)
	assert.False(t, p.CompletedAt.IsZero())
}

func TestTraiter_StatutARappel_VaDansARappeler(t *testing.T) {
	uc, assignments, processed, _ := newTraiterFixture()
	a := seedAssignment(assignments)

	callback := time.Now().Add(48 * time.Hour)
	p, err := uc.Traiter(context.Background(), a.ID, dto.TraiterRequest{
		Statut:       prospect.StatutARappeler,
		ActionDate:   time.Now(),
		CallbackDate: &callback,
	})
	require.NoError(t, err)

	assert.Len(t, processed.rows[entity.StageARappeler], 1)
	assert.Empty(t, processed.rows[entity.StageTraite])
	require.NotNil(t, p.CallbackDate)
	assert.Equal(t, callback, *p.CallbackDate)
}

func TestTraiter_RappelObligatoireSansDate_AucuneEcriture(t *testing.T) {
	uc, assignments, processed, _ := newTraiterFixture()
	a := seedAssignment(assignments)

	_, err := uc.Traiter(context.Background(), a.ID, dto.TraiterRequest{
		Statut:     prospect.StatutProspectChaud, // rappel obligatoire
		ActionDate: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrCallbackRequired)

	// Rejet avant toute écriture : l'affectation est intacte
	assert.Len(t, assignments.byID, 1)
	assert.Empty(t, processed.rows[entity.StageTraite])
	assert.Empty(t, processed.rows[entity.StageARappeler])
}

func TestTraiter_AffectationIntrouvable(t *testing.T) {
	uc, _, _, _ := newTraiterFixture()

	_, err := uc.Traiter(context.Background(), "inconnu", dto.TraiterRequest{
		Statut:     prospect.StatutPasInteresse,
		ActionDate: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTraiter_UpdateSources_PropageLeStatut(t *testing.T) {
	uc, assignments, _, crm := newTraiterFixture()
	a := seedAssignment(assignments)

	_, err := uc.Traiter(context.Background(), a.ID, dto.TraiterRequest{
		Statut:        prospect.StatutPasInteresse,
		ActionDate:    time.Now(),
		UpdateSources: true,
	})
	require.NoError(t, err)
	assert.Equal(t, prospect.StatutPasInteresse, crm.statusByID["crm-42"])
}

// gateAssignmentRepo bloque GetByID jusqu'à ce que les deux requêtes aient lu la ligne,
// pour reproduire l'entrelacement d'une double soumission.
type gateAssignmentRepo struct {
	*fakeAssignmentRepo
	barrier *sync.WaitGroup
}

func (r *gateAssignmentRepo) GetByID(id string) (*entity.Assignment, error) {
	a, err := r.fakeAssignmentRepo.GetByID(id)
	r.barrier.Done()
	r.barrier.Wait()
	return a, err
}

func TestTraiter_DoubleSoumission_UneSeuleTransition(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	processed := newFakeProcessedRepo()
	tx := &fakeTxRunner{assignments: assignments, processed: processed, crm: &fakeCRMRepo{}}

	var barrier sync.WaitGroup
	barrier.Add(2)
	uc := NewTraiterUseCase(tx, &gateAssignmentRepo{fakeAssignmentRepo: assignments, barrier: &barrier})
	a := seedAssignment(assignments)

	in := dto.TraiterRequest{Statut: prospect.StatutPasInteresse, ActionDate: time.Now()}
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := uc.Traiter(context.Background(), a.ID, in)
			errs <- err
		}()
	}

	var failures int
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			assert.ErrorIs(t, err, domain.ErrNotFound)
			failures++
		}
	}

	// Les deux requêtes ont lu la ligne avant la première transaction : la perdante
	// doit échouer sur la suppression à vide, pas insérer un doublon.
	assert.Equal(t, 1, failures)
	assert.Len(t, processed.rows[entity.StageTraite], 1)
	assert.Empty(t, assignments.byID)
}

// ─────────────────────────────────────────────
// Valider / Rejeter
// ─────────────────────────────────────────────

func seedProcessed(repo *fakeProcessedRepo, stage entity.Stage) *entity.ProcessedProspect {
	p := &entity.ProcessedProspect{
		ID:             "proc-1",
		AssignmentID:   "assign-1",
		SalesUserID:    "user-1",
		SourceTable:    entity.SourceTableCRM,
		SourceID:       "crm-42",
		LeadEmail:      "jean.dupont@exemple.fr",
		StatutProspect: prospect.StatutRDV,
		DateAction:     time.Now().Add(-time.Hour),
		CompletedAt:    time.Now().Add(-time.Hour),
	}
	repo.rows[stage][p.ID] = p
	return p
}

func newTerminalFixture() (*TerminalUseCase, *fakeProcessedRepo, *fakeValidatedRepo, *fakeArchivedRepo) {
	processed := newFakeProcessedRepo()
	validated := &fakeValidatedRepo{}
	archived := &fakeArchivedRepo{}
	tx := &fakeTerminalTxRunner{processed: processed, validated: validated, archived: archived}
	return NewTerminalUseCase(tx, processed), processed, validated, archived
}

func TestValider_CopieEtSupprime(t *testing.T) {
	uc, processed, validated, _ := newTerminalFixture()
	p := seedProcessed(processed, entity.StageARappeler)

	rdv := time.Now().Add(72 * time.Hour)
	v, err := uc.Valider(context.Background(), p.ID, "admin-1", dto.ValiderRequest{
		Stage:       string(entity.StageARappeler),
		Commentaire: "RDV confirmé par téléphone",
		RdvDate:     rdv,
		RdvNotes:    "visio, 30 minutes",
	})
	require.NoError(t, err)

	require.Len(t, validated.rows, 1)
	assert.Empty(t, processed.rows[entity.StageARappeler])
	assert.Equal(t, p.ID, v.ProcessedID)
	assert.Equal(t, p.LeadEmail, v.LeadEmail)
	assert.Equal(t, rdv, v.RdvDate)
	assert.Equal(t, "admin-1", v.ValidatedBy)
}

func TestValider_DateDeRdvPassee(t *testing.T) {
	uc, processed, validated, _ := newTerminalFixture()
	p := seedProcessed(processed, entity.StageTraite)

	_, err := uc.Valider(context.Background(), p.ID, "admin-1", dto.ValiderRequest{
		Stage:       string(entity.StageTraite),
		Commentaire: "trop tard",
		RdvDate:     time.Now().Add(-time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrPastDate)

	// Aucune écriture : le traité reste en place
	assert.Empty(t, validated.rows)
	assert.Len(t, processed.rows[entity.StageTraite], 1)
}

func TestValider_CommentaireObligatoire(t *testing.T) {
	uc, processed, _, _ := newTerminalFixture()
	p := seedProcessed(processed, entity.StageTraite)

	_, err := uc.Valider(context.Background(), p.ID, "admin-1", dto.ValiderRequest{
		Stage:   string(entity.StageTraite),
		RdvDate: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRejeter_ArchiveEtSupprime(t *testing.T) {
	uc, processed, _, archived := newTerminalFixture()
	p := seedProcessed(processed, entity.StageTraite)

	a, err := uc.Rejeter(context.Background(), p.ID, "admin-1", dto.RejeterRequest{
		Stage:       string(entity.StageTraite),
		Commentaire: "numéro invalide, email en erreur",
		Raison:      "coordonnees_invalides",
	})
	require.NoError(t, err)

	require.Len(t, archived.rows, 1)
	assert.Empty(t, processed.rows[entity.StageTraite])
	assert.Equal(t, p.ID, a.ProcessedID)
	assert.Equal(t, "coordonnees_invalides", a.RaisonRejet)
	assert.Equal(t, "admin-1", a.RejectedBy)
}

// gateProcessedRepo même barrière que gateAssignmentRepo, côté transitions terminales.
type gateProcessedRepo struct {
	*fakeProcessedRepo
	barrier *sync.WaitGroup
}

func (r *gateProcessedRepo) GetByID(stage entity.Stage, id string) (*entity.ProcessedProspect, error) {
	p, err := r.fakeProcessedRepo.GetByID(stage, id)
	r.barrier.Done()
	r.barrier.Wait()
	return p, err
}

func TestValider_DoubleSoumission_UneSeuleValidation(t *testing.T) {
	processed := newFakeProcessedRepo()
	validated := &fakeValidatedRepo{}
	tx := &fakeTerminalTxRunner{processed: processed, validated: validated, archived: &fakeArchivedRepo{}}

	var barrier sync.WaitGroup
	barrier.Add(2)
	uc := NewTerminalUseCase(tx, &gateProcessedRepo{fakeProcessedRepo: processed, barrier: &barrier})
	p := seedProcessed(processed, entity.StageTraite)

	in := dto.ValiderRequest{
		Stage:       string(entity.StageTraite),
		Commentaire: "RDV confirmé",
		RdvDate:     time.Now().Add(48 * time.Hour),
	}
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := uc.Valider(context.Background(), p.ID, "admin-1", in)
			errs <- err
		}()
	}

	var failures int
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			assert.ErrorIs(t, err, domain.ErrNotFound)
			failures++
		}
	}

	assert.Equal(t, 1, failures)
	assert.Len(t, validated.rows, 1)
	assert.Empty(t, processed.rows[entity.StageTraite])
}

func TestRejeter_StageInconnu(t *testing.T) {
	uc, _, _, _ := newTerminalFixture()

	_, err := uc.Rejeter(context.Background(), "proc-1", "admin-1", dto.RejeterRequest{
		Stage:       "valide",
		Commentaire: "mauvais stage",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
