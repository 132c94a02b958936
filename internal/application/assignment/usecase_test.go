package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
)

// ─────────────────────────────────────────────
// Fakes en mémoire
// ─────────────────────────────────────────────

type fakeAssignmentRepo struct {
	created []*entity.Assignment
	// couples (sales_user_id, lead_email) déjà actifs, comme l'index unique en base
	active map[string]bool
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{active: make(map[string]bool)}
}

func (r *fakeAssignmentRepo) Create(a *entity.Assignment) error {
	key := a.SalesUserID + "|" + a.LeadEmail
	if r.active[key] {
		return domain.ErrDuplicate
	}
	r.active[key] = true
	r.created = append(r.created, a)
	return nil
}
func (r *fakeAssignmentRepo) GetByID(string) (*entity.Assignment, error) { return nil, nil }
func (r *fakeAssignmentRepo) ListBySalesUser(string, int, int) ([]*entity.Assignment, error) {
	return r.created, nil
}
func (r *fakeAssignmentRepo) ListAll(int, int) ([]*entity.Assignment, error) {
	return r.created, nil
}
func (r *fakeAssignmentRepo) Delete(string) error { return nil }

type fakeUserRepo struct {
	users map[string]*entity.SalesUser
}

func (r *fakeUserRepo) Create(*entity.SalesUser) error { return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.SalesUser, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) FindByEmail(string) (*entity.SalesUser, error)      { return nil, nil }
func (r *fakeUserRepo) List(int, int) ([]*entity.SalesUser, error)         { return nil, nil }
func (r *fakeUserRepo) Update(*entity.SalesUser) error                     { return nil }
func (r *fakeUserRepo) Delete(string) error                                { return nil }

type fakeCRMRepo struct {
	byID map[string]*entity.CRMContact
}

func (r *fakeCRMRepo) Upsert(*entity.CRMContact) (bool, error)       { return false, nil }
func (r *fakeCRMRepo) GetByEmail(string) (*entity.CRMContact, error) { return nil, nil }
func (r *fakeCRMRepo) GetByIDs(ids []string) ([]*entity.CRMContact, error) {
	var out []*entity.CRMContact
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeCRMRepo) UpdateStatus(string, string) error { return nil }

type fakeApolloRepo struct{}

func (fakeApolloRepo) Upsert(*entity.ApolloContact) (bool, error)         { return false, nil }
func (fakeApolloRepo) GetByEmail(string) (*entity.ApolloContact, error)   { return nil, nil }
func (fakeApolloRepo) GetByIDs([]string) ([]*entity.ApolloContact, error) { return nil, nil }
func (fakeApolloRepo) UpdateStage(string, string) error                   { return nil }

func newFixture() (*AssignUseCase, *fakeAssignmentRepo, *fakeCRMRepo) {
	assignments := newFakeAssignmentRepo()
	users := &fakeUserRepo{users: map[string]*entity.SalesUser{
		"user-1": {ID: "user-1", Email: "claire@exemple.fr", Name: "Claire", Role: entity.RoleSales, Status: "active"},
		"user-2": {ID: "user-2", Email: "marc@exemple.fr", Name: "Marc", Role: entity.RoleSales, Status: "disabled"},
	}}
	crm := &fakeCRMRepo{byID: map[string]*entity.CRMContact{
		"crm-1": {ID: "crm-1", Email: "a@exemple.fr", CreatedAt: time.Now()},
		"crm-2": {ID: "crm-2", Email: "b@exemple.fr", CreatedAt: time.Now()},
		"crm-3": {ID: "crm-3", Email: "c@exemple.fr", CreatedAt: time.Now()},
	}}
	uc := NewAssignUseCase(assignments, users, crm, fakeApolloRepo{})
	return uc, assignments, crm
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestAssign_TroisLignes_TroisAffectationsActives(t *testing.T) {
	uc, assignments, _ := newFixture()

	report, err := uc.Assign("admin-1", dto.AssignRequest{
		SalesUserID:    "user-1",
		SourceTable:    entity.SourceTableCRM,
		SelectedRowIDs: []string{"crm-1", "crm-2", "crm-3"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Assigned)
	assert.Empty(t, report.Skipped)
	require.Len(t, assignments.created, 3)
	for _, a := range assignments.created {
		assert.Equal(t, entity.AssignmentStatusActive, a.Status)
		assert.Equal(t, "admin-1", a.AssignedBy)
		assert.Equal(t, "user-1", a.SalesUserID)
		assert.False(t, a.AssignedAt.IsZero())
	}
}

func TestAssign_DoublonSignaleNonCree(t *testing.T) {
	uc, assignments, _ := newFixture()
	// b@exemple.fr est déjà affecté à user-1
	assignments.active["user-1|b@exemple.fr"] = true

	report, err := uc.Assign("admin-1", dto.AssignRequest{
		SalesUserID:    "user-1",
		SourceTable:    entity.SourceTableCRM,
		SelectedRowIDs: []string{"crm-1", "crm-2"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Assigned)
	assert.Equal(t, []string{"b@exemple.fr"}, report.Skipped)
	assert.Len(t, assignments.created, 1)
}

func TestAssign_CommercialDesactive(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Assign("admin-1", dto.AssignRequest{
		SalesUserID:    "user-2",
		SourceTable:    entity.SourceTableCRM,
		SelectedRowIDs: []string{"crm-1"},
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAssign_TableSourceInvalide(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Assign("admin-1", dto.AssignRequest{
		SalesUserID:    "user-1",
		SourceTable:    entity.SourceTableHubSpot, // pas affectable
		SelectedRowIDs: []string{"hs-1"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssign_IdsInconnusIgnores(t *testing.T) {
	uc, assignments, _ := newFixture()

	report, err := uc.Assign("admin-1", dto.AssignRequest{
		SalesUserID:    "user-1",
		SourceTable:    entity.SourceTableCRM,
		SelectedRowIDs: []string{"crm-1", "fantome"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Assigned)
	assert.Len(t, assignments.created, 1)
}
