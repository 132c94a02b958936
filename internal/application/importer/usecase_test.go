package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
)

// ─────────────────────────────────────────────
// Fakes en mémoire
// ─────────────────────────────────────────────

type fakeCRMRepo struct {
	byEmail map[string]*entity.CRMContact
}

func newFakeCRMRepo() *fakeCRMRepo {
	return &fakeCRMRepo{byEmail: make(map[string]*entity.CRMContact)}
}

func (r *fakeCRMRepo) Upsert(c *entity.CRMContact) (bool, error) {
	_, exists := r.byEmail[c.Email]
	r.byEmail[c.Email] = c
	return !exists, nil
}
func (r *fakeCRMRepo) GetByEmail(string) (*entity.CRMContact, error)   { return nil, nil }
func (r *fakeCRMRepo) GetByIDs([]string) ([]*entity.CRMContact, error) { return nil, nil }
func (r *fakeCRMRepo) UpdateStatus(string, string) error               { return nil }

type fakeHubSpotRepo struct{}

func (fakeHubSpotRepo) Upsert(*entity.HubSpotContact) (bool, error)       { return true, nil }
func (fakeHubSpotRepo) GetByEmail(string) (*entity.HubSpotContact, error) { return nil, nil }

type fakeApolloRepo struct {
	upserted []*entity.ApolloContact
}

func (r *fakeApolloRepo) Upsert(c *entity.ApolloContact) (bool, error) {
	r.upserted = append(r.upserted, c)
	return true, nil
}
func (r *fakeApolloRepo) GetByEmail(string) (*entity.ApolloContact, error)   { return nil, nil }
func (r *fakeApolloRepo) GetByIDs([]string) ([]*entity.ApolloContact, error) { return nil, nil }
func (r *fakeApolloRepo) UpdateStage(string, string) error                   { return nil }

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestImport_CRM_InsereEtMetAJour(t *testing.T) {
	crm := newFakeCRMRepo()
	uc := NewImportUseCase(crm, fakeHubSpotRepo{}, &fakeApolloRepo{})

	csv := strings.Join([]string{
		"email,first_name,last_name,company,phone,zoho_status,employee_count",
		"jean@exemple.fr,Jean,Dupont,ACME,0102030405,Prospect chaud,120",
		"jean@exemple.fr,Jean,Dupont,ACME SAS,0102030405,Prospect chaud,130",
		"marie@exemple.fr,Marie,Durand,Globex,,,",
	}, "\n")

	report, err := uc.Import(entity.SourceTableCRM, strings.NewReader(csv))
	require.NoError(t, err)

	// jean@ apparaît deux fois : 1 insertion + 1 mise à jour (clé email)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 0, report.Failed)

	c := crm.byEmail["jean@exemple.fr"]
	require.NotNil(t, c)
	assert.Equal(t, "ACME SAS", c.Company)
	assert.Equal(t, 130, c.EmployeeCount)
}

func TestImport_LigneSansEmail_CollecteeSansInterrompre(t *testing.T) {
	crm := newFakeCRMRepo()
	uc := NewImportUseCase(crm, fakeHubSpotRepo{}, &fakeApolloRepo{})

	csv := strings.Join([]string{
		"email,first_name",
		",Sans Email",
		"pas-un-email,Invalide",
		"ok@exemple.fr,Valide",
	}, "\n")

	report, err := uc.Import(entity.SourceTableCRM, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, 2, report.Errors[0].Row)
	assert.Equal(t, 3, report.Errors[1].Row)
}

func TestImport_AliasDEnTetesFrancais(t *testing.T) {
	crm := newFakeCRMRepo()
	uc := NewImportUseCase(crm, fakeHubSpotRepo{}, &fakeApolloRepo{})

	csv := strings.Join([]string{
		"Email,Prenom,Nom,Societe,Telephone,Effectif",
		"luc@exemple.fr,Luc,Martin,Initech,0611223344,45",
	}, "\n")

	report, err := uc.Import(entity.SourceTableCRM, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)

	c := crm.byEmail["luc@exemple.fr"]
	require.NotNil(t, c)
	assert.Equal(t, "Luc", c.FirstName)
	assert.Equal(t, "Martin", c.LastName)
	assert.Equal(t, "Initech", c.Company)
	assert.Equal(t, 45, c.EmployeeCount)
}

func TestImport_Apollo_ChiffreDAffaires(t *testing.T) {
	apollo := &fakeApolloRepo{}
	uc := NewImportUseCase(newFakeCRMRepo(), fakeHubSpotRepo{}, apollo)

	csv := strings.Join([]string{
		"email,stage,annual_revenue",
		"dir@exemple.fr,Interested,2500000.50",
	}, "\n")

	report, err := uc.Import(entity.SourceTableApollo, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)

	require.Len(t, apollo.upserted, 1)
	assert.Equal(t, "Interested", apollo.upserted[0].Stage)
	assert.Equal(t, "2500000.5", apollo.upserted[0].AnnualRevenue.String())
}

func TestImport_TableInconnue(t *testing.T) {
	uc := NewImportUseCase(newFakeCRMRepo(), fakeHubSpotRepo{}, &fakeApolloRepo{})

	_, err := uc.Import("brevo_contacts", strings.NewReader("email\nx@y.fr"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_EnTeteSansEmail(t *testing.T) {
	uc := NewImportUseCase(newFakeCRMRepo(), fakeHubSpotRepo{}, &fakeApolloRepo{})

	_, err := uc.Import(entity.SourceTableCRM, strings.NewReader("nom,prenom\nDupont,Jean"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
