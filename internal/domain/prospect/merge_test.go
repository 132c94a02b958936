package prospect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fusion multi-sources : priorité CRM > HubSpot > Apollo, champ par champ
// ──────────────────────────────────────────────────────────────────────────────

func TestMerge_PrioriteCRMGagne(t *testing.T) {
	crm := &entity.CRMContact{Email: "jean@acme.fr", FirstName: "Jean", Company: "ACME CRM"}
	hs := &entity.HubSpotContact{Email: "jean@acme.fr", FirstName: "John", Company: "ACME HS"}
	ap := &entity.ApolloContact{Email: "jean@acme.fr", FirstName: "J.", Company: "ACME AP"}

	p := Merge(crm, hs, ap)
	require.NotNil(t, p)

	assert.Equal(t, "Jean", p.FirstName, "la valeur CRM doit gagner quand elle est renseignée")
	assert.Equal(t, "ACME CRM", p.Company)
	assert.Equal(t, 3, p.SourceCount)
	assert.True(t, p.Sources.CRM)
	assert.True(t, p.Sources.HubSpot)
	assert.True(t, p.Sources.Apollo)
}

// Un champ vide côté CRM doit laisser passer HubSpot, même si la fiche CRM existe :
// la priorité est par champ, pas par fiche.
func TestMerge_ChampVideCRMRetombeSurHubSpot(t *testing.T) {
	crm := &entity.CRMContact{Email: "lea@corp.fr", FirstName: "Léa", Company: ""}
	hs := &entity.HubSpotContact{Email: "lea@corp.fr", Company: "Corp SAS", Phone: "0102030405"}

	p := Merge(crm, hs, nil)
	require.NotNil(t, p)

	assert.True(t, p.Sources.CRM, "la fiche CRM existe")
	assert.Equal(t, "Corp SAS", p.Company, "champ vide en CRM -> valeur HubSpot")
	assert.Equal(t, "0102030405", p.Phone)
	assert.Equal(t, 2, p.SourceCount)
}

func TestMerge_ApolloSeul(t *testing.T) {
	ap := &entity.ApolloContact{Email: "marc@startup.io", FirstName: "Marc", Stage: "cold"}

	p := Merge(nil, nil, ap)
	require.NotNil(t, p)

	assert.Equal(t, entity.SourceFlags{Apollo: true}, p.Sources)
	assert.Equal(t, 1, p.SourceCount)
	assert.Equal(t, "cold", p.ApolloStage)
	assert.Empty(t, p.ZohoStatus)
	assert.Empty(t, p.HSLeadStatus)
}

func TestMerge_AucuneSource(t *testing.T) {
	assert.Nil(t, Merge(nil, nil, nil))
}

// Invariant : SourceCount == nombre de flags à vrai, pour toutes les combinaisons.
func TestMerge_SourceCountCoherent(t *testing.T) {
	crm := &entity.CRMContact{Email: "a@b.fr"}
	hs := &entity.HubSpotContact{Email: "a@b.fr"}
	ap := &entity.ApolloContact{Email: "a@b.fr"}

	cases := []struct {
		crm *entity.CRMContact
		hs  *entity.HubSpotContact
		ap  *entity.ApolloContact
	}{
		{crm, nil, nil},
		{nil, hs, nil},
		{nil, nil, ap},
		{crm, hs, nil},
		{crm, nil, ap},
		{nil, hs, ap},
		{crm, hs, ap},
	}
	for _, c := range cases {
		p := Merge(c.crm, c.hs, c.ap)
		require.NotNil(t, p)
		assert.Equal(t, p.Sources.Count(), p.SourceCount)
	}
}

// Les statuts sources ne sont jamais fusionnés entre eux.
func TestMerge_StatutsParSourceNonFusionnes(t *testing.T) {
	crm := &entity.CRMContact{Email: "a@b.fr", ZohoStatus: "Contacted"}
	hs := &entity.HubSpotContact{Email: "a@b.fr", HSLeadStatus: "OPEN"}

	p := Merge(crm, hs, nil)
	require.NotNil(t, p)

	assert.Equal(t, "Contacted", p.ZohoStatus)
	assert.Equal(t, "OPEN", p.HSLeadStatus)
	assert.Empty(t, p.ApolloStage)
}

func TestMerge_PlusAncienneDateCreation(t *testing.T) {
	old := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	crm := &entity.CRMContact{Email: "a@b.fr", CreatedAt: recent}
	ap := &entity.ApolloContact{Email: "a@b.fr", CreatedAt: old}

	p := Merge(crm, nil, ap)
	require.NotNil(t, p)
	assert.Equal(t, old, p.CreatedAt)
}

func TestMerge_TelephoneCRMMobileEnSecours(t *testing.T) {
	crm := &entity.CRMContact{Email: "a@b.fr", Phone: "", Mobile: "0611223344"}

	p := Merge(crm, nil, nil)
	require.NotNil(t, p)
	assert.Equal(t, "0611223344", p.Phone, "le mobile CRM sert de secours au fixe")
}
