package prospect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// La politique de rappel est une table fermée : exactement quatre statuts imposent
// une date de rappel.
func TestCallbackRequired_EnsembleFerme(t *testing.T) {
	requis := []string{StatutProspectChaud, StatutARappeler, StatutBesoinDeSuivi, StatutRDV}
	for _, s := range requis {
		assert.True(t, CallbackRequired(s), "%q doit imposer une date de rappel", s)
	}

	count := 0
	for _, s := range Statuts() {
		if CallbackRequired(s) {
			count++
		}
	}
	assert.Equal(t, 4, count, "seuls 4 statuts du catalogue imposent un rappel")
}

func TestCallbackRequired_StatutHorsCatalogue(t *testing.T) {
	assert.False(t, CallbackRequired("statut inventé"))
	assert.False(t, IsKnownStatut("statut inventé"))
}

func TestStatuts_CatalogueComplet(t *testing.T) {
	all := Statuts()
	assert.Len(t, all, 15, "l'UI propose une liste fixe de 15 valeurs")
	for _, s := range all {
		assert.True(t, IsKnownStatut(s))
	}
}

func TestAllowed_PolitiqueDePermissions(t *testing.T) {
	assert.True(t, Allowed("admin", ActionUsersManage))
	assert.False(t, Allowed("sales", ActionUsersManage))
	assert.True(t, Allowed("sdr", ActionTraiter))
	assert.False(t, Allowed("sdr", ActionValider))
	assert.True(t, Allowed("manager", ActionAssignViewAll))
	assert.False(t, Allowed("sales", ActionAssignViewAll), "un commercial ne voit que son périmètre")
	assert.False(t, Allowed("admin", "action:inconnue"), "action inconnue = refus")
}

func TestNormalizeSearch_Diacritiques(t *testing.T) {
	assert.Equal(t, "jerome", NormalizeSearch("Jérôme"))
	assert.Equal(t, "francois", NormalizeSearch("  François "))
	assert.Equal(t, "acme", NormalizeSearch("ACME"))
}
