package prospect

// Statuts d'issue proposés par l'UI lors du traitement d'un prospect.
// Catalogue fermé : le champ reste du texte libre en base, mais la politique de rappel
// ci-dessous ne connaît que ces valeurs.
const (
	StatutProspectChaud  = "Prospect chaud"
	StatutProspectTiede  = "Prospect tiède"
	StatutProspectFroid  = "Prospect froid"
	StatutARappeler      = "À RAPPELER"
	StatutBesoinDeSuivi  = "BESOIN DE SUIVI"
	StatutRDV            = "RDV"
	StatutAQualifier     = "A QUALIFIER"
	StatutDevisEnvoye    = "DEVIS ENVOYE"
	StatutPasInteresse   = "PAS INTERESSE"
	StatutNeRepondPas    = "NE REPOND PAS"
	StatutMauvaisNumero  = "MAUVAIS NUMERO"
	StatutEmailErrone    = "EMAIL ERRONE"
	StatutDejaEquipe     = "DEJA EQUIPE"
	StatutHorsCible      = "HORS CIBLE"
	StatutRefus          = "REFUS"
)

// callbackPolicy table explicite statut -> rappel obligatoire.
// Remplace l'ancienne liste littérale codée en dur dans le formulaire : testable,
// extensible sans toucher au code appelant.
var callbackPolicy = map[string]bool{
	StatutProspectChaud: true,
	StatutARappeler:     true,
	StatutBesoinDeSuivi: true,
	StatutRDV:           true,

	StatutProspectTiede: false,
	StatutProspectFroid: false,
	StatutAQualifier:    false,
	StatutDevisEnvoye:   false,
	StatutPasInteresse:  false,
	StatutNeRepondPas:   false,
	StatutMauvaisNumero: false,
	StatutEmailErrone:   false,
	StatutDejaEquipe:    false,
	StatutHorsCible:     false,
	StatutRefus:         false,
}

// Statuts retourne le catalogue complet, dans l'ordre d'affichage de l'UI.
func Statuts() []string {
	return []string{
		StatutProspectChaud,
		StatutProspectTiede,
		StatutProspectFroid,
		StatutARappeler,
		StatutBesoinDeSuivi,
		StatutRDV,
		StatutAQualifier,
		StatutDevisEnvoye,
		StatutPasInteresse,
		StatutNeRepondPas,
		StatutMauvaisNumero,
		StatutEmailErrone,
		StatutDejaEquipe,
		StatutHorsCible,
		StatutRefus,
	}
}

// IsKnownStatut indique si le statut fait partie du catalogue.
func IsKnownStatut(statut string) bool {
	_, ok := callbackPolicy[statut]
	return ok
}

// CallbackRequired indique si le statut impose une date de rappel future.
// Un statut hors catalogue n'impose rien (texte libre toléré en base).
func CallbackRequired(statut string) bool {
	return callbackPolicy[statut]
}
