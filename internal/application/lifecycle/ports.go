package lifecycle

import (
	"context"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

// TxRunner exécute la transition "traiter" dans une transaction de BD : la copie vers
// la table de destination, la suppression de l'affectation et la propagation éventuelle
// du statut vers les tables sources sont atomiques. Plus de fenêtre doublon/perte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		assignmentRepo repository.AssignmentRepository,
		processedRepo repository.ProcessedRepository,
		crmRepo repository.CRMContactRepository,
		apolloRepo repository.ApolloContactRepository,
	) error) error
}

// TerminalTxRunner exécute une transition terminale (validation ou rejet) dans une
// transaction : copie vers prospects_valides/prospects_archives + suppression du traité.
type TerminalTxRunner interface {
	RunTerminal(ctx context.Context, fn func(
		processedRepo repository.ProcessedRepository,
		validatedRepo repository.ValidatedProspectRepository,
		archivedRepo repository.ArchivedProspectRepository,
	) error) error
}
