package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/lifecycle"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

var _ lifecycle.TxRunner = (*TxRunner)(nil)
var _ lifecycle.TerminalTxRunner = (*TxRunner)(nil)

// TxRunner exécute des callbacks dans une transaction PostgreSQL.
// Les transitions de cycle de vie (copie + suppression + propagation éventuelle)
// passent toutes par ici : soit tout est commité, soit rien.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner avec le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ouvre une transaction, exécute fn avec des repos liés à la tx, puis Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	assignmentRepo repository.AssignmentRepository,
	processedRepo repository.ProcessedRepository,
	crmRepo repository.CRMContactRepository,
	apolloRepo repository.ApolloContactRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	assignmentRepo := NewAssignmentRepository(tx)
	processedRepo := NewProcessedRepository(tx)
	crmRepo := NewCRMContactRepository(tx)
	apolloRepo := NewApolloContactRepository(tx)

	if err := fn(assignmentRepo, processedRepo, crmRepo, apolloRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTerminal ouvre une transaction pour les transitions terminales (validation / rejet).
func (r *TxRunner) RunTerminal(ctx context.Context, fn func(
	processedRepo repository.ProcessedRepository,
	validatedRepo repository.ValidatedProspectRepository,
	archivedRepo repository.ArchivedProspectRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	processedRepo := NewProcessedRepository(tx)
	validatedRepo := NewValidatedProspectRepository(tx)
	archivedRepo := NewArchivedProspectRepository(tx)

	if err := fn(processedRepo, validatedRepo, archivedRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
