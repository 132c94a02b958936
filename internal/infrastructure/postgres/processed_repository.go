package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

var _ repository.ProcessedRepository = (*ProcessedRepo)(nil)

// ProcessedRepo implémentation de ProcessedRepository : les deux tables de traités
// partagent la même forme, le stage choisit la table. Le nom de table vient d'une
// correspondance fermée, jamais d'une entrée utilisateur.
type ProcessedRepo struct {
	q Querier
}

// NewProcessedRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewProcessedRepository(q Querier) *ProcessedRepo {
	return &ProcessedRepo{q: q}
}

func tableFor(stage entity.Stage) (string, error) {
	switch stage {
	case entity.StageTraite:
		return "prospects_traites", nil
	case entity.StageARappeler:
		return "prospects_a_rappeler", nil
	}
	return "", fmt.Errorf("stage inconnu: %q", stage)
}

const processedColumns = `id, assignment_id, sales_user_id, source_table, source_id, lead_email,
	statut_prospect, notes_sales, date_action, callback_date, custom_data,
	assigned_by, assigned_at, completed_at, reminder_sent_at`

// Create persiste un prospect traité dans la table du stage.
func (r *ProcessedRepo) Create(stage entity.Stage, p *entity.ProcessedProspect) error {
	table, err := tableFor(stage)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, lower($6), $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		table, processedColumns)
	_, err = r.q.Exec(context.Background(), query,
		p.ID, p.AssignmentID, p.SalesUserID, p.SourceTable, p.SourceID, p.LeadEmail,
		p.StatutProspect, p.NotesSales, p.DateAction, p.CallbackDate, p.CustomData,
		p.AssignedBy, p.AssignedAt, p.CompletedAt, p.ReminderSentAt,
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// GetByID récupère un prospect traité par ID dans la table du stage.
func (r *ProcessedRepo) GetByID(stage entity.Stage, id string) (*entity.ProcessedProspect, error) {
	table, err := tableFor(stage)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, processedColumns, table)
	p, err := scanProcessed(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	return p, nil
}

// List liste les prospects traités d'un commercial (tous si salesUserID vide).
func (r *ProcessedRepo) List(stage entity.Stage, salesUserID string, limit, offset int) ([]*entity.ProcessedProspect, error) {
	table, err := tableFor(stage)
	if err != nil {
		return nil, err
	}
	var rows pgx.Rows
	if salesUserID == "" {
		query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY completed_at DESC LIMIT $1 OFFSET $2`,
			processedColumns, table)
		rows, err = r.q.Query(context.Background(), query, limit, offset)
	} else {
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE sales_user_id = $1 ORDER BY completed_at DESC LIMIT $2 OFFSET $3`,
			processedColumns, table)
		rows, err = r.q.Query(context.Background(), query, salesUserID, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	var list []*entity.ProcessedProspect
	for rows.Next() {
		p, err := scanProcessed(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete supprime un prospect traité de la table du stage.
// Zéro ligne supprimée = une transition terminale concurrente a déjà consommé la ligne :
// ErrNotFound fait échouer (et annuler) la transaction perdante.
func (r *ProcessedRepo) Delete(stage entity.Stage, id string) error {
	table, err := tableFor(stage)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(context.Background(), fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListDueReminders retourne les lignes de prospects_a_rappeler échues et jamais notifiées.
func (r *ProcessedRepo) ListDueReminders(now time.Time) ([]*entity.ProcessedProspect, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM prospects_a_rappeler
		WHERE callback_date IS NOT NULL AND callback_date <= $1 AND reminder_sent_at IS NULL
		ORDER BY callback_date`, processedColumns)
	rows, err := r.q.Query(context.Background(), query, now)
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProcessedProspect
	for rows.Next() {
		p, err := scanProcessed(rows)
		if err != nil {
			return nil, fmt.Errorf("scan due reminder: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// MarkRemindersSent tamponne reminder_sent_at (garde d'idempotence des rappels).
func (r *ProcessedRepo) MarkRemindersSent(ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(context.Background(),
		`UPDATE prospects_a_rappeler SET reminder_sent_at = $2 WHERE id = ANY($1)`,
		ids, at,
	)
	if err != nil {
		return fmt.Errorf("mark reminders sent: %w", err)
	}
	return nil
}

func scanProcessed(row pgx.Row) (*entity.ProcessedProspect, error) {
	var p entity.ProcessedProspect
	err := row.Scan(
		&p.ID, &p.AssignmentID, &p.SalesUserID, &p.SourceTable, &p.SourceID, &p.LeadEmail,
		&p.StatutProspect, &p.NotesSales, &p.DateAction, &p.CallbackDate, &p.CustomData,
		&p.AssignedBy, &p.AssignedAt, &p.CompletedAt, &p.ReminderSentAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
