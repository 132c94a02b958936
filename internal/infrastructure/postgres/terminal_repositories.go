package postgres

import (
	"context"
	"fmt"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

var _ repository.ValidatedProspectRepository = (*ValidatedProspectRepo)(nil)
var _ repository.ArchivedProspectRepository = (*ArchivedProspectRepo)(nil)

// ValidatedProspectRepo implémentation de ValidatedProspectRepository.
// Table terminale immuable : insertion et lecture seulement.
type ValidatedProspectRepo struct {
	q Querier
}

// NewValidatedProspectRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewValidatedProspectRepository(q Querier) *ValidatedProspectRepo {
	return &ValidatedProspectRepo{q: q}
}

// Create persiste un prospect validé.
func (r *ValidatedProspectRepo) Create(v *entity.ValidatedProspect) error {
	query := `
		INSERT INTO prospects_valides (id, processed_id, sales_user_id, source_table, source_id,
			lead_email, statut_prospect, notes_sales, date_action, callback_date,
			rdv_date, rdv_notes, commentaire_validation, validated_by, validated_at)
		VALUES ($1, $2, $3, $4, $5, lower($6), $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.ProcessedID, v.SalesUserID, v.SourceTable, v.SourceID,
		v.LeadEmail, v.StatutProspect, v.NotesSales, v.DateAction, v.CallbackDate,
		v.RdvDate, v.RdvNotes, v.CommentaireValidation, v.ValidatedBy, v.ValidatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prospect validé: %w", err)
	}
	return nil
}

// List liste les prospects validés, tous ou d'un commercial.
func (r *ValidatedProspectRepo) List(salesUserID string, limit, offset int) ([]*entity.ValidatedProspect, error) {
	query := `
		SELECT id, processed_id, sales_user_id, source_table, source_id,
			lead_email, statut_prospect, notes_sales, date_action, callback_date,
			rdv_date, rdv_notes, commentaire_validation, validated_by, validated_at
		FROM prospects_valides
		WHERE ($1 = '' OR sales_user_id = $1)
		ORDER BY validated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, salesUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list prospects validés: %w", err)
	}
	defer rows.Close()
	var list []*entity.ValidatedProspect
	for rows.Next() {
		var v entity.ValidatedProspect
		if err := rows.Scan(&v.ID, &v.ProcessedID, &v.SalesUserID, &v.SourceTable, &v.SourceID,
			&v.LeadEmail, &v.StatutProspect, &v.NotesSales, &v.DateAction, &v.CallbackDate,
			&v.RdvDate, &v.RdvNotes, &v.CommentaireValidation, &v.ValidatedBy, &v.ValidatedAt); err != nil {
			return nil, fmt.Errorf("scan prospect validé: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// ArchivedProspectRepo implémentation de ArchivedProspectRepository.
// Table terminale immuable : insertion et lecture seulement.
type ArchivedProspectRepo struct {
	q Querier
}

// NewArchivedProspectRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewArchivedProspectRepository(q Querier) *ArchivedProspectRepo {
	return &ArchivedProspectRepo{q: q}
}

// Create persiste un prospect archivé.
func (r *ArchivedProspectRepo) Create(a *entity.ArchivedProspect) error {
	query := `
		INSERT INTO prospects_archives (id, processed_id, sales_user_id, source_table, source_id,
			lead_email, statut_prospect, notes_sales, date_action, callback_date,
			commentaire_rejet, raison_rejet, rejected_by, archived_at)
		VALUES ($1, $2, $3, $4, $5, lower($6), $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ProcessedID, a.SalesUserID, a.SourceTable, a.SourceID,
		a.LeadEmail, a.StatutProspect, a.NotesSales, a.DateAction, a.CallbackDate,
		a.CommentaireRejet, a.RaisonRejet, a.RejectedBy, a.ArchivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prospect archivé: %w", err)
	}
	return nil
}

// List liste les prospects archivés, tous ou d'un commercial.
func (r *ArchivedProspectRepo) List(salesUserID string, limit, offset int) ([]*entity.ArchivedProspect, error) {
	query := `
		SELECT id, processed_id, sales_user_id, source_table, source_id,
			lead_email, statut_prospect, notes_sales, date_action, callback_date,
			commentaire_rejet, raison_rejet, rejected_by, archived_at
		FROM prospects_archives
		WHERE ($1 = '' OR sales_user_id = $1)
		ORDER BY archived_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, salesUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list prospects archivés: %w", err)
	}
	defer rows.Close()
	var list []*entity.ArchivedProspect
	for rows.Next() {
		var a entity.ArchivedProspect
		if err := rows.Scan(&a.ID, &a.ProcessedID, &a.SalesUserID, &a.SourceTable, &a.SourceID,
			&a.LeadEmail, &a.StatutProspect, &a.NotesSales, &a.DateAction, &a.CallbackDate,
			&a.CommentaireRejet, &a.RaisonRejet, &a.RejectedBy, &a.ArchivedAt); err != nil {
			return nil, fmt.Errorf("scan prospect archivé: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
