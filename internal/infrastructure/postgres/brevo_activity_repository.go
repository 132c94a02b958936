package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

var _ repository.BrevoActivityRepository = (*BrevoActivityRepo)(nil)

// BrevoActivityRepo lecture seule sur brevo_activity, la table synchronisée depuis Brevo.
// L'activité email est un overlay informatif : une absence de ligne n'est jamais une erreur.
type BrevoActivityRepo struct {
	q Querier
}

// NewBrevoActivityRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewBrevoActivityRepository(q Querier) *BrevoActivityRepo {
	return &BrevoActivityRepo{q: q}
}

// GetByEmail récupère l'activité email d'un contact. (nil, nil) si aucune.
func (r *BrevoActivityRepo) GetByEmail(email string) (*entity.BrevoActivity, error) {
	query := `
		SELECT email, opens_count, clicks_count, last_campaign, last_activity_at
		FROM brevo_activity WHERE email = lower($1)`
	var a entity.BrevoActivity
	err := r.q.QueryRow(context.Background(), query, email).Scan(
		&a.Email, &a.OpensCount, &a.ClicksCount, &a.LastCampaign, &a.LastActivityAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brevo activity: %w", err)
	}
	return &a, nil
}
