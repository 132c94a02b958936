package postgres

import (
	"context"
	"fmt"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agrégations en lecture seule pour le tableau de bord admin.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// GetStats retourne les volumes par étape du cycle de vie, globaux et par commercial.
func (r *DashboardRepo) GetStats(ctx context.Context) (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{}

	totalsQuery := `
		SELECT
			(SELECT count(*) FROM sales_assignments),
			(SELECT count(*) FROM prospects_traites),
			(SELECT count(*) FROM prospects_a_rappeler),
			(SELECT count(*) FROM prospects_valides),
			(SELECT count(*) FROM prospects_archives)`
	err := r.q.QueryRow(ctx, totalsQuery).Scan(
		&stats.Totaux.Actifs, &stats.Totaux.Traites, &stats.Totaux.ARappeler,
		&stats.Totaux.Valides, &stats.Totaux.Archives,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}

	perUserQuery := `
		SELECT u.id, u.name,
			(SELECT count(*) FROM sales_assignments sa WHERE sa.sales_user_id = u.id),
			(SELECT count(*) FROM prospects_traites pt WHERE pt.sales_user_id = u.id),
			(SELECT count(*) FROM prospects_a_rappeler pr WHERE pr.sales_user_id = u.id),
			(SELECT count(*) FROM prospects_valides pv WHERE pv.sales_user_id = u.id),
			(SELECT count(*) FROM prospects_archives pa WHERE pa.sales_user_id = u.id)
		FROM sales_users u
		WHERE u.role IN ('sales', 'sdr')
		ORDER BY u.name`
	rows, err := r.q.Query(ctx, perUserQuery)
	if err != nil {
		return nil, fmt.Errorf("dashboard per user: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var u repository.UserStageCounts
		if err := rows.Scan(&u.SalesUserID, &u.SalesName,
			&u.Actifs, &u.Traites, &u.ARappeler, &u.Valides, &u.Archives); err != nil {
			return nil, fmt.Errorf("scan dashboard per user: %w", err)
		}
		stats.ParUser = append(stats.ParUser, u)
	}
	return stats, rows.Err()
}
