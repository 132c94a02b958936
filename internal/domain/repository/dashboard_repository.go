package repository

import "context"

// StageCounts volumes par étape du cycle de vie.
type StageCounts struct {
	Actifs    int `json:"actifs"`
	Traites   int `json:"traites"`
	ARappeler int `json:"a_rappeler"`
	Valides   int `json:"valides"`
	Archives  int `json:"archives"`
}

// UserStageCounts volumes par utilisateur commercial.
type UserStageCounts struct {
	SalesUserID string `json:"sales_user_id"`
	SalesName   string `json:"sales_name"`
	StageCounts
}

// DashboardStats chiffres du tableau de bord admin.
type DashboardStats struct {
	Totaux  StageCounts       `json:"totaux"`
	ParUser []UserStageCounts `json:"par_user"`
}

// DashboardRepository requêtes d'agrégation en lecture seule.
type DashboardRepository interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
}
