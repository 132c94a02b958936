package worker

import (
	"context"
	"time"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/reminder"
	"github.com/salesdeskhq/crm-prospects-api/pkg/logger"
)

// ReminderWorker déclenche le job de rappels à intervalle fixe.
// Un passage s'exécute au démarrage, puis à chaque tick jusqu'à annulation du contexte.
type ReminderWorker struct {
	uc       *reminder.ReminderUseCase
	interval time.Duration
	log      *logger.Logger
}

// NewReminderWorker construit le worker.
func NewReminderWorker(uc *reminder.ReminderUseCase, interval time.Duration, log *logger.Logger) *ReminderWorker {
	return &ReminderWorker{uc: uc, interval: interval, log: log}
}

// Start boucle jusqu'à annulation du contexte. À lancer dans sa propre goroutine.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("worker de rappels démarré")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("worker de rappels arrêté")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ReminderWorker) runOnce(ctx context.Context) {
	report, err := w.uc.Run(ctx, time.Now())
	if err != nil {
		w.log.Error().Err(err).Msg("passage du job de rappels en échec")
		return
	}
	if report.UsersNotified > 0 || len(report.FailedUsers) > 0 {
		w.log.Info().
			Int("users_notified", report.UsersNotified).
			Int("prospects", report.Prospects).
			Strs("failed_users", report.FailedUsers).
			Msg("passage du job de rappels terminé")
	}
}
