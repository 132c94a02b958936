package reminder

import (
	"context"
	"sort"
	"time"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
	"github.com/salesdeskhq/crm-prospects-api/pkg/logger"
)

// Mailer port d'envoi du mail de rappel. Un mail par commercial, listant tous
// ses rappels échus.
type Mailer interface {
	SendReminder(to, name string, prospects []*entity.ProcessedProspect) error
}

// ReminderUseCase balaye prospects_a_rappeler et notifie chaque commercial de ses
// rappels échus. L'échec d'un destinataire n'empêche pas les autres envois, et
// seules les lignes effectivement envoyées sont tamponnées (reminder_sent_at).
type ReminderUseCase struct {
	processedRepo repository.ProcessedRepository
	userRepo      repository.SalesUserRepository
	mailer        Mailer
	log           *logger.Logger
}

// NewReminderUseCase construit le cas d'usage.
func NewReminderUseCase(
	processedRepo repository.ProcessedRepository,
	userRepo repository.SalesUserRepository,
	mailer Mailer,
	log *logger.Logger,
) *ReminderUseCase {
	return &ReminderUseCase{processedRepo: processedRepo, userRepo: userRepo, mailer: mailer, log: log}
}

// Run exécute un passage du job : rappels échus non encore notifiés, groupés par
// commercial, un mail par commercial, tampon d'idempotence après envoi.
func (uc *ReminderUseCase) Run(ctx context.Context, now time.Time) (*dto.ReminderReport, error) {
	due, err := uc.processedRepo.ListDueReminders(now)
	if err != nil {
		return nil, err
	}

	report := &dto.ReminderReport{}
	if len(due) == 0 {
		return report, nil
	}

	byUser := make(map[string][]*entity.ProcessedProspect)
	for _, p := range due {
		byUser[p.SalesUserID] = append(byUser[p.SalesUserID], p)
	}

	// Ordre stable pour des passages reproductibles.
	userIDs := make([]string, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		prospects := byUser[userID]

		user, err := uc.userRepo.GetByID(userID)
		if err != nil || user == nil {
			uc.log.Warn().Str("sales_user_id", userID).Msg("rappel ignoré: commercial introuvable")
			report.FailedUsers = append(report.FailedUsers, userID)
			continue
		}

		if err := uc.mailer.SendReminder(user.Email, user.Name, prospects); err != nil {
			uc.log.Error().Err(err).Str("sales_user_id", userID).Msg("échec d'envoi du mail de rappel")
			report.FailedUsers = append(report.FailedUsers, userID)
			continue
		}

		ids := make([]string, len(prospects))
		for i, p := range prospects {
			ids[i] = p.ID
		}
		if err := uc.processedRepo.MarkRemindersSent(ids, now); err != nil {
			// Le mail est parti mais le tampon a échoué : le prochain passage renverra.
			uc.log.Error().Err(err).Str("sales_user_id", userID).Msg("échec du tampon reminder_sent_at")
			report.FailedUsers = append(report.FailedUsers, userID)
			continue
		}

		report.UsersNotified++
		report.Prospects += len(prospects)
	}
	return report, nil
}
