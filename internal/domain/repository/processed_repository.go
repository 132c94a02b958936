package repository

import (
	"time"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
)

// ProcessedRepository port de persistance pour prospects_traites et prospects_a_rappeler.
// Les deux tables partagent la même forme ; le stage choisit la table cible.
// Delete retourne domain.ErrNotFound si la ligne n'existe plus : une transition
// terminale concurrente l'a consommée et la transaction appelante doit être annulée.
type ProcessedRepository interface {
	Create(stage entity.Stage, p *entity.ProcessedProspect) error
	GetByID(stage entity.Stage, id string) (*entity.ProcessedProspect, error)
	List(stage entity.Stage, salesUserID string, limit, offset int) ([]*entity.ProcessedProspect, error)
	Delete(stage entity.Stage, id string) error

	// ListDueReminders retourne les lignes de prospects_a_rappeler dont la date de rappel
	// est échue et qui n'ont pas encore reçu de rappel (reminder_sent_at IS NULL).
	ListDueReminders(now time.Time) ([]*entity.ProcessedProspect, error)
	// MarkRemindersSent tamponne reminder_sent_at pour les lignes incluses dans un envoi.
	MarkRemindersSent(ids []string, at time.Time) error
}
