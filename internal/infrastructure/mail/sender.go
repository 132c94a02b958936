package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/reminder"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/pkg/config"
)

var _ reminder.Mailer = (*ReminderSender)(nil)

// ReminderSender envoie les mails de rappel via SMTP (gomail).
type ReminderSender struct {
	cfg config.SMTPConfig
}

// NewReminderSender construit l'expéditeur avec les identifiants SMTP.
func NewReminderSender(cfg config.SMTPConfig) *ReminderSender {
	return &ReminderSender{cfg: cfg}
}

// Le template est embarqué : pas de fichier à déployer à côté du binaire.
var reminderTmpl = template.Must(template.New("reminder").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<p>Bonjour {{.Name}},</p>
	<p>Vous avez {{len .Prospects}} prospect(s) à rappeler aujourd'hui :</p>
	<table border="0" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
		<tr style="background: #f0f0f0;">
			<th align="left">Email</th>
			<th align="left">Statut</th>
			<th align="left">Date de rappel</th>
		</tr>
		{{range .Prospects}}
		<tr style="border-bottom: 1px solid #ddd;">
			<td>{{.LeadEmail}}</td>
			<td>{{.StatutProspect}}</td>
			<td>{{if .CallbackDate}}{{.CallbackDate.Format "02/01/2006 15:04"}}{{end}}</td>
		</tr>
		{{end}}
	</table>
	<p>Bonne journée,<br>L'équipe CRM</p>
</body>
</html>`))

type reminderData struct {
	Name      string
	Prospects []*entity.ProcessedProspect
}

// SendReminder envoie un mail listant tous les rappels échus d'un commercial.
func (s *ReminderSender) SendReminder(to, name string, prospects []*entity.ProcessedProspect) error {
	var body bytes.Buffer
	if err := reminderTmpl.Execute(&body, reminderData{Name: name, Prospects: prospects}); err != nil {
		return fmt.Errorf("rendu du template de rappel: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Rappels du jour : %d prospect(s) à recontacter", len(prospects)))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("envoi SMTP: %w", err)
	}
	return nil
}
