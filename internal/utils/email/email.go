package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/budget-service/internal/config"
	"github.com/Dan9191/budget-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendBufferAlert warns a household member that the projected balance drops
// below the buffer
func (s *Sender) SendBufferAlert(to, username string, alert models.BufferAlert) error {
	e := BuildBufferAlert(s.cfg.SenderEmail, to, username, alert)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send buffer alert to %s: %v", to, err)
		return fmt.Errorf("failed to send buffer alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// BuildBufferAlert composes the alert message without sending it
func BuildBufferAlert(from, to, username string, alert models.BufferAlert) *email.Email {
	e := email.NewEmail()
	e.From = from
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Budget Alert: balance projected %s", alert.BufferStatus)

	body := fmt.Sprintf("Dear %s,\n\n", username)
	body += fmt.Sprintf(
		"Your household cash balance is projected to reach %.2f on %s,\n"+
			"which is below your buffer of %.2f.\n"+
			"Adding %.2f to your cash funds before then keeps you above the buffer.\n",
		alert.ExpectedMinimum, alert.MinBalanceDate, alert.Buffer, alert.ExtraPaymentNeeded,
	)
	body += "\nBest regards,\nBudget Service"
	e.Text = []byte(body)
	return e
}
