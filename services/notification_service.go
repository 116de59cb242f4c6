package services

import (
	"context"
	"sync"
	"time"

	"ormakal.in/configs/configslog"
	"ormakal.in/models"
	"ormakal.in/pkg/mailer"

	"go.uber.org/zap"
)

// INotificationService sends the emails that follow a successful submission.
type INotificationService interface {
	// Dispatch starts the admin alert and the submitter confirmation and returns immediately.
	Dispatch(obituary *models.Obituary, condolence *models.Condolence)
	// Wait stops accepting dispatches and blocks until every started send has finished.
	Wait()
}

// NotificationConfig holds the recipients and limits for notification mail.
type NotificationConfig struct {
	AdminEmail  string
	WebsiteURL  string
	SendTimeout time.Duration
}

// NotificationService sends both notifications concurrently. Failures are logged only.
type NotificationService struct {
	mailer    mailer.Mailer
	templates *mailer.Templates
	cfg       NotificationConfig

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewNotificationService creates a notifier on top of m.
func NewNotificationService(m mailer.Mailer, templates *mailer.Templates, cfg NotificationConfig) *NotificationService {
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 15 * time.Second
	}
	return &NotificationService{mailer: m, templates: templates, cfg: cfg}
}

func (s *NotificationService) Dispatch(obituary *models.Obituary, condolence *models.Condolence) {
	if obituary == nil || condolence == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		configslog.Log.Warn("Notifier is shut down, dropping notification emails", zap.String("condolence_id", condolence.ID))
		return
	}

	data := mailer.CondolenceMail{
		ObituaryName:  obituary.Name.English,
		DateOfBirth:   obituary.DateOfBirth,
		DateOfPassing: obituary.DateOfPassing,
		Name:          condolence.Name,
		Email:         condolence.Email,
		Message:       condolence.Message,
		SubmittedAt:   condolence.CreatedAt,
		WebsiteURL:    s.cfg.WebsiteURL,
	}

	if s.cfg.AdminEmail == "" {
		configslog.Log.Warn("ADMIN_EMAIL is not set, skipping admin alert", zap.String("condolence_id", condolence.ID))
	} else {
		s.send("admin_alert", s.cfg.AdminEmail, condolence.ID, func() (string, string, error) {
			return s.templates.AdminAlert(data)
		})
	}

	s.send("confirmation", condolence.Email, condolence.ID, func() (string, string, error) {
		return s.templates.Confirmation(data)
	})
}

// send must be called with s.mu held.
func (s *NotificationService) send(kind, to, condolenceID string, render func() (string, string, error)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		subject, body, err := render()
		if err != nil {
			configslog.Log.Error("Notification email could not be rendered",
				zap.String("kind", kind), zap.String("condolence_id", condolenceID), zap.Error(err))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SendTimeout)
		defer cancel()

		if err := s.mailer.SendMail(ctx, to, subject, body); err != nil {
			configslog.Log.Error("Notification email failed",
				zap.String("kind", kind), zap.String("condolence_id", condolenceID), zap.Error(err))
			return
		}
		configslog.Log.Info("Notification email sent",
			zap.String("kind", kind), zap.String("condolence_id", condolenceID))
	}()
}

func (s *NotificationService) Wait() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
}

var _ INotificationService = (*NotificationService)(nil)
