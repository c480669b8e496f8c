package expiration

import (
	"context"
	"strings"
	"time"

	"github.com/docfolio/backend/internal/mail"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/users"
	"github.com/docfolio/backend/internal/validity"
	"github.com/docfolio/backend/pkg/logger"
	"github.com/docfolio/backend/pkg/metrics"
)

// Sweeper walks every active user's folder, writes one ExpirationLog per
// user with at least one dated document, and sends each user a single
// consolidated reminder email. One user's failure never stops the sweep.
type Sweeper struct {
	users  users.Repository
	logs   LogRepository
	mailer mail.Mailer
	now    func() time.Time
}

func NewSweeper(userRepo users.Repository, logs LogRepository, mailer mail.Mailer) *Sweeper {
	return &Sweeper{users: userRepo, logs: logs, mailer: mailer, now: time.Now}
}

// Run executes one sweep. It returns an error only when the user listing
// itself fails; per-user problems are logged and skipped.
func (s *Sweeper) Run(ctx context.Context) error {
	metrics.SweepRuns.Inc()
	all, err := s.users.FindAll(ctx)
	if err != nil {
		return err
	}
	now := s.now().UTC()
	for _, u := range all {
		if err := s.sweepUser(ctx, u, now); err != nil {
			logger.Errorf("expiration sweep for user %s failed: %v", u.ID, err)
		}
	}
	return nil
}

func (s *Sweeper) sweepUser(ctx context.Context, u *models.User, now time.Time) error {
	if len(u.Folder.Documents) == 0 {
		logger.Warnf("user %s has no documents in the folder, skipping", u.ID)
		return nil
	}

	entries := []models.ExpiredDocument{}
	messages := []string{}
	for _, doc := range u.Folder.Documents {
		if doc.ExpirationDate == nil {
			messages = append(messages, validity.NoExpirationMessage(doc.Name))
			continue
		}
		entries = append(entries, models.ExpiredDocument{
			DocumentName:     doc.Name,
			AttachmentID:     attachmentID(&doc),
			ExpirationDate:   *doc.ExpirationDate,
			DaysToExpiration: validity.DaysTo(*doc.ExpirationDate, now),
		})
		messages = append(messages, validity.Message(*doc.ExpirationDate, doc.Name, now))
	}

	if len(entries) > 0 {
		log := &models.ExpirationLog{UserID: u.ID, Documents: entries, CreatedAt: now}
		if err := s.logs.Create(ctx, log); err != nil {
			return err
		}
		metrics.SweepLoggedDocuments.Add(float64(len(entries)))
	}

	err := s.mailer.Send(ctx, mail.Message{
		To:      []string{u.Email},
		Subject: "News about your documents",
		HTML:    "<p>Hello " + u.FirstName + ",</p>\n<p>" + strings.Join(messages, "<br>") + "</p>",
	})
	if err != nil {
		metrics.EmailsFailed.Inc()
		return err
	}
	metrics.EmailsSent.Inc()
	return nil
}

// attachmentID names the attachment behind a dated document in the audit
// record, or "N/A" when the document has none.
func attachmentID(doc *models.Document) string {
	if att := doc.Current(); att != nil {
		return att.Filename
	}
	return "N/A"
}
