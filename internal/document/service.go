// Package document implements the review lifecycle of folder documents:
// state transitions driven by reviewers and expiration recomputation from
// requisite validity rules.
package document

import (
	"context"
	"time"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/mail"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/requisite"
	"github.com/docfolio/backend/internal/users"
	"github.com/docfolio/backend/internal/validity"
	"github.com/docfolio/backend/pkg/logger"
)

const maxRejectionMessageLen = 500

// Service encapsulates document lifecycle operations on the user aggregate.
type Service struct {
	users      users.Repository
	requisites requisite.Repository
	mailer     mail.Mailer
	now        func() time.Time
}

func NewService(userRepo users.Repository, reqRepo requisite.Repository, mailer mail.Mailer) *Service {
	return &Service{users: userRepo, requisites: reqRepo, mailer: mailer, now: time.Now}
}

// FindByUser returns the documents in a user's folder. Collaborators may
// only read their own folder; reviewer roles may read anyone's.
func (s *Service) FindByUser(ctx context.Context, userID string, current *models.User) ([]models.Document, error) {
	if current == nil || len(current.Roles) == 0 {
		return nil, apperror.Validation("current user or roles are not defined")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user with id %q not found", userID)
	}
	isReviewer := models.HasAnyRole(current.Roles, models.RoleSuperuser, models.RoleModerator, models.RoleCoordinator)
	if !isReviewer && user.ID != current.ID {
		return nil, apperror.Forbidden("you do not have permission to access these documents")
	}
	if len(user.Folder.Documents) == 0 {
		return nil, apperror.NotFound("no documents found in the folder for user %q", userID)
	}
	return user.Folder.Documents, nil
}

// UpdateState sets a document's review state and propagates it onto the
// current attachment. REJECTED accepts an optional rejection message of at
// most 500 characters. A rejected document re-enters PENDING when a new
// attachment is uploaded.
func (s *Service) UpdateState(ctx context.Context, userID, documentName string, state models.State, rejectionMessage string) (*models.Document, error) {
	if !state.Valid() {
		return nil, apperror.Validation("invalid state %q for document %q", state, documentName)
	}
	if len(rejectionMessage) > maxRejectionMessageLen {
		return nil, apperror.Validation("rejection message must not exceed %d characters", maxRejectionMessageLen)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user with id %q not found", userID)
	}
	doc := user.Folder.Document(documentName)
	if doc == nil {
		return nil, apperror.NotFound("document %q not found for user %q", documentName, userID)
	}
	current := doc.Current()
	if current == nil {
		return nil, apperror.NotFound("document %q has no attachments to update", documentName)
	}

	doc.State = state
	if state == models.StateRejected && rejectionMessage != "" {
		doc.RejectionMessage = rejectionMessage
	}
	current.Status = state.AttachmentStatus()
	current.UpdatedAt = s.now().UTC()
	doc.UpdatedAt = current.UpdatedAt

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	out := *doc
	return &out, nil
}

// UpdateExpirationDate recomputes a document's expiration from its
// requisite's validity rule and an expedition date, persists it and sends
// the owner a notification. The notification failure is surfaced as
// Unavailable but the recomputed date is already persisted.
func (s *Service) UpdateExpirationDate(ctx context.Context, userID, documentName string, expedition time.Time) (*models.Document, string, error) {
	if expedition.IsZero() {
		return nil, "", apperror.Validation("expedition date is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", apperror.NotFound("user with id %q not found", userID)
	}
	doc := user.Folder.Document(documentName)
	if doc == nil {
		return nil, "", apperror.NotFound("document %q not found for user %q", documentName, userID)
	}
	req, err := s.requisites.FindByName(ctx, documentName)
	if err != nil {
		return nil, "", err
	}
	if req == nil {
		return nil, "", apperror.NotFound("requisite %q not found", documentName)
	}
	if !req.IsValidityRequired {
		return nil, "", apperror.Validation("requisite %q does not require validity", documentName)
	}

	expiration, err := validity.ComputeExpiration(expedition, req.ValidityValue, req.ValidityUnit)
	if err != nil {
		return nil, "", apperror.Validation("%v", err)
	}
	doc.ExpirationDate = &expiration
	doc.HasExpiration = true
	doc.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", err
	}

	message := validity.Message(expiration, doc.Name, s.now())
	if err := s.sendExpirationEmail(ctx, user.Email, doc.Name, expiration, message); err != nil {
		logger.Warnf("expiration notification for user %s failed: %v", user.ID, err)
		out := *doc
		return &out, message, err
	}
	out := *doc
	return &out, message, nil
}

func (s *Service) sendExpirationEmail(ctx context.Context, email, documentName string, expiration time.Time, message string) error {
	return s.mailer.Send(ctx, mail.Message{
		To:      []string{email},
		Subject: "News about your documents",
		HTML:    "<p>Hello,</p>\n<p>" + message + "</p>",
		Params: map[string]string{
			"document":       documentName,
			"expirationDate": expiration.Format("2006-01-02"),
		},
	})
}
