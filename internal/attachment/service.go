// Package attachment manages the uploaded files behind folder documents:
// PDF validation, blob-store upload with a compensating delete, replace
// within the current calendar month, status and expedition-date updates,
// and review notification emails.
package attachment

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/document"
	"github.com/docfolio/backend/internal/mail"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/storage"
	"github.com/docfolio/backend/internal/users"
	"github.com/docfolio/backend/pkg/logger"
)

// Notification kinds accepted by Notify.
const (
	NotificationCollaborator = "COLLABORATOR"
	NotificationRevisor      = "REVISOR"
)

const maxPageSize = 50

var reviewerRoles = []models.Role{models.RoleSuperuser, models.RoleModerator, models.RoleCoordinator}

// Upload carries one incoming file. Only PDF content is accepted; the
// declared content type and the leading bytes are both checked.
type Upload struct {
	OriginalName string
	ContentType  string
	Data         []byte
}

// UserAttachment is one attachment joined with its owning document name,
// used by the per-user listing.
type UserAttachment struct {
	DocumentName string            `json:"documentName"`
	Attachment   models.Attachment `json:"attachment"`
}

// Service implements the attachment operations. Users are addressed by
// their id-document number, the way reviewers identify them.
type Service struct {
	users     users.Repository
	documents *document.Service
	store     storage.Store
	mailer    mail.Mailer
	now       func() time.Time
}

func NewService(userRepo users.Repository, docs *document.Service, store storage.Store, mailer mail.Mailer) *Service {
	return &Service{users: userRepo, documents: docs, store: store, mailer: mailer, now: time.Now}
}

// Create validates the upload, stores the bytes under a fresh ULID-based
// filename and appends a pending attachment to the document. The blob
// upload happens before the database write; if persisting fails the stored
// object is removed again so no orphan bytes survive.
func (s *Service) Create(ctx context.Context, documentNumber, documentName string, up Upload) (*models.Attachment, error) {
	if err := validatePDF(up); err != nil {
		return nil, err
	}
	user, doc, err := s.findDocument(ctx, documentNumber, documentName)
	if err != nil {
		return nil, err
	}

	filename := newFilename(up.OriginalName)
	if err := s.store.Upload(ctx, filename, bytes.NewReader(up.Data), int64(len(up.Data)), up.ContentType); err != nil {
		return nil, apperror.Unavailable("could not upload attachment "+filename, err)
	}

	now := s.now().UTC()
	att := models.Attachment{
		Filename:  filename,
		Status:    models.AttachmentPending,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc.Attachments = append(doc.Attachments, att)
	doc.CurrentAttachment = filename
	doc.State = models.StatePending
	doc.RejectionMessage = ""
	doc.UpdatedAt = now

	if err := s.users.Update(ctx, user); err != nil {
		if rmErr := s.store.Remove(ctx, filename); rmErr != nil {
			logger.Errorf("compensating delete of %s failed: %v", filename, rmErr)
		}
		return nil, err
	}
	return &att, nil
}

// Replace overwrites the blob content of the attachment created in the
// current calendar month, keeping its filename. NotFound when the document
// has no attachment for this month.
func (s *Service) Replace(ctx context.Context, documentNumber, documentName string, up Upload) (*models.Attachment, error) {
	if err := validatePDF(up); err != nil {
		return nil, err
	}
	user, doc, err := s.findDocument(ctx, documentNumber, documentName)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	att := currentMonthAttachment(doc, now)
	if att == nil {
		return nil, apperror.NotFound("document %q has no attachment for the current month", documentName)
	}

	if err := s.store.Upload(ctx, att.Filename, bytes.NewReader(up.Data), int64(len(up.Data)), up.ContentType); err != nil {
		return nil, apperror.Unavailable("could not replace attachment "+att.Filename, err)
	}
	att.Status = models.AttachmentPending
	att.UpdatedAt = now
	doc.CurrentAttachment = att.Filename
	doc.State = models.StatePending
	doc.RejectionMessage = ""
	doc.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	out := *att
	return &out, nil
}

// UpdateStatus sets one attachment's status, looked up by the owning
// user's id-document number and the filename. Repeating the same status is
// a no-op beyond the timestamp.
func (s *Service) UpdateStatus(ctx context.Context, documentNumber, filename string, status models.AttachmentStatus) (*models.Attachment, error) {
	if !status.Valid() {
		return nil, apperror.Validation("invalid attachment status %q", status)
	}
	user, err := s.users.FindByDocumentNumber(ctx, documentNumber)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user with document number %q not found", documentNumber)
	}
	doc, att := findAttachment(&user.Folder, filename)
	if att == nil {
		return nil, apperror.NotFound("attachment %q not found for user %q", filename, documentNumber)
	}
	att.Status = status
	att.UpdatedAt = s.now().UTC()
	doc.UpdatedAt = att.UpdatedAt
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	out := *att
	return &out, nil
}

// SetExpeditionDate records the expedition date on an attachment and
// recomputes the owning document's expiration from its requisite's
// validity rule. Returns the updated document and the reminder message for
// the new expiration date.
func (s *Service) SetExpeditionDate(ctx context.Context, documentNumber, documentName, filename string, expedition time.Time) (*models.Document, string, error) {
	if expedition.IsZero() {
		return nil, "", apperror.Validation("expedition date is required")
	}
	user, doc, err := s.findDocument(ctx, documentNumber, documentName)
	if err != nil {
		return nil, "", err
	}
	att := doc.Attachment(filename)
	if att == nil {
		return nil, "", apperror.NotFound("attachment %q not found in document %q", filename, documentName)
	}

	// Validate against the requisite and persist the expiration first; a
	// mail failure there still leaves the recomputed date in place.
	_, message, docErr := s.documents.UpdateExpirationDate(ctx, user.ID, documentName, expedition)
	if docErr != nil && !apperror.IsUnavailable(docErr) {
		return nil, "", docErr
	}

	user, err = s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	doc = user.Folder.Document(documentName)
	att = doc.Attachment(filename)
	exp := expedition.UTC()
	att.ExpeditionDate = &exp
	att.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", err
	}
	out := *user.Folder.Document(documentName)
	return &out, message, docErr
}

// Download streams the stored bytes for a filename.
func (s *Service) Download(ctx context.Context, filename string) (io.ReadCloser, error) {
	if filename == "" {
		return nil, apperror.Validation("filename is required")
	}
	return s.store.Download(ctx, filename)
}

// ListStorage pages through the blob store's objects.
func (s *Service) ListStorage(ctx context.Context, page, size int) ([]storage.ObjectInfo, int, error) {
	if page < 1 {
		return nil, 0, apperror.Validation("page must be greater than or equal to 1")
	}
	if size < 1 || size > maxPageSize {
		return nil, 0, apperror.Validation("size must be between 1 and %d", maxPageSize)
	}
	return s.store.List(ctx, (page-1)*size, size)
}

// ListByUser returns every attachment in a user's folder joined with its
// document name.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]UserAttachment, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user with id %q not found", userID)
	}
	out := []UserAttachment{}
	for _, doc := range user.Folder.Documents {
		for _, att := range doc.Attachments {
			out = append(out, UserAttachment{DocumentName: doc.Name, Attachment: att})
		}
	}
	return out, nil
}

// Notify sends the review-cycle notification emails. A COLLABORATOR
// notification tells every reviewer the actor finished uploading; a
// REVISOR notification tells the target user their documents were
// reviewed and requires the actor to hold a reviewer role.
func (s *Service) Notify(ctx context.Context, kind string, actor *models.User, targetUserID string) error {
	switch kind {
	case NotificationCollaborator:
		return s.notifyReviewers(ctx, actor)
	case NotificationRevisor:
		if actor == nil || !models.HasAnyRole(actor.Roles, reviewerRoles...) {
			return apperror.Forbidden("only reviewers may send review notifications")
		}
		return s.notifyReviewed(ctx, targetUserID)
	}
	return apperror.Validation("invalid notification type %q", kind)
}

func (s *Service) notifyReviewers(ctx context.Context, actor *models.User) error {
	if actor == nil {
		return apperror.Validation("acting user is not defined")
	}
	// Token-derived actors carry only id, email and roles; resolve the
	// stored user so the email shows a real name.
	actorName := actor.FullName()
	if full, err := s.users.FindByID(ctx, actor.ID); err == nil && full != nil {
		actorName = full.FullName()
	}
	if strings.TrimSpace(actorName) == "" {
		actorName = actor.Email
	}
	all, err := s.users.FindAll(ctx)
	if err != nil {
		return err
	}
	recipients := []string{}
	for _, u := range all {
		if models.HasAnyRole(u.Roles, reviewerRoles...) {
			recipients = append(recipients, u.Email)
		}
	}
	if len(recipients) == 0 {
		return apperror.NotFound("no reviewers found to notify")
	}
	return s.mailer.Send(ctx, mail.Message{
		To:      recipients,
		Subject: "Documents ready for review",
		HTML:    "<p>" + actorName + " has finished uploading documents and they are ready for review.</p>",
	})
}

func (s *Service) notifyReviewed(ctx context.Context, targetUserID string) error {
	target, err := s.users.FindByID(ctx, targetUserID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperror.NotFound("user with id %q not found", targetUserID)
	}
	return s.mailer.Send(ctx, mail.Message{
		To:      []string{target.Email},
		Subject: "Your documents have been reviewed",
		HTML:    "<p>Hello " + target.FirstName + ", your documents have been reviewed. Please check your folder for the results.</p>",
	})
}

func (s *Service) findDocument(ctx context.Context, documentNumber, documentName string) (*models.User, *models.Document, error) {
	user, err := s.users.FindByDocumentNumber(ctx, documentNumber)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, apperror.NotFound("user with document number %q not found", documentNumber)
	}
	doc := user.Folder.Document(documentName)
	if doc == nil {
		return nil, nil, apperror.NotFound("document %q not found for user %q", documentName, documentNumber)
	}
	return user, doc, nil
}

func validatePDF(up Upload) error {
	if up.ContentType != "application/pdf" {
		return apperror.Validation("only PDF files are accepted, got content type %q", up.ContentType)
	}
	if len(up.Data) < 4 || !bytes.HasPrefix(up.Data, []byte("%PDF")) {
		return apperror.Validation("file content is not a valid PDF")
	}
	return nil
}

func newFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".pdf"
	}
	return ulid.Make().String() + ext
}

// currentMonthAttachment returns the newest attachment created in the same
// calendar month as now, or nil.
func currentMonthAttachment(doc *models.Document, now time.Time) *models.Attachment {
	var found *models.Attachment
	for i := range doc.Attachments {
		a := &doc.Attachments[i]
		if a.CreatedAt.Year() == now.Year() && a.CreatedAt.Month() == now.Month() {
			if found == nil || a.CreatedAt.After(found.CreatedAt) {
				found = a
			}
		}
	}
	return found
}

func findAttachment(f *models.Folder, filename string) (*models.Document, *models.Attachment) {
	for i := range f.Documents {
		if a := f.Documents[i].Attachment(filename); a != nil {
			return &f.Documents[i], a
		}
	}
	return nil, nil
}
