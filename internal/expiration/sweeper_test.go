package expiration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfolio/backend/internal/mail"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/users"
)

func sweepUserFixture(t *testing.T, repo users.Repository, email string, docs ...models.Document) *models.User {
	t.Helper()
	u := &models.User{
		FirstName:  "Test",
		Surname:    "User",
		Email:      email,
		IDDocument: models.IDDocument{Type: "CC", Number: email},
		Roles:      []models.Role{models.RoleCollaborator},
		IsActive:   true,
		Folder: models.Folder{
			Name: "Folder", State: models.StatePending, IsActive: true, Documents: docs,
		},
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func datedDoc(name string, expiration time.Time, filename string) models.Document {
	d := models.Document{
		Name:          name,
		State:         models.StatePending,
		IsActive:      true,
		HasExpiration: true,
		ExpirationDate: &expiration,
	}
	if filename != "" {
		d.Attachments = []models.Attachment{{Filename: filename, Status: models.AttachmentPending, IsActive: true}}
		d.CurrentAttachment = filename
	}
	return d
}

func TestSweepWritesLogAndEmail(t *testing.T) {
	repo := users.NewMemoryRepository()
	logs := NewMemoryLogRepository()
	recorder := mail.NewRecorder()
	sweeper := NewSweeper(repo, logs, recorder)

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	sweeper.now = func() time.Time { return now }

	u := sweepUserFixture(t, repo, "a@example.com",
		datedDoc("Nursing License", now.AddDate(0, 0, 10), "lic.pdf"),
		datedDoc("Health Card", now.AddDate(0, 0, -2), ""),
		models.Document{Name: "Resume", State: models.StatePending, IsActive: true},
	)

	require.NoError(t, sweeper.Run(context.Background()))

	stored, err := logs.FindByUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Len(t, stored[0].Documents, 2, "only dated documents are logged")

	byName := map[string]models.ExpiredDocument{}
	for _, d := range stored[0].Documents {
		byName[d.DocumentName] = d
	}
	assert.Equal(t, "lic.pdf", byName["Nursing License"].AttachmentID)
	assert.Equal(t, 10, byName["Nursing License"].DaysToExpiration)
	assert.Equal(t, "N/A", byName["Health Card"].AttachmentID)
	assert.Equal(t, 0, byName["Health Card"].DaysToExpiration, "past due clamps at zero")

	sent := recorder.SentTo(u.Email)
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].HTML, "Nursing License")
	assert.Contains(t, sent[0].HTML, "expired")
	assert.Contains(t, sent[0].HTML, "Resume")
	assert.Contains(t, sent[0].HTML, "no expiration date")
}

func TestSweepSkipsEmptyFolders(t *testing.T) {
	repo := users.NewMemoryRepository()
	logs := NewMemoryLogRepository()
	recorder := mail.NewRecorder()
	sweeper := NewSweeper(repo, logs, recorder)

	sweepUserFixture(t, repo, "empty@example.com")
	require.NoError(t, sweeper.Run(context.Background()))
	assert.Empty(t, logs.All())
	assert.Empty(t, recorder.Sent)
}

func TestSweepNoLogWithoutDatedDocuments(t *testing.T) {
	repo := users.NewMemoryRepository()
	logs := NewMemoryLogRepository()
	recorder := mail.NewRecorder()
	sweeper := NewSweeper(repo, logs, recorder)

	u := sweepUserFixture(t, repo, "c@example.com",
		models.Document{Name: "Resume", State: models.StatePending, IsActive: true},
	)
	require.NoError(t, sweeper.Run(context.Background()))
	assert.Empty(t, logs.All(), "no dated documents means no audit row")
	assert.Len(t, recorder.SentTo(u.Email), 1, "the reminder email still goes out")
}

func TestSweepIsolatesUserFailures(t *testing.T) {
	repo := users.NewMemoryRepository()
	logs := NewMemoryLogRepository()
	recorder := mail.NewRecorder()
	sweeper := NewSweeper(repo, logs, recorder)

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	sweeper.now = func() time.Time { return now }
	exp := now.AddDate(0, 0, 5)

	a := sweepUserFixture(t, repo, "a@example.com", datedDoc("Doc A", exp, "a.pdf"))
	b := sweepUserFixture(t, repo, "b@example.com", datedDoc("Doc B", exp, "b.pdf"))
	c := sweepUserFixture(t, repo, "c@example.com", datedDoc("Doc C", exp, "c.pdf"))
	recorder.FailTo[b.Email] = true

	require.NoError(t, sweeper.Run(context.Background()))

	for _, u := range []*models.User{a, b, c} {
		stored, err := logs.FindByUser(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Len(t, stored, 1, "log rows are written even when the email fails")
	}
	assert.Len(t, recorder.SentTo(a.Email), 1)
	assert.Empty(t, recorder.SentTo(b.Email))
	assert.Len(t, recorder.SentTo(c.Email), 1)
}
