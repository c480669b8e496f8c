package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/assignment"
	"github.com/docfolio/backend/internal/catalog"
	"github.com/docfolio/backend/internal/mail"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/requisite"
)

type svcFixture struct {
	svc    *Service
	repo   *MemoryRepository
	mailer *mail.Recorder
}

func newServiceFixture(t *testing.T) *svcFixture {
	t.Helper()
	ctx := context.Background()
	cat := catalog.NewMemoryRepositories()
	reqs := requisite.NewMemoryRepository()

	contract := &models.Requisite{Name: "Contract", IsActive: true}
	diploma := &models.Requisite{Name: "Diploma", IsActive: true}
	require.NoError(t, reqs.Create(ctx, contract))
	require.NoError(t, reqs.Create(ctx, diploma))

	require.NoError(t, cat.CreateGroup(ctx, &models.Group{Name: "Operations"}))
	require.NoError(t, cat.CreateProfile(ctx, &models.Profile{Name: "Nurse", RequisiteIDs: []string{diploma.ID}}))
	require.NoError(t, cat.CreateHiring(ctx, &models.Hiring{Type: "Fixed Term", RequisiteIDs: []string{contract.ID}}))
	require.NoError(t, cat.CreateService(ctx, &models.Service{
		Name: "Emergency Room", GroupName: "Operations", Profiles: []string{"Nurse"},
	}))

	repo := NewMemoryRepository()
	mailer := mail.NewRecorder()
	svc := NewService(repo, assignment.NewResolver(cat, reqs), mailer, "http://localhost:3001/v1/auth/login")
	return &svcFixture{svc: svc, repo: repo, mailer: mailer}
}

func creator() *models.User {
	return &models.User{ID: "admin", Roles: []models.Role{models.RoleSuperuser}}
}

func validInput() CreateInput {
	return CreateInput{
		FirstName:   "Ana",
		Surname:     "Diaz",
		Email:       "ana@example.com",
		IDDocument:  models.IDDocument{Type: "CC", Number: "1001"},
		Roles:       []models.Role{},
		ProfileName: "Nurse",
		HiringType:  "Fixed Term",
		GroupName:   "Operations",
		Services:    []string{"Emergency Room"},
	}
}

func TestCreateUserScaffoldsFolder(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	u, err := f.svc.Create(ctx, creator(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.True(t, models.HasRole(u.Roles, models.RoleCollaborator))

	// one pending document per requisite (Diploma from profile, Contract from hiring)
	require.Len(t, u.Folder.Documents, 2)
	for _, doc := range u.Folder.Documents {
		assert.Equal(t, models.StatePending, doc.State)
		assert.Empty(t, doc.Attachments)
	}
	assert.NotNil(t, u.Folder.Document("Contract"))
	assert.NotNil(t, u.Folder.Document("Diploma"))

	// credentials email was sent
	sent := f.mailer.SentTo("ana@example.com")
	require.Len(t, sent, 1)
	assert.Equal(t, "Access credentials", sent[0].Subject)
}

func TestCreateUserUniqueness(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, creator(), validInput())
	require.NoError(t, err)

	dup := validInput()
	dup.IDDocument.Number = "2002"
	_, err = f.svc.Create(ctx, creator(), dup)
	assert.True(t, apperror.IsValidation(err), "duplicate email")

	dup = validInput()
	dup.Email = "other@example.com"
	_, err = f.svc.Create(ctx, creator(), dup)
	assert.True(t, apperror.IsValidation(err), "duplicate id document")
}

func TestCreateUserForbiddenForInsufficientRole(t *testing.T) {
	f := newServiceFixture(t)
	low := &models.User{ID: "c1", Roles: []models.Role{models.RoleCollaborator}}
	_, err := f.svc.Create(context.Background(), low, validInput())
	assert.True(t, apperror.IsForbidden(err))
}

func TestCreateUserAbortsWhenMailFails(t *testing.T) {
	f := newServiceFixture(t)
	f.mailer.FailTo["ana@example.com"] = true

	_, err := f.svc.Create(context.Background(), creator(), validInput())
	require.Error(t, err)
	assert.True(t, apperror.IsUnavailable(err))

	// no user persisted
	u, err := f.repo.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestFindUsersPagination(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	for i, email := range []string{"a@example.com", "b@example.com"} {
		in := validInput()
		in.Email = email
		in.IDDocument.Number = in.IDDocument.Number + string(rune('0'+i))
		_, err := f.svc.Create(ctx, creator(), in)
		require.NoError(t, err)
	}

	items, count, err := f.svc.Find(ctx, 1, 1, Filter{Surname: "diaz"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, items, 1)

	_, _, err = f.svc.Find(ctx, 0, 1, Filter{})
	assert.True(t, apperror.IsValidation(err))
	_, _, err = f.svc.Find(ctx, 1, 100, Filter{})
	assert.True(t, apperror.IsValidation(err))
}
