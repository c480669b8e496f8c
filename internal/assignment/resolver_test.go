package assignment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/catalog"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/requisite"
)

type fixture struct {
	resolver *Resolver
	catalog  *catalog.MemoryRepositories
	reqs     *requisite.MemoryRepository
	ids      map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	cat := catalog.NewMemoryRepositories()
	reqs := requisite.NewMemoryRepository()

	ids := map[string]string{}
	for _, name := range []string{"Contract", "Diploma", "Medical Certificate", "Background Check"} {
		r := &models.Requisite{Name: name, IsActive: true}
		require.NoError(t, reqs.Create(ctx, r))
		ids[name] = r.ID
	}

	require.NoError(t, cat.CreateGroup(ctx, &models.Group{Name: "Operations", IsActive: true}))
	require.NoError(t, cat.CreateProfile(ctx, &models.Profile{
		Name:         "Nurse",
		RequisiteIDs: []string{ids["Diploma"], ids["Medical Certificate"]},
	}))
	require.NoError(t, cat.CreateHiring(ctx, &models.Hiring{
		Type:         "Fixed Term",
		RequisiteIDs: []string{ids["Contract"]},
	}))
	require.NoError(t, cat.CreateService(ctx, &models.Service{
		Name:         "Emergency Room",
		GroupName:    "Operations",
		Profiles:     []string{"Nurse", "Doctor"},
		RequisiteIDs: []string{ids["Medical Certificate"], ids["Background Check"]},
	}))
	require.NoError(t, cat.CreateService(ctx, &models.Service{
		Name:         "Night Shift",
		GroupName:    "Operations",
		Profiles:     []string{"Nurse"},
		RequisiteIDs: []string{ids["Background Check"]},
	}))
	require.NoError(t, cat.CreateService(ctx, &models.Service{
		Name:      "Cafeteria",
		GroupName: "Facilities",
		Profiles:  []string{"Cook"},
	}))

	return &fixture{resolver: NewResolver(cat, reqs), catalog: cat, reqs: reqs, ids: ids}
}

func TestResolveUnionIsDeduplicated(t *testing.T) {
	f := newFixture(t)

	got, err := f.resolver.Resolve(context.Background(), "Nurse", "Fixed Term", "Operations",
		[]string{"Emergency Room", "Night Shift"})
	require.NoError(t, err)

	// Medical Certificate appears in both profile and service sets,
	// Background Check in both services; each must appear exactly once.
	names := map[string]int{}
	for _, r := range got {
		names[r.Name]++
	}
	assert.Len(t, got, 4)
	for _, name := range []string{"Contract", "Diploma", "Medical Certificate", "Background Check"} {
		assert.Equal(t, 1, names[name], name)
	}
}

func TestResolveValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.resolver.Resolve(ctx, "Nurse", "Fixed Term", "Operations", nil)
	assert.True(t, apperror.IsValidation(err))

	_, err = f.resolver.Resolve(ctx, "Nurse", "Fixed Term", "Operations",
		[]string{"Night Shift", "Night Shift"})
	assert.True(t, apperror.IsValidation(err))

	// service outside the requested group
	_, err = f.resolver.Resolve(ctx, "Nurse", "Fixed Term", "Operations",
		[]string{"Night Shift", "Cafeteria"})
	assert.Error(t, err)

	// profile not common to all services
	_, err = f.resolver.Resolve(ctx, "Doctor", "Fixed Term", "Operations",
		[]string{"Emergency Room", "Night Shift"})
	assert.True(t, apperror.IsValidation(err))
}

func TestResolveNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.resolver.Resolve(ctx, "Nurse", "Fixed Term", "Nope", []string{"Night Shift"})
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.resolver.Resolve(ctx, "Nurse", "Fixed Term", "Operations", []string{"Missing Service"})
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.resolver.Resolve(ctx, "Ghost", "Fixed Term", "Operations", []string{"Night Shift"})
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.resolver.Resolve(ctx, "Nurse", "Ghost Hiring", "Operations", []string{"Night Shift"})
	assert.True(t, apperror.IsNotFound(err))
}
