package users

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docfolio/backend/internal/models"
)

func TestCanCreate(t *testing.T) {
	super := []models.Role{models.RoleSuperuser}
	moderator := []models.Role{models.RoleModerator, models.RoleCollaborator}
	coordinator := []models.Role{models.RoleCoordinator, models.RoleCollaborator}
	collaborator := []models.Role{models.RoleCollaborator}

	cases := []struct {
		name      string
		creator   []models.Role
		requested []models.Role
		want      bool
	}{
		{"superuser creates superuser", super, super, true},
		{"moderator cannot create superuser", moderator, super, false},
		{"superuser creates moderator", super, []models.Role{models.RoleModerator}, true},
		{"moderator cannot create moderator", moderator, []models.Role{models.RoleModerator}, false},
		{"moderator creates coordinator", moderator, []models.Role{models.RoleCoordinator}, true},
		{"coordinator cannot create coordinator", coordinator, []models.Role{models.RoleCoordinator}, false},
		{"coordinator creates collaborator", coordinator, collaborator, true},
		{"collaborator cannot create anyone", collaborator, collaborator, false},
		{"highest requested role decides", moderator, []models.Role{models.RoleCollaborator, models.RoleModerator}, false},
		{"no requested roles", super, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanCreate(tc.creator, tc.requested))
		})
	}
}
