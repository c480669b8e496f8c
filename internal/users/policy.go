package users

import "github.com/docfolio/backend/internal/models"

// creatorsFor maps a requested role to the roles allowed to grant it.
// The most privileged requested role decides; the declarative table keeps
// the policy testable on its own.
var creatorsFor = map[models.Role][]models.Role{
	models.RoleSuperuser:    {models.RoleSuperuser},
	models.RoleModerator:    {models.RoleSuperuser},
	models.RoleCoordinator:  {models.RoleSuperuser, models.RoleModerator},
	models.RoleCollaborator: {models.RoleSuperuser, models.RoleModerator, models.RoleCoordinator},
}

// precedence orders roles from most to least privileged.
var precedence = []models.Role{
	models.RoleSuperuser,
	models.RoleModerator,
	models.RoleCoordinator,
	models.RoleCollaborator,
}

// CanCreate reports whether a creator holding creatorRoles may create a
// user holding requestedRoles.
func CanCreate(creatorRoles, requestedRoles []models.Role) bool {
	for _, role := range precedence {
		if !models.HasRole(requestedRoles, role) {
			continue
		}
		return models.HasAnyRole(creatorRoles, creatorsFor[role]...)
	}
	return false
}
