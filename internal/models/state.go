package models

// State is the review state of a document or folder.
type State string

const (
	StatePending  State = "PENDING"
	StateApproved State = "APPROVED"
	StateRejected State = "REJECTED"
)

func (s State) Valid() bool {
	switch s {
	case StatePending, StateApproved, StateRejected:
		return true
	}
	return false
}

// AttachmentStatus mirrors State per attachment; a reviewer setting a
// document state drives the current attachment's status through it.
type AttachmentStatus string

const (
	AttachmentPending  AttachmentStatus = "PENDING"
	AttachmentApproved AttachmentStatus = "APPROVED"
	AttachmentRejected AttachmentStatus = "REJECTED"
)

func (s AttachmentStatus) Valid() bool {
	switch s {
	case AttachmentPending, AttachmentApproved, AttachmentRejected:
		return true
	}
	return false
}

// AttachmentStatus converts a document state to the matching attachment status.
func (s State) AttachmentStatus() AttachmentStatus { return AttachmentStatus(s) }

// Role is an access-control role carried by a user.
type Role string

const (
	RoleSuperuser    Role = "SUPERUSER"
	RoleModerator    Role = "MODERATOR"
	RoleCoordinator  Role = "COORDINATOR"
	RoleCollaborator Role = "COLLABORATOR"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperuser, RoleModerator, RoleCoordinator, RoleCollaborator:
		return true
	}
	return false
}

// HasRole reports whether roles contains r.
func HasRole(roles []Role, r Role) bool {
	for _, have := range roles {
		if have == r {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether roles contains at least one of want.
func HasAnyRole(roles []Role, want ...Role) bool {
	for _, w := range want {
		if HasRole(roles, w) {
			return true
		}
	}
	return false
}
