package users_enums

type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "OWNER"
	ProjectRoleAdmin  ProjectRole = "ADMIN"
	ProjectRoleMember ProjectRole = "MEMBER"
	ProjectRoleViewer ProjectRole = "VIEWER"
)

// IsValid validates the ProjectRole
func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleOwner, ProjectRoleAdmin, ProjectRoleMember, ProjectRoleViewer:
		return true
	default:
		return false
	}
}

// IsInvitable reports whether the role can be granted through an
// invitation. The owner role is assigned only at project creation.
func (r ProjectRole) IsInvitable() bool {
	return r.IsValid() && r != ProjectRoleOwner
}

// CanManageMembers reports whether the role may add, change or remove
// project members and invitations.
func (r ProjectRole) CanManageMembers() bool {
	return r == ProjectRoleOwner || r == ProjectRoleAdmin
}
