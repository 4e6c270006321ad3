package gate

import (
	"context"
	"slices"
)

// Profile grants a set of permissions.
type Profile interface {
	HasPermission(permission Permission) bool
}

// ProfileResolver returns the profile of a role, or nil when the role is
// unknown.
type ProfileResolver interface {
	Resolve(ctx context.Context, role string) (Profile, error)
}

// PermissionSet is a profile made of a fixed list of permissions.
type PermissionSet []Permission

// HasPermission reports whether any permission of the set matches requested.
func (s PermissionSet) HasPermission(requested Permission) bool {
	return slices.ContainsFunc(s, func(p Permission) bool { return p.Matches(requested) })
}

// RoleTable resolves roles from a fixed map.
type RoleTable map[string]Profile

func (t RoleTable) Resolve(_ context.Context, role string) (Profile, error) {
	return t[role], nil
}

// Authorize checks that the profile of role grants action on resourceType.
// A blank or unknown role is ErrUnauthorized, a missing permission
// ErrForbidden.
func Authorize(ctx context.Context, resolver ProfileResolver, role string, action Action, resourceType string) error {
	if role == "" {
		return ErrUnauthorized
	}
	profile, err := resolver.Resolve(ctx, role)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrUnauthorized
	}
	if !profile.HasPermission(NewPermission(resourceType, action)) {
		return ErrForbidden
	}
	return nil
}
