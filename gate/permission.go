package gate

import "strings"

// Permission represents an allowed action on a resource type.
// Format: "resource:action" (e.g., "mandat:create", "user:list")
type Permission string

// NewPermission creates a permission from resource type and action.
func NewPermission(resourceType string, action Action) Permission {
	return Permission(resourceType + ":" + string(action))
}

// Parse splits a permission into resource type and action.
func (p Permission) Parse() (resourceType string, action Action) {
	parts := strings.SplitN(string(p), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], Action(parts[1])
}

const (
	WildcardAll                     = "*"
	PermissionSuperAdmin Permission = "*:*"
)

// Matches reports whether p grants requested. Either half of p may be the
// wildcard: "*:*" grants everything, "mandat:*" every mandat action.
func (p Permission) Matches(requested Permission) bool {
	res, act := p.Parse()
	reqRes, reqAct := requested.Parse()
	if reqRes == "" {
		return false
	}
	return (res == WildcardAll || res == reqRes) && (act == WildcardAll || act == reqAct)
}
