// Package gate maps roles to permission profiles. A permission names a
// resource type and an action; profiles grant permissions, with wildcards.
package gate

// Action describes the kind of operation a user wants to perform.
type Action string

const (
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
	// ActionAny grants every action on a resource.
	ActionAny Action = WildcardAll
)
