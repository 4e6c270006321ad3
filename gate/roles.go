package gate

// Roles a user account can hold.
const (
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// Roles lists the valid role names.
var Roles = []string{RoleAgent, RoleAdmin}

// Resource types guarded by permissions.
const (
	ResourceMandat      = "mandat"
	ResourceTransaction = "transaction"
	ResourceSuivi       = "suivi"
	ResourceRecherche   = "recherche"
	ResourceGestion     = "gestion"
	ResourceUser        = "user"
)

// RecordResources are the agency record types every agent works with.
var RecordResources = []string{
	ResourceMandat,
	ResourceTransaction,
	ResourceSuivi,
	ResourceRecherche,
	ResourceGestion,
}

// NewRoleResolver maps each role to its profile: admins hold every
// permission, agents every record permission but no user management.
func NewRoleResolver() RoleTable {
	agent := make(PermissionSet, 0, len(RecordResources))
	for _, res := range RecordResources {
		agent = append(agent, NewPermission(res, ActionAny))
	}
	return RoleTable{
		RoleAdmin: PermissionSet{PermissionSuperAdmin},
		RoleAgent: agent,
	}
}
