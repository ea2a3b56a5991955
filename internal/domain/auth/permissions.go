package auth

const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleViewer  = "Viewer"
)

const (
	PermCatalogRead   = "catalog.read"
	PermCatalogWrite  = "catalog.write"
	PermKPIRead       = "kpi.read"
	PermKPIWrite      = "kpi.write"
	PermKPIConfigure  = "kpi.configure"
	PermPlannerRead   = "planner.read"
	PermPlannerWrite  = "planner.write"
	PermTargetingRead = "targeting.read"
	PermTargetsRead   = "targets.read"
	PermTargetsWrite  = "targets.write"
	PermReportsRead   = "reports.read"
	PermAuditRead     = "audit.read"
)

var RolePermissions = map[string][]string{
	RoleViewer: {
		PermCatalogRead,
		PermKPIRead,
		PermPlannerRead,
		PermTargetingRead,
		PermTargetsRead,
		PermReportsRead,
	},
	RoleManager: {
		PermCatalogRead,
		PermCatalogWrite,
		PermKPIRead,
		PermKPIWrite,
		PermPlannerRead,
		PermPlannerWrite,
		PermTargetingRead,
		PermTargetsRead,
		PermTargetsWrite,
		PermReportsRead,
	},
	RoleAdmin: {
		PermCatalogRead,
		PermCatalogWrite,
		PermKPIRead,
		PermKPIWrite,
		PermKPIConfigure,
		PermPlannerRead,
		PermPlannerWrite,
		PermTargetingRead,
		PermTargetsRead,
		PermTargetsWrite,
		PermReportsRead,
		PermAuditRead,
	},
}

// HasPermission checks a role against the static role/permission table.
func HasPermission(role, permission string) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
