package rbac

// Well-known role names. Roles are an open set stored as rows in the roles
// table; these constants are the ones the platform itself assigns. New role
// names may appear operationally without a code change — authorization
// treats an unknown role as simply matching nothing.
const (
	RoleAdmin     = "Admin"
	RoleManager   = "Manager"
	RoleHomeowner = "Homeowner"
	RoleRenter    = "Renter"
)

func IsAdmin(roles []string) bool {
	for _, r := range roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
