package models

// Available role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// GetDefaultRoles returns the roles assigned to a new user
func GetDefaultRoles() Roles {
	return Roles{RoleUser}
}

// GetAllRoles returns every assignable role
func GetAllRoles() []string {
	return []string{
		RoleUser,
		RoleAdmin,
	}
}

// IsValidRole checks whether a role belongs to the known set
func IsValidRole(role string) bool {
	for _, r := range GetAllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
