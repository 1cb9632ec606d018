package model

// Role classifies what a logged-in user is allowed to see.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts a raw role string from the API or from storage into a
// Role. The comparison is case-sensitive: only the exact string "ADMIN" grants
// admin. Anything else, including "admin", an empty string, or a corrupted
// stored value, degrades to RoleUser.
func ParseRole(raw string) Role {
	if raw == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}
