package constants

type UserRole string

const (
	RoleOwner UserRole = "OWNER"
	RoleAdmin UserRole = "ADMIN"
)

func (r UserRole) String() string {
	return string(r)
}
