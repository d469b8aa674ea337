package constants

type Role string

const (
	RolePilot Role = "pilot"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	return r == RolePilot || r == RoleAdmin
}
