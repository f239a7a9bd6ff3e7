package entities

type Role string

const (
	RoleDriver   Role = "driver"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RolePlatform Role = "platform"
	RoleSystem   Role = "system"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleDriver, RoleCustomer, RoleAdmin, RolePlatform, RoleSystem:
		return true
	default:
		return false
	}
}

// Actor аутентифицированный инициатор операции.
type Actor struct {
	ID   string
	Role Role
}

var SystemActor = Actor{ID: "expiry-sweep", Role: RoleSystem}
