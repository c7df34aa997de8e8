package auth

const (
	RoleCashier = "CASHIER"
	RoleManager = "MANAGER"
)

// User is a till operator account.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

func ValidRole(role string) bool {
	return role == RoleCashier || role == RoleManager
}
