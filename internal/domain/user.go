package domain

// Role is the closed set of user kinds. No behavior hangs off the role beyond
// tagging; admin-only operations are enforced at the API surface.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleAdmin    Role = "Admin"
)

// User is a customer or admin account. LoyaltyPoints only applies to customers
// and is never negative.
type User struct {
	ID            string
	Role          Role
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	LoyaltyPoints int
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
