package domain

// Role tags carried by the remote identity provider. Open set; these are the
// values the storefront routes on.
const (
	RoleCustomer      = "customer"
	RoleTechnician    = "technician"
	RoleAdministrator = "administrator"
)

// User is the identity returned by the OTP verify endpoint.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// Session is the persisted auth slot. IsLoggedIn is true only while both
// User and Token are set; it is a local cache of a remote auth result, not a
// security boundary.
type Session struct {
	User       *User  `json:"user"`
	Token      string `json:"token"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}
