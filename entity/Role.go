package entity

const (
	RoleCustomer = "customer"
	RoleKitchen  = "kitchen"
	RoleAdmin    = "admin"
)

// Roles lists every role selectable on the landing page.
var Roles = []string{RoleCustomer, RoleKitchen, RoleAdmin}

func IsStaffRole(role string) bool {
	return role == RoleKitchen || role == RoleAdmin
}
