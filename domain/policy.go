package domain

// CanActOn is the self-or-admin access rule: the requester may act on the
// target resource when they own it or hold the admin role. Pure function so
// the policy is testable without any transport.
func CanActOn(requester *User, ownerID uint) bool {
	if requester == nil {
		return false
	}
	return requester.ID == ownerID || requester.Role == RoleAdmin
}
