package domain

// Capability names one protected operation of the system. Roles map to
// capability sets instead of handlers comparing role strings inline.
type Capability string

const (
	CapManageUsers         Capability = "users:manage"
	CapManageCompanies     Capability = "companies:manage"
	CapManageOffers        Capability = "offers:manage"
	CapCreateSubscription  Capability = "subscriptions:create"
	CapActivateSubscrip    Capability = "subscriptions:activate"
	CapManageCampaigns     Capability = "campaigns:manage"
	CapDispatchCampaign    Capability = "campaigns:dispatch"
	CapViewCompanyActivity Capability = "companies:view"
)

// rolePolicy is the single source of truth for what each role may do.
var rolePolicy = map[Role]map[Capability]struct{}{
	RoleAdmin: capSet(
		CapManageUsers,
		CapManageCompanies,
		CapManageOffers,
		CapCreateSubscription,
		CapManageCampaigns,
		CapViewCompanyActivity,
	),
	RoleValidateur: capSet(
		CapCreateSubscription,
		CapActivateSubscrip,
		CapViewCompanyActivity,
	),
	RoleUser: capSet(
		CapManageCampaigns,
		CapDispatchCampaign,
		CapViewCompanyActivity,
	),
}

func capSet(caps ...Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// RoleAllows reports whether role grants the given capability.
func RoleAllows(role Role, cap Capability) bool {
	caps, ok := rolePolicy[role]
	if !ok {
		return false
	}
	_, ok = caps[cap]
	return ok
}
