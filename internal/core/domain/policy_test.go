package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAllows(t *testing.T) {
	testCases := []struct {
		name string
		role Role
		cap  Capability
		want bool
	}{
		{name: "admin manages users", role: RoleAdmin, cap: CapManageUsers, want: true},
		{name: "admin manages offers", role: RoleAdmin, cap: CapManageOffers, want: true},
		{name: "admin cannot activate", role: RoleAdmin, cap: CapActivateSubscrip, want: false},
		{name: "admin cannot dispatch", role: RoleAdmin, cap: CapDispatchCampaign, want: false},
		{name: "validateur activates", role: RoleValidateur, cap: CapActivateSubscrip, want: true},
		{name: "validateur cannot manage users", role: RoleValidateur, cap: CapManageUsers, want: false},
		{name: "user dispatches", role: RoleUser, cap: CapDispatchCampaign, want: true},
		{name: "user manages campaigns", role: RoleUser, cap: CapManageCampaigns, want: true},
		{name: "user cannot activate", role: RoleUser, cap: CapActivateSubscrip, want: false},
		{name: "unknown role denied", role: Role("GUEST"), cap: CapViewCompanyActivity, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RoleAllows(tc.role, tc.cap))
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleValidateur))
	assert.False(t, ValidRole(Role("ROOT")))
}
