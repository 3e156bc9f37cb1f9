package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"betpool/internal/domain"
)

func TestCanPerform(t *testing.T) {
	cases := []struct {
		role   string
		action Action
		want   bool
	}{
		{domain.RoleAdmin, ActionUpdateRound, true},
		{domain.RoleAdmin, ActionAdjustBalance, true},
		{domain.RoleAdmin, ActionToggleLock, true},
		{domain.RoleCambista, ActionUpdateRound, false},
		{domain.RoleCambista, ActionToggleLock, false},
		{domain.RoleClient, ActionToggleLock, false},
		{domain.RoleCambista, ActionAdjustBalance, false},
		{domain.RoleCambista, ActionResolveDeposit, true},
		{domain.RoleCambista, ActionCreateUser, true},
		{domain.RoleClient, ActionIssueTicket, true},
		{domain.RoleClient, ActionResolveDeposit, false},
		{domain.RoleClient, ActionCreateUser, false},
		{"", ActionIssueTicket, false},
		{"INTRUDER", ActionUpdateRound, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CanPerform(tc.role, tc.action), "role=%q action=%q", tc.role, tc.action)
	}
}
