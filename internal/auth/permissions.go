// Package auth centralizes the role/capability table. Every mutating route
// asks CanPerform instead of comparing role strings inline.
package auth

import "betpool/internal/domain"

// Action names a mutating operation guarded by a capability check.
type Action string

const (
	ActionIssueTicket    Action = "ticket.issue"
	ActionPayTicket      Action = "ticket.pay"
	ActionDeleteTicket   Action = "ticket.delete"
	ActionRequestDeposit Action = "deposit.request"
	ActionResolveDeposit Action = "deposit.resolve"
	ActionCreateUser     Action = "user.create"
	ActionAdjustBalance  Action = "user.adjust_balance"
	ActionUpdatePixKey   Action = "user.update_pix"
	ActionListUsers      Action = "user.list"
	ActionUpdateRound    Action = "round.update"
	ActionToggleLock     Action = "market.lock"
)

var grants = map[string]map[Action]bool{
	domain.RoleAdmin: {
		ActionIssueTicket:    true,
		ActionPayTicket:      true,
		ActionDeleteTicket:   true,
		ActionRequestDeposit: true,
		ActionResolveDeposit: true,
		ActionCreateUser:     true,
		ActionAdjustBalance:  true,
		ActionUpdatePixKey:   true,
		ActionListUsers:      true,
		ActionUpdateRound:    true,
		ActionToggleLock:     true,
	},
	domain.RoleCambista: {
		ActionIssueTicket:    true,
		ActionPayTicket:      true,
		ActionDeleteTicket:   true,
		ActionRequestDeposit: true,
		ActionResolveDeposit: true,
		ActionCreateUser:     true,
		ActionUpdatePixKey:   true,
		ActionListUsers:      true,
	},
	domain.RoleClient: {
		ActionIssueTicket:    true,
		ActionDeleteTicket:   true,
		ActionRequestDeposit: true,
	},
}

// CanPerform reports whether a role may run the given action.
func CanPerform(role string, action Action) bool {
	return grants[role][action]
}
