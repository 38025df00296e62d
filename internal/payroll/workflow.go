package payroll

import (
	payrollerrors "github.com/KhushalYadav535/hrmsbackend-sub000/internal/payroll/errors"
)

// Segregation-of-duties roles. Maker and checker are sub-roles of the
// payroll function; finance is a separate approver role.
const (
	RoleMaker   = "PAYROLL_MAKER"
	RoleChecker = "PAYROLL_CHECKER"
	RoleFinance = "FINANCE_APPROVER"
)

const (
	ActionCreate   = "CREATE"
	ActionUpdate   = "UPDATE"
	ActionSubmit   = "SUBMIT"
	ActionApprove  = "APPROVE"
	ActionReject   = "REJECT"
	ActionProcess  = "PROCESS"
	ActionMarkPaid = "MARK_PAID"
	ActionDelete   = "DELETE"
)

type transitionKey struct {
	From   string
	Action string
}

type transitionRule struct {
	To    string
	Roles []string
	// ForbidSelfApproval rejects the transition when the acting checker is
	// also the record's maker.
	ForbidSelfApproval bool
}

// transitionTable is the single source of truth for the record lifecycle:
// (current status, action, actor role) -> next status or error. A missing
// (status, action) pair means the status precondition fails; that check
// doubles as the optimistic-concurrency guard, since the status read and the
// update commit inside one transaction.
var transitionTable = map[transitionKey]transitionRule{
	{StatusDraft, ActionUpdate}:  {To: StatusDraft, Roles: []string{RoleMaker}},
	{StatusDraft, ActionDelete}:  {To: "", Roles: []string{RoleMaker}},
	{StatusDraft, ActionSubmit}:  {To: StatusSubmitted, Roles: []string{RoleMaker}},
	{StatusDraft, ActionApprove}: {To: StatusApproved, Roles: []string{RoleChecker}, ForbidSelfApproval: true},

	{StatusSubmitted, ActionApprove}: {To: StatusApproved, Roles: []string{RoleChecker}, ForbidSelfApproval: true},
	{StatusSubmitted, ActionReject}:  {To: StatusRejected, Roles: []string{RoleChecker}},

	{StatusApproved, ActionReject}:  {To: StatusRejected, Roles: []string{RoleChecker}},
	{StatusApproved, ActionProcess}: {To: StatusProcessed, Roles: []string{RoleFinance}},

	{StatusProcessed, ActionMarkPaid}: {To: StatusPaid, Roles: []string{RoleMaker, RoleChecker, RoleFinance}},
}

// Transition authorizes one lifecycle action and returns the resulting
// status. PAID has no outgoing edges, so a paid record is immutable here by
// construction.
func Transition(currentStatus, action, actorRole, actorID, makerID string) (string, error) {
	rule, ok := transitionTable[transitionKey{From: currentStatus, Action: action}]
	if !ok {
		return "", payrollerrors.ErrStateTransition
	}

	if !roleAllowed(rule.Roles, actorRole) {
		return "", payrollerrors.ErrRoleViolation
	}

	if rule.ForbidSelfApproval && actorID == makerID {
		return "", payrollerrors.ErrSelfApprovalForbidden
	}

	return rule.To, nil
}

// CanCreate is the role gate for building a new draft record.
func CanCreate(actorRole string) error {
	if actorRole != RoleMaker {
		return payrollerrors.ErrRoleViolation
	}
	return nil
}

func roleAllowed(allowed []string, role string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
