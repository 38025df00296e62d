package payroll_test

import (
	"testing"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/payroll"
	payrollerrors "github.com/KhushalYadav535/hrmsbackend-sub000/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	maker := uuid.New().String()
	checker := uuid.New().String()
	finance := uuid.New().String()

	tests := []struct {
		name    string
		status  string
		action  string
		role    string
		actor   string
		want    string
		wantErr error
	}{
		{"maker submits draft", payroll.StatusDraft, payroll.ActionSubmit, payroll.RoleMaker, maker, payroll.StatusSubmitted, nil},
		{"checker approves submitted", payroll.StatusSubmitted, payroll.ActionApprove, payroll.RoleChecker, checker, payroll.StatusApproved, nil},
		{"checker approves draft directly", payroll.StatusDraft, payroll.ActionApprove, payroll.RoleChecker, checker, payroll.StatusApproved, nil},
		{"checker rejects submitted", payroll.StatusSubmitted, payroll.ActionReject, payroll.RoleChecker, checker, payroll.StatusRejected, nil},
		{"checker rejects approved", payroll.StatusApproved, payroll.ActionReject, payroll.RoleChecker, checker, payroll.StatusRejected, nil},
		{"finance processes approved", payroll.StatusApproved, payroll.ActionProcess, payroll.RoleFinance, finance, payroll.StatusProcessed, nil},
		{"maker marks processed paid", payroll.StatusProcessed, payroll.ActionMarkPaid, payroll.RoleMaker, maker, payroll.StatusPaid, nil},
		{"finance marks processed paid", payroll.StatusProcessed, payroll.ActionMarkPaid, payroll.RoleFinance, finance, payroll.StatusPaid, nil},

		{"maker cannot approve", payroll.StatusSubmitted, payroll.ActionApprove, payroll.RoleMaker, maker, "", payrollerrors.ErrRoleViolation},
		{"checker cannot submit", payroll.StatusDraft, payroll.ActionSubmit, payroll.RoleChecker, checker, "", payrollerrors.ErrRoleViolation},
		{"checker cannot process", payroll.StatusApproved, payroll.ActionProcess, payroll.RoleChecker, checker, "", payrollerrors.ErrRoleViolation},

		{"cannot process a draft", payroll.StatusDraft, payroll.ActionProcess, payroll.RoleFinance, finance, "", payrollerrors.ErrStateTransition},
		{"cannot approve processed", payroll.StatusProcessed, payroll.ActionApprove, payroll.RoleChecker, checker, "", payrollerrors.ErrStateTransition},
		{"cannot reject processed", payroll.StatusProcessed, payroll.ActionReject, payroll.RoleChecker, checker, "", payrollerrors.ErrStateTransition},
		{"paid is terminal", payroll.StatusPaid, payroll.ActionSubmit, payroll.RoleMaker, maker, "", payrollerrors.ErrStateTransition},
		{"paid cannot be deleted", payroll.StatusPaid, payroll.ActionDelete, payroll.RoleMaker, maker, "", payrollerrors.ErrStateTransition},
		{"rejected is terminal", payroll.StatusRejected, payroll.ActionSubmit, payroll.RoleMaker, maker, "", payrollerrors.ErrStateTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := payroll.Transition(tt.status, tt.action, tt.role, tt.actor, maker)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestTransition_SelfApprovalForbidden(t *testing.T) {
	actor := uuid.New().String()

	// The acting checker is also the record's maker.
	_, err := payroll.Transition(payroll.StatusSubmitted, payroll.ActionApprove, payroll.RoleChecker, actor, actor)
	assert.ErrorIs(t, err, payrollerrors.ErrSelfApprovalForbidden)

	// A different checker is fine.
	next, err := payroll.Transition(payroll.StatusSubmitted, payroll.ActionApprove, payroll.RoleChecker, uuid.New().String(), actor)
	assert.NoError(t, err)
	assert.Equal(t, payroll.StatusApproved, next)
}

func TestCanCreate(t *testing.T) {
	assert.NoError(t, payroll.CanCreate(payroll.RoleMaker))
	assert.ErrorIs(t, payroll.CanCreate(payroll.RoleChecker), payrollerrors.ErrRoleViolation)
	assert.ErrorIs(t, payroll.CanCreate(payroll.RoleFinance), payrollerrors.ErrRoleViolation)
	assert.ErrorIs(t, payroll.CanCreate(""), payrollerrors.ErrRoleViolation)
}
