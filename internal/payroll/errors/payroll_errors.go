package payrollerrors

import (
	"net/http"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year must be a four digit year",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found in this company",
		http.StatusNotFound,
	)
	ErrEmployeeNotActive = apperror.New(
		apperror.CodeInvalidInput,
		"employee is not active",
		http.StatusBadRequest,
	)
	ErrMissingCompensation = apperror.New(
		apperror.CodeInvalidInput,
		"employee has no positive base compensation configured",
		http.StatusBadRequest,
	)
	ErrPayrollExists = apperror.New(
		apperror.CodeConflict,
		"payroll record already exists for this employee and period",
		http.StatusConflict,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll record not found",
		http.StatusNotFound,
	)
	ErrStateTransition = apperror.New(
		apperror.CodeInvalidState,
		"payroll record status does not allow this action",
		http.StatusBadRequest,
	)
	ErrRoleViolation = apperror.New(
		apperror.CodeForbidden,
		"actor role is not allowed to perform this action",
		http.StatusForbidden,
	)
	ErrSelfApprovalForbidden = apperror.New(
		apperror.CodeForbidden,
		"a checker cannot approve a payroll record they created",
		http.StatusForbidden,
	)
	ErrRecordImmutable = apperror.New(
		apperror.CodeInvalidState,
		"payroll record can only be edited while status is DRAFT",
		http.StatusBadRequest,
	)
	ErrDeleteOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"payroll record can only be deleted while status is DRAFT",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	ErrNoActiveEmployees = apperror.New(
		apperror.CodeInvalidInput,
		"company has no active employees for a payroll run",
		http.StatusBadRequest,
	)
)
