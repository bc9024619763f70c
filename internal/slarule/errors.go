package slarule

import "errors"

var (
	ErrRuleNotFound       = errors.New("sla rule not found")
	ErrNoApplicableRule   = errors.New("no applicable sla rule")
	ErrInvalidInput       = errors.New("invalid sla rule input")
	ErrGlobalRuleReadOnly = errors.New("global sla rules can only be changed by a super admin")
	ErrCompanyNotAllowed  = errors.New("company is outside the caller tenant")
)
