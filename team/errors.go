package team

import "errors"

var (
	ErrEmailRequired         = errors.New("team: contributor email is required")
	ErrEmailInvalid          = errors.New("team: contributor email is invalid")
	ErrEmailExists           = errors.New("team: contributor email already registered")
	ErrContributorRequired   = errors.New("team: contributor id required")
	ErrContributorInactive   = errors.New("team: contributor is inactive")
	ErrLocaleRequired        = errors.New("team: locale id required")
	ErrRoleInvalid           = errors.New("team: role must be translator or manager")
	ErrMembershipExists      = errors.New("team: membership already exists")
	ErrMembershipNotFound    = errors.New("team: membership not found")
	ErrManagerRoleOnOverride = errors.New("team: custom translator sets only hold translators")
)
