package catalog

import "errors"

var (
	ErrProjectNameRequired = errors.New("catalog: project name is required")
	ErrSlugRequired        = errors.New("catalog: slug is required")
	ErrSlugInvalid         = errors.New("catalog: slug contains invalid characters")
	ErrSlugExists          = errors.New("catalog: slug already exists")
	ErrProjectIDRequired   = errors.New("catalog: project id required")
	ErrProjectDisabled     = errors.New("catalog: project is disabled")
	ErrPriorityInvalid     = errors.New("catalog: priority out of range")
	ErrDeadlineInvalid     = errors.New("catalog: deadline is invalid")

	ErrLocaleCodeRequired = errors.New("catalog: locale code is required")
	ErrLocaleNameRequired = errors.New("catalog: locale name is required")
	ErrLocaleCodeExists   = errors.New("catalog: locale code already exists")
	ErrUnknownLocale      = errors.New("catalog: unknown locale")
	ErrCLDRPluralsInvalid = errors.New("catalog: cldr plural ids are invalid")

	ErrDuplicateProjectLocale = errors.New("catalog: locale already enabled for project")
	ErrProjectLocaleRequired  = errors.New("catalog: project locale id required")
)
