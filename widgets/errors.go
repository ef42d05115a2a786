package widgets

import "errors"

var (
	ErrFeatureDisabled = errors.New("widgets: feature disabled")

	ErrDefinitionNameRequired   = errors.New("widgets: definition name required")
	ErrDefinitionSchemaRequired = errors.New("widgets: definition schema required")
	ErrDefinitionSchemaInvalid  = errors.New("widgets: definition schema invalid")
	ErrDefinitionExists         = errors.New("widgets: definition already exists")
	ErrDefinitionNotFound       = errors.New("widgets: definition not found")

	ErrInstanceDefinitionRequired   = errors.New("widgets: definition id required")
	ErrInstanceAreaRequired         = errors.New("widgets: area code required")
	ErrInstanceIDRequired           = errors.New("widgets: instance id required")
	ErrInstancePositionInvalid      = errors.New("widgets: position cannot be negative")
	ErrInstanceConfigurationInvalid = errors.New("widgets: configuration does not match the definition schema")
)
