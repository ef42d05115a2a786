package widgets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-l10n/internal/validation"
	l10nwidgets "github.com/goliatone/go-l10n/widgets"
	"github.com/google/uuid"
)

// RegisterDefinitionInput describes a widget definition to upsert.
type RegisterDefinitionInput struct {
	Name        string
	Description *string
	Schema      map[string]any
	Defaults    map[string]any
}

// CreateInstanceRequest places a definition on a dashboard area.
type CreateInstanceRequest struct {
	DefinitionID  uuid.UUID
	AreaCode      string
	Configuration map[string]any
	Position      int
}

// UpdateInstanceRequest mutates an existing instance. Nil fields keep the
// current value.
type UpdateInstanceRequest struct {
	ID            uuid.UUID
	AreaCode      *string
	Configuration map[string]any
	Position      *int
}

// Service manages widget definitions and their dashboard placements.
type Service interface {
	RegisterDefinition(ctx context.Context, input RegisterDefinitionInput) (*Definition, error)
	SyncRegistry(ctx context.Context, registry *Registry) error
	GetDefinition(ctx context.Context, id uuid.UUID) (*Definition, error)
	GetDefinitionByName(ctx context.Context, name string) (*Definition, error)
	ListDefinitions(ctx context.Context) ([]*Definition, error)

	CreateInstance(ctx context.Context, req CreateInstanceRequest) (*Instance, error)
	UpdateInstance(ctx context.Context, req UpdateInstanceRequest) (*Instance, error)
	DeleteInstance(ctx context.Context, id uuid.UUID) error
	GetInstance(ctx context.Context, id uuid.UUID) (*Instance, error)
	ListInstancesByArea(ctx context.Context, areaCode string) ([]*Instance, error)
}

// DefinitionRepository persists widget definitions.
type DefinitionRepository interface {
	Create(ctx context.Context, definition *Definition) (*Definition, error)
	Update(ctx context.Context, definition *Definition) (*Definition, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Definition, error)
	GetByName(ctx context.Context, name string) (*Definition, error)
	List(ctx context.Context) ([]*Definition, error)
}

// InstanceRepository persists widget instances.
type InstanceRepository interface {
	Create(ctx context.Context, instance *Instance) (*Instance, error)
	Update(ctx context.Context, instance *Instance) (*Instance, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Instance, error)
	ListByArea(ctx context.Context, areaCode string) ([]*Instance, error)
}

// NotFoundError indicates a missing widget resource.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// ServiceOption configures the widget service.
type ServiceOption func(*service)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.ids = generator
		}
	}
}

type service struct {
	definitions DefinitionRepository
	instances   InstanceRepository
	clock       func() time.Time
	ids         IDGenerator
}

// NewService builds the widget service.
func NewService(definitions DefinitionRepository, instances InstanceRepository, opts ...ServiceOption) Service {
	svc := &service{
		definitions: definitions,
		instances:   instances,
		clock:       time.Now,
		ids:         uuid.New,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *service) RegisterDefinition(ctx context.Context, input RegisterDefinitionInput) (*Definition, error) {
	name := canonicalKey(input.Name)
	if name == "" {
		return nil, l10nwidgets.ErrDefinitionNameRequired
	}
	if len(input.Schema) == 0 {
		return nil, l10nwidgets.ErrDefinitionSchemaRequired
	}
	if err := validation.ValidateSchema(input.Schema); err != nil {
		return nil, fmt.Errorf("%w: %v", l10nwidgets.ErrDefinitionSchemaInvalid, err)
	}
	if len(input.Defaults) > 0 {
		if err := validation.ValidatePayload(input.Schema, input.Defaults); err != nil {
			return nil, fmt.Errorf("%w: defaults: %v", l10nwidgets.ErrDefinitionSchemaInvalid, err)
		}
	}

	now := s.clock()
	existing, err := s.definitions.GetByName(ctx, name)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	if existing != nil {
		existing.Description = input.Description
		existing.Schema = input.Schema
		existing.Defaults = input.Defaults
		existing.UpdatedAt = now
		return s.definitions.Update(ctx, existing)
	}

	definition := &Definition{
		ID:          s.ids(),
		Name:        name,
		Description: input.Description,
		Schema:      input.Schema,
		Defaults:    input.Defaults,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.definitions.Create(ctx, definition)
}

func (s *service) SyncRegistry(ctx context.Context, registry *Registry) error {
	if registry == nil {
		return nil
	}
	inputs := registry.List()
	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].Name < inputs[j].Name
	})
	for _, input := range inputs {
		if _, err := s.RegisterDefinition(ctx, input); err != nil {
			return fmt.Errorf("sync widget %q: %w", input.Name, err)
		}
	}
	return nil
}

func (s *service) GetDefinition(ctx context.Context, id uuid.UUID) (*Definition, error) {
	if id == uuid.Nil {
		return nil, l10nwidgets.ErrInstanceDefinitionRequired
	}
	return s.definitions.GetByID(ctx, id)
}

func (s *service) GetDefinitionByName(ctx context.Context, name string) (*Definition, error) {
	name = canonicalKey(name)
	if name == "" {
		return nil, l10nwidgets.ErrDefinitionNameRequired
	}
	return s.definitions.GetByName(ctx, name)
}

func (s *service) ListDefinitions(ctx context.Context) ([]*Definition, error) {
	definitions, err := s.definitions.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(definitions, func(i, j int) bool {
		return definitions[i].Name < definitions[j].Name
	})
	return definitions, nil
}

func (s *service) CreateInstance(ctx context.Context, req CreateInstanceRequest) (*Instance, error) {
	if req.DefinitionID == uuid.Nil {
		return nil, l10nwidgets.ErrInstanceDefinitionRequired
	}
	areaCode := strings.TrimSpace(req.AreaCode)
	if areaCode == "" {
		return nil, l10nwidgets.ErrInstanceAreaRequired
	}
	if req.Position < 0 {
		return nil, l10nwidgets.ErrInstancePositionInvalid
	}

	definition, err := s.definitions.GetByID(ctx, req.DefinitionID)
	if err != nil {
		return nil, err
	}

	configuration := s.mergeConfiguration(definition, req.Configuration)
	if err := validation.ValidatePayload(definition.Schema, configuration); err != nil {
		return nil, fmt.Errorf("%w: %v", l10nwidgets.ErrInstanceConfigurationInvalid, err)
	}

	now := s.clock()
	instance := &Instance{
		ID:            s.ids(),
		DefinitionID:  definition.ID,
		AreaCode:      areaCode,
		Configuration: configuration,
		Position:      req.Position,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.instances.Create(ctx, instance)
}

func (s *service) UpdateInstance(ctx context.Context, req UpdateInstanceRequest) (*Instance, error) {
	if req.ID == uuid.Nil {
		return nil, l10nwidgets.ErrInstanceIDRequired
	}
	instance, err := s.instances.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.AreaCode != nil {
		areaCode := strings.TrimSpace(*req.AreaCode)
		if areaCode == "" {
			return nil, l10nwidgets.ErrInstanceAreaRequired
		}
		instance.AreaCode = areaCode
	}
	if req.Position != nil {
		if *req.Position < 0 {
			return nil, l10nwidgets.ErrInstancePositionInvalid
		}
		instance.Position = *req.Position
	}
	if req.Configuration != nil {
		definition, err := s.definitions.GetByID(ctx, instance.DefinitionID)
		if err != nil {
			return nil, err
		}
		if err := validation.ValidatePayload(definition.Schema, req.Configuration); err != nil {
			return nil, fmt.Errorf("%w: %v", l10nwidgets.ErrInstanceConfigurationInvalid, err)
		}
		instance.Configuration = req.Configuration
	}

	instance.UpdatedAt = s.clock()
	return s.instances.Update(ctx, instance)
}

func (s *service) DeleteInstance(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return l10nwidgets.ErrInstanceIDRequired
	}
	return s.instances.Delete(ctx, id)
}

func (s *service) GetInstance(ctx context.Context, id uuid.UUID) (*Instance, error) {
	if id == uuid.Nil {
		return nil, l10nwidgets.ErrInstanceIDRequired
	}
	return s.instances.GetByID(ctx, id)
}

func (s *service) ListInstancesByArea(ctx context.Context, areaCode string) ([]*Instance, error) {
	areaCode = strings.TrimSpace(areaCode)
	if areaCode == "" {
		return nil, l10nwidgets.ErrInstanceAreaRequired
	}
	instances, err := s.instances.ListByArea(ctx, areaCode)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].Position < instances[j].Position
	})
	return instances, nil
}

// mergeConfiguration layers the request configuration over the definition
// defaults.
func (s *service) mergeConfiguration(definition *Definition, configuration map[string]any) map[string]any {
	merged := make(map[string]any, len(definition.Defaults)+len(configuration))
	for key, value := range definition.Defaults {
		merged[key] = value
	}
	for key, value := range configuration {
		merged[key] = value
	}
	return merged
}
