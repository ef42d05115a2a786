package widgets

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryDefinitionRepository keeps widget definitions in memory.
type MemoryDefinitionRepository struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*Definition
	nameIndex map[string]uuid.UUID
}

func NewMemoryDefinitionRepository() *MemoryDefinitionRepository {
	return &MemoryDefinitionRepository{
		records:   make(map[uuid.UUID]*Definition),
		nameIndex: make(map[string]uuid.UUID),
	}
}

func (r *MemoryDefinitionRepository) Create(ctx context.Context, record *Definition) (*Definition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneDefinition(record)
	r.records[clone.ID] = clone
	r.nameIndex[clone.Name] = clone.ID
	return cloneDefinition(clone), nil
}

func (r *MemoryDefinitionRepository) Update(ctx context.Context, record *Definition) (*Definition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_definition", Key: record.ID.String()}
	}
	delete(r.nameIndex, existing.Name)

	clone := cloneDefinition(record)
	r.records[clone.ID] = clone
	r.nameIndex[clone.Name] = clone.ID
	return cloneDefinition(clone), nil
}

func (r *MemoryDefinitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_definition", Key: id.String()}
	}
	return cloneDefinition(record), nil
}

func (r *MemoryDefinitionRepository) GetByName(ctx context.Context, name string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.nameIndex[name]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_definition", Key: name}
	}
	return cloneDefinition(r.records[id]), nil
}

func (r *MemoryDefinitionRepository) List(ctx context.Context) ([]*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Definition, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, cloneDefinition(record))
	}
	return out, nil
}

// MemoryInstanceRepository keeps widget instances in memory.
type MemoryInstanceRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Instance
}

func NewMemoryInstanceRepository() *MemoryInstanceRepository {
	return &MemoryInstanceRepository{
		records: make(map[uuid.UUID]*Instance),
	}
}

func (r *MemoryInstanceRepository) Create(ctx context.Context, record *Instance) (*Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneInstance(record)
	r.records[clone.ID] = clone
	return cloneInstance(clone), nil
}

func (r *MemoryInstanceRepository) Update(ctx context.Context, record *Instance) (*Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "widget_instance", Key: record.ID.String()}
	}
	clone := cloneInstance(record)
	r.records[clone.ID] = clone
	return cloneInstance(clone), nil
}

func (r *MemoryInstanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return &NotFoundError{Resource: "widget_instance", Key: id.String()}
	}
	delete(r.records, id)
	return nil
}

func (r *MemoryInstanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*Instance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "widget_instance", Key: id.String()}
	}
	return cloneInstance(record), nil
}

func (r *MemoryInstanceRepository) ListByArea(ctx context.Context, areaCode string) ([]*Instance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Instance{}
	for _, record := range r.records {
		if record.AreaCode == areaCode {
			out = append(out, cloneInstance(record))
		}
	}
	return out, nil
}

func cloneDefinition(record *Definition) *Definition {
	if record == nil {
		return nil
	}
	clone := *record
	clone.Schema = cloneMap(record.Schema)
	clone.Defaults = cloneMap(record.Defaults)
	clone.Instances = nil
	if record.Description != nil {
		description := *record.Description
		clone.Description = &description
	}
	return &clone
}

func cloneInstance(record *Instance) *Instance {
	if record == nil {
		return nil
	}
	clone := *record
	clone.Configuration = cloneMap(record.Configuration)
	clone.Definition = nil
	return &clone
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
