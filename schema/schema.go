// Package schema implements the entity catalog the binder consults: which
// entities exist, which fields each one has, and how each field maps to its
// wire name and value kind. A Registry satisfies the root package's Schema
// interface; embedding applications may supply their own implementation
// instead.
package schema

import (
	"fmt"

	qbsql "github.com/Exotik850/quick-oxibooks-sql"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// Entity is one queryable entity: a name plus an ordered field set.
type Entity struct {
	name   string
	fields map[string]*field.Descriptor
	order  []string
}

// NewEntity assembles an entity from field builders. It fails on an empty
// entity name, a builder error, or two fields sharing a name.
func NewEntity(name string, fields ...field.Builder) (*Entity, error) {
	if name == "" {
		return nil, fmt.Errorf("qbsql: entity name cannot be empty")
	}
	e := &Entity{name: name, fields: make(map[string]*field.Descriptor, len(fields))}
	for _, b := range fields {
		fd := b.Descriptor()
		if fd.Err != nil {
			return nil, fmt.Errorf("qbsql: entity %s: %w", name, fd.Err)
		}
		if _, ok := e.fields[fd.Name]; ok {
			return nil, fmt.Errorf("qbsql: entity %s declares field %q twice", name, fd.Name)
		}
		e.fields[fd.Name] = fd
		e.order = append(e.order, fd.Name)
	}
	return e, nil
}

// MustEntity is NewEntity that panics on error. Intended for static catalogs
// assembled at init time.
func MustEntity(name string, fields ...field.Builder) *Entity {
	e, err := NewEntity(name, fields...)
	if err != nil {
		panic(err)
	}
	return e
}

// Name returns the entity name, which is also its wire identifier.
func (e *Entity) Name() string { return e.name }

// Fields returns the entity's descriptors in declaration order.
func (e *Entity) Fields() []*field.Descriptor {
	out := make([]*field.Descriptor, len(e.order))
	for i, name := range e.order {
		out[i] = e.fields[name]
	}
	return out
}

// Field looks up a descriptor by its query-language name.
func (e *Entity) Field(name string) (*field.Descriptor, bool) {
	fd, ok := e.fields[name]
	return fd, ok
}

// Registry is an entity catalog. The zero value is not usable; construct
// with NewRegistry.
type Registry struct {
	entities map[string]*Entity
	order    []string
}

var _ qbsql.Schema = (*Registry)(nil)

// NewRegistry builds a catalog from the given entities.
func NewRegistry(entities ...*Entity) (*Registry, error) {
	r := &Registry{entities: make(map[string]*Entity, len(entities))}
	for _, e := range entities {
		if err := r.Add(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry that panics on error.
func MustRegistry(entities ...*Entity) *Registry {
	r, err := NewRegistry(entities...)
	if err != nil {
		panic(err)
	}
	return r
}

// Add registers an entity. Entity names are unique and matched exactly.
func (r *Registry) Add(e *Entity) error {
	if _, ok := r.entities[e.name]; ok {
		return fmt.Errorf("qbsql: entity %s registered twice", e.name)
	}
	r.entities[e.name] = e
	r.order = append(r.order, e.name)
	return nil
}

// HasEntity reports whether the catalog knows the entity.
func (r *Registry) HasEntity(entity string) bool {
	_, ok := r.entities[entity]
	return ok
}

// ResolveField maps a query-language field name to its wire name and value
// kind. It returns qbsql.UnknownEntityError or qbsql.UnknownFieldError when
// the lookup fails.
func (r *Registry) ResolveField(entity, name string) (field.Resolved, error) {
	e, ok := r.entities[entity]
	if !ok {
		return field.Resolved{}, qbsql.NewUnknownEntityError(entity)
	}
	fd, ok := e.fields[name]
	if !ok {
		return field.Resolved{}, qbsql.NewUnknownFieldError(entity, name)
	}
	return fd.Resolve(), nil
}

// Entity returns a registered entity by name.
func (r *Registry) Entity(name string) (*Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

// Entities returns the catalog's entities in registration order.
func (r *Registry) Entities() []*Entity {
	out := make([]*Entity, len(r.order))
	for i, name := range r.order {
		out[i] = r.entities[name]
	}
	return out
}
