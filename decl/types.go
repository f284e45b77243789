// Package decl defines the declaration model consumed by the service generator.
// Declarations describe annotated protocols ("services") and payload types
// ("models") together with their methods, arguments and type descriptors.
// The generator only reads these values; it never produces or mutates them.
package decl

import "fmt"

// Source represents the location of a declaration.
type Source struct {
	// File is the path of the file the declaration came from.
	File string

	// Line is the 1-based line number, or 0 if unknown.
	Line int

	// Text is the raw declaration line, if known.
	Text string
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Text == ""
}

// String renders the location as "file:line".
func (s Source) String() string {
	switch {
	case s.File == "" && s.Line == 0:
		return "<unknown>"
	case s.Line == 0:
		return s.File
	default:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
}

// EntityKind identifies the declaration keyword of an entity.
type EntityKind string

const (
	KindClass    EntityKind = "class"
	KindProtocol EntityKind = "protocol"
	KindStruct   EntityKind = "struct"
)

// Argument is a single method argument.
type Argument struct {
	// Name is the external argument label.
	Name string

	// BodyName is the name the argument is bound to inside the method body.
	// Equal to Name when the declaration has no separate label.
	BodyName string

	Type        TypeDescriptor
	Annotations Annotations
	Source      Source
}

// Binding returns the body name, falling back to Name when it is unset.
func (a Argument) Binding() string {
	if a.BodyName != "" {
		return a.BodyName
	}
	return a.Name
}

// Method is a method declared on an entity.
type Method struct {
	Name      string
	Arguments []Argument

	// ReturnType is nil for methods that declare no return type.
	ReturnType TypeDescriptor

	Annotations Annotations
	Source      Source
}

// Entity is a class, struct or protocol declaration.
type Entity struct {
	Name        string
	Kind        EntityKind
	Annotations Annotations
	Methods     []Method
	Source      Source
}

// IsModel reports whether the entity is annotated as a model.
func (e Entity) IsModel() bool {
	return e.Annotations.Has("model")
}

// IsService reports whether the entity is annotated as a service.
func (e Entity) IsService() bool {
	return e.Annotations.Has("service")
}

// Set is an ordered collection of entity declarations.
type Set struct {
	Entities []Entity
}

// Models returns the entities annotated with @model, in declaration order.
func (s *Set) Models() []Entity {
	var out []Entity
	for _, e := range s.Entities {
		if e.IsModel() {
			out = append(out, e)
		}
	}
	return out
}

// Services returns the entities annotated with @service, in declaration order.
func (s *Set) Services() []Entity {
	var out []Entity
	for _, e := range s.Entities {
		if e.IsService() {
			out = append(out, e)
		}
	}
	return out
}

// Find looks up an entity by name. Returns nil if not found.
func (s *Set) Find(name string) *Entity {
	for i := range s.Entities {
		if s.Entities[i].Name == name {
			return &s.Entities[i]
		}
	}
	return nil
}

// Merge returns a new set holding the entities of s followed by those of others.
func (s *Set) Merge(others ...*Set) *Set {
	out := &Set{Entities: append([]Entity(nil), s.Entities...)}
	for _, o := range others {
		if o == nil {
			continue
		}
		out.Entities = append(out.Entities, o.Entities...)
	}
	return out
}
