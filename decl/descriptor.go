package decl

// Kind identifies the category of a type descriptor.
type Kind int

const (
	KindPrimitive Kind = iota // Built-in value type (Bool, Int, String, ...)
	KindObject                // Reference to a named type
	KindOptional              // Optional wrapper (T?)
	KindArray                 // Ordered collection ([T])
	KindGeneric               // Generic instantiation with one argument (Name<T>)
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindObject:
		return "Object"
	case KindOptional:
		return "Optional"
	case KindArray:
		return "Array"
	case KindGeneric:
		return "Generic"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() Kind

	// String returns the canonical textual form, used verbatim in
	// generated signatures.
	String() string

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// PrimitiveKind identifies a built-in value type.
type PrimitiveKind int

const (
	PrimitiveBool PrimitiveKind = iota
	PrimitiveInt
	PrimitiveInt8
	PrimitiveInt16
	PrimitiveInt32
	PrimitiveInt64
	PrimitiveUInt
	PrimitiveUInt8
	PrimitiveUInt16
	PrimitiveUInt32
	PrimitiveUInt64
	PrimitiveFloat
	PrimitiveDouble
	PrimitiveString
)

var primitiveNames = [...]string{
	PrimitiveBool:   "Bool",
	PrimitiveInt:    "Int",
	PrimitiveInt8:   "Int8",
	PrimitiveInt16:  "Int16",
	PrimitiveInt32:  "Int32",
	PrimitiveInt64:  "Int64",
	PrimitiveUInt:   "UInt",
	PrimitiveUInt8:  "UInt8",
	PrimitiveUInt16: "UInt16",
	PrimitiveUInt32: "UInt32",
	PrimitiveUInt64: "UInt64",
	PrimitiveFloat:  "Float",
	PrimitiveDouble: "Double",
	PrimitiveString: "String",
}

// String returns the type name of the primitive.
func (k PrimitiveKind) String() string {
	if k < 0 || int(k) >= len(primitiveNames) {
		return "Unknown"
	}
	return primitiveNames[k]
}

// LookupPrimitive returns the primitive kind for a type name.
func LookupPrimitive(name string) (PrimitiveKind, bool) {
	for k, n := range primitiveNames {
		if n == name {
			return PrimitiveKind(k), true
		}
	}
	return 0, false
}

// PrimitiveType represents a built-in value type.
type PrimitiveType struct {
	Primitive PrimitiveKind
}

func (*PrimitiveType) Kind() Kind       { return KindPrimitive }
func (t *PrimitiveType) String() string { return t.Primitive.String() }
func (*PrimitiveType) sealed()          {}

// ObjectType represents a reference to a named type, e.g. a model or Void.
type ObjectType struct {
	Name string
}

func (*ObjectType) Kind() Kind       { return KindObject }
func (t *ObjectType) String() string { return t.Name }
func (*ObjectType) sealed()          {}

// OptionalType represents an optional value (T?).
type OptionalType struct {
	Element TypeDescriptor
}

func (*OptionalType) Kind() Kind       { return KindOptional }
func (t *OptionalType) String() string { return t.Element.String() + "?" }
func (*OptionalType) sealed()          {}

// ArrayType represents an ordered collection ([T]).
type ArrayType struct {
	Element TypeDescriptor
}

func (*ArrayType) Kind() Kind       { return KindArray }
func (t *ArrayType) String() string { return "[" + t.Element.String() + "]" }
func (*ArrayType) sealed()          {}

// GenericType represents a generic instantiation with a single type argument,
// e.g. ServiceCall<Item>.
type GenericType struct {
	Name     string
	Argument TypeDescriptor
}

func (*GenericType) Kind() Kind { return KindGeneric }
func (t *GenericType) String() string {
	return t.Name + "<" + t.Argument.String() + ">"
}
func (*GenericType) sealed() {}

// Convenience constructors.

// Primitive returns a PrimitiveType of the given kind.
func Primitive(k PrimitiveKind) *PrimitiveType { return &PrimitiveType{Primitive: k} }

// String returns the String primitive.
func String() *PrimitiveType { return Primitive(PrimitiveString) }

// Int returns the Int primitive.
func Int() *PrimitiveType { return Primitive(PrimitiveInt) }

// Bool returns the Bool primitive.
func Bool() *PrimitiveType { return Primitive(PrimitiveBool) }

// Object returns an ObjectType referencing name.
func Object(name string) *ObjectType { return &ObjectType{Name: name} }

// Void returns the Void object type.
func Void() *ObjectType { return Object("Void") }

// Optional wraps element in an OptionalType.
func Optional(element TypeDescriptor) *OptionalType { return &OptionalType{Element: element} }

// Array wraps element in an ArrayType.
func Array(element TypeDescriptor) *ArrayType { return &ArrayType{Element: element} }

// Generic returns a GenericType instantiating name with argument.
func Generic(name string, argument TypeDescriptor) *GenericType {
	return &GenericType{Name: name, Argument: argument}
}

// IsPrimitive reports whether t is a primitive type.
func IsPrimitive(t TypeDescriptor) bool {
	_, ok := t.(*PrimitiveType)
	return ok
}

// IsVoid reports whether t is the Void object type.
func IsVoid(t TypeDescriptor) bool {
	o, ok := t.(*ObjectType)
	return ok && o.Name == "Void"
}

// Equal reports whether two descriptors denote the same type.
func Equal(a, b TypeDescriptor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *PrimitiveType:
		y, ok := b.(*PrimitiveType)
		return ok && x.Primitive == y.Primitive
	case *ObjectType:
		y, ok := b.(*ObjectType)
		return ok && x.Name == y.Name
	case *OptionalType:
		y, ok := b.(*OptionalType)
		return ok && Equal(x.Element, y.Element)
	case *ArrayType:
		y, ok := b.(*ArrayType)
		return ok && Equal(x.Element, y.Element)
	case *GenericType:
		y, ok := b.(*GenericType)
		return ok && x.Name == y.Name && Equal(x.Argument, y.Argument)
	}
	return false
}
