package decl

import "strings"

// Annotation is a single "@name value" marker attached to a declaration.
type Annotation struct {
	Name string

	// Value is nil when the annotation carries no value (e.g. "@get").
	Value *string
}

// String renders the annotation in its textual form.
func (a Annotation) String() string {
	if a.Value == nil {
		return "@" + a.Name
	}
	return "@" + a.Name + " " + *a.Value
}

// ParseAnnotation parses "@name value" into an Annotation.
// The leading "@" is optional and an empty value is treated as absent.
func ParseAnnotation(text string) Annotation {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "@")

	name, value, found := strings.Cut(text, " ")
	if !found {
		name, value, found = strings.Cut(text, "\t")
	}
	a := Annotation{Name: strings.TrimSpace(name)}
	if found {
		if v := strings.TrimSpace(value); v != "" {
			a.Value = &v
		}
	}
	return a
}

// Annotations is an ordered list of annotations. Names may repeat.
type Annotations []Annotation

// Has reports whether an annotation with the given name is present.
func (as Annotations) Has(name string) bool {
	_, ok := as.Get(name)
	return ok
}

// Get returns the first annotation with the given name.
func (as Annotations) Get(name string) (Annotation, bool) {
	for _, a := range as {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}

// Value returns the value of the first annotation with the given name.
// ok is false when the annotation is missing or carries no value.
func (as Annotations) Value(name string) (value string, ok bool) {
	a, found := as.Get(name)
	if !found || a.Value == nil {
		return "", false
	}
	return *a.Value, true
}

// Values returns the values of every annotation with the given name,
// skipping occurrences that carry no value.
func (as Annotations) Values(name string) []string {
	var out []string
	for _, a := range as {
		if a.Name == name && a.Value != nil {
			out = append(out, *a.Value)
		}
	}
	return out
}
