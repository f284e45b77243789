package decl

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A manifest is the YAML (or JSON) serialization of a declaration set:
//
//	file: Sources/ItemsService.swift
//	entities:
//	  - name: ItemsService
//	    kind: protocol
//	    annotations: ["@service", "@url https://api.example.com"]
//	    methods:
//	      - name: item
//	        returns: ServiceCall<Item>
//	        annotations: ["@get", "@url /items/{id}"]
//	        arguments:
//	          - name: id
//	            type: String
//	            annotations: ["@url"]
//
// Every entity, method and argument remembers the manifest line it was read
// from unless it sets an explicit line.
type manifest struct {
	File     string      `yaml:"file"`
	Entities []entityDoc `yaml:"entities" validate:"dive"`
}

type entityDoc struct {
	Name        string      `yaml:"name" validate:"required"`
	Kind        string      `yaml:"kind" validate:"omitempty,oneof=class protocol struct"`
	File        string      `yaml:"file"`
	Line        int         `yaml:"line" validate:"gte=0"`
	Annotations []string    `yaml:"annotations" validate:"dive,required"`
	Methods     []methodDoc `yaml:"methods" validate:"dive"`

	nodeLine int
}

type methodDoc struct {
	Name        string        `yaml:"name" validate:"required"`
	Returns     string        `yaml:"returns"`
	Line        int           `yaml:"line" validate:"gte=0"`
	Declaration string        `yaml:"declaration"`
	Annotations []string      `yaml:"annotations" validate:"dive,required"`
	Arguments   []argumentDoc `yaml:"arguments" validate:"dive"`

	nodeLine int
}

type argumentDoc struct {
	Name        string   `yaml:"name" validate:"required"`
	Body        string   `yaml:"body"`
	Type        string   `yaml:"type" validate:"required"`
	Line        int      `yaml:"line" validate:"gte=0"`
	Annotations []string `yaml:"annotations" validate:"dive,required"`

	nodeLine int
}

func (d *entityDoc) UnmarshalYAML(value *yaml.Node) error {
	type plain entityDoc
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.nodeLine = value.Line
	return nil
}

func (d *methodDoc) UnmarshalYAML(value *yaml.Node) error {
	type plain methodDoc
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.nodeLine = value.Line
	return nil
}

func (d *argumentDoc) UnmarshalYAML(value *yaml.Node) error {
	type plain argumentDoc
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.nodeLine = value.Line
	return nil
}

var validate = validator.New()

// Load reads a single manifest file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read manifest %s", path)
	}
	return Decode(bytes.NewReader(data), path)
}

// LoadDir reads every *.yaml, *.yml and *.json manifest in dir, in file name
// order, and merges them into one set. Subdirectories are not scanned.
func LoadDir(dir string) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list manifests in %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	set := &Set{}
	for _, name := range names {
		s, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		set = set.Merge(s)
	}
	return set, nil
}

// Decode reads a manifest from r. name is used as the default source file
// of every declaration and in error messages.
func Decode(r io.Reader, name string) (*Set, error) {
	var m manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &Set{}, nil
		}
		return nil, errors.Wrapf(err, "decode manifest %s", name)
	}

	if err := validate.Struct(&m); err != nil {
		return nil, errors.Wrapf(formatValidation(err), "invalid manifest %s", name)
	}

	file := m.File
	if file == "" {
		file = name
	}

	set := &Set{Entities: make([]Entity, 0, len(m.Entities))}
	for _, ed := range m.Entities {
		e, err := ed.build(file)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: entity %s", name, ed.Name)
		}
		set.Entities = append(set.Entities, e)
	}
	return set, nil
}

func (d *entityDoc) build(file string) (Entity, error) {
	if d.File != "" {
		file = d.File
	}
	e := Entity{
		Name:        d.Name,
		Kind:        EntityKind(d.Kind),
		Annotations: parseAnnotations(d.Annotations),
		Source:      Source{File: file, Line: pickLine(d.Line, d.nodeLine)},
	}
	if e.Kind == "" {
		e.Kind = KindProtocol
	}
	for _, md := range d.Methods {
		m, err := md.build(file)
		if err != nil {
			return Entity{}, errors.Wrapf(err, "method %s", md.Name)
		}
		e.Methods = append(e.Methods, m)
	}
	return e, nil
}

func (d *methodDoc) build(file string) (Method, error) {
	m := Method{
		Name:        d.Name,
		Annotations: parseAnnotations(d.Annotations),
		Source: Source{
			File: file,
			Line: pickLine(d.Line, d.nodeLine),
			Text: d.Declaration,
		},
	}
	if d.Returns != "" {
		t, err := ParseType(d.Returns)
		if err != nil {
			return Method{}, err
		}
		m.ReturnType = t
	}
	for _, ad := range d.Arguments {
		t, err := ParseType(ad.Type)
		if err != nil {
			return Method{}, errors.Wrapf(err, "argument %s", ad.Name)
		}
		body := ad.Body
		if body == "" {
			body = ad.Name
		}
		m.Arguments = append(m.Arguments, Argument{
			Name:        ad.Name,
			BodyName:    body,
			Type:        t,
			Annotations: parseAnnotations(ad.Annotations),
			Source:      Source{File: file, Line: pickLine(ad.Line, ad.nodeLine)},
		})
	}
	return m, nil
}

func parseAnnotations(raw []string) Annotations {
	if len(raw) == 0 {
		return nil
	}
	out := make(Annotations, 0, len(raw))
	for _, r := range raw {
		out = append(out, ParseAnnotation(r))
	}
	return out
}

func pickLine(explicit, node int) int {
	if explicit > 0 {
		return explicit
	}
	return node
}

// formatValidation turns validator errors into a single readable error.
func formatValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, "field "+fe.Namespace()+" failed on "+fe.Tag())
	}
	return errors.New(strings.Join(msgs, "; "))
}
