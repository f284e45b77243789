package scheme

import (
	"strings"

	"github.com/broady/svcgen/decl"
)

// Annotation names understood by method derivation.
const (
	annotationURL                 = "url"
	annotationParser              = "parser"
	annotationContent             = "content"
	annotationQuery               = "query"
	annotationHeader              = "header"
	annotationJSON                = "json"
	annotationPlist               = "plist"
	annotationRequestInterceptor  = "requestInterceptor"
	annotationResponseInterceptor = "responseInterceptor"
	annotationAutoLogin           = "auto_login"
	annotationAddCookies          = "add_cookies"
	annotationReceiveCookies      = "receive_cookies"
)

// contentString is the @content value that selects raw string handling.
const contentString = "string"

// simpleValueParser is the generic parser used for primitive payloads.
const simpleValueParser = "SimpleValueJsonParser"

// Context holds what derivation needs to know beyond a single declaration:
// the names of the known models and the derivation policy. Warnings produced
// while deriving are appended to Warnings.
type Context struct {
	// StrictVerb turns a missing HTTP verb annotation into an error
	// instead of a warning.
	StrictVerb bool

	Warnings []*Diagnostic

	models map[string]bool
}

// NewContext returns a Context that resolves parsers against models.
func NewContext(models []decl.Entity) *Context {
	ctx := &Context{models: make(map[string]bool, len(models))}
	for _, m := range models {
		ctx.models[m.Name] = true
	}
	return ctx
}

// IsModel reports whether name is a known model.
func (ctx *Context) IsModel(name string) bool {
	return ctx.models[name]
}

func (ctx *Context) warn(code Code, src decl.Source, msg string) {
	ctx.Warnings = append(ctx.Warnings, &Diagnostic{
		Code:     code,
		Severity: SeverityWarning,
		Message:  msg,
		Source:   src,
	})
}

// DeriveMethod validates m and converts it into a MethodScheme.
// The returned error is always a *Diagnostic.
func DeriveMethod(ctx *Context, m decl.Method) (*MethodScheme, error) {
	wrapper, payload, err := returnType(m)
	if err != nil {
		return nil, err
	}

	s := &MethodScheme{
		Name:                    m.Name,
		Arguments:               m.Arguments,
		ReturnedWrapperTypeName: wrapper,
		ReturnedPayloadType:     payload,
		Source:                  m.Source,
	}

	if s.ParserName, s.ReturnsCollection, err = ctx.resolveParser(m, payload); err != nil {
		return nil, err
	}
	if s.HTTPVerb, err = ctx.httpVerb(m); err != nil {
		return nil, err
	}
	if s.Endpoint, err = endpoint(m); err != nil {
		return nil, err
	}

	s.QueryParameters = parameters(m.Arguments, annotationQuery)
	s.Headers = parameters(m.Arguments, annotationHeader)
	s.JSONParameters = parameters(m.Arguments, annotationJSON)
	s.PlistParameters = parameters(m.Arguments, annotationPlist)

	s.RequestInterceptors = m.Annotations.Values(annotationRequestInterceptor)
	s.ResponseInterceptors = m.Annotations.Values(annotationResponseInterceptor)

	s.AutoLogin = m.Annotations.Has(annotationAutoLogin) || wrapper == WrapperAuthorizedServiceCall

	return s, nil
}

func returnType(m decl.Method) (wrapper string, payload decl.TypeDescriptor, err error) {
	g, ok := m.ReturnType.(*decl.GenericType)
	if !ok || g.Argument == nil || (g.Name != WrapperServiceCall && g.Name != WrapperAuthorizedServiceCall) {
		return "", nil, newError(CodeInvalidReturnType, m.Source,
			"Method must return a ServiceCall<> or an AuthorizedServiceCall<>")
	}
	return g.Name, g.Argument, nil
}

// resolveParser picks exactly one payload strategy. An empty parser name
// means raw string handling.
func (ctx *Context) resolveParser(m decl.Method, payload decl.TypeDescriptor) (parser string, collection bool, err error) {
	if name, ok := m.Annotations.Value(annotationParser); ok {
		_, isArray := payload.(*decl.ArrayType)
		return name, isArray, nil
	}

	if name, ok := ctx.modelName(payload); ok {
		return name + "Parser", false, nil
	}

	if decl.IsPrimitive(payload) {
		if content, ok := m.Annotations.Value(annotationContent); ok && content == contentString {
			if !decl.Equal(payload, decl.String()) {
				return "", false, newError(CodeContentTypeMismatch, m.Source,
					"Content type and returned object type are not equal. "+
						"Use `@content json` or change the type of the returned object to String")
			}
			return "", false, nil
		}
		return simpleValueParser + "<" + payload.String() + ">", false, nil
	}

	if arr, ok := payload.(*decl.ArrayType); ok {
		name, ok := ctx.modelName(arr.Element)
		if !ok {
			return "", false, newError(CodeUnresolvableParser, m.Source,
				"Can only pick a parser for known models")
		}
		return name + "Parser", true, nil
	}

	return "", false, newError(CodeUnresolvableParser, m.Source,
		"Can't pick a parser for returned object type, model object is out of scope or not supported")
}

// modelName returns the object name of t when it names a known model or Void.
func (ctx *Context) modelName(t decl.TypeDescriptor) (string, bool) {
	obj, ok := t.(*decl.ObjectType)
	if !ok {
		return "", false
	}
	if !ctx.IsModel(obj.Name) && !decl.IsVoid(obj) {
		return "", false
	}
	return obj.Name, true
}

func (ctx *Context) httpVerb(m decl.Method) (HTTPVerb, error) {
	for _, a := range m.Annotations {
		if v, ok := LookupVerb(a.Name); ok {
			return v, nil
		}
	}

	const msg = "HTTP verb annotation for method not found (e.g. @get). Using @get by default"
	if ctx.StrictVerb {
		return 0, newError(CodeMissingHTTPVerb, m.Source,
			"HTTP verb annotation for method not found (e.g. @get)")
	}
	ctx.warn(CodeMissingHTTPVerb, m.Source, msg)
	return VerbGet, nil
}

// endpoint fills the method's URL template with interpolations of its
// @url arguments.
func endpoint(m decl.Method) (string, error) {
	url, _ := m.Annotations.Value(annotationURL)

	for _, arg := range m.Arguments {
		a, ok := arg.Annotations.Get(annotationURL)
		if !ok {
			continue
		}
		if _, optional := arg.Type.(*decl.OptionalType); optional {
			return "", newError(CodeOptionalURLParameter, arg.Source,
				"@url parameter cannot be optional")
		}
		p := parameter(arg, a)
		token := "{" + p.PlaceholderName + "}"
		if !strings.Contains(url, token) {
			return "", newError(CodeMissingURLPlaceholder, arg.Source,
				"Can't find placeholder in URL for method argument")
		}
		url = strings.ReplaceAll(url, token, `\(`+p.ArgumentName+`)`)
	}
	return url, nil
}

// parameters collects the arguments carrying the named annotation, in
// declaration order.
func parameters(args []decl.Argument, annotation string) []Parameter {
	var ps []Parameter
	for _, arg := range args {
		if a, ok := arg.Annotations.Get(annotation); ok {
			ps = append(ps, parameter(arg, a))
		}
	}
	return ps
}

func parameter(arg decl.Argument, a decl.Annotation) Parameter {
	placeholder := arg.Binding()
	if a.Value != nil {
		placeholder = *a.Value
	}
	return Parameter{
		PlaceholderName: placeholder,
		ArgumentName:    arg.Binding(),
		Type:            arg.Type,
		Source:          arg.Source,
	}
}
