// Package scheme derives validated service and method schemes from annotated
// declarations. A scheme is the only input of the emission engine: every
// annotation is interpreted here, once, and emission never looks back at the
// declarations.
package scheme

import (
	"strings"

	"github.com/broady/svcgen/decl"
)

// Wrapper type names a service method may return.
const (
	WrapperServiceCall           = "ServiceCall"
	WrapperAuthorizedServiceCall = "AuthorizedServiceCall"
)

// HTTPVerb is the HTTP method of a service method.
type HTTPVerb int

const (
	VerbDelete HTTPVerb = iota
	VerbGet
	VerbHead
	VerbOptions
	VerbPatch
	VerbPost
	VerbPut
)

var verbNames = [...]string{
	VerbDelete:  "delete",
	VerbGet:     "get",
	VerbHead:    "head",
	VerbOptions: "options",
	VerbPatch:   "patch",
	VerbPost:    "post",
	VerbPut:     "put",
}

// String returns the lowercase verb name, which is also the case name of
// HTTPRequest.HTTPMethod in generated code.
func (v HTTPVerb) String() string {
	if v < 0 || int(v) >= len(verbNames) {
		return "unknown"
	}
	return verbNames[v]
}

// LookupVerb matches an annotation name against the verbs, ignoring case.
func LookupVerb(name string) (HTTPVerb, bool) {
	for v, n := range verbNames {
		if strings.EqualFold(n, name) {
			return HTTPVerb(v), true
		}
	}
	return 0, false
}

// Parameter binds a method argument to a named request slot.
type Parameter struct {
	// PlaceholderName is the key used in the request (URL placeholder,
	// header name, query or body key).
	PlaceholderName string

	// ArgumentName is the argument's binding name inside the method body.
	ArgumentName string

	Type   decl.TypeDescriptor
	Source decl.Source
}

// IsOptional reports whether the bound argument is optional-typed.
func (p Parameter) IsOptional() bool {
	_, ok := p.Type.(*decl.OptionalType)
	return ok
}

// PayloadHandling is the strategy used to decode a successful response.
type PayloadHandling int

const (
	// PayloadParser decodes the JSON body with the named parser.
	PayloadParser PayloadHandling = iota
	// PayloadVoid returns the unit payload without decoding.
	PayloadVoid
	// PayloadRawString returns the body decoded as UTF-8 text.
	PayloadRawString
)

// MethodScheme is the derived, immutable description of one service method.
type MethodScheme struct {
	// Name and Arguments reproduce the declared signature.
	Name      string
	Arguments []decl.Argument

	HTTPVerb HTTPVerb

	// Endpoint is the URL template with placeholders already replaced by
	// interpolations of the bound arguments.
	Endpoint string

	QueryParameters []Parameter
	Headers         []Parameter
	JSONParameters  []Parameter
	PlistParameters []Parameter

	RequestInterceptors  []string
	ResponseInterceptors []string

	AutoLogin bool

	// ParserName is empty when the payload is a raw string.
	ParserName        string
	ReturnsCollection bool

	// ReturnedWrapperTypeName is ServiceCall or AuthorizedServiceCall.
	ReturnedWrapperTypeName string
	ReturnedPayloadType     decl.TypeDescriptor

	Source decl.Source
}

// ReturnedPayloadTypeName is the canonical name of the payload type.
func (m *MethodScheme) ReturnedPayloadTypeName() string {
	return m.ReturnedPayloadType.String()
}

// PayloadHandling reports how the generated method decodes its payload.
func (m *MethodScheme) PayloadHandling() PayloadHandling {
	switch {
	case decl.IsVoid(m.ReturnedPayloadType):
		return PayloadVoid
	case m.ParserName == "":
		return PayloadRawString
	default:
		return PayloadParser
	}
}

func (m *MethodScheme) ContainsHeaders() bool {
	return len(m.Headers) > 0
}

func (m *MethodScheme) ContainsRequestParameters() bool {
	return len(m.QueryParameters) > 0 || len(m.JSONParameters) > 0 || len(m.PlistParameters) > 0
}

func (m *MethodScheme) ContainsRequestInterceptors() bool {
	return len(m.RequestInterceptors) > 0
}

func (m *MethodScheme) ContainsResponseInterceptors() bool {
	return len(m.ResponseInterceptors) > 0
}

// ServiceScheme is the derived, immutable description of one service.
type ServiceScheme struct {
	// Name is the generated class name (service name plus suffix).
	Name string

	// Parent is the name of the declared service protocol.
	Parent string

	// BaseURL is nil when the service declares no @url.
	BaseURL *string

	AddCookies      bool
	ReceiveCookies  bool
	NeedsAuthorizer bool

	Methods []*MethodScheme
}
