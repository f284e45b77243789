package swift

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/svcgen/decl"
	"github.com/broady/svcgen/scheme"
)

func ptr(s string) *string { return &s }

func itemScheme() *scheme.MethodScheme {
	return &scheme.MethodScheme{
		Name: "item",
		Arguments: []decl.Argument{
			{Name: "id", BodyName: "id", Type: decl.String()},
		},
		HTTPVerb:                scheme.VerbGet,
		Endpoint:                `/items/\(id)`,
		ParserName:              "ItemParser",
		ReturnedWrapperTypeName: scheme.WrapperServiceCall,
		ReturnedPayloadType:     decl.Object("Item"),
	}
}

func itemsService() *scheme.ServiceScheme {
	return &scheme.ServiceScheme{
		Name:    "ItemsServiceGen",
		Parent:  "ItemsService",
		BaseURL: ptr("https://api.example.com"),
		Methods: []*scheme.MethodScheme{itemScheme()},
	}
}

func checkContains(t *testing.T, content string, want, notWant []string) {
	t.Helper()
	for _, w := range want {
		assert.Contains(t, content, w)
	}
	for _, nw := range notWant {
		assert.NotContains(t, content, nw)
	}
}

func TestEmitter_Service(t *testing.T) {
	e := &Emitter{Project: "Shop"}
	a := e.Service(itemsService(), "Generated/Services")

	assert.Equal(t, "Generated/Services/ItemsServiceGen.swift", a.Path)

	checkContains(t, a.Text, []string{
		"//  ItemsServiceGen.swift\n//  Shop\n",
		"import Foundation\nimport CoreParser\nimport HTTPTransport\n",
		"class ItemsServiceGen: ItemsService {",
		"    let baseURL:    String\n",
		"    let dependency: ServiceDependency\n",
		"    var logFilter:  ServiceLogFilter\n",
		"            LogRequestInterceptor(logLevel: self.logFilter.requestLogLevel),\n",
		"LogResponseInterceptor(logLevel: self.logFilter.responseLogLevel, isFilteringHeaders:",
		`        baseURL: String = "https://api.example.com",`,
		"        logFilter: ServiceLogFilter = ServiceLogFilter()\n    ) {\n",
		"    func verify(response: HTTPResponse) -> NSError? { return nil }\n",
		"    func item(id: String) -> ServiceCall<Item> {\n",
		"        return self.createCall() { () -> ServiceCallResult<Item> in\n",
		"            let headers:    [String: String]        = [:]\n",
		"            let parameters: [HTTPRequestParameters] = []\n",
		"                    httpMethod: HTTPRequest.HTTPMethod.get,\n",
		`                    endpoint: "/items/\(id)",`,
		"            switch self.transport.send(request: request) {\n",
		"                        let jsonObject: Any = try response.getJSON()!\n",
		"                        guard let payload = ItemParser().parse(jsonObject).first else { throw NSError.noHTTPResponse }\n",
		"                case .failure(let error):\n                    return ServiceCallResult.failure(error: error)\n",
	}, []string{
		"cookieProvider",
		"cookieStorage",
		"authorizer",
		"createAuthorizedCall",
		"AddCookieInterceptor",
		"ReceivedCookieInterceptor",
		"queryParameters",
	})
}

func TestEmitter_ServiceFlags(t *testing.T) {
	s := itemsService()
	s.BaseURL = nil
	s.AddCookies = true
	s.ReceiveCookies = true
	s.NeedsAuthorizer = true
	s.Methods[0].AutoLogin = true

	a := (&Emitter{}).Service(s, "out/")
	assert.Equal(t, "out/ItemsServiceGen.swift", a.Path)

	checkContains(t, a.Text, []string{
		"    let cookieProvider: CookieProviding\n",
		"    let cookieStorage: CookieStoring\n",
		"    let authorizer: Authorizing\n",
		"            AddCookieInterceptor(cookieProvider: self.cookieProvider),\n            LogRequestInterceptor(",
		"            ReceivedCookieInterceptor(cookieStorage: self.cookieStorage),\n            LogResponseInterceptor(",
		"        baseURL: String,\n        authorizer: Authorizing,\n        cookieProvider: CookieProviding,\n        cookieStorage: CookieStoring,\n",
		"        self.authorizer = authorizer\n        self.cookieProvider = cookieProvider\n        self.cookieStorage = cookieStorage\n",
		"func createAuthorizedCall<Payload>(main: @escaping ServiceCall<Payload>.Main) -> ServiceCall<Payload> {",
		"authorizer: self.authorizer, main: main)",
		"        return self.createAuthorizedCall() { () -> ServiceCallResult<Item> in\n",
	}, []string{
		`baseURL: String = "`,
		"//  Shop",
	})
}

func TestEmitter_MethodBody(t *testing.T) {
	optString := decl.Optional(decl.String())
	m := &scheme.MethodScheme{
		Name: "update",
		Arguments: []decl.Argument{
			{Name: "token", BodyName: "token", Type: decl.String()},
			{Name: "with", BodyName: "title", Type: optString},
			{Name: "page", BodyName: "page", Type: decl.Int()},
			{Name: "blob", BodyName: "blob", Type: decl.String()},
		},
		HTTPVerb: scheme.VerbPatch,
		Endpoint: "/items",
		Headers: []scheme.Parameter{
			{PlaceholderName: "Authorization", ArgumentName: "token", Type: decl.String()},
		},
		QueryParameters: []scheme.Parameter{
			{PlaceholderName: "page", ArgumentName: "page", Type: decl.Int()},
		},
		JSONParameters: []scheme.Parameter{
			{PlaceholderName: "title", ArgumentName: "title", Type: optString},
		},
		PlistParameters: []scheme.Parameter{
			{PlaceholderName: "blob", ArgumentName: "blob", Type: decl.String()},
		},
		RequestInterceptors:     []string{"Signer", "Tracer"},
		ResponseInterceptors:    []string{"Audit"},
		ReturnedWrapperTypeName: scheme.WrapperServiceCall,
		ReturnedPayloadType:     decl.Void(),
		ParserName:              "VoidParser",
	}
	s := &scheme.ServiceScheme{Name: "S", Parent: "P", Methods: []*scheme.MethodScheme{m}}
	text := (&Emitter{}).Service(s, "out").Text

	checkContains(t, text, []string{
		"func update(token: String, with title: String?, page: Int, blob: String) -> ServiceCall<Void> {",
		"var headers:    [String: String]        = [:]",
		"var parameters: [HTTPRequestParameters] = []",
		"var requestInterceptors:  [HTTPRequestInterceptor]  = []",
		"var responseInterceptors: [HTTPResponseInterceptor] = []",
		`            headers["Authorization"] = token` + "\n\n",
		"let queryParameters: HTTPRequestParameters = HTTPRequestParameters(parameters: [:], encoding: HTTPRequestParameters.Encoding.url)\n" +
			`            queryParameters["page"] = page` + "\n" +
			"            parameters.append(queryParameters)\n",
		"encoding: HTTPRequestParameters.Encoding.json)\n" +
			"            if let title = title {\n" +
			`                jsonParameters["title"] = title` + "\n" +
			"            }\n" +
			"            parameters.append(jsonParameters)\n",
		"encoding: HTTPRequestParameters.Encoding.propertyList)",
		"            requestInterceptors.append(Signer())\n            requestInterceptors.append(Tracer())\n\n",
		"            responseInterceptors.append(Audit())\n",
		"httpMethod: HTTPRequest.HTTPMethod.patch,",
		"return ServiceCallResult.success(payload: ())",
	}, []string{
		"VoidParser",
		"getJSON",
	})

	// Parameter blocks appear in query, json, plist order.
	q := strings.Index(text, "let queryParameters")
	j := strings.Index(text, "let jsonParameters")
	p := strings.Index(text, "let plistParameters")
	assert.True(t, q < j && j < p, "parameter blocks out of order: query=%d json=%d plist=%d", q, j, p)
}

func TestEmitter_PayloadHandling(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(m *scheme.MethodScheme)
		want    []string
		notWant []string
	}{
		{
			name: "single object",
			want: []string{
				"guard let payload = ItemParser().parse(jsonObject).first else { throw NSError.noHTTPResponse }",
				"} catch let error {\n                        return ServiceCallResult.failure(error: error as NSError)\n                    }\n",
			},
		},
		{
			name: "collection",
			modify: func(m *scheme.MethodScheme) {
				m.ReturnsCollection = true
				m.ReturnedPayloadType = decl.Array(decl.Object("Item"))
			},
			want: []string{
				"-> ServiceCall<[Item]> {",
				"let payload = ItemParser().parse(jsonObject)\n",
			},
			notWant: []string{".first"},
		},
		{
			name: "raw string",
			modify: func(m *scheme.MethodScheme) {
				m.ParserName = ""
				m.ReturnedPayloadType = decl.String()
			},
			want: []string{
				"if let data = response.body,\n                        let string = String(data: data, encoding: .utf8) {\n",
				"return ServiceCallResult.success(payload: string)",
				"} else {\n                        return ServiceCallResult.failure(error: NSError.noHTTPResponse)\n                    }\n",
			},
			notWant: []string{"getJSON", "Parser()"},
		},
		{
			name: "void",
			modify: func(m *scheme.MethodScheme) {
				m.ParserName = "VoidParser"
				m.ReturnedPayloadType = decl.Void()
			},
			want:    []string{"return ServiceCallResult.success(payload: ())"},
			notWant: []string{"getJSON", "VoidParser"},
		},
		{
			name: "simple value",
			modify: func(m *scheme.MethodScheme) {
				m.ParserName = "SimpleValueJsonParser<Int>"
				m.ReturnedPayloadType = decl.Int()
			},
			want: []string{"guard let payload = SimpleValueJsonParser<Int>().parse(jsonObject).first else"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := itemsService()
			if tt.modify != nil {
				tt.modify(s.Methods[0])
			}
			text := (&Emitter{}).Service(s, "out").Text
			want := append([]string{verifyResponse}, tt.want...)
			checkContains(t, text, want, tt.notWant)
		})
	}
}

func TestEmitter_Deterministic(t *testing.T) {
	e := &Emitter{Project: "Shop", Indent: 2}
	a1 := e.Service(itemsService(), "out")
	a2 := e.Service(itemsService(), "out")
	assert.Equal(t, a1, a2)
	assert.Equal(t, e.Utilities("models"), e.Utilities("models"))
}

func TestEmitter_Utilities(t *testing.T) {
	artifacts := (&Emitter{Project: "Shop"}).Utilities("Models")

	wantPaths := []string{
		"Models/ServiceCall.swift",
		"Models/AuthorizedServiceCall.swift",
		"Models/ServiceDependency.swift",
		"Models/ServiceLogFilter.swift",
	}
	require.Len(t, artifacts, len(wantPaths))
	for i, a := range artifacts {
		assert.Equal(t, wantPaths[i], a.Path)
		assert.True(t, strings.HasSuffix(a.Text, "\n") && !strings.HasSuffix(a.Text, "\n\n"),
			"%s: want exactly one trailing newline", a.Path)
	}

	tests := []struct {
		name    string
		text    string
		want    []string
		notWant []string
	}{
		{
			name: "call wrapper",
			text: artifacts[0].Text,
			want: []string{
				"import Foundation\n\n\n/**",
				"class ServiceCall<Payload> {",
				"    typealias Main = () -> ServiceCallResult<Payload>",
				"    func invoke() -> ServiceCallResult<Payload> {",
				"    func operate(completion: @escaping Callback) {",
				"        if case ServiceCallResult.success(let payload) = result { self.postprocess?(payload) }",
				"enum ServiceCallResult<Payload> {\n    case success(payload: Payload)\n    case failure(error: NSError)\n}\n",
			},
			notWant: []string{"import HTTPTransport"},
		},
		{
			name: "authorized call wrapper",
			text: artifacts[1].Text,
			want: []string{
				"class AuthorizedServiceCall<Payload>: ServiceCall<Payload> {",
				"    override func invoke() -> ServiceCallResult<Payload> {\n        return self.invoke(retried: false)\n    }",
				"        if !retried,\n",
				"            return self.invoke(retried: true)\n",
				"                        self.operate(retried: true, completion: completion)\n",
				"protocol Authorizing {",
				"    func detectAuthError(error: NSError) -> Bool",
				"    func authorize() -> ServiceCall<Void>",
			},
		},
		{
			name: "dependency container",
			text: artifacts[2].Text,
			want: []string{
				"import Foundation\nimport HTTPTransport\n",
				"class ServiceDependency {",
				"        self.session = Session(security: security, retrier: retrier)",
				"        session:              Session,\n",
			},
		},
		{
			name: "log filter",
			text: artifacts[3].Text,
			want: []string{
				"import Foundation\nimport HTTPTransport\n",
				"class ServiceLogFilter {",
				"requestLogLevel:            LogRequestInterceptor.LogLevel  = .url,",
				"responseLogLevel:           LogResponseInterceptor.LogLevel = .status,",
				"[LogResponseInterceptor.Header] = [.contentType, .setCookie, .lastModified]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkContains(t, tt.text, append([]string{"//  Shop\n", "Code generated by svcgen. DO NOT EDIT."}, tt.want...), tt.notWant)
		})
	}
}
