package swift

import (
	"strings"

	"github.com/broady/svcgen/scheme"
)

// serviceMethod writes one generated service method.
func serviceMethod(w *Writer, m *scheme.MethodScheme) {
	payload := m.ReturnedPayloadTypeName()

	w.Linef("func %s(%s) -> %s<%s> {", m.Name, signature(m), m.ReturnedWrapperTypeName, payload)
	w.Indent(func() {
		factory := "createCall"
		if m.AutoLogin {
			factory = "createAuthorizedCall"
		}
		w.Linef("return self.%s() { () -> ServiceCallResult<%s> in", factory, payload)
		w.Indent(func() { callBody(w, m) })
		w.Line("}")
	})
	w.Line("}")
}

// signature renders the declared argument list. An argument whose label
// differs from its body name is written as "label name: Type".
func signature(m *scheme.MethodScheme) string {
	args := make([]string, 0, len(m.Arguments))
	for _, a := range m.Arguments {
		name := a.Name
		if b := a.Binding(); b != a.Name {
			name = a.Name + " " + b
		}
		args = append(args, name+": "+a.Type.String())
	}
	return strings.Join(args, ", ")
}

func callBody(w *Writer, m *scheme.MethodScheme) {
	w.Linef("%s headers:    [String: String]        = [:]", binding(m.ContainsHeaders()))
	w.Linef("%s parameters: [HTTPRequestParameters] = []", binding(m.ContainsRequestParameters()))
	w.Linef("%s requestInterceptors:  [HTTPRequestInterceptor]  = []", binding(m.ContainsRequestInterceptors()))
	w.Linef("%s responseInterceptors: [HTTPResponseInterceptor] = []", binding(m.ContainsResponseInterceptors()))
	w.Blank()

	if m.ContainsHeaders() {
		for _, p := range m.Headers {
			fill(w, "headers", p)
		}
		w.Blank()
	}

	parameterBlock(w, "queryParameters", "url", m.QueryParameters)
	parameterBlock(w, "jsonParameters", "json", m.JSONParameters)
	parameterBlock(w, "plistParameters", "propertyList", m.PlistParameters)

	interceptors(w, "requestInterceptors", m.RequestInterceptors)
	interceptors(w, "responseInterceptors", m.ResponseInterceptors)

	w.Line("let request: HTTPRequest =")
	w.Indent(func() {
		w.Block("HTTPRequest(", ")", func() {
			w.Linef("httpMethod: HTTPRequest.HTTPMethod.%s,", m.HTTPVerb)
			w.Linef("endpoint: \"%s\",", m.Endpoint)
			w.Line("headers: headers,")
			w.Line("parameters: parameters,")
			w.Line("requestInterceptors: requestInterceptors,")
			w.Line("responseInterceptors: responseInterceptors,")
			w.Line("base: self.baseRequest")
		})
	})
	w.Blank()

	w.Block("switch self.transport.send(request: request) {", "}", func() {
		w.Line("case .success(let response):")
		w.Indent(func() { successCase(w, m) })
		w.Blank()
		w.Line("case .failure(let error):")
		w.Indent(func() {
			w.Line("return ServiceCallResult.failure(error: error)")
		})
	})
}

func binding(mutable bool) string {
	if mutable {
		return "var"
	}
	return "let"
}

// parameterBlock writes one HTTPRequestParameters value for a non-empty
// parameter group.
func parameterBlock(w *Writer, variable, encoding string, ps []scheme.Parameter) {
	if len(ps) == 0 {
		return
	}
	w.Linef("let %s: HTTPRequestParameters = HTTPRequestParameters(parameters: [:], encoding: HTTPRequestParameters.Encoding.%s)",
		variable, encoding)
	for _, p := range ps {
		fill(w, variable, p)
	}
	w.Linef("parameters.append(%s)", variable)
	w.Blank()
}

// fill assigns an argument to a keyed slot, unwrapping optionals first.
func fill(w *Writer, variable string, p scheme.Parameter) {
	assign := variable + "[\"" + p.PlaceholderName + "\"] = " + p.ArgumentName
	if !p.IsOptional() {
		w.Line(assign)
		return
	}
	w.Block("if let "+p.ArgumentName+" = "+p.ArgumentName+" {", "}", func() {
		w.Line(assign)
	})
}

func interceptors(w *Writer, variable string, names []string) {
	if len(names) == 0 {
		return
	}
	for _, name := range names {
		w.Linef("%s.append(%s())", variable, name)
	}
	w.Blank()
}

const verifyResponse = "if let error = self.verify(response: response) { return ServiceCallResult.failure(error: error) }"

func successCase(w *Writer, m *scheme.MethodScheme) {
	w.Line(verifyResponse)

	switch m.PayloadHandling() {
	case scheme.PayloadVoid:
		w.Line("return ServiceCallResult.success(payload: ())")

	case scheme.PayloadRawString:
		w.Line("if let data = response.body,")
		w.Indent(func() {
			w.Line("let string = String(data: data, encoding: .utf8) {")
			w.Line("return ServiceCallResult.success(payload: string)")
		})
		w.Block("} else {", "}", func() {
			w.Line("return ServiceCallResult.failure(error: NSError.noHTTPResponse)")
		})

	case scheme.PayloadParser:
		w.Blank()
		w.Block("do {", "} catch let error {", func() {
			w.Line("let jsonObject: Any = try response.getJSON()!")
			if m.ReturnsCollection {
				w.Linef("let payload = %s().parse(jsonObject)", m.ParserName)
			} else {
				w.Linef("guard let payload = %s().parse(jsonObject).first else { throw NSError.noHTTPResponse }", m.ParserName)
			}
			w.Line("return ServiceCallResult.success(payload: payload)")
		})
		w.Indent(func() {
			w.Line("return ServiceCallResult.failure(error: error as NSError)")
		})
		w.Line("}")
	}
}
