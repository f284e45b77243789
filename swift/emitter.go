// Package swift renders service schemes into Swift source artifacts.
//
// Emission is a pure function of its inputs: the same scheme, project name
// and output directory always produce byte-identical artifacts, and
// emission never fails once given a derived scheme.
package swift

import (
	"github.com/broady/svcgen/scheme"
)

// Fixed file names of the utility artifacts.
const (
	ServiceCallFile           = "ServiceCall.swift"
	AuthorizedServiceCallFile = "AuthorizedServiceCall.swift"
	ServiceDependencyFile     = "ServiceDependency.swift"
	ServiceLogFilterFile      = "ServiceLogFilter.swift"
)

// Extension is the file extension of generated sources.
const Extension = ".swift"

// Emitter renders artifacts for a project.
type Emitter struct {
	// Project is the project name written into file headers.
	Project string

	// Indent is the number of spaces per indentation level.
	// Zero selects DefaultIndentSize.
	Indent int
}

func (e *Emitter) newWriter() *Writer {
	return NewWriter(e.Indent)
}

// header writes the file header comment followed by the imports.
func (e *Emitter) header(w *Writer, filename string, imports ...string) {
	w.Line("//")
	w.Linef("//  %s", filename)
	if e.Project != "" {
		w.Linef("//  %s", e.Project)
	}
	w.Line("//")
	w.Line("//  Code generated by svcgen. DO NOT EDIT.")
	w.Line("//")
	w.Blank()
	w.Blank()
	w.Line("import Foundation")
	for _, imp := range imports {
		w.Line("import " + imp)
	}
	w.Blank()
	w.Blank()
}

// Service renders the implementation class of s into dir.
func (e *Emitter) Service(s *scheme.ServiceScheme, dir string) Artifact {
	filename := s.Name + Extension
	w := e.newWriter()
	e.header(w, filename, "CoreParser", "HTTPTransport")

	w.Linef("class %s: %s {", s.Name, s.Parent)
	w.Blank()
	w.Indent(func() {
		serviceProperties(w, s)
		w.Blank()
		serviceInitializer(w, s)
		w.Blank()
		serviceCallFactories(w, s)
		w.Blank()
		w.Line("func verify(response: HTTPResponse) -> NSError? { return nil }")
		w.Blank()
		for _, m := range s.Methods {
			serviceMethod(w, m)
			w.Blank()
		}
	})
	w.Line("}")

	return Artifact{Path: JoinPath(dir, filename), Text: w.String()}
}

// Utilities renders the four fixed utility files into dir, in the order
// call wrapper, authorized call wrapper, dependency container, log filter.
func (e *Emitter) Utilities(dir string) []Artifact {
	utilities := []struct {
		file    string
		imports []string
		body    func(*Writer)
	}{
		{ServiceCallFile, nil, serviceCall},
		{AuthorizedServiceCallFile, nil, authorizedServiceCall},
		{ServiceDependencyFile, []string{"HTTPTransport"}, serviceDependency},
		{ServiceLogFilterFile, []string{"HTTPTransport"}, serviceLogFilter},
	}

	artifacts := make([]Artifact, 0, len(utilities))
	for _, u := range utilities {
		w := e.newWriter()
		e.header(w, u.file, u.imports...)
		u.body(w)
		artifacts = append(artifacts, Artifact{Path: JoinPath(dir, u.file), Text: w.String()})
	}
	return artifacts
}

func serviceProperties(w *Writer, s *scheme.ServiceScheme) {
	w.Line("let baseURL:    String")
	w.Line("let dependency: ServiceDependency")
	w.Line("var logFilter:  ServiceLogFilter")
	if s.AddCookies {
		w.Line("let cookieProvider: CookieProviding")
	}
	if s.ReceiveCookies {
		w.Line("let cookieStorage: CookieStoring")
	}
	if s.NeedsAuthorizer {
		w.Line("let authorizer: Authorizing")
	}
	w.Blank()

	w.Block("var baseRequestInterceptors: [HTTPRequestInterceptor] {", "}", func() {
		w.Block("return [", "]", func() {
			if s.AddCookies {
				w.Line("AddCookieInterceptor(cookieProvider: self.cookieProvider),")
			}
			w.Line("LogRequestInterceptor(logLevel: self.logFilter.requestLogLevel),")
		})
	})
	w.Blank()

	w.Block("var baseResponseInterceptors: [HTTPResponseInterceptor] {", "}", func() {
		w.Block("return [", "]", func() {
			if s.ReceiveCookies {
				w.Line("ReceivedCookieInterceptor(cookieStorage: self.cookieStorage),")
			}
			w.Line("LogResponseInterceptor(logLevel: self.logFilter.responseLogLevel, " +
				"isFilteringHeaders: self.logFilter.isFilteringResponseHeaders, " +
				"headerFilter: self.logFilter.responseHeaderFilter),")
		})
	})
	w.Blank()

	w.Line("var baseRequest: HTTPRequest { return HTTPRequest(endpoint: self.baseURL) }")
	w.Blank()
	w.Line("var transport: HTTPTransport { return HTTPTransport(session: self.dependency.session, " +
		"requestInterceptors: self.baseRequestInterceptors, " +
		"responseInterceptors: self.baseResponseInterceptors, " +
		"useDefaultValidation: self.dependency.useDefaultValidation) }")
}

func serviceInitializer(w *Writer, s *scheme.ServiceScheme) {
	w.Line("init(")
	w.Indent(func() {
		w.Line("dependency: ServiceDependency,")
		if s.BaseURL != nil {
			w.Linef("baseURL: String = \"%s\",", *s.BaseURL)
		} else {
			w.Line("baseURL: String,")
		}
		if s.NeedsAuthorizer {
			w.Line("authorizer: Authorizing,")
		}
		if s.AddCookies {
			w.Line("cookieProvider: CookieProviding,")
		}
		if s.ReceiveCookies {
			w.Line("cookieStorage: CookieStoring,")
		}
		w.Line("logFilter: ServiceLogFilter = ServiceLogFilter()")
	})
	w.Block(") {", "}", func() {
		w.Line("self.dependency = dependency")
		w.Line("self.baseURL = baseURL")
		w.Line("self.logFilter = logFilter")
		if s.NeedsAuthorizer {
			w.Line("self.authorizer = authorizer")
		}
		if s.AddCookies {
			w.Line("self.cookieProvider = cookieProvider")
		}
		if s.ReceiveCookies {
			w.Line("self.cookieStorage = cookieStorage")
		}
	})
}

func serviceCallFactories(w *Writer, s *scheme.ServiceScheme) {
	w.Block("func createCall<Payload>(main: @escaping ServiceCall<Payload>.Main) -> ServiceCall<Payload> {", "}", func() {
		w.Line("return ServiceCall(operationQueue: self.dependency.operationQueue, " +
			"callbackQueue: self.dependency.completionQueue, main: main)")
	})
	if !s.NeedsAuthorizer {
		return
	}
	w.Blank()
	w.Block("func createAuthorizedCall<Payload>(main: @escaping ServiceCall<Payload>.Main) -> ServiceCall<Payload> {", "}", func() {
		w.Line("return AuthorizedServiceCall(operationQueue: self.dependency.operationQueue, " +
			"callbackQueue: self.dependency.completionQueue, authorizer: self.authorizer, main: main)")
	})
}
