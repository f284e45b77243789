package scheme

import "github.com/broady/svcgen/decl"

// DeriveService derives the scheme of a service entity. The generated name
// is the entity name followed by suffix. Derivation stops at the first
// method that fails and returns its diagnostic; no partial scheme is built
// and warnings raised by the service's earlier methods are dropped.
func DeriveService(ctx *Context, service decl.Entity, suffix string) (*ServiceScheme, error) {
	s := &ServiceScheme{
		Name:           service.Name + suffix,
		Parent:         service.Name,
		AddCookies:     service.Annotations.Has(annotationAddCookies),
		ReceiveCookies: service.Annotations.Has(annotationReceiveCookies),
	}
	if url, ok := service.Annotations.Value(annotationURL); ok {
		s.BaseURL = &url
	}

	mark := len(ctx.Warnings)
	s.Methods = make([]*MethodScheme, 0, len(service.Methods))
	for _, m := range service.Methods {
		ms, err := DeriveMethod(ctx, m)
		if err != nil {
			ctx.Warnings = ctx.Warnings[:mark]
			return nil, err
		}
		s.NeedsAuthorizer = s.NeedsAuthorizer || ms.AutoLogin
		s.Methods = append(s.Methods, ms)
	}
	return s, nil
}
