package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/svcgen/decl"
)

func itemsService() decl.Entity {
	item := method("ServiceCall<Item>", "@get", "@url /items/{id}")
	item.Name = "item"
	item.Arguments = []decl.Argument{arg("id", "String", "@url")}

	return decl.Entity{
		Name:        "ItemsService",
		Kind:        decl.KindProtocol,
		Annotations: annotations("@service", "@url https://api.example.com"),
		Methods:     []decl.Method{item},
	}
}

func TestDeriveService(t *testing.T) {
	s, err := DeriveService(testContext(), itemsService(), "Gen")
	require.NoError(t, err)

	assert.Equal(t, "ItemsServiceGen", s.Name)
	assert.Equal(t, "ItemsService", s.Parent)
	require.NotNil(t, s.BaseURL)
	assert.Equal(t, "https://api.example.com", *s.BaseURL)
	assert.False(t, s.AddCookies)
	assert.False(t, s.ReceiveCookies)
	assert.False(t, s.NeedsAuthorizer)

	require.Len(t, s.Methods, 1)
	m := s.Methods[0]
	assert.Equal(t, VerbGet, m.HTTPVerb)
	assert.Equal(t, `/items/\(id)`, m.Endpoint)
	assert.Equal(t, "ItemParser", m.ParserName)
	assert.False(t, m.ReturnsCollection)
}

func TestDeriveService_Flags(t *testing.T) {
	e := itemsService()
	e.Annotations = annotations("@service", "@add_cookies", "@receive_cookies")

	s, err := DeriveService(testContext(), e, "")
	require.NoError(t, err)
	assert.Equal(t, "ItemsService", s.Name)
	assert.Nil(t, s.BaseURL)
	assert.True(t, s.AddCookies)
	assert.True(t, s.ReceiveCookies)
}

func TestDeriveService_NeedsAuthorizer(t *testing.T) {
	tests := []struct {
		name    string
		methods []decl.Method
		want    bool
	}{
		{
			name: "no methods",
			want: false,
		},
		{
			name:    "plain calls",
			methods: []decl.Method{method("ServiceCall<Void>", "@get"), method("ServiceCall<Item>", "@post")},
			want:    false,
		},
		{
			name:    "auto_login on plain call",
			methods: []decl.Method{method("ServiceCall<Void>", "@get"), method("ServiceCall<Void>", "@get", "@auto_login")},
			want:    true,
		},
		{
			name:    "authorized wrapper",
			methods: []decl.Method{method("AuthorizedServiceCall<[Item]>", "@get")},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := decl.Entity{Name: "S", Annotations: annotations("@service"), Methods: tt.methods}
			s, err := DeriveService(testContext(), e, "Gen")
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.NeedsAuthorizer)

			anyAutoLogin := false
			for _, m := range s.Methods {
				anyAutoLogin = anyAutoLogin || m.AutoLogin
			}
			assert.Equal(t, anyAutoLogin, s.NeedsAuthorizer)
		})
	}
}

func TestDeriveService_FailFast(t *testing.T) {
	bad := method("ServiceCall<Item>", "@get", "@url /items")
	bad.Arguments = []decl.Argument{arg("x", "String", "@url id")}
	unresolvable := method("ServiceCall<Unknown>", "@get")

	e := itemsService()
	e.Methods = append(e.Methods, bad, unresolvable)

	s, err := DeriveService(testContext(), e, "Gen")
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, IsCode(err, CodeMissingURLPlaceholder), "first failing method wins: %v", err)
}

func TestDeriveService_KeepsMethodOrder(t *testing.T) {
	a := method("ServiceCall<Void>", "@get")
	a.Name = "a"
	b := method("ServiceCall<Void>", "@get")
	b.Name = "b"
	c := method("ServiceCall<Void>", "@get")
	c.Name = "c"

	s, err := DeriveService(testContext(), decl.Entity{Name: "S", Methods: []decl.Method{c, a, b}}, "Gen")
	require.NoError(t, err)
	require.Len(t, s.Methods, 3)
	assert.Equal(t, "c", s.Methods[0].Name)
	assert.Equal(t, "a", s.Methods[1].Name)
	assert.Equal(t, "b", s.Methods[2].Name)
}

func TestDeriveService_FailureDropsWarnings(t *testing.T) {
	ctx := testContext()

	ok := method("ServiceCall<Void>", "@url /ping")
	_, err := DeriveService(ctx, decl.Entity{Name: "Ping", Methods: []decl.Method{ok}}, "Gen")
	require.NoError(t, err)
	require.Len(t, ctx.Warnings, 1)

	noVerb := method("ServiceCall<Void>", "@url /a")
	bad := method("ServiceCall<Unknown>", "@get")
	_, err = DeriveService(ctx, decl.Entity{Name: "Broken", Methods: []decl.Method{noVerb, bad}}, "Gen")
	require.Error(t, err)

	require.Len(t, ctx.Warnings, 1, "warnings of the failed service are dropped")
	assert.Equal(t, "Service.swift", ctx.Warnings[0].Source.File)
}
