package trust_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edusuite/schoolms/pkg/trust"
)

func TestSystemPathResolver(t *testing.T) {
	t.Parallel()

	resolver := trust.NewSystemPathResolver([]string{"/platform/", "/healthz"})

	t.Run("claims configured prefixes", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://acme.school.example/platform/trusts", nil)
		res := resolver(req)
		assert.True(t, res.SystemPath)
		assert.Empty(t, res.Key)
	})

	t.Run("claims the bare prefix without trailing slash", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://school.example/platform", nil)
		assert.True(t, resolver(req).SystemPath)
	})

	t.Run("ignores other paths", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://school.example/api/students", nil)
		assert.Equal(t, trust.Resolution{}, resolver(req))
	})
}

func TestSubdomainResolver(t *testing.T) {
	t.Parallel()

	t.Run("extracts the first host label", func(t *testing.T) {
		t.Parallel()

		resolver := trust.NewSubdomainResolver("")
		req := httptest.NewRequest("GET", "http://acme.app.example/", nil)
		assert.Equal(t, "acme", resolver(req).Key)
	})

	t.Run("strips the port", func(t *testing.T) {
		t.Parallel()

		resolver := trust.NewSubdomainResolver("")
		req := httptest.NewRequest("GET", "http://acme.app.example/", nil)
		req.Host = "acme.app.example:8443"
		assert.Equal(t, "acme", resolver(req).Key)
	})

	t.Run("bare domain yields nothing", func(t *testing.T) {
		t.Parallel()

		resolver := trust.NewSubdomainResolver("")
		req := httptest.NewRequest("GET", "http://app.example/", nil)
		req.Host = "app.example"
		assert.Equal(t, trust.Resolution{}, resolver(req))
	})

	t.Run("reserved labels yield nothing", func(t *testing.T) {
		t.Parallel()

		resolver := trust.NewSubdomainResolver("")
		for _, host := range []string{"www.app.example", "admin.app.example"} {
			req := httptest.NewRequest("GET", "http://"+host+"/", nil)
			req.Host = host
			assert.Equal(t, trust.Resolution{}, resolver(req), host)
		}
	})

	t.Run("honors the configured base domain", func(t *testing.T) {
		t.Parallel()

		resolver := trust.NewSubdomainResolver("school.example")

		req := httptest.NewRequest("GET", "http://acme.school.example/", nil)
		req.Host = "acme.school.example"
		assert.Equal(t, "acme", resolver(req).Key)

		// A different apex is not ours to resolve.
		req = httptest.NewRequest("GET", "http://acme.other.example/", nil)
		req.Host = "acme.other.example"
		assert.Equal(t, trust.Resolution{}, resolver(req))

		// Nested labels are not tenants.
		req = httptest.NewRequest("GET", "http://a.b.school.example/", nil)
		req.Host = "a.b.school.example"
		assert.Equal(t, trust.Resolution{}, resolver(req))
	})
}

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	resolver := trust.NewHeaderResolver("")

	req := httptest.NewRequest("GET", "http://app.example/", nil)
	req.Header.Set("X-Trust-Key", " beta ")
	assert.Equal(t, "beta", resolver(req).Key)

	req = httptest.NewRequest("GET", "http://app.example/", nil)
	assert.Equal(t, trust.Resolution{}, resolver(req))
}

func TestPathPrefixResolver(t *testing.T) {
	t.Parallel()

	resolver := trust.NewPathPrefixResolver("/trust/")

	t.Run("extracts the key segment", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://app.example/trust/acme/reports", nil)
		assert.Equal(t, "acme", resolver(req).Key)
	})

	t.Run("handles a trailing key", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://app.example/trust/acme", nil)
		assert.Equal(t, "acme", resolver(req).Key)
	})

	t.Run("ignores non-matching paths", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://app.example/api/students", nil)
		assert.Equal(t, trust.Resolution{}, resolver(req))
	})
}

func TestQueryResolver(t *testing.T) {
	t.Parallel()

	resolver := trust.NewQueryResolver("trust")
	req := httptest.NewRequest("GET", "http://app.example/?trust=gamma", nil)
	assert.Equal(t, "gamma", resolver(req).Key)
}

func TestChainResolver(t *testing.T) {
	t.Parallel()

	cfg := trust.Config{
		SystemPathPrefixes: []string{"/platform/"},
		Strategies: []string{
			trust.StrategySubdomain,
			trust.StrategyHeader,
			trust.StrategyPath,
			trust.StrategyQuery,
		},
		HeaderName: "X-Trust-Key",
		PathPrefix: "/trust/",
		QueryParam: "trust",
	}
	resolver := trust.NewResolverFromConfig(cfg)

	t.Run("system path wins over every tenant signal", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://acme.app.example/platform/trusts?trust=beta", nil)
		req.Header.Set("X-Trust-Key", "gamma")

		res := resolver(req)
		assert.True(t, res.SystemPath)
		assert.Empty(t, res.Key)
	})

	t.Run("subdomain wins over header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://acme.app.example/", nil)
		req.Header.Set("X-Trust-Key", "beta")
		assert.Equal(t, "acme", resolver(req).Key)
	})

	t.Run("header override on the bare domain", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://app.example/", nil)
		req.Host = "app.example"
		req.Header.Set("X-Trust-Key", "beta")
		assert.Equal(t, "beta", resolver(req).Key)
	})

	t.Run("no signal and no default yields nothing", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://app.example/", nil)
		req.Host = "app.example"
		assert.Equal(t, trust.Resolution{}, resolver(req))
	})

	t.Run("configured default closes the chain", func(t *testing.T) {
		t.Parallel()

		withDefault := cfg
		withDefault.DefaultKey = "demo"
		resolver := trust.NewResolverFromConfig(withDefault)

		req := httptest.NewRequest("GET", "http://app.example/", nil)
		req.Host = "app.example"
		assert.Equal(t, "demo", resolver(req).Key)
	})

	t.Run("strategy order follows configuration", func(t *testing.T) {
		t.Parallel()

		reordered := cfg
		reordered.Strategies = []string{trust.StrategyHeader, trust.StrategySubdomain}
		resolver := trust.NewResolverFromConfig(reordered)

		req := httptest.NewRequest("GET", "http://acme.app.example/", nil)
		req.Header.Set("X-Trust-Key", "beta")
		assert.Equal(t, "beta", resolver(req).Key)
	})
}
