package trust

import (
	"net/http"
	"strings"
)

// Resolution is the outcome of inspecting a request for tenant signals.
// SystemPath marks a request claimed by a system-only path prefix; it
// short-circuits every other strategy. A zero Resolution means the
// request carried no usable signal, which is not an error.
type Resolution struct {
	Key        string
	SystemPath bool
}

func (r Resolution) usable() bool {
	return r.SystemPath || r.Key != ""
}

// Resolver inspects a request and produces a candidate resolution.
// Resolvers are pure: no I/O, no errors. Whether a candidate names a
// real trust is the Validator's business, so a malformed header value
// is indistinguishable from a missing one to outside observers.
type Resolver func(r *http.Request) Resolution

// NewChainResolver tries resolvers in order and returns the first
// usable resolution. Later strategies are only consulted when earlier
// ones produced nothing.
func NewChainResolver(resolvers ...Resolver) Resolver {
	return func(r *http.Request) Resolution {
		for _, resolve := range resolvers {
			if res := resolve(r); res.usable() {
				return res
			}
		}
		return Resolution{}
	}
}

// NewSystemPathResolver claims requests whose path falls under one of
// the configured system-only prefixes. It always runs first in the
// chain: a system path yields no candidate key regardless of host or
// headers.
func NewSystemPathResolver(prefixes []string) Resolver {
	return func(r *http.Request) Resolution {
		for _, prefix := range prefixes {
			if prefix == "" {
				continue
			}
			if r.URL.Path == strings.TrimSuffix(prefix, "/") || strings.HasPrefix(r.URL.Path, prefix) {
				return Resolution{SystemPath: true}
			}
		}
		return Resolution{}
	}
}

// NewSubdomainResolver extracts the first host label as a candidate
// key (e.g. "acme" from "acme.school.example"). Reserved labels such
// as "www" or "admin" yield nothing so the chain can fall through to
// the next strategy. A bare base domain yields nothing.
func NewSubdomainResolver(baseDomain string) Resolver {
	suffix := ""
	if baseDomain != "" {
		suffix = "." + strings.Trim(baseDomain, ".")
	}
	return func(r *http.Request) Resolution {
		host := r.Host
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			host = host[:idx]
		}
		host = strings.ToLower(host)

		if suffix != "" {
			if !strings.HasSuffix(host, suffix) {
				return Resolution{}
			}
			host = strings.TrimSuffix(host, suffix)
			// Nested labels under the base domain are not tenants.
			if host == "" || strings.Contains(host, ".") {
				return Resolution{}
			}
			if IsReservedKey(host) {
				return Resolution{}
			}
			return Resolution{Key: host}
		}

		// Without a configured base domain require a full
		// subdomain.domain.tld shape before treating the first
		// label as a tenant signal.
		parts := strings.Split(host, ".")
		if len(parts) < 3 || parts[0] == "" {
			return Resolution{}
		}
		if IsReservedKey(parts[0]) {
			return Resolution{}
		}
		return Resolution{Key: parts[0]}
	}
}

// NewHeaderResolver reads an explicit trust key from the configured
// header. Defaults to "X-Trust-Key" when name is empty.
func NewHeaderResolver(name string) Resolver {
	if name == "" {
		name = "X-Trust-Key"
	}
	return func(r *http.Request) Resolution {
		return Resolution{Key: strings.TrimSpace(r.Header.Get(name))}
	}
}

// NewPathPrefixResolver extracts the segment following a configured
// prefix, e.g. "acme" from "/trust/acme/reports" with prefix "/trust/".
func NewPathPrefixResolver(prefix string) Resolver {
	if prefix == "" {
		prefix = "/trust/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return func(r *http.Request) Resolution {
		if !strings.HasPrefix(r.URL.Path, prefix) {
			return Resolution{}
		}
		rest := strings.TrimPrefix(r.URL.Path, prefix)
		if idx := strings.IndexByte(rest, '/'); idx != -1 {
			rest = rest[:idx]
		}
		return Resolution{Key: strings.TrimSpace(rest)}
	}
}

// NewQueryResolver reads the trust key from a query parameter.
// Defaults to "trust" when param is empty.
func NewQueryResolver(param string) Resolver {
	if param == "" {
		param = "trust"
	}
	return func(r *http.Request) Resolution {
		return Resolution{Key: strings.TrimSpace(r.URL.Query().Get(param))}
	}
}

// NewDefaultResolver unconditionally yields the configured key. Placed
// last in the chain it acts as the system-wide default tenant.
func NewDefaultResolver(key string) Resolver {
	return func(r *http.Request) Resolution {
		return Resolution{Key: key}
	}
}

// NewResolverFromConfig assembles the ordered chain from configuration.
// The system-path check always runs first; the remaining strategies run
// in the configured order; the default key, when set, closes the chain.
func NewResolverFromConfig(cfg Config) Resolver {
	chain := []Resolver{NewSystemPathResolver(cfg.SystemPathPrefixes)}
	for _, strategy := range cfg.Strategies {
		switch strings.TrimSpace(strategy) {
		case StrategySubdomain:
			chain = append(chain, NewSubdomainResolver(cfg.BaseDomain))
		case StrategyHeader:
			chain = append(chain, NewHeaderResolver(cfg.HeaderName))
		case StrategyPath:
			chain = append(chain, NewPathPrefixResolver(cfg.PathPrefix))
		case StrategyQuery:
			chain = append(chain, NewQueryResolver(cfg.QueryParam))
		}
	}
	if cfg.DefaultKey != "" {
		chain = append(chain, NewDefaultResolver(cfg.DefaultKey))
	}
	return NewChainResolver(chain...)
}
