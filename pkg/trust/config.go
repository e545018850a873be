package trust

import "time"

// Strategy names accepted in Config.Strategies.
const (
	StrategySubdomain = "subdomain"
	StrategyHeader    = "header"
	StrategyPath      = "path"
	StrategyQuery     = "query"
)

type Config struct {
	BaseDomain         string        `env:"TRUST_BASE_DOMAIN"`                                               // BaseDomain is the shared domain tenants live under, e.g. "school.example".
	SystemPathPrefixes []string      `env:"TRUST_SYSTEM_PATH_PREFIXES" envDefault:"/platform,/healthz,/readyz"` // SystemPathPrefixes are path prefixes that always resolve to system scope.
	Strategies         []string      `env:"TRUST_STRATEGIES" envDefault:"subdomain,header,path,query"`       // Strategies is the ordered list of active resolution strategies.
	HeaderName         string        `env:"TRUST_HEADER" envDefault:"X-Trust-Key"`                           // HeaderName carries an explicit trust key.
	PathPrefix         string        `env:"TRUST_PATH_PREFIX" envDefault:"/trust/"`                          // PathPrefix is the prefix before a path-carried trust key.
	QueryParam         string        `env:"TRUST_QUERY_PARAM" envDefault:"trust"`                            // QueryParam carries a trust key in the query string.
	DefaultKey         string        `env:"TRUST_DEFAULT_KEY"`                                               // DefaultKey, when set, is used if no strategy yields a candidate.
	CacheTTL           time.Duration `env:"TRUST_CACHE_TTL" envDefault:"5m"`                                 // CacheTTL bounds how long a validated record may be served from cache.
	CacheRedisURL      string        `env:"TRUST_CACHE_REDIS_URL"`                                           // CacheRedisURL, when set, switches the record cache to Redis so replicas share it.
}
