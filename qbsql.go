package qbsql

import (
	"context"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Exotik850/quick-oxibooks-sql/parser"
)

// Config carries compilation settings assembled from Options.
type Config struct {
	Schema   Schema
	Resolver Resolver
	Cache    Cache
	CacheTTL time.Duration
}

// Option configures compilation.
type Option func(*Config) error

// WithSchema sets the schema queries are bound against.
func WithSchema(s Schema) Option {
	return func(c *Config) error {
		if s == nil {
			return NewConfigError("schema cannot be nil", nil)
		}
		c.Schema = s
		return nil
	}
}

// WithVars binds variables from a map. Shorthand for WithResolver(vars).
func WithVars(vars Vars) Option {
	return func(c *Config) error {
		c.Resolver = vars
		return nil
	}
}

// WithResolver sets the variable resolver. Without one, every variable
// reference fails as unbound.
func WithResolver(r Resolver) Option {
	return func(c *Config) error {
		if r == nil {
			return NewConfigError("resolver cannot be nil", nil)
		}
		c.Resolver = r
		return nil
	}
}

// WithCache sets the compile cache consulted by Compiler.CompileString.
func WithCache(cache Cache) Option {
	return func(c *Config) error {
		if cache == nil {
			return NewConfigError("cache cannot be nil", nil)
		}
		c.Cache = cache
		return nil
	}
}

// WithCacheTTL bounds the lifetime of cached compilations. Zero (the
// default) caches without expiry.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl < 0 {
			return NewConfigError("cache ttl cannot be negative", nil)
		}
		c.CacheTTL = ttl
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Parse returns the unbound AST for src. Structure is validated; entity and
// field names are not. Most callers want Compile instead.
func Parse(src string) (*parser.SelectStatement, error) {
	return parser.Parse(src)
}

// Compile parses src and binds it against the configured schema, returning
// the bound query. At least WithSchema must be supplied.
func Compile(src string, opts ...Option) (*Query, error) {
	cfg := &Config{}
	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}
	return compile(src, cfg)
}

// CompileString compiles src and serializes the result to its wire form.
func CompileString(src string, opts ...Option) (string, error) {
	q, err := Compile(src, opts...)
	if err != nil {
		return "", err
	}
	return q.String(), nil
}

func compile(src string, cfg *Config) (*Query, error) {
	if cfg.Schema == nil {
		return nil, NewConfigError("no schema configured", nil)
	}
	stmt, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return bind(stmt, cfg.Schema, cfg.Resolver)
}

// Compiler is a reusable compilation pipeline with a fixed schema, resolver
// and optional compile cache. Safe for concurrent use when its cache is.
type Compiler struct {
	cfg Config
}

// NewCompiler returns a Compiler for the given options. WithSchema is
// required.
func NewCompiler(opts ...Option) (*Compiler, error) {
	var cfg Config
	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}
	if cfg.Schema == nil {
		return nil, NewConfigError("no schema configured", nil)
	}
	return &Compiler{cfg: cfg}, nil
}

// Compile parses and binds src. The cache is never consulted: binding is
// cheap and callers of Compile want the structured query, not the string.
func (c *Compiler) Compile(_ context.Context, src string) (*Query, error) {
	return compile(src, &c.cfg)
}

// CompileString compiles src to its wire form, memoizing through the
// configured cache. Compilation is deterministic for a fixed schema and
// variable set, so a hit returns the exact string a fresh compilation would
// produce. Cache failures fall back to compiling.
func (c *Compiler) CompileString(ctx context.Context, src string) (string, error) {
	key, cacheable := c.cacheKey(src)
	if cacheable {
		if data, err := c.cfg.Cache.Get(ctx, key); err == nil && data != nil {
			var e cacheEntry
			if msgpack.Unmarshal(data, &e) == nil && e.Query != "" {
				return e.Query, nil
			}
		}
	}
	q, err := compile(src, &c.cfg)
	if err != nil {
		return "", err
	}
	s := q.String()
	if cacheable {
		if data, err := msgpack.Marshal(cacheEntry{Query: s, Entity: q.Entity()}); err == nil {
			_ = c.cfg.Cache.Set(ctx, key, data, c.cfg.CacheTTL)
		}
	}
	return s, nil
}

// cacheKey returns the cache key for src and whether caching is sound. Only
// map-backed resolvers can be fingerprinted; a custom Resolver bypasses the
// cache entirely.
func (c *Compiler) cacheKey(src string) (string, bool) {
	if c.cfg.Cache == nil {
		return "", false
	}
	if c.cfg.Resolver == nil {
		return CacheKey{Source: src}.String(), true
	}
	if vars, ok := c.cfg.Resolver.(Vars); ok {
		return CacheKey{Source: src, Vars: canonicalVars(vars)}.String(), true
	}
	return "", false
}
