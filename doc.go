// Package qbsql compiles a small SQL-flavored query language into the
// query-string dialect understood by the QuickBooks Online API.
//
// Queries are written against schema-declared source names (snake_case) and
// compile to the API's wire names and quoting rules:
//
//	select display_name, balance from Customer
//	  where balance >= 1000.0 and id in (1, 2, 3)
//	  order by display_name asc limit 10
//
// compiles, against the built-in Customer schema, to
//
//	select DisplayName, Balance from Customer where Balance >= '1000' and Id IN ('1', '2', '3') order by DisplayName ASC LIMIT 10
//
// # Pipeline
//
// Compilation runs a fixed pipeline:
//
//	source text
//	        ↓
//	   lexer (tokens)
//	        ↓
//	   parser (unbound AST)
//	        ↓
//	   binder (schema + variable resolution, value rendering)
//	        ↓
//	   Query (serializable, executable)
//
// Each stage fails with a typed error: LexError and ParseError carry source
// positions; binder errors (UnknownEntityError, UnknownFieldError,
// UnboundVariableError, TypeMismatchError, EmptyInListError,
// DuplicateFieldError) carry entity and field context. Serialization is
// total and cannot fail.
//
// # Usage
//
// One-shot compilation against the bundled QuickBooks Online catalog:
//
//	s, err := qbsql.CompileString(
//	    "select * from Customer where balance > min and active = true",
//	    qbsql.WithSchema(qbo.Schemas()),
//	    qbsql.WithVars(qbsql.Vars{"min": 1000}),
//	)
//
// A reusable Compiler carries the schema and resolver, and can memoize
// compiled strings through a Cache:
//
//	c, err := qbsql.NewCompiler(
//	    qbsql.WithSchema(qbo.Schemas()),
//	    qbsql.WithCache(qbsql.NewMemoryCache()),
//	)
//	s, err := c.CompileString(ctx, src)
//
// Queries can also be assembled without source text through the Builder,
// which shares the binder and serializer:
//
//	q, err := qbsql.NewBuilder("Customer").
//	    Select("display_name").
//	    Where("balance", qbsql.OpGTE, 1000).
//	    Build(qbsql.WithSchema(qbo.Schemas()))
//
// # Execution
//
// The compiler never talks to the network. A bound Query hands its wire
// string to a caller-supplied Transport:
//
//	rows, err := q.Execute(ctx, transport)
//
// StatsTransport and DebugTransport decorate any Transport with execution
// statistics and query logging; package qbtest provides a recording fake
// for tests.
//
// # Schemas
//
// Entities are declared with the fluent builders in schema/field and
// collected in a schema.Registry, loaded from a YAML catalog with
// schema.Load, or taken from the bundled qbo catalog. Field kinds (string,
// numeric, bool, date, enum) drive operator legality and value rendering.
package qbsql
