package qbsql_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qbsql "github.com/Exotik850/quick-oxibooks-sql"
	"github.com/Exotik850/quick-oxibooks-sql/schema"
	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

// testSchema returns the catalog used across the root tests: a Customer
// entity exercising every field kind plus an Invoice entity with wire
// overrides.
func testSchema() *schema.Registry {
	return schema.MustRegistry(
		schema.MustEntity("Customer",
			field.Numeric("id"),
			field.String("display_name"),
			field.String("company_name"),
			field.Numeric("balance"),
			field.Bool("active"),
			field.Bool("job").Bare(),
			field.Date("created_at").Wire("MetaData.CreateTime"),
			field.Enum("email_status").Values("EmailSent", "NotSet"),
		),
		schema.MustEntity("Invoice",
			field.Numeric("id"),
			field.String("doc_number"),
			field.Numeric("total").Wire("TotalAmt"),
			field.Numeric("balance"),
			field.Date("txn_date"),
		),
	)
}

// TestCompileString covers source-to-wire translation end to end.
func TestCompileString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		vars qbsql.Vars
		want string
	}{
		{
			name: "select star",
			src:  "select * from Customer",
			want: "select * from Customer",
		},
		{
			name: "full query",
			src:  "select display_name, balance from Customer where balance >= 1000.0 and id in (1, 2, 3) order by display_name asc limit 10",
			want: "select DisplayName, Balance from Customer where Balance >= '1000' and Id IN ('1', '2', '3') order by DisplayName ASC LIMIT 10",
		},
		{
			name: "like pattern",
			src:  `select * from Customer where display_name like "John%"`,
			want: "select * from Customer where DisplayName LIKE 'John%'",
		},
		{
			name: "bool quoted by default",
			src:  "select * from Customer where active = true",
			want: "select * from Customer where Active = 'true'",
		},
		{
			name: "bare bool unquoted",
			src:  "select * from Customer where job = false",
			want: "select * from Customer where Job = false",
		},
		{
			name: "scalar variable",
			src:  "select * from Customer where balance >= min_balance",
			vars: qbsql.Vars{"min_balance": 1000},
			want: "select * from Customer where Balance >= '1000'",
		},
		{
			name: "sequence variable",
			src:  "select * from Customer where id in customer_ids",
			vars: qbsql.Vars{"customer_ids": []int{5, 6}},
			want: "select * from Customer where Id IN ('5', '6')",
		},
		{
			name: "parenthesized variable",
			src:  "select * from Customer where id in (customer_ids)",
			vars: qbsql.Vars{"customer_ids": []string{"7"}},
			want: "select * from Customer where Id IN ('7')",
		},
		{
			name: "scalar bound in sequence position",
			src:  "select * from Customer where id in customer_ids",
			vars: qbsql.Vars{"customer_ids": 9},
			want: "select * from Customer where Id IN ('9')",
		},
		{
			name: "nested wire path",
			src:  "select * from Customer where created_at > '2024-01-01'",
			want: "select * from Customer where MetaData.CreateTime > '2024-01-01'",
		},
		{
			name: "enum membership",
			src:  "select * from Customer where email_status = 'EmailSent'",
			want: "select * from Customer where EmailStatus = 'EmailSent'",
		},
		{
			name: "embedded quote doubled",
			src:  "select * from Customer where display_name = 'O''Malley'",
			want: "select * from Customer where DisplayName = 'O''Malley'",
		},
		{
			name: "limit and offset",
			src:  "select * from Invoice limit 10 offset 20",
			want: "select * from Invoice LIMIT 10 OFFSET 20",
		},
		{
			name: "order direction defaults to asc",
			src:  "select * from Customer order by display_name",
			want: "select * from Customer order by DisplayName ASC",
		},
		{
			name: "order items preserved in source order",
			src:  "select * from Customer order by balance desc, display_name",
			want: "select * from Customer order by Balance DESC, DisplayName ASC",
		},
		{
			name: "wire override",
			src:  "select doc_number, total from Invoice where total > 250.50",
			want: "select DocNumber, TotalAmt from Invoice where TotalAmt > '250.5'",
		},
		{
			name: "keywords case-insensitive",
			src:  "SELECT * FROM Customer WHERE balance < 50 ORDER BY id DESC LIMIT 1",
			want: "select * from Customer where Balance < '50' order by Id DESC LIMIT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := []qbsql.Option{qbsql.WithSchema(testSchema())}
			if tt.vars != nil {
				opts = append(opts, qbsql.WithVars(tt.vars))
			}
			got, err := qbsql.CompileString(tt.src, opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestCompileErrors covers the bind-stage error taxonomy.
func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		vars  qbsql.Vars
		check func(error) bool
	}{
		{
			name:  "unknown entity",
			src:   "select * from Custmer",
			check: qbsql.IsUnknownEntity,
		},
		{
			name:  "unknown select field",
			src:   "select nickname from Customer",
			check: qbsql.IsUnknownField,
		},
		{
			name:  "unknown where field",
			src:   "select * from Customer where nickname = 'x'",
			check: qbsql.IsUnknownField,
		},
		{
			name:  "unknown order field",
			src:   "select * from Customer order by nickname",
			check: qbsql.IsUnknownField,
		},
		{
			name:  "unbound variable without resolver",
			src:   "select * from Customer where balance > min_balance",
			check: qbsql.IsUnboundVariable,
		},
		{
			name:  "unbound variable missing from vars",
			src:   "select * from Customer where balance > min_balance",
			vars:  qbsql.Vars{"max_balance": 10},
			check: qbsql.IsUnboundVariable,
		},
		{
			name:  "like on numeric",
			src:   "select * from Customer where balance like '10%'",
			check: qbsql.IsTypeMismatch,
		},
		{
			name:  "ordering operator on bool",
			src:   "select * from Customer where active > true",
			check: qbsql.IsTypeMismatch,
		},
		{
			name:  "string literal into numeric",
			src:   "select * from Customer where balance = 'abc'",
			check: qbsql.IsTypeMismatch,
		},
		{
			name:  "bool literal into string",
			src:   "select * from Customer where display_name = true",
			check: qbsql.IsTypeMismatch,
		},
		{
			name:  "enum value not in set",
			src:   "select * from Customer where email_status = 'Bounced'",
			check: qbsql.IsTypeMismatch,
		},
		{
			name:  "sequence variable in scalar position",
			src:   "select * from Customer where balance = nums",
			vars:  qbsql.Vars{"nums": []int{1, 2}},
			check: qbsql.IsTypeMismatch,
		},
		{
			name:  "empty resolved in list",
			src:   "select * from Customer where id in customer_ids",
			vars:  qbsql.Vars{"customer_ids": []int{}},
			check: qbsql.IsEmptyInList,
		},
		{
			name:  "mixed in list with illegal element",
			src:   "select * from Customer where id in (1, 'x')",
			check: qbsql.IsTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := []qbsql.Option{qbsql.WithSchema(testSchema())}
			if tt.vars != nil {
				opts = append(opts, qbsql.WithVars(tt.vars))
			}
			_, err := qbsql.CompileString(tt.src, opts...)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

// TestCompileConfig covers option validation.
func TestCompileConfig(t *testing.T) {
	t.Parallel()

	t.Run("no schema", func(t *testing.T) {
		t.Parallel()
		_, err := qbsql.Compile("select * from Customer")
		assert.True(t, qbsql.IsConfigError(err))
	})

	t.Run("nil schema", func(t *testing.T) {
		t.Parallel()
		_, err := qbsql.Compile("select * from Customer", qbsql.WithSchema(nil))
		assert.True(t, qbsql.IsConfigError(err))
	})

	t.Run("nil resolver", func(t *testing.T) {
		t.Parallel()
		_, err := qbsql.Compile("select * from Customer",
			qbsql.WithSchema(testSchema()), qbsql.WithResolver(nil))
		assert.True(t, qbsql.IsConfigError(err))
	})

	t.Run("negative cache ttl", func(t *testing.T) {
		t.Parallel()
		_, err := qbsql.NewCompiler(
			qbsql.WithSchema(testSchema()), qbsql.WithCacheTTL(-1))
		assert.True(t, qbsql.IsConfigError(err))
	})
}

// TestCompileDuplicateWire verifies that two select spellings resolving to
// one wire name are rejected.
func TestCompileDuplicateWire(t *testing.T) {
	t.Parallel()

	reg := schema.MustRegistry(
		schema.MustEntity("Payment",
			field.Numeric("id"),
			field.Numeric("total").Wire("TotalAmt"),
			field.Numeric("total_amt"),
		),
	)
	_, err := qbsql.Compile("select total, total_amt from Payment", qbsql.WithSchema(reg))
	require.Error(t, err)
	assert.True(t, qbsql.IsDuplicateField(err))

	var dup *qbsql.DuplicateFieldError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "TotalAmt", dup.Wire())
}

// TestParse exposes the unbound AST without schema validation.
func TestParse(t *testing.T) {
	t.Parallel()

	stmt, err := qbsql.Parse("select anything from Anywhere")
	require.NoError(t, err)
	assert.Equal(t, "Anywhere", stmt.Entity.Name)
	require.Len(t, stmt.Fields, 1)
	assert.Equal(t, "anything", stmt.Fields[0].Name)
}

// TestCompileDeterminism verifies that equal inputs produce byte-identical
// output, which is what makes the compile cache sound.
func TestCompileDeterminism(t *testing.T) {
	t.Parallel()

	const src = "select display_name from Customer where id in ids order by id desc"
	vars := qbsql.Vars{"ids": []int{3, 1, 2}}

	first, err := qbsql.CompileString(src, qbsql.WithSchema(testSchema()), qbsql.WithVars(vars))
	require.NoError(t, err)
	second, err := qbsql.CompileString(src, qbsql.WithSchema(testSchema()), qbsql.WithVars(vars))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	q, err := qbsql.Compile(src, qbsql.WithSchema(testSchema()), qbsql.WithVars(vars))
	require.NoError(t, err)
	assert.Equal(t, q.String(), q.String())
}

// countingCache wraps a Cache and counts traffic so tests can tell hits
// from recompilations.
type countingCache struct {
	qbsql.Cache
	gets int
	hits int
	sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.gets++
	data, err := c.Cache.Get(ctx, key)
	if err == nil && data != nil {
		c.hits++
	}
	return data, err
}

func (c *countingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, value, ttl)
}

// funcResolver is a non-map Resolver; compilation through it must bypass
// the cache.
type funcResolver struct{}

func (funcResolver) Scalar(string) (any, error)     { return 1000, nil }
func (funcResolver) Sequence(string) ([]any, error) { return []any{1, 2}, nil }

// TestCompiler covers the reusable pipeline and its cache interplay.
func TestCompiler(t *testing.T) {
	t.Parallel()

	t.Run("requires schema", func(t *testing.T) {
		t.Parallel()
		_, err := qbsql.NewCompiler()
		assert.True(t, qbsql.IsConfigError(err))
	})

	t.Run("compile", func(t *testing.T) {
		t.Parallel()
		c, err := qbsql.NewCompiler(qbsql.WithSchema(testSchema()))
		require.NoError(t, err)
		q, err := c.Compile(context.Background(), "select * from Customer where balance > 5")
		require.NoError(t, err)
		assert.Equal(t, "select * from Customer where Balance > '5'", q.String())
	})

	t.Run("compile string memoizes", func(t *testing.T) {
		t.Parallel()
		cc := &countingCache{Cache: qbsql.NewMemoryCache()}
		c, err := qbsql.NewCompiler(
			qbsql.WithSchema(testSchema()),
			qbsql.WithVars(qbsql.Vars{"min": 100}),
			qbsql.WithCache(cc),
		)
		require.NoError(t, err)

		const src = "select * from Customer where balance >= min"
		ctx := context.Background()

		first, err := c.CompileString(ctx, src)
		require.NoError(t, err)
		assert.Equal(t, "select * from Customer where Balance >= '100'", first)
		assert.Equal(t, 1, cc.sets)
		assert.Equal(t, 0, cc.hits)

		second, err := c.CompileString(ctx, src)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, cc.sets, "hit must not re-store")
		assert.Equal(t, 1, cc.hits)
	})

	t.Run("custom resolver bypasses cache", func(t *testing.T) {
		t.Parallel()
		cc := &countingCache{Cache: qbsql.NewMemoryCache()}
		c, err := qbsql.NewCompiler(
			qbsql.WithSchema(testSchema()),
			qbsql.WithResolver(funcResolver{}),
			qbsql.WithCache(cc),
		)
		require.NoError(t, err)

		ctx := context.Background()
		for range 2 {
			_, err := c.CompileString(ctx, "select * from Customer where balance >= min")
			require.NoError(t, err)
		}
		assert.Zero(t, cc.gets)
		assert.Zero(t, cc.sets)
	})

	t.Run("distinct vars get distinct entries", func(t *testing.T) {
		t.Parallel()
		mem := qbsql.NewMemoryCache()
		const src = "select * from Customer where balance >= min"
		ctx := context.Background()

		for _, min := range []int{10, 20} {
			c, err := qbsql.NewCompiler(
				qbsql.WithSchema(testSchema()),
				qbsql.WithVars(qbsql.Vars{"min": min}),
				qbsql.WithCache(mem),
			)
			require.NoError(t, err)
			s, err := c.CompileString(ctx, src)
			require.NoError(t, err)
			assert.Contains(t, s, "'"+strconv.Itoa(min)+"'")
		}
		assert.Equal(t, 2, mem.Len())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		mem := qbsql.NewMemoryCache()
		c, err := qbsql.NewCompiler(qbsql.WithSchema(testSchema()), qbsql.WithCache(mem))
		require.NoError(t, err)

		_, err = c.CompileString(context.Background(), "select * from Nowhere")
		require.Error(t, err)
		assert.Zero(t, mem.Len())
	})
}
