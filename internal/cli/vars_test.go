package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qbsql "github.com/Exotik850/quick-oxibooks-sql"
)

func TestParseVarFlags(t *testing.T) {
	t.Run("typed scalars", func(t *testing.T) {
		vars, err := ParseVarFlags([]string{
			"min=1000",
			"rate=0.5",
			"active=true",
			"archived=false",
			"name=Acme",
		})
		require.NoError(t, err)

		assert.Equal(t, qbsql.Vars{
			"min":      int64(1000),
			"rate":     0.5,
			"active":   true,
			"archived": false,
			"name":     "Acme",
		}, vars)
	})

	t.Run("quoted values stay strings", func(t *testing.T) {
		vars, err := ParseVarFlags([]string{
			"id='42'",
			`status="NeedToSend"`,
			"name='Acme, Inc.'",
		})
		require.NoError(t, err)

		assert.Equal(t, "42", vars["id"])
		assert.Equal(t, "NeedToSend", vars["status"])
		assert.Equal(t, "Acme, Inc.", vars["name"])
	})

	t.Run("comma lists become sequences", func(t *testing.T) {
		vars, err := ParseVarFlags([]string{
			"ids=1,2,3",
			"states='CA','NY'",
			"mixed=1,two,3.5",
		})
		require.NoError(t, err)

		assert.Equal(t, []any{int64(1), int64(2), int64(3)}, vars["ids"])
		assert.Equal(t, []any{"CA", "NY"}, vars["states"])
		assert.Equal(t, []any{int64(1), "two", 3.5}, vars["mixed"])
	})

	t.Run("quoted comma does not split", func(t *testing.T) {
		vars, err := ParseVarFlags([]string{"name='Acme, Inc.',Other"})
		require.NoError(t, err)
		assert.Equal(t, []any{"Acme, Inc.", "Other"}, vars["name"])
	})

	t.Run("value may contain equals", func(t *testing.T) {
		vars, err := ParseVarFlags([]string{"formula=a=b"})
		require.NoError(t, err)
		assert.Equal(t, "a=b", vars["formula"])
	})

	t.Run("no flags means no vars", func(t *testing.T) {
		vars, err := ParseVarFlags(nil)
		require.NoError(t, err)
		assert.Nil(t, vars)
	})

	t.Run("missing equals", func(t *testing.T) {
		_, err := ParseVarFlags([]string{"oops"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected name=value")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := ParseVarFlags([]string{"=5"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty name")
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := ParseVarFlags([]string{"min=1", "min=2"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `variable "min" set twice`)
	})
}

func TestParseScalar(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"integer", "42", int64(42)},
		{"negative integer", "-7", int64(-7)},
		{"float", "3.14", 3.14},
		{"bool true", "true", true},
		{"bool false", "false", false},
		{"bare string", "Acme", "Acme"},
		{"single quoted number", "'42'", "42"},
		{"double quoted bool", `"true"`, "true"},
		{"surrounding space trimmed", "  10 ", int64(10)},
		{"empty", "", ""},
		{"lone quote", "'", "'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseScalar(tt.raw))
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single value", "a", []string{"a"}},
		{"plain split", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma kept", "'a,b',c", []string{"'a,b'", "c"}},
		{"double quoted comma kept", `"a,b",c`, []string{`"a,b"`, "c"}},
		{"empty", "", []string{""}},
		{"trailing comma", "a,", []string{"a", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.raw))
		})
	}
}
