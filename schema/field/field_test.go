package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Exotik850/quick-oxibooks-sql/schema/field"
)

func TestString(t *testing.T) {
	t.Parallel()

	fd := field.String("display_name").Descriptor()
	require.NoError(t, fd.Err)
	assert.Equal(t, "display_name", fd.Name)
	assert.Equal(t, field.KindString, fd.Kind)
	assert.Equal(t, "DisplayName", fd.WireName())
	assert.False(t, fd.Bare)

	fd = field.String("fully_qualified_name").Wire("FullyQualifiedName").Descriptor()
	assert.Equal(t, "FullyQualifiedName", fd.WireName())
}

func TestNumeric(t *testing.T) {
	t.Parallel()

	fd := field.Numeric("balance").Descriptor()
	require.NoError(t, fd.Err)
	assert.Equal(t, field.KindNumeric, fd.Kind)
	assert.Equal(t, "Balance", fd.WireName())
}

func TestBool(t *testing.T) {
	t.Parallel()

	fd := field.Bool("active").Descriptor()
	require.NoError(t, fd.Err)
	assert.Equal(t, field.KindBool, fd.Kind)
	assert.False(t, fd.Bare)

	fd = field.Bool("active").Bare().Descriptor()
	assert.True(t, fd.Bare)
}

func TestDate(t *testing.T) {
	t.Parallel()

	fd := field.Date("txn_date").Descriptor()
	require.NoError(t, fd.Err)
	assert.Equal(t, field.KindDate, fd.Kind)
	assert.Equal(t, "TxnDate", fd.WireName())
}

func TestEnum(t *testing.T) {
	t.Parallel()

	fd := field.Enum("email_status").Values("EmailSent", "NotSet").Descriptor()
	require.NoError(t, fd.Err)
	assert.Equal(t, field.KindEnum, fd.Kind)
	assert.Equal(t, []string{"EmailSent", "NotSet"}, fd.Values)

	fd = field.Enum("email_status").Descriptor()
	require.Error(t, fd.Err)
	assert.Contains(t, fd.Err.Error(), "declares no values")
}

func TestEmptyName(t *testing.T) {
	t.Parallel()

	fd := field.String("").Descriptor()
	require.Error(t, fd.Err)
	assert.Contains(t, fd.Err.Error(), "field name cannot be empty")
}

func TestWireNameDerivation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"id", "Id"},
		{"display_name", "DisplayName"},
		{"balance", "Balance"},
		{"meta_data.create_time", "MetaData.CreateTime"},
		{"doc_number", "DocNumber"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd := field.String(tt.name).Descriptor()
			assert.Equal(t, tt.want, fd.WireName())
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r := field.Bool("active").Bare().Descriptor().Resolve()
	assert.Equal(t, "Active", r.Wire)
	assert.Equal(t, field.KindBool, r.Kind)
	assert.True(t, r.Bare)

	r = field.Enum("status").Values("Open", "Closed").Descriptor().Resolve()
	assert.Equal(t, []string{"Open", "Closed"}, r.Values)
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want field.Kind
	}{
		{"string", field.KindString},
		{"numeric", field.KindNumeric},
		{"number", field.KindNumeric},
		{"float", field.KindNumeric},
		{"int", field.KindNumeric},
		{"bool", field.KindBool},
		{"Boolean", field.KindBool},
		{"date", field.KindDate},
		{"datetime", field.KindDate},
		{"enum", field.KindEnum},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, err := field.ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
		})
	}

	_, err := field.ParseKind("uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field kind "uuid"`)
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string", field.KindString.String())
	assert.Equal(t, "numeric", field.KindNumeric.String())
	assert.Equal(t, "bool", field.KindBool.String())
	assert.Equal(t, "date", field.KindDate.String())
	assert.Equal(t, "enum", field.KindEnum.String())
	assert.Equal(t, "invalid", field.Kind(99).String())
}
