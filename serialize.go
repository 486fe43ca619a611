package qbsql

import (
	"strconv"
	"strings"
)

// String returns the wire form of the query. Serialization is total and
// deterministic: clause keywords are lowercase, word operators and
// LIMIT/OFFSET uppercase, every value single-quoted with embedded quotes
// doubled, and omitted clauses produce no text at all.
func (q *Query) String() string {
	var sb strings.Builder
	sb.WriteString("select ")
	if q.fields == nil {
		sb.WriteByte('*')
	} else {
		sb.WriteString(strings.Join(q.fields, ", "))
	}
	sb.WriteString(" from ")
	sb.WriteString(q.entity)
	if len(q.conds) > 0 {
		sb.WriteString(" where ")
		for i, c := range q.conds {
			if i > 0 {
				sb.WriteString(" and ")
			}
			writeCondition(&sb, c)
		}
	}
	if len(q.orderBy) > 0 {
		sb.WriteString(" order by ")
		for i, o := range q.orderBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(o.Field)
			sb.WriteByte(' ')
			sb.WriteString(o.Dir.String())
		}
	}
	if q.limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.FormatInt(*q.limit, 10))
	}
	if q.offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.FormatInt(*q.offset, 10))
	}
	return sb.String()
}

func writeCondition(sb *strings.Builder, c Condition) {
	sb.WriteString(c.Field)
	sb.WriteByte(' ')
	sb.WriteString(c.Op.String())
	sb.WriteByte(' ')
	if c.Op == OpIn {
		sb.WriteByte('(')
		for i, v := range c.Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, v, c.Bare)
		}
		sb.WriteByte(')')
		return
	}
	writeValue(sb, c.Values[0], c.Bare)
}

// writeValue single-quotes v, doubling embedded quotes, or writes it bare
// for fields whose schema opts out of quoting.
func writeValue(sb *strings.Builder, v string, bare bool) {
	if bare {
		sb.WriteString(v)
		return
	}
	sb.WriteByte('\'')
	sb.WriteString(strings.ReplaceAll(v, "'", "''"))
	sb.WriteByte('\'')
}
