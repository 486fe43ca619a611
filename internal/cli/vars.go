package cli

import (
	"fmt"
	"strconv"
	"strings"

	qbsql "github.com/Exotik850/quick-oxibooks-sql"
)

// ParseVarFlags parses repeated --var name=value flags into a variable map.
// Values are typed: booleans, integers and floats are converted, quoted text
// stays a string, and comma-separated values become sequences.
func ParseVarFlags(pairs []string) (qbsql.Vars, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(qbsql.Vars, len(pairs))
	for _, pair := range pairs {
		name, value, err := parseVarFlag(pair)
		if err != nil {
			return nil, err
		}
		if _, ok := vars[name]; ok {
			return nil, fmt.Errorf("variable %q set twice", name)
		}
		vars[name] = value
	}
	return vars, nil
}

// parseVarFlag splits one name=value pair and types the value.
func parseVarFlag(pair string) (string, any, error) {
	name, raw, ok := strings.Cut(pair, "=")
	if !ok {
		return "", nil, fmt.Errorf("invalid variable %q: expected name=value", pair)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("invalid variable %q: empty name", pair)
	}

	items := splitList(raw)
	if len(items) == 1 {
		return name, parseScalar(items[0]), nil
	}
	values := make([]any, len(items))
	for i, item := range items {
		values[i] = parseScalar(item)
	}
	return name, values, nil
}

// splitList splits raw on commas that sit outside quotes.
func splitList(raw string) []string {
	var (
		items []string
		start int
		quote rune
	)
	for i, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ',':
			items = append(items, raw[start:i])
			start = i + 1
		}
	}
	return append(items, raw[start:])
}

// parseScalar types one value. Quoted text is unwrapped and kept a string;
// everything else is tried as a boolean, an integer, then a float.
func parseScalar(raw string) any {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
