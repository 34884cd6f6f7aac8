// internal/ddl/column.go
package ddl

import (
	"fmt"
	"sort"
	"strings"
)

// Keys recognised in a column specification, compared case-insensitively.
const (
	keyColName     = "colname"
	keyDataType    = "datatype"
	keyConstraints = "constraints"
)

// ConstraintKind tags the shape of the constraints value.
type ConstraintKind int

const (
	ConstraintNone ConstraintKind = iota
	ConstraintSingle
	ConstraintMany
	ConstraintInvalid
)

// Constraints is the parsed form of the optional constraints value.
type Constraints struct {
	Kind   ConstraintKind
	Single string
	Many   []string
	Raw    any
}

// ParseConstraints decides the variant once, at the input boundary.
// A sequence may hold strings or nulls; anything else is Invalid.
func ParseConstraints(v any) Constraints {
	switch c := v.(type) {
	case nil:
		return Constraints{Kind: ConstraintNone}
	case string:
		return Constraints{Kind: ConstraintSingle, Single: c}
	case []string:
		return Constraints{Kind: ConstraintMany, Many: c}
	case []any:
		many := make([]string, 0, len(c))
		for _, item := range c {
			switch s := item.(type) {
			case nil:
				many = append(many, "")
			case string:
				many = append(many, s)
			default:
				return Constraints{Kind: ConstraintInvalid, Raw: v}
			}
		}
		return Constraints{Kind: ConstraintMany, Many: many}
	}
	return Constraints{Kind: ConstraintInvalid, Raw: v}
}

// suffix renders the constraints with a single leading space before each
// non-blank entry.
func (c Constraints) suffix() string {
	var b strings.Builder
	switch c.Kind {
	case ConstraintSingle:
		if strings.TrimSpace(c.Single) != "" {
			b.WriteString(" ")
			b.WriteString(c.Single)
		}
	case ConstraintMany:
		for _, s := range c.Many {
			if strings.TrimSpace(s) == "" {
				continue
			}
			b.WriteString(" ")
			b.WriteString(s)
		}
	}
	return b.String()
}

// Column is a normalized column specification.
type Column struct {
	Name        string
	DataType    string
	Constraints Constraints
}

// Definition renders "<name> <type>[ <constraints>]".
func (c Column) Definition() string {
	return c.Name + " " + c.DataType + c.Constraints.suffix()
}

// lowerKeys copies spec into a fresh map keyed by lower-cased key.
// When two keys differ only in case, the one sorting first wins, so the
// result does not depend on map iteration order.
func lowerKeys(spec map[string]any) map[string]any {
	keys := make([]string, 0, len(spec))
	for k := range spec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(spec))
	for _, k := range keys {
		lk := strings.ToLower(k)
		if _, seen := out[lk]; seen {
			continue
		}
		out[lk] = spec[k]
	}
	return out
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	}
	return fmt.Sprint(v)
}

// NormalizeColumn turns one raw specification into a Column.
// ok is false when the specification is empty and must be skipped.
func NormalizeColumn(spec map[string]any) (col Column, ok bool, err error) {
	if len(spec) == 0 {
		return Column{}, false, nil
	}
	view := lowerKeys(spec)

	col.Name = stringValue(view[keyColName])
	col.DataType = stringValue(view[keyDataType])
	if strings.TrimSpace(col.Name) == "" || strings.TrimSpace(col.DataType) == "" {
		return Column{}, false, &ValidationError{Message: MsgBlankColumnField}
	}

	col.Constraints = ParseConstraints(view[keyConstraints])
	if col.Constraints.Kind == ConstraintInvalid {
		return Column{}, false, newValidationError("Invalid constraint type '%v' passed in column '%s'", col.Constraints.Raw, col.Name)
	}
	return col, true, nil
}

// NormalizeColumns normalizes every specification in order, skipping empty
// ones. The first invalid specification fails the whole list.
func NormalizeColumns(specs []map[string]any) ([]Column, error) {
	cols := make([]Column, 0, len(specs))
	for _, spec := range specs {
		col, ok, err := NormalizeColumn(spec)
		if err != nil {
			return nil, err
		}
		if ok {
			cols = append(cols, col)
		}
	}
	return cols, nil
}

// ColumnDefinitions joins the column definitions with "," and no padding.
func ColumnDefinitions(cols []Column) string {
	defs := make([]string, len(cols))
	for i, col := range cols {
		defs[i] = col.Definition()
	}
	return strings.Join(defs, ",")
}
