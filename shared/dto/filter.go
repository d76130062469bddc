package dto

import (
	"fmt"
	"maps"
	"strings"
)

const (
	FilterOperatorEq     = "eq"
	FilterOperatorLessEq = "less_eq"
)

const FilterGroupOperatorAnd = "AND"

var comparisons = map[string]string{
	FilterOperatorEq:     "=",
	FilterOperatorLessEq: "<=",
}

// Filter compares one column against a named argument.
type Filter struct {
	Field    string
	Value    any
	Operator string
	Table    string
}

// GetWhereClause renders the comparison and its argument. An unknown
// operator renders nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	comparison, ok := comparisons[f.Operator]
	if !ok {
		return "", args
	}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	args[f.Field] = f.Value

	return fmt.Sprintf("%s %s :%s", column, comparison, f.Field), args
}

// FilterGroup joins its filters with Operator, AND when unset.
type FilterGroup struct {
	Filters  []Filter
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, filter := range f.Filters {
		where, arg := filter.GetWhereClause()
		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return fmt.Sprintf("(%s)", strings.Join(clauses, " "+operator+" ")), args
}
