// Package predicate expresses optional query filters as values and renders
// them into parameterized SQL. Column names come from repository constants and
// are checked against an identifier pattern; every value is a bound argument.
package predicate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// SQLiteLowerFunc is the Unicode-aware lower-casing function the SQLite store
// registers. SQLite's built-in LOWER only folds ASCII.
const SQLiteLowerFunc = "unicode_lower"

func lowerFunc(d Dialect) string {
	if d == SQLite {
		return SQLiteLowerFunc
	}
	return "LOWER"
}

// Placeholder returns the n-th (1-based) bind marker for the dialect.
func Placeholder(d Dialect, n int) string {
	if d == SQLite {
		return "?" + strconv.Itoa(n)
	}
	return "$" + strconv.Itoa(n)
}

type Predicate interface {
	render(b *builder) (string, error)
}

// Eq matches Column = Value.
type Eq struct {
	Column string
	Value  any
}

// ContainsFold matches rows where any of Columns contains Term as a
// case-insensitive literal substring.
type ContainsFold struct {
	Columns []string
	Term    string
}

type and []Predicate

// And combines predicates. Nil entries are skipped.
func And(preds ...Predicate) Predicate {
	out := make(and, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)?$`)

type builder struct {
	dialect Dialect
	offset  int
	args    []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return Placeholder(b.dialect, b.offset+len(b.args))
}

func checkColumn(column string) error {
	if !identifierPattern.MatchString(column) {
		return fmt.Errorf("predicate: invalid column %q", column)
	}
	return nil
}

func (p Eq) render(b *builder) (string, error) {
	if err := checkColumn(p.Column); err != nil {
		return "", err
	}
	return p.Column + " = " + b.bind(p.Value), nil
}

func (p ContainsFold) render(b *builder) (string, error) {
	if len(p.Columns) == 0 {
		return "", fmt.Errorf("predicate: ContainsFold needs at least one column")
	}
	marker := b.bind("%" + EscapeLike(strings.ToLower(p.Term)) + "%")
	parts := make([]string, 0, len(p.Columns))
	for _, column := range p.Columns {
		if err := checkColumn(column); err != nil {
			return "", err
		}
		parts = append(parts, lowerFunc(b.dialect)+"("+column+") LIKE "+marker+` ESCAPE '\'`)
	}
	return "(" + strings.Join(parts, " OR ") + ")", nil
}

func (p and) render(b *builder) (string, error) {
	parts := make([]string, 0, len(p))
	for _, child := range p {
		sql, err := child.render(b)
		if err != nil {
			return "", err
		}
		if sql != "" {
			parts = append(parts, sql)
		}
	}
	return strings.Join(parts, " AND "), nil
}

// Build renders p for dialect. Bind markers start after argOffset existing
// arguments. An empty predicate yields an empty clause.
func Build(d Dialect, p Predicate, argOffset int) (string, []any, error) {
	if p == nil {
		return "", nil, nil
	}
	b := &builder{dialect: d, offset: argOffset}
	sql, err := p.render(b)
	if err != nil {
		return "", nil, err
	}
	return sql, b.args, nil
}

// Where is Build with a leading "WHERE " when the clause is non-empty.
func Where(d Dialect, p Predicate, argOffset int) (string, []any, error) {
	sql, args, err := Build(d, p, argOffset)
	if err != nil || sql == "" {
		return "", args, err
	}
	return " WHERE " + sql, args, nil
}

// EscapeLike escapes LIKE wildcards so the term matches literally.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
