package postgres

import (
	"fmt"
	"strings"

	"jobflix-backend/internal/domain"
)

// whereBuilder collects AND-ed predicates and their positional arguments.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) add(clause string) {
	b.clauses = append(b.clauses, clause)
}

func (b *whereBuilder) sql() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// buildJobFilter translates filter into a WHERE clause with the same semantics as
// domain.JobFilter.Matches.
func buildJobFilter(filter domain.JobFilter) (string, []any) {
	b := &whereBuilder{}
	b.add("is_active = TRUE")

	if filter.Search != "" {
		p := b.arg(likePattern(filter.Search))
		b.add(fmt.Sprintf(
			"(title ILIKE %[1]s OR description ILIKE %[1]s OR company ILIKE %[1]s OR EXISTS (SELECT 1 FROM unnest(skills) AS s WHERE s ILIKE %[1]s))",
			p,
		))
	}
	if filter.Location != "" {
		b.add("location ILIKE " + b.arg(likePattern(filter.Location)))
	}
	if filter.Type != "" {
		b.add("type = " + b.arg(filter.Type))
	}
	if filter.Level != "" {
		b.add("level = " + b.arg(filter.Level))
	}
	if filter.Category != "" {
		b.add("category = " + b.arg(filter.Category))
	}
	if floor, ok := filter.MinSalary(); ok {
		b.add("salary_max IS NOT NULL AND salary_max >= " + b.arg(floor))
	}
	if ceiling, ok := filter.MaxSalary(); ok {
		b.add("salary_min IS NOT NULL AND salary_min <= " + b.arg(ceiling))
	}
	return b.sql(), b.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a literal substring match.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
