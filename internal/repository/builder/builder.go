// Package builder assembles PostgreSQL statements with "?" placeholders
// rewritten to positional "$n" arguments.
package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder helps construct SQL queries dynamically.
type SQLBuilder struct {
	table      string
	columns    []string
	valueRows  [][]interface{}
	where      []string
	args       []interface{}
	orderBy    []string
	limit      int
	offset     int
	updateCols []string
	onConflict string
	returning  []string
	isInsert   bool
	isUpdate   bool
	isDelete   bool
	isSelect   bool

	orConditions  []condition
	whereGroups   []*SQLBuilder
	rawConditions []condition
}

type condition struct {
	sql  string
	args []interface{}
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.isSelect = true
	b.columns = cols
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// Update specifies the table to update.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.isUpdate = true
	b.table = table
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.isDelete = true
	b.table = table
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Set specifies the columns and values for update.
func (b *SQLBuilder) Set(col string, val interface{}) *SQLBuilder {
	b.updateCols = append(b.updateCols, col)
	b.args = append(b.args, val)
	return b
}

// Values adds one row of values for insertion. Call it once per row for a
// multi-row insert.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.valueRows = append(b.valueRows, vals)
	b.args = append(b.args, vals...)
	return b
}

// OnConflict appends an ON CONFLICT clause to an insert, e.g.
// "(staff_id, day_of_week) DO UPDATE SET shift_type = EXCLUDED.shift_type".
func (b *SQLBuilder) OnConflict(clause string) *SQLBuilder {
	b.onConflict = clause
	return b
}

// OnConflictUpdate is OnConflict for the common "replace these columns" case.
func (b *SQLBuilder) OnConflictUpdate(conflictCols []string, updateCols ...string) *SQLBuilder {
	sets := make([]string, len(updateCols))
	for i, c := range updateCols {
		sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", c, c)
	}
	return b.OnConflict(fmt.Sprintf("(%s) DO UPDATE SET %s",
		strings.Join(conflictCols, ", "), strings.Join(sets, ", ")))
}

// Returning adds a RETURNING clause to insert, update and delete statements.
func (b *SQLBuilder) Returning(cols ...string) *SQLBuilder {
	b.returning = cols
	return b
}

// Where adds a condition to the query.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.args = append(b.args, args...)
	return b
}

// OrderBy adds an ORDER BY clause.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Limit adds a LIMIT clause.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// Offset adds an OFFSET clause.
func (b *SQLBuilder) Offset(offset int) *SQLBuilder {
	b.offset = offset
	return b
}

// Or adds an OR condition to the query.
func (b *SQLBuilder) Or(cond string, args ...interface{}) *SQLBuilder {
	b.orConditions = append(b.orConditions, condition{sql: cond, args: args})
	return b
}

// WhereGroup adds a grouped (parenthesized) WHERE condition.
// The provided function receives a new SQLBuilder for building the grouped conditions.
func (b *SQLBuilder) WhereGroup(fn func(*SQLBuilder) *SQLBuilder) *SQLBuilder {
	b.whereGroups = append(b.whereGroups, fn(NewSQLBuilder()))
	return b
}

// WhereRaw adds a raw SQL condition with arguments.
func (b *SQLBuilder) WhereRaw(sql string, args ...interface{}) *SQLBuilder {
	b.rawConditions = append(b.rawConditions, condition{sql: sql, args: args})
	return b
}

// BuildSafe constructs the final SQL string and arguments with safety validation.
// Returns an error if the number of placeholders doesn't match the number of arguments.
func (b *SQLBuilder) BuildSafe() (string, []interface{}, error) {
	sql, args := b.Build()

	placeholderCount := 0
	for i := 1; i <= len(args)+10; i++ {
		if strings.Contains(sql, fmt.Sprintf("$%d", i)) {
			placeholderCount++
		} else if i > len(args) {
			break
		}
	}

	if placeholderCount != len(args) {
		return "", nil, fmt.Errorf("placeholder count (%d) does not match argument count (%d)", placeholderCount, len(args))
	}

	return sql, args, nil
}

// rebind replaces each "?" in cond with the next positional placeholder.
func rebind(cond string, argIndex *int) string {
	var sb strings.Builder
	parts := strings.Split(cond, "?")
	for i, part := range parts {
		sb.WriteString(part)
		if i < len(parts)-1 {
			fmt.Fprintf(&sb, "$%d", *argIndex)
			*argIndex++
		}
	}
	return sb.String()
}

// Build constructs the final SQL string and arguments.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	args := append([]interface{}(nil), b.args...)

	switch {
	case b.isSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
	case b.isInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES ")
		argIndex := 1
		rows := make([]string, len(b.valueRows))
		for r, row := range b.valueRows {
			placeholders := make([]string, len(row))
			for i := range row {
				placeholders[i] = fmt.Sprintf("$%d", argIndex)
				argIndex++
			}
			rows[r] = "(" + strings.Join(placeholders, ", ") + ")"
		}
		sb.WriteString(strings.Join(rows, ", "))
		if b.onConflict != "" {
			sb.WriteString(" ON CONFLICT ")
			sb.WriteString(b.onConflict)
		}
		b.writeReturning(&sb)
		return sb.String(), args
	case b.isUpdate:
		sb.WriteString("UPDATE ")
		sb.WriteString(b.table)
		sb.WriteString(" SET ")
		setClauses := make([]string, len(b.updateCols))
		for i, col := range b.updateCols {
			setClauses[i] = fmt.Sprintf("%s = $%d", col, i+1)
		}
		sb.WriteString(strings.Join(setClauses, ", "))
	case b.isDelete:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	}

	hasWhere := len(b.where) > 0 || len(b.orConditions) > 0 || len(b.whereGroups) > 0 || len(b.rawConditions) > 0
	if hasWhere {
		sb.WriteString(" WHERE ")

		// Update placeholders start after the SET arguments.
		argIndex := 1
		if b.isUpdate {
			argIndex += len(b.updateCols)
		}

		var conditions []string

		// Plain WHERE conditions are combined with AND.
		if len(b.where) > 0 {
			conditions = append(conditions, rebind(strings.Join(b.where, " AND "), &argIndex))
		}

		for _, group := range b.whereGroups {
			var groupConditions []string
			if len(group.where) > 0 {
				groupConditions = append(groupConditions, rebind(strings.Join(group.where, " AND "), &argIndex))
				args = append(args, group.args...)
			}
			for _, c := range group.orConditions {
				groupConditions = append(groupConditions, rebind(c.sql, &argIndex))
				args = append(args, c.args...)
			}
			for _, c := range group.rawConditions {
				groupConditions = append(groupConditions, rebind(c.sql, &argIndex))
				args = append(args, c.args...)
			}
			if len(groupConditions) > 0 {
				conditions = append(conditions, "("+strings.Join(groupConditions, " OR ")+")")
			}
		}

		for _, c := range b.orConditions {
			conditions = append(conditions, rebind(c.sql, &argIndex))
			args = append(args, c.args...)
		}

		for _, c := range b.rawConditions {
			conditions = append(conditions, rebind(c.sql, &argIndex))
			args = append(args, c.args...)
		}

		// Everything that is not a plain WHERE is OR-ed.
		sb.WriteString(strings.Join(conditions, " OR "))
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", b.limit)
	}

	if b.offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", b.offset)
	}

	if !b.isSelect {
		b.writeReturning(&sb)
	}

	return sb.String(), args
}

func (b *SQLBuilder) writeReturning(sb *strings.Builder) {
	if len(b.returning) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(b.returning, ", "))
	}
}
