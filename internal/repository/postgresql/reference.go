package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// Helpers shared by the reference data repositories. table and column arguments are
// always package constants, never request input.

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// listQuery collects WHERE conditions and their positional arguments.
type listQuery struct {
	where []string
	args  []interface{}
}

func (l *listQuery) add(cond string, arg interface{}) {
	l.args = append(l.args, arg)
	l.where = append(l.where, fmt.Sprintf(cond, len(l.args)))
}

func (l *listQuery) addContains(column string, value *string) {
	if value != nil && *value != "" {
		l.add(column+` ILIKE $%d`, containsPattern(*value))
	}
}

func (l *listQuery) addEquals(column string, value *string) {
	if value != nil && *value != "" {
		l.add(column+` = $%d`, *value)
	}
}

func (l *listQuery) whereClause() string {
	if len(l.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(l.where, " AND ")
}

// page appends ORDER BY, LIMIT and OFFSET. filter must already be validated.
func (l *listQuery) page(alias string, filter master.ListFilter) string {
	column := alias + "." + filter.SortBy
	direction := "ASC"
	if filter.SortOrder == "desc" {
		direction = "DESC"
	}
	l.args = append(l.args, filter.Limit, filter.Offset())
	return fmt.Sprintf(" ORDER BY %s %s, %s.id LIMIT $%d OFFSET $%d", column, direction, alias, len(l.args)-1, len(l.args))
}

func (l *listQuery) count(ctx context.Context, q database.Querier, from string) (int64, error) {
	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+from+l.whereClause(), l.args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func queryLookupItems(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]master.LookupItem, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]master.LookupItem, 0)
	for rows.Next() {
		var item master.LookupItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func lookupAll(ctx context.Context, q database.Querier, table string) ([]master.LookupItem, error) {
	items, err := queryLookupItems(ctx, q, "SELECT id, name FROM "+table+" ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", table, err)
	}
	return items, nil
}

func searchByName(ctx context.Context, q database.Querier, table string, term string, limit int, offset int) ([]master.LookupItem, error) {
	query := "SELECT id, name FROM " + table + ` WHERE name ILIKE $1 ORDER BY name, id LIMIT $2 OFFSET $3`
	items, err := queryLookupItems(ctx, q, query, containsPattern(term), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", table, err)
	}
	return items, nil
}

func existsByID(ctx context.Context, q database.Querier, table string, id string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM "+table+" WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", table, err)
	}
	return exists, nil
}

// deleteByID returns pgx.ErrNoRows when nothing was deleted and inUse when other rows still reference id.
func deleteByID(ctx context.Context, q database.Querier, table string, id string, inUse error) error {
	tag, err := q.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return inUse
		}
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// singleRowErr keeps pgx.ErrNoRows visible to callers and wraps everything else.
func singleRowErr(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
