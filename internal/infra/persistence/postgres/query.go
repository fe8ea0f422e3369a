package postgres

import (
	"context"
	"strings"

	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scope = func(*gorm.DB) *gorm.DB

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchScope matches term case-insensitively as a substring of any column.
func searchScope(term string, columns ...string) scope {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}

		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		conds := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, col := range columns {
			conds = append(conds, "LOWER("+col+`) LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}

		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// findPage counts and loads one page of M matching the scopes.
func findPage[M any](ctx context.Context, db *gorm.DB, params repository.ListParams, order string, scopes ...scope) ([]M, int64, error) {
	base := db.WithContext(ctx).Model(new(M)).Scopes(scopes...).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count records")
	}

	var rows []M
	q := base.Order(order).Offset(params.Skip)
	if params.Limit > 0 {
		q = q.Limit(params.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list records")
	}

	return rows, total, nil
}

// deleteByID removes one row and reports notFound when nothing matched.
func deleteByID[M any](ctx context.Context, db *gorm.DB, id uuid.UUID, notFound *domainerrors.BaseError) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if res.Error != nil {
		return domainerrors.NewDatabaseExecuteError(res.Error, "failed to delete record")
	}
	if res.RowsAffected == 0 {
		return notFound
	}

	return nil
}

// saveExisting updates every column of an existing row. Save would insert a
// missing row, so existence is checked through RowsAffected instead.
func saveExisting[M any](ctx context.Context, db *gorm.DB, id uuid.UUID, m *M, notFound, conflict *domainerrors.BaseError) error {
	res := db.WithContext(ctx).Model(m).Where("id = ?", id).Select("*").Omit("id", "created_at").Updates(m)
	if res.Error != nil {
		return translateWriteError(res.Error, conflict, "failed to update record")
	}
	if res.RowsAffected == 0 {
		return notFound
	}

	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
