package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"

	"medtrack/internal/core/id"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "reference", "name"}, func() any { return nil })
}

func TestBaseCatalogRepo_Delete_SQL(t *testing.T) {
	repo := newTestRepo()
	entityID := id.New()

	q := repo.Builder().
		Delete(repo.tableName).
		Where("id = ?", entityID)

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "DELETE FROM test_table WHERE id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 || args[0] != entityID {
		t.Errorf("Args mismatch\nwant: [%v]\ngot:  %v", entityID, args)
	}
}

func TestBaseCatalogRepo_Search_SQL(t *testing.T) {
	repo := newTestRepo()

	pattern := "%gauze%"
	q := repo.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"reference": pattern},
		})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, reference, name FROM test_table WHERE deletion_mark = $1 AND (name ILIKE $2 OR reference ILIKE $3)"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 3 || args[1] != pattern || args[2] != pattern {
		t.Errorf("Args mismatch: %v", args)
	}
}

func TestBaseCatalogRepo_ParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "default", orderBy: "", want: "name ASC"},
		{name: "ascending", orderBy: "reference", want: "reference ASC"},
		{name: "descending", orderBy: "-created_at", want: "created_at DESC"},
		{name: "explicit plus", orderBy: "+name", want: "name ASC"},
		{name: "unknown column", orderBy: "password", wantErr: true},
		{name: "bare dash", orderBy: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.orderBy, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOrderBy(%q) failed: %v", tt.orderBy, err)
			}
			if got != tt.want {
				t.Errorf("parseOrderBy(%q) = %q, want %q", tt.orderBy, got, tt.want)
			}
		})
	}
}
