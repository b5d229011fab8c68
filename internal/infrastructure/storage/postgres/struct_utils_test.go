package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medtrack/internal/core/entity"
	"medtrack/internal/core/id"
)

type MockCatalog struct {
	entity.BaseCatalog
	Reference string `db:"reference" json:"reference"`
	Name      string `db:"name" json:"name"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "attributes", "reference", "name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap(t *testing.T) {
	cat := MockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Reference: "PRD-001",
		Name:      "Test Name",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "PRD-001", m["reference"])
	assert.Equal(t, "Test Name", m["name"])
}

func TestStructToMapPointer(t *testing.T) {
	cat := &MockCatalog{Reference: "PRD-002", Name: "Pointer"}

	m := StructToMap(cat)

	assert.Equal(t, "PRD-002", m["reference"])
	assert.Equal(t, "Pointer", m["name"])
}
