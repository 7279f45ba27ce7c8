package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
)

type MockCatalog struct {
	entity.Catalog
	Unit     string `db:"unit" json:"unit"`
	MinStock int64  `db:"min_stock" json:"minStock"`
	Internal string `db:"-" json:"-"`
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expectedCols := []string{
		"id", "created_at", "updated_at", "name", "unit", "min_stock",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	now := time.Now().UTC()
	cat := MockCatalog{
		Catalog: entity.Catalog{
			BaseEntity: entity.BaseEntity{
				ID:        id.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name: "Test Name",
		},
		Unit:     "pcs",
		MinStock: 5,
		Internal: "skipped",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "Test Name", m["name"])
	assert.Equal(t, "pcs", m["unit"])
	assert.Equal(t, int64(5), m["min_stock"])
	assert.NotContains(t, m, "-")
}
