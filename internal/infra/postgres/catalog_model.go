package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"music-eras-service/internal/domain"
)

// CatalogRow is the bun model of the catalogs table.
type CatalogRow struct {
	bun.BaseModel `bun:"table:catalogs"`

	ID   string         `bun:"id,pk"`
	Data domain.Catalog `bun:"data,type:jsonb"`
}

// UpsertCatalog validates and stores a catalog, replacing any earlier copy.
func UpsertCatalog(ctx context.Context, db bun.IDB, catalog domain.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return err
	}
	row := &CatalogRow{ID: catalog.ID, Data: catalog}
	_, err := db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert catalog %s: %w", catalog.ID, err)
	}
	return nil
}
