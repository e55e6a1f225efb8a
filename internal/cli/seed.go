package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"music-eras-service/internal/config"
	"music-eras-service/internal/domain"
	"music-eras-service/internal/infra/postgres"
)

// NewSeedCmd stores the built-in catalog in Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var catalogID string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the built-in music eras catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()
			return runSeed(cmd.Context(), cfg, catalogID, log)
		},
	}
	cmd.Flags().StringVar(&catalogID, "catalog", domain.DefaultCatalogID, "id to store the catalog under")
	return cmd
}

func runSeed(ctx context.Context, cfg config.Config, catalogID string, log *zap.Logger) error {
	if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
		return err
	}
	db, err := openBunDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	catalog := domain.DefaultCatalog()
	catalog.ID = catalogID
	if err := postgres.UpsertCatalog(ctx, db, catalog); err != nil {
		return err
	}
	log.Info("catalog seeded",
		zap.String("catalog", catalog.ID),
		zap.Int("questions", len(catalog.Questions)),
		zap.Int("instruments", len(catalog.Instruments)),
	)
	return nil
}
