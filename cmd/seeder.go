package cmd

import (
	"log"

	"github.com/aditirto/identity-service/internal/permission"
	permissionpg "github.com/aditirto/identity-service/internal/permission/postgres"
	"github.com/aditirto/identity-service/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the permission matrix",
	Long:  `Install the default role/action/resource permission matrix. Rows that already exist are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGormDB(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		svc := permission.NewService(permissionpg.NewPermissionRepository(gormDB), logger.L())
		if err := svc.Seed(); err != nil {
			log.Fatalf("failed to seed permissions: %v", err)
		}
	},
}
