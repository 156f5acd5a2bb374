package migration

import (
	"github.com/smallbiznis/invoicegen/internal/config"
	"github.com/smallbiznis/invoicegen/internal/invoice/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations run on postgres. The other dialects are
		// for local development and tests, where AutoMigrate is enough.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(&domain.Invoice{})
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
