package postgres

import (
	"context"

	"workshop/internal/adapters/out/postgres/budgetrepo"
	"workshop/internal/adapters/out/postgres/catalogrepo"
	"workshop/internal/adapters/out/postgres/customerrepo"
	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/adapters/out/postgres/outboxrepo"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrate creates or updates every workshop table and seeds the status catalogs.
func Migrate(ctx context.Context, db *gorm.DB, statuses *catalogrepo.GormStatusCatalog) error {
	err := db.WithContext(ctx).AutoMigrate(
		&catalogrepo.OrderStatusDTO{},
		&catalogrepo.BudgetStatusDTO{},
		&catalogrepo.ServiceDTO{},
		&catalogrepo.PartDTO{},
		&customerrepo.CustomerDTO{},
		&customerrepo.VehicleDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ServiceLineDTO{},
		&orderrepo.PartLineDTO{},
		&budgetrepo.BudgetDTO{},
		&outboxrepo.OutboxDTO{},
	)
	if err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return errors.Wrap(statuses.Seed(ctx), "seed status catalogs")
}
