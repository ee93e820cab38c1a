package configs

import (
	"context"
	"fmt"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models/migrations"
)

// OpenStore connects the document store selected by STORE_DRIVER. The
// MySQL backend migrates its table on open.
func OpenStore(ctx context.Context, env ENV) (docstore.Store, error) {
	switch env.StoreDriver {
	case DriverMySQL:
		db, err := OpenConnection(ctx, env)
		if err != nil {
			return nil, err
		}
		if err := migrations.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate documents table: %w", err)
		}
		return docstore.NewGormStore(db), nil
	case DriverMongo:
		client, err := OpenMongo(ctx, env)
		if err != nil {
			return nil, err
		}
		return docstore.NewMongoStore(client, env.MongoDB), nil
	case DriverMemory:
		return docstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", env.StoreDriver)
	}
}
