package configs

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

func (e ENV) MySQLDSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		e.DBUser,
		e.DBPassword,
		e.DBHost,
		e.DBPort,
		e.DBName,
	)
}

// OpenConnection opens the MySQL database, retrying while it comes up.
func OpenConnection(ctx context.Context, env ENV) (*gorm.DB, error) {
	dsn := env.MySQLDSN()
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		zap.S().Infof("OpenConnection: connecting to %s:%s/%s (attempt %d/%d)", env.DBHost, env.DBPort, env.DBName, i+1, maxRetries)
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.PingContext(ctx)
				if pingErr == nil {
					zap.S().Info("OpenConnection: database connection successful")
					return db, nil
				}
			}
			lastErr = pingErr
			zap.S().Warnf("OpenConnection: ping failed: %v, retrying in %v", pingErr, retryDelay)
		} else {
			lastErr = err
			zap.S().Warnf("OpenConnection: open failed: %v, retrying in %v", err, retryDelay)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return nil, fmt.Errorf("connect to database after %d retries: %w", maxRetries, lastErr)
}

func OpenMongo(ctx context.Context, env ENV) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(env.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	zap.S().Infof("OpenMongo: connected, database %s", env.MongoDB)
	return client, nil
}
