package store

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"memory_mapping/internal/config"
	"memory_mapping/internal/repository"
	"memory_mapping/internal/store/memory"
	"memory_mapping/internal/store/mysql"
	"memory_mapping/internal/store/redis"
)

func NewStore(cfg *config.Config, logger *zap.Logger) (repository.MemoryRepository, error) {
	switch {
	case cfg.MySQLDSN != "":
		sqlDB, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			logger.Error("mysql open failed", zap.Error(err))
			return nil, err
		}
		if err := sqlDB.Ping(); err != nil {
			logger.Error("mysql ping failed", zap.Error(err))
			return nil, err
		}
		logger.Info("using mysql memory store")
		return mysql.New(sqlDB, logger), nil
	case cfg.RedisURL != "":
		client, err := redis.Dial(context.Background(), cfg.RedisURL)
		if err != nil {
			logger.Error("redis connect failed", zap.Error(err))
			return nil, err
		}
		logger.Info("using redis memory store", zap.String("prefix", cfg.RedisKeyPrefix))
		return redis.New(client, cfg.RedisKeyPrefix, logger), nil
	default:
		logger.Info("using in-memory memory store")
		return memory.New(logger), nil
	}
}
