package mysql

import (
	"database/sql"

	"go.uber.org/zap"
	"memory_mapping/internal/db"
)

type Store struct {
	conn    *sql.DB
	queries *db.Queries
	log     *zap.Logger
}

func New(conn *sql.DB, logger *zap.Logger) *Store {
	return &Store{conn: conn, queries: db.New(conn), log: logger}
}
