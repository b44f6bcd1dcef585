//go:build integration

package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
)

const (
	testDatabase = "memory_mapping_test"
	testUser     = "testuser"
	testPassword = "testpass"
)

func setupMySQLContainer(t require.TestingT, ctx context.Context) (string, func()) {
	container, err := mysql.RunContainer(
		ctx,
		mysql.WithDatabase(testDatabase),
		mysql.WithUsername(testUser),
		mysql.WithPassword(testPassword),
	)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, nat.Port("3306/tcp"))
	require.NoError(t, err)

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC&multiStatements=true",
		testUser, testPassword, host, port.Port(), testDatabase)

	dbConn, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	defer dbConn.Close()

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "db", "schema.sql"))
	require.NoError(t, err)
	_, err = dbConn.ExecContext(ctx, string(schema))
	require.NoError(t, err)

	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}
