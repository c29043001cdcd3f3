package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/migrations"
)

// setupPostgres starts a throwaway Postgres container and applies the
// embedded schema migrations, so repository tests run against the same schema
// the service boots with.
func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	src, err := iofs.New(migrations.FS, ".")
	assert.NoError(t, err)
	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	assert.NoError(t, err)
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	assert.NoError(t, err)
	assert.NoError(t, m.Up())

	t.Cleanup(func() {
		db.Close()
		container.Terminate(context.Background())
	})

	return db
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
