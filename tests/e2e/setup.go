//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"

	"stayhub/cmd/bootstrap"
	"stayhub/cmd/bootstrap/components"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/config"
	"stayhub/tests/common/dbtest"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = "5432/tcp"
)

// One postgres container serves the whole test binary. Each suite gets
// its own database inside it, so suites can run in parallel.
var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
)

// SharedSuite wires a real database and router for end to end suites.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	host, port := ensurePostgres(t)
	s.DB, s.Config = newSuiteDatabase(t, host, port)
	s.Router = newSuiteRouter(t, s.DB, s.Config)
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
}

// ensurePostgres starts the shared container on first use and returns
// its mapped address. Durability settings are relaxed since every byte
// in it is disposable.
func ensurePostgres(t *testing.T) (string, nat.Port) {
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			Started: true,
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				Name:         "stayhub-e2e-pg",
				Labels:       map[string]string{"purpose": "e2e-tests"},
				ExposedPorts: []string{pgPort},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "synchronous_commit=off",
					"-c", "full_page_writes=off",
					"-c", "shared_buffers=256MB",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return adminDSN(host, port)
				}).WithStartupTimeout(time.Minute),
			},
		})
		require.NoError(t, err, "postgres container did not start")
		pgContainer = c

		t.Cleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := pgContainer.Terminate(ctx); err != nil {
				slog.Warn("postgres container termination failed", "error", err.Error())
			}
		})
	})

	ctx := context.Background()
	port, err := pgContainer.MappedPort(ctx, nat.Port(pgPort))
	require.NoError(t, err, "reading mapped postgres port")
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err, "reading postgres host")
	return host, port
}

func adminDSN(host string, port nat.Port) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		pgUser, pgPassword, host, port.Port())
}

// newSuiteDatabase creates a throwaway database named after a fresh
// uuid, runs the schema into it, and connects the application pool.
func newSuiteDatabase(t *testing.T, host string, port nat.Port) (*pgxpool.Pool, config.Config) {
	name := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	createSuiteDatabase(t, host, port, name)

	dbCfg := config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	pool, _, err := db.Connect(dbCfg)
	require.NoError(t, err, "connecting to suite database")
	runMigrations(t, pool)

	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	return pool, cfg
}

func createSuiteDatabase(t *testing.T, host string, port nat.Port, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN(host, port))
	require.NoError(t, err, "admin connection failed")
	defer admin.Close()

	// CREATE DATABASE cannot run concurrently with another one on the
	// same server, so back off briefly when parallel suites collide.
	for attempt := 0; ; attempt++ {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		if err == nil || attempt >= 4 {
			break
		}
		time.Sleep(time.Duration(attempt+1) * 300 * time.Millisecond)
	}
	require.NoError(t, err, "creating suite database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN(host, port))
		if err != nil {
			slog.Warn("suite database cleanup skipped", "database", name, "error", err.Error())
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name); err != nil {
			slog.Warn("dropping suite database failed", "database", name, "error", err.Error())
		}
	})
}

func runMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	// `go test` runs with the package directory as cwd; walk up until the
	// migrations directory appears.
	var sql []byte
	var err error
	rel := filepath.Join("migrations", "001_initial_schema.sql")
	for _, up := range []string{".", "..", "../..", "../../.."} {
		sql, err = os.ReadFile(filepath.Join(up, rel))
		if err == nil {
			break
		}
	}
	require.NoError(t, err, "locating schema migration")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_, err = pool.Exec(ctx, string(sql))
	require.NoError(t, err, "applying schema migration")
}

// newSuiteRouter assembles the application through the same fx modules
// production uses, swapping in the suite pool and a fixed test config.
func newSuiteRouter(t *testing.T, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	var router *gin.Engine

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() config.Config { return cfg },
			func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "starting fx application")
	require.NotNil(t, router, "fx application produced no router")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("stopping fx application failed", "error", err.Error())
		}
	})

	return router
}
