package testsuite

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Nest-Commerce-Microservices/products-ms/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// BaseSuite starts throwaway Postgres and Redis containers and applies the
// migrations once per suite.
type BaseSuite struct {
	suite.Suite
	PgContainer    *postgres.PostgresContainer
	RedisContainer *tcredis.RedisContainer
	DbPool         *pgxpool.Pool
	Redis          *redis.Client
	ConnString     string
	Ctx            context.Context
}

func (s *BaseSuite) SetupInfrastructure(migrationsRelPath string) {
	s.Ctx = context.Background()

	var err error
	s.PgContainer, err = postgres.Run(
		s.Ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)

	s.ConnString, err = s.PgContainer.ConnectionString(s.Ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(db.Migrate(s.ConnString, migrationsRelPath))

	s.DbPool, err = db.NewPostgresDB(s.Ctx, s.ConnString, db.PoolConfig{})
	s.Require().NoError(err)

	s.RedisContainer, err = tcredis.Run(s.Ctx, "redis:7-alpine")
	s.Require().NoError(err)

	redisURL, err := s.RedisContainer.ConnectionString(s.Ctx)
	s.Require().NoError(err)

	opts, err := redis.ParseURL(redisURL)
	s.Require().NoError(err)
	s.Redis = redis.NewClient(opts)
}

func (s *BaseSuite) TearDownInfrastructure() {
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if s.DbPool != nil {
		s.DbPool.Close()
	}
	if s.RedisContainer != nil {
		if err := s.RedisContainer.Terminate(s.Ctx); err != nil {
			log.Printf("Failed to terminate redis container: %v", err)
		}
	}
	if s.PgContainer != nil {
		if err := s.PgContainer.Terminate(s.Ctx); err != nil {
			log.Printf("Failed to terminate postgres container: %v", err)
		}
	}
}

func (s *BaseSuite) TruncateTable(tableName string) {
	_, err := s.DbPool.Exec(s.Ctx, fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", tableName))
	s.Require().NoError(err)
}

func (s *BaseSuite) FlushRedis() {
	s.Require().NoError(s.Redis.FlushAll(s.Ctx).Err())
}
