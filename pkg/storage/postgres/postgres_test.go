package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	root "loanchecker"
	"loanchecker/pkg/domain"
	"loanchecker/pkg/storage"
	"loanchecker/pkg/storage/postgres"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "postgres"
	testPassword = "postgres"
	testDB       = "testdb"
)

type postgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      int
}

func startPostgresContainer(ctx context.Context) (*postgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       testDB,
		},
		WaitingFor: wait.ForListeningPort("5432"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("could not get mapped port: %w", err)
	}

	return &postgresContainer{
		Container: container,
		Host:      host,
		Port:      mappedPort.Int(),
	}, nil
}

func setupTestDB(t *testing.T) *postgres.PgSQL {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	pgContainer, err := startPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Container.Terminate(ctx) })

	pg, err := postgres.New(ctx, postgres.Options{
		Username:           testUser,
		Password:           testPassword,
		Host:               pgContainer.Host,
		Port:               pgContainer.Port,
		Database:           testDB,
		SslMode:            "disable",
		ConnMaxLifetime:    time.Minute,
		ConnMaxIdleTime:    time.Minute,
		MaxOpenConnections: 5,
		MaxIdleConnections: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Close() })

	goose.SetBaseFS(root.Migrations)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(pg.DB, "migrations"))

	return pg
}

func TestPgSQL_Integration(t *testing.T) {
	pg := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, pg.Ping(ctx))

	for i, name := range []string{"first", "", "third"} {
		stored, err := pg.StoreFeedback(ctx, domain.Feedback{Name: name, Rating: i + 2, Comments: "comment"})
		require.NoError(t, err)
		require.NotZero(t, stored.ID)
		require.False(t, stored.CreatedAt.IsZero())
	}

	page, err := pg.ListFeedback(ctx, storage.FeedbackCursor{}, 2)
	require.NoError(t, err)
	require.Len(t, page.Feedback, 2)
	require.NotNil(t, page.NextCursor)
	seen := []string{page.Feedback[0].DisplayName(), page.Feedback[1].DisplayName()}

	page, err = pg.ListFeedback(ctx, *page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Feedback, 1)
	require.Nil(t, page.NextCursor)
	seen = append(seen, page.Feedback[0].DisplayName())

	require.ElementsMatch(t, []string{"first", domain.AnonymousName, "third"}, seen)

	// entries sharing created_at page by id
	for range 3 {
		_, err = pg.DB.ExecContext(ctx,
			`INSERT INTO feedback (id, rating, created_at) VALUES (gen_random_uuid(), 1, '2000-01-01T00:00:00Z')`)
		require.NoError(t, err)
	}
	cursor := storage.FeedbackCursor{CreatedAt: time.Date(2000, 1, 1, 0, 0, 0, 1000, time.UTC)}
	var tied int
	for {
		page, err = pg.ListFeedback(ctx, cursor, 1)
		require.NoError(t, err)
		tied += len(page.Feedback)
		if page.NextCursor == nil {
			break
		}
		cursor = *page.NextCursor
	}
	require.Equal(t, 3, tied)

	_, err = pg.StoreFeedback(ctx, domain.Feedback{Rating: 9})
	require.Error(t, err, "rating check constraint")
}
