package containers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/vlatan/video-playlist/internal/config"
)

type dbContainer struct {
	container *postgres.PostgresContainer
}

// Terminate stops and removes the container
func (db *dbContainer) Terminate(ctx context.Context) {
	if err := db.container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %v", err)
	}
}

// SetupTestDB creates a PostgreSQL container, runs migrations, and seeds data.
// It updates DB host and port of the supplied config.
func SetupTestDB(ctx context.Context, cfg *config.Config, projectRoot string) (Container, error) {

	initScripts, err := getMigrationFiles(filepath.Join(projectRoot, "migrations"))
	if err != nil {
		return nil, err
	}

	container, err := postgres.Run(ctx, "postgres:16.3",
		postgres.WithSQLDriver("pgx"),
		postgres.WithInitScripts(initScripts...),
		postgres.WithDatabase(cfg.DBDatabase),
		postgres.WithUsername(cfg.DBUsername),
		postgres.WithPassword(cfg.DBPassword),
		postgres.BasicWaitStrategies(),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	// terminate joins a termination failure to the setup error
	terminate := func(err error) error {
		if cErr := container.Terminate(ctx); cErr != nil {
			err = errors.Join(err, cErr)
		}
		return err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, terminate(fmt.Errorf("failed to get container host: %w", err))
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, terminate(fmt.Errorf("failed to get container port: %w", err))
	}

	// Update config with container connection details
	cfg.DBHost = host
	cfg.DBPort = port.Int()

	if err := seedTestData(ctx, cfg); err != nil {
		return nil, terminate(fmt.Errorf("failed to setup database: %w", err))
	}

	return &dbContainer{container}, nil
}

// TestVideoIDs are the seeded video IDs in playlist order
var TestVideoIDs = []string{"dQw4w9WgXcQ", "9bZkp7q19f0", "kJQP7kiw5Fk"}

func seedTestData(ctx context.Context, cfg *config.Config) error {

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.DBUsername, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBDatabase)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Positions are inserted out of order on purpose
	query := `INSERT INTO video (video_id, title, description, thumbnail, duration, position) VALUES
		('kJQP7kiw5Fk', 'Third', NULL, NULL, 'PT4M42S', 30),
		('dQw4w9WgXcQ', 'First', 'The first one', '{"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", "width": 480, "height": 360}', 'PT3M33S', 10),
		('9bZkp7q19f0', 'Second', NULL, NULL, 'PT4M12S', 20)`

	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to seed data: %w", err)
	}

	log.Println("Test data seeded successfully")
	return nil
}

func getMigrationFiles(migrationsDir string) ([]string, error) {
	var migrations []string

	err := filepath.Walk(migrationsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Only process files ending with "up.sql"
		if !info.IsDir() && strings.HasSuffix(info.Name(), "up.sql") {
			migrations = append(migrations, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(migrations)
	return migrations, nil
}
