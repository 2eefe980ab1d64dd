package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/posts-gateway/backend/internal/config"
)

const pingTimeout = 10 * time.Second

// Service represents a service that interacts with a database.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the database connection.
	// It returns an error if the connection cannot be closed.
	Close() error
	GetDB() *gorm.DB
}

type service struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

// New opens the data store described by conf and verifies it answers a ping.
// verbose switches the gorm logger to Info level.
func New(conf config.Database, verbose bool) (Service, error) {
	sqlDB, err := openSQL(conf)
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
	sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(conf.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	log.Printf("✅ Database connected successfully (driver %s)", conf.Driver)

	if conf.Migrate {
		if err := Migrate(sqlDB); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	db, err := Open(sqlDB, verbose)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &service{db: db, sqlDB: sqlDB}, nil
}

// Open wraps an existing connection pool in gorm.
func Open(sqlDB *sql.DB, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  verbose,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error opening gorm session: %w", err)
	}

	return db, nil
}

func openSQL(conf config.Database) (*sql.DB, error) {
	switch conf.Driver {
	case "pgx":
		connConfig, err := pgx.ParseConfig(conf.URL)
		if err != nil {
			return nil, fmt.Errorf("parse database url: %w", err)
		}
		if conf.Key != "" {
			connConfig.Password = conf.Key
		}
		if conf.SimpleProtocol {
			// transaction poolers in front of hosted stores reject prepared statements
			connConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
		}
		return stdlib.OpenDB(*connConfig), nil
	case "postgres":
		dsn, err := pqDSN(conf.URL, conf.Key)
		if err != nil {
			return nil, err
		}
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("error opening database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

// pqDSN turns url into a lib/pq connection string, appending key as the password.
// lib/pq keeps the last value of a repeated keyword.
func pqDSN(url, key string) (string, error) {
	dsn := url
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		parsed, err := pq.ParseURL(url)
		if err != nil {
			return "", fmt.Errorf("parse database url: %w", err)
		}
		dsn = parsed
	}
	if key != "" {
		escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(key)
		dsn += fmt.Sprintf(" password='%s'", escaped)
	}
	return dsn, nil
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

// Health pings the posts store and reports pool usage against the configured limit.
// main logs it once after connecting; GET /api/health never calls it.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := s.sqlDB.PingContext(ctx); err != nil {
		return map[string]string{
			"status": "down",
			"error":  fmt.Sprintf("posts store unreachable: %v", err),
		}
	}

	dbStats := s.sqlDB.Stats()
	return map[string]string{
		"status":           "up",
		"open_connections": strconv.Itoa(dbStats.OpenConnections),
		"max_open":         strconv.Itoa(dbStats.MaxOpenConnections),
		"in_use":           strconv.Itoa(dbStats.InUse),
		"idle":             strconv.Itoa(dbStats.Idle),
	}
}

// Close releases the pool shared by gorm and the migrator.
func (s *service) Close() error {
	if err := s.sqlDB.Close(); err != nil {
		return fmt.Errorf("close posts store: %w", err)
	}
	log.Println("Disconnected from posts store")
	return nil
}
