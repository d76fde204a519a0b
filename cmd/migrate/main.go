// Command migrate manages the verkoop database schema. It wraps the
// golang-migrate engine with the service configuration so the same
// connection settings drive the server and the schema tooling.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/verkoop/backend/internal/infrastructure/config"
	"github.com/verkoop/backend/internal/infrastructure/logger"
	"github.com/verkoop/backend/internal/infrastructure/migration"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	path, err := resolveMigrationsPath(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}

	if err := run(args, path, log); err != nil {
		log.Fatal("Migration command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

// run dispatches a single CLI command. File-only commands never touch the
// database; everything else opens a connection from the loaded config.
func run(args []string, path string, log *zap.Logger) error {
	command := args[0]
	log.Info("Running migration command",
		zap.String("command", command),
		zap.String("migrations_path", path),
	)

	switch command {
	case "create":
		return runCreate(args[1:], path, log)
	case "list":
		return runList(path, log)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, path, log)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		n, err := intArg(args[1:], "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "goto":
		n, err := intArg(args[1:], "target version")
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("target version must not be negative: %d", n)
		}
		return m.GoTo(uint(n))
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("No migrations applied yet")
		} else {
			log.Info("Current schema version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}
		return nil
	case "force":
		n, err := intArg(args[1:], "version")
		if err != nil {
			return err
		}
		log.Warn("Overwriting recorded schema version", zap.Int("version", n))
		return m.Force(n)
	case "drop":
		if !hasConfirmFlag(args[1:]) {
			return fmt.Errorf("drop destroys all data; re-run as 'migrate drop -confirm'")
		}
		return m.Drop()
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runCreate(args []string, path string, log *zap.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("migration name required: migrate create <name> [description]")
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(path, args[0], description)
	if err != nil {
		return err
	}

	log.Info("Migration files created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
	return nil
}

func runList(path string, log *zap.Logger) error {
	migrations, err := migration.ListMigrations(path)
	if err != nil {
		return err
	}
	if len(migrations) == 0 {
		log.Info("No migrations found", zap.String("migrations_path", path))
		return nil
	}
	log.Info("Available migrations", zap.Int("count", len(migrations)))
	for _, m := range migrations {
		fmt.Println("  -", m)
	}
	return nil
}

// resolveMigrationsPath returns an absolute migrations directory. An explicit
// -path wins; otherwise the working directory is tried first, then the
// repository layout relative to the installed binary.
func resolveMigrationsPath(explicit string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}

	if _, err := os.Stat(defaultMigrationsDir); err == nil {
		return filepath.Abs(defaultMigrationsDir)
	}

	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsDir)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Abs(candidate)
		}
	}

	return filepath.Abs(defaultMigrationsDir)
}

func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[0])
	}
	return n, nil
}

func hasConfirmFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}

func usage() {
	fmt.Println(`verkoop schema migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    apply all pending migrations
  down                  roll back all migrations
  step <n>              apply n migrations (negative rolls back)
  goto <version>        migrate to an exact schema version
  version               print the current schema version
  force <version>       overwrite the recorded version (repair dirty state)
  drop -confirm         drop every object in the database
  create <name> [desc]  generate an up/down SQL file pair
  list                  list migration files on disk

Flags:
  -path string          migrations directory (default: ./migrations)
  -log-level string     log level: debug, info, warn, error (default: info)

The database connection comes from config.toml and VERKOOP_DATABASE_*
environment variables, the same settings the API server uses.

Examples:
  migrate up
  migrate step -1
  migrate create add_customer_segments "segment table for campaign targeting"`)
}
