package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/essentials/backend/internal/infrastructure/config"
	"github.com/essentials/backend/internal/infrastructure/logger"
	"github.com/essentials/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

func main() {
	var (
		dir      string
		logLevel string
	)
	flag.StringVar(&dir, "path", "", "migrations directory (default ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger setup failed:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	dir = resolveMigrationsDir(dir)
	command := args[0]
	log.Info("migrate invoked",
		zap.String("command", command),
		zap.String("migrations_dir", dir),
	)

	// create and list only touch the filesystem
	switch command {
	case "create":
		runCreate(log, dir, args[1:])
		return
	case "list":
		runList(log, dir)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration load failed", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("database open failed", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("database unreachable", zap.Error(err))
	}

	m, err := migration.New(db, dir, log)
	if err != nil {
		log.Fatal("migrator setup failed", zap.Error(err))
	}
	defer m.Close()

	runDBCommand(log, m, command, args[1:])
}

// resolveMigrationsDir falls back to ./migrations, then to the directory
// two levels above the executable (the repo root when running a built
// binary from cmd/migrate).
func resolveMigrationsDir(dir string) string {
	if dir == "" {
		dir = defaultMigrationsDir
		if _, err := os.Stat(dir); err != nil {
			if execPath, execErr := os.Executable(); execErr == nil {
				candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsDir)
				if _, err := os.Stat(candidate); err == nil {
					dir = candidate
				}
			}
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func runCreate(log *zap.Logger, dir string, args []string) {
	if len(args) == 0 {
		log.Fatal("migration name required: migrate create <name> [description]")
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(dir, args[0], description)
	if err != nil {
		log.Fatal("migration create failed", zap.Error(err))
	}
	log.Info("migration created",
		zap.String("version", mf.Version),
		zap.String("up", mf.UpPath),
		zap.String("down", mf.DownPath),
	)
}

func runList(log *zap.Logger, dir string) {
	names, err := migration.ListMigrations(dir)
	if err != nil {
		log.Fatal("migration list failed", zap.Error(err))
	}
	if len(names) == 0 {
		log.Info("no migrations found")
		return
	}
	log.Info("available migrations", zap.Int("count", len(names)))
	for _, name := range names {
		fmt.Println("  -", name)
	}
}

func runDBCommand(log *zap.Logger, m *migration.Migrator, command string, args []string) {
	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("migrate up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("migrate down failed", zap.Error(err))
		}

	case "step":
		n, err := strconv.Atoi(argAt(log, args, "step count required: migrate step <n>"))
		if err != nil {
			log.Fatal("step count must be an integer", zap.Error(err))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("migrate step failed", zap.Error(err))
		}

	case "goto":
		v, err := strconv.ParseUint(argAt(log, args, "version required: migrate goto <version>"), 10, 32)
		if err != nil {
			log.Fatal("version must be a number", zap.Error(err))
		}
		if err := m.GoTo(uint(v)); err != nil {
			log.Fatal("migrate goto failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("version read failed", zap.Error(err))
		}
		if version == 0 {
			log.Info("no migrations applied yet")
			return
		}
		log.Info("current schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))

	case "force":
		v, err := strconv.Atoi(argAt(log, args, "version required: migrate force <version>"))
		if err != nil {
			log.Fatal("version must be a number", zap.Error(err))
		}
		if err := m.Force(v); err != nil {
			log.Fatal("migrate force failed", zap.Error(err))
		}

	case "drop":
		if !hasConfirmFlag(args) {
			log.Fatal("refusing to drop without -confirm")
		}
		if err := m.Drop(); err != nil {
			log.Fatal("migrate drop failed", zap.Error(err))
		}

	default:
		log.Error("unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func argAt(log *zap.Logger, args []string, usage string) string {
	if len(args) == 0 {
		log.Fatal(usage)
	}
	return args[0]
}

func hasConfirmFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Print(`manage the essentials database schema

usage:
  migrate [flags] <command> [arguments]

commands:
  up                    apply all pending migrations
  down                  roll back all migrations
  step <n>              apply n migrations (negative rolls back)
  goto <version>        migrate the schema to an exact version
  version               print the current schema version
  force <version>       overwrite the recorded version (dirty-state repair)
  drop -confirm         drop every database object
  create <name> [desc]  generate an empty up/down SQL pair
  list                  list the migration pairs on disk

flags:
  -path string          migrations directory (default ./migrations)
  -log-level string     debug, info, warn or error (default info)

examples:
  migrate up
  migrate step -1
  migrate create add_item_categories "add reporting category to items"
`)
}
