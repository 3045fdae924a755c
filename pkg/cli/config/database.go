package config

import (
	"context"
	"log/slog"

	"github.com/go-sql-driver/mysql"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tessera/pkg/domain/interfaces"
	"github.com/secmon-lab/tessera/pkg/repository"
	"github.com/urfave/cli/v3"
)

// Database selects the repository backend: MySQL when a DSN is given, otherwise Firestore
// when a project is given, otherwise in-memory storage.
type Database struct {
	MySQLDSN          string
	FirestoreProject  string
	FirestoreDatabase string
}

// Flags returns CLI flags for Database configuration
func (d *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mysql-dsn",
			Usage:       "MySQL DSN, e.g. user:pass@tcp(127.0.0.1:3306)/tessera",
			Category:    "Database",
			Sources:     cli.EnvVars("TESSERA_MYSQL_DSN"),
			Destination: &d.MySQLDSN,
		},
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID for Firestore",
			Category:    "Database",
			Sources:     cli.EnvVars("TESSERA_FIRESTORE_PROJECT"),
			Destination: &d.FirestoreProject,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Database",
			Value:       "(default)",
			Sources:     cli.EnvVars("TESSERA_FIRESTORE_DATABASE"),
			Destination: &d.FirestoreDatabase,
		},
	}
}

// Backend returns the name of the selected backend
func (d *Database) Backend() string {
	switch {
	case d.MySQLDSN != "":
		return "mysql"
	case d.FirestoreProject != "":
		return "firestore"
	default:
		return "memory"
	}
}

// Configure creates and returns the repository
func (d *Database) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch d.Backend() {
	case "mysql":
		repo, err := repository.NewMySQL(ctx, d.MySQLDSN)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init MySQL")
		}
		return repo, nil

	case "firestore":
		repo, err := repository.NewFirestore(ctx, d.FirestoreProject, d.FirestoreDatabase)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init firestore",
				goerr.V("project", d.FirestoreProject),
				goerr.V("database", d.FirestoreDatabase),
			)
		}
		return repo, nil

	default:
		ctxlog.From(ctx).Warn("Using memory database. The data will be removed when shutting down")
		return repository.NewMemory(), nil
	}
}

// LogValue returns structured log value. The MySQL password is never logged.
func (d Database) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("backend", d.Backend()),
	}

	if d.MySQLDSN != "" {
		if cfg, err := mysql.ParseDSN(d.MySQLDSN); err == nil {
			attrs = append(attrs,
				slog.String("mysql_user", cfg.User),
				slog.String("mysql_addr", cfg.Addr),
				slog.String("mysql_database", cfg.DBName),
			)
		} else {
			attrs = append(attrs, slog.String("mysql_dsn", "(invalid)"))
		}
	}
	if d.FirestoreProject != "" {
		attrs = append(attrs,
			slog.String("firestore_project", d.FirestoreProject),
			slog.String("firestore_database", d.FirestoreDatabase),
		)
	}

	return slog.GroupValue(attrs...)
}
