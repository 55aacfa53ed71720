package app

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Tokamp4/task-management-system-fork/internal/config"
	"github.com/Tokamp4/task-management-system-fork/internal/dao"
)

var (
	globalPostgresPool *pgxpool.Pool
	globalSQLDB        *sql.DB
	globalDB           *gorm.DB
)

// MustConnectDatabase opens the configured database behind gorm and, when
// enabled, migrates the schema.
func MustConnectDatabase() {
	cfg := config.Global()
	dbCfg := cfg.Database

	var dialector gorm.Dialector
	switch dbCfg.Driver {
	case config.DriverPostgres:
		dialector = mustOpenPostgres(cfg.Postgres, dbCfg)
	case config.DriverMySQL:
		dialector = gormmysql.Open(mysqlDSN(cfg.MySQL))
	default:
		err := fmt.Errorf("unknown database driver: %s", dbCfg.Driver)
		globalLogger.Error().
			Err(err).
			Msg("failed to open database")
		panic(err)
	}

	gormLogger := dao.NewGormLogger(
		globalLogger,
		dao.ParseLogLevel(dbCfg.LogLevel),
		dbCfg.SlowThreshold,
	)

	var err error
	globalDB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", dbCfg.Driver).
			Msg("failed to open gorm")
		panic(err)
	}

	globalSQLDB, err = globalDB.DB()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to get sql db")
		panic(err)
	}
	globalSQLDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	globalSQLDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	globalSQLDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbCfg.PingTimeout)
	defer cancel()

	err = globalSQLDB.PingContext(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("driver", dbCfg.Driver).
			Msg("failed to ping database")
		panic(err)
	}
	globalLogger.Info().
		Str("driver", dbCfg.Driver).
		Msg("connected to database")

	if dbCfg.AutoMigrate {
		err = dao.Migrate(ctx, globalDB)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to migrate database")
			panic(err)
		}
		globalLogger.Info().Msg("migrated database")
	}
}

func DisconnectDatabase() {
	if globalSQLDB != nil {
		err := globalSQLDB.Close()
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to close database")
		}
	}
	if globalPostgresPool != nil {
		globalPostgresPool.Close()
	}
	globalLogger.Info().Msg("disconnected from database")
}

func pingDatabase(ctx context.Context) error {
	if globalSQLDB == nil {
		return fmt.Errorf("database is not connected")
	}
	return globalSQLDB.PingContext(ctx)
}

// mustOpenPostgres connects a pgx pool and exposes it to gorm through
// database/sql.
func mustOpenPostgres(cfg config.PostgresConfig, dbCfg config.DatabaseConfig) gorm.Dialector {
	connURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host,
		cfg.Port, cfg.Database, cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	if dbCfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(dbCfg.MaxOpenConns)
	}
	poolCfg.MaxConnLifetime = dbCfg.ConnMaxLifetime

	globalPostgresPool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")

	return postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(globalPostgresPool)})
}

func mysqlDSN(cfg config.MySQLConfig) string {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.ParseTime = true
	mysqlCfg.Loc = time.UTC
	return mysqlCfg.FormatDSN()
}
