package model

import (
	"os"
	"strings"
	"time"

	"github.com/contributory/ai-gateway/common/env"
	"github.com/contributory/ai-gateway/common/logger"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

var SQLitePath = env.String("SQLITE_PATH", "ai-gateway.db")
var SQLiteBusyTimeout = env.String("SQLITE_BUSY_TIMEOUT", "3000")

var (
	UsingSQLite     = false
	UsingPostgreSQL = false
	UsingMySQL      = false
)

func openDB(dsn string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	}
	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		logger.SysLog("using PostgreSQL as job log database")
		UsingPostgreSQL = true
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gormConfig)
	case dsn != "":
		logger.SysLog("using MySQL as job log database")
		UsingMySQL = true
		return gorm.Open(mysql.Open(dsn), gormConfig)
	}
	logger.SysLog("SQL_DSN not set, using SQLite as job log database")
	UsingSQLite = true
	path := SQLitePath
	if !strings.Contains(path, "?") {
		path += "?_busy_timeout=" + SQLiteBusyTimeout
	}
	return gorm.Open(sqlite.Open(path), gormConfig)
}

// InitDB opens SQL_DSN (PostgreSQL or MySQL) or the SQLite file and
// migrates the job log table.
func InitDB() error {
	db, err := openDB(os.Getenv("SQL_DSN"))
	if err != nil {
		return errors.Wrap(err, "open job log database")
	}
	return setupDB(db)
}

func setupDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	sqlDB.SetMaxIdleConns(env.Int("SQL_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(env.Int("SQL_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(time.Second * time.Duration(env.Int("SQL_MAX_LIFETIME", 60)))

	if err = db.AutoMigrate(&HordeJob{}); err != nil {
		return errors.Wrap(err, "migrate horde_jobs")
	}
	DB = db
	logger.SysLog("job log database migrated")
	return nil
}

func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
