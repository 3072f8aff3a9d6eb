package configs

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxConnectRetries = 10
	connectRetryDelay = 5 * time.Second
)

func (e ENV) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		e.DBUser,
		e.DBPassword,
		e.DBHost,
		e.DBPort,
		e.DBName,
	)
}

// OpenConnection connects to MySQL, retrying while the server comes up.
func OpenConnection(env ENV) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	var lastErr error
	for i := 0; i < maxConnectRetries; i++ {
		log.Printf("OpenConnection: connecting to %s:%s/%s (attempt %d/%d)", env.DBHost, env.DBPort, env.DBName, i+1, maxConnectRetries)

		db, err := gorm.Open(mysql.Open(env.DSN()), gormCfg)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if dbErr = sqlDB.Ping(); dbErr == nil {
					sqlDB.SetConnMaxLifetime(5 * time.Minute)
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)

					log.Println("OpenConnection: database connection established")
					return db, nil
				}
			}
			err = dbErr
		}

		lastErr = err
		log.Printf("OpenConnection: %v, retrying in %v", err, connectRetryDelay)
		time.Sleep(connectRetryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxConnectRetries, lastErr)
}
