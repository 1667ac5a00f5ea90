package storage

import (
	"sync"

	"eagleflow/internal/config"
	"eagleflow/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

func GetDb() *gorm.DB {
	once.Do(func() {
		log := logger.GetLogger()

		connection, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
			TranslateError: true,
			Logger:         gorm_logger.Default.LogMode(gorm_logger.Silent),
		})
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			panic(err)
		}

		db = connection
	})

	return db
}
