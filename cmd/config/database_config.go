package config

import (
	"fmt"
	"log"

	"canteen-backend/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
		utils.GetConfigDefault("DB_TIMEZONE", "Asia/Kolkata"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// duplicate keys surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		log.Printf("Database connection failed: %v", err)
		return nil, err
	}
	return db, nil
}
