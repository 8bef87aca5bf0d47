package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database described by the environment. DB_DRIVER=mysql
// expects the usual DB_USER/DB_PASS/DB_HOST/DB_PORT/DB_NAME set; anything
// else falls back to a local SQLite file so the app runs without a server.
func InitDB() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "mysql" {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASS"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "restaurant.db"
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}
