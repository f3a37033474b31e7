// Package db はGORMによるデータベース接続とストレージエラーの分類を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	indicatorentity "starpupil_backend/internal/feature/indicators/domain/entity"
	priceentity "starpupil_backend/internal/feature/prices/domain/entity"
	stockentity "starpupil_backend/internal/feature/stocks/domain/entity"
)

// OpenDB は環境変数に従ってデータベース接続を開きます。
// DB_DRIVER=postgres の場合はPostgreSQL、それ以外はSQLiteファイルを使用します。
// TranslateErrorを有効にし、一意制約違反がドライバによらず
// gorm.ErrDuplicatedKey に正規化されるようにします。
func OpenDB() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	cfg := &gorm.Config{TranslateError: true}

	switch os.Getenv("DB_DRIVER") {
	case "postgres":
		dsn := os.Getenv("DATABASE_DSN")
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				os.Getenv("DB_HOST"), os.Getenv("DB_PORT"),
				os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
		}

		deadline := time.Now().Add(60 * time.Second)
		for {
			db, err = gorm.Open(gpostgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			if time.Now().After(deadline) {
				log.Fatalf("DB connect failed after 60s: %v", err)
			}
			log.Printf("DB connect failed, retrying...: %v", err)
			time.Sleep(3 * time.Second)
		}
	default:
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "starpupil.db"
		}
		// SQLiteは外部キー制約が既定で無効のため、DSNで明示的に有効化する
		db, err = gorm.Open(gsqlite.Open(path+"?_foreign_keys=on"), cfg)
		if err != nil {
			log.Fatalf("failed to open sqlite database: %v", err)
		}
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（Stock, PriceBar, FinancialIndicator）
		if err := db.AutoMigrate(
			&stockentity.Stock{},
			&priceentity.PriceBar{},
			&indicatorentity.FinancialIndicator{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
