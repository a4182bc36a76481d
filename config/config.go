package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/PoodingDev/Evento-Be/models"
)

// DB — 전역 GORM 커넥션. 컨트롤러에서 직접 사용한다.
var DB *gorm.DB

// LoadEnv는 .env 파일을 읽는다. 파일이 없으면 무시한다 (배포 환경은
// 환경 변수로 직접 주입).
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env 파일 없음, 환경 변수 사용")
	}
}

// ConnectDB는 Postgres에 연결하고 마이그레이션을 수행한다.
func ConnectDB() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Seoul",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB 연결 실패: %v", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatalf("마이그레이션 실패: %v", err)
	}
	DB = db
}

// Migrate는 전체 스키마를 AutoMigrate한다. 테스트에서도 같은 스키마를 쓴다.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Calendar{},
		&models.Event{},
		&models.Subscription{},
		&models.Comment{},
		&models.FavoriteEvent{},
	)
}
