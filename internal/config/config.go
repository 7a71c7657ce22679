package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	Environment    string
	HTTPAddr       string
	MigrationsPath string
	BreakfastRate  int64 // стоимость завтрака за ночь в минимальных единицах
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	rate, err := parseBreakfastRate(os.Getenv("BREAKFAST_RATE"))
	if err != nil {
		return nil, err
	}
	cfg.BreakfastRate = rate

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

func parseBreakfastRate(raw string) (int64, error) {
	if raw == "" {
		return 50000, nil
	}
	rate, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || rate <= 0 {
		return 0, fmt.Errorf("BREAKFAST_RATE must be a positive integer, got %q", raw)
	}
	return rate, nil
}
