package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config là cấu hình của toàn bộ ứng dụng, chỉ đọc sau khi Load
type Config struct {
	Port             string
	JWTSecret        string
	DBDriver         string
	PostgresURI      string
	SQLitePath       string
	BcryptCost       int
	CORSAllowOrigins string
	AuthRequired     bool
	MQTTURL          string
	MQTTClientID     string

	// parseErrs giữ các biến môi trường không đọc được để Validate báo lỗi
	parseErrs []error
}

// LoadENV nạp biến môi trường từ file .env nếu có
func LoadENV(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// Load đọc cấu hình từ biến môi trường và kiểm tra tính hợp lệ
func Load() (*Config, error) {
	var parseErrs []error
	cfg := &Config{
		Port:             getEnv("PORT", "5000"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		PostgresURI:      os.Getenv("POSTGRESQL_URI"),
		SQLitePath:       getEnv("SQLITE_PATH", "todos.db"),
		BcryptCost:       getEnvAsInt("BCRYPT_COST", 10),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		AuthRequired:     getEnvAsBool("AUTH_REQUIRED", false, &parseErrs),
		MQTTURL:          os.Getenv("MQTT_URL"),
		MQTTClientID:     getEnv("MQTT_CLIENT_ID", "todos-api"),
	}
	cfg.parseErrs = parseErrs

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate kiểm tra các thiết lập bắt buộc
func (c *Config) Validate() error {
	if len(c.parseErrs) > 0 {
		return c.parseErrs[0]
	}
	if c.JWTSecret == "" {
		return errors.New("you must set your 'JWT_SECRET' environmental variable")
	}
	if c.BcryptCost < 10 {
		return fmt.Errorf("BCRYPT_COST must be at least 10, got %d", c.BcryptCost)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be a number, got %q", c.Port)
	}

	switch c.DBDriver {
	case DriverPostgres:
		if c.PostgresURI == "" {
			return errors.New("you must set your 'POSTGRESQL_URI' environmental variable")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH must not be empty")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt trả về -1 khi giá trị không phải số để Validate báo lỗi
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return -1
	}
	return value
}

// getEnvAsBool ghi lại lỗi vào errs khi giá trị không phải boolean
func getEnvAsBool(key string, defaultValue bool, errs *[]error) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s must be a boolean, got %q", key, valueStr))
		return defaultValue
	}
	return value
}
