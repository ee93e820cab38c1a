package configs

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type ENV struct {
	AppEnv        string
	Port          string
	StoreDriver   string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        string
	MongoURI      string
	MongoDB       string
	AppAuthKey    string
	AppEncKey     string
	EmailHost     string
	EmailPort     int
	EmailUsername string
	EmailPassword string
	EmailFrom     string
	OrderNotifyTo string
	LogMode       string
	LogFile       string
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

const (
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

// LoadEnv reads .env when present and falls back to the process
// environment for every key.
func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		zap.S().Debug("LoadEnv: no .env file found, using process environment")
	}

	port, _ := strconv.Atoi(os.Getenv("EMAIL_PORT"))
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = os.Getenv("EMAIL_USERNAME")
	}

	return ENV{
		AppEnv:        getenv("APP_ENV", "development"),
		Port:          listenAddr(getenv("APP_PORT", "8080")),
		StoreDriver:   strings.ToLower(getenv("STORE_DRIVER", DriverMySQL)),
		DBHost:        getenv("DB_HOST", "127.0.0.1"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getenv("DB_NAME", "mensclub"),
		DBPort:        getenv("DB_PORT", "3306"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "mensclub"),
		AppAuthKey:    os.Getenv("APP_AUTH_KEY"),
		AppEncKey:     os.Getenv("APP_ENC_KEY"),
		EmailHost:     os.Getenv("EMAIL_HOST"),
		EmailPort:     port,
		EmailUsername: os.Getenv("EMAIL_USERNAME"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:     from,
		OrderNotifyTo: os.Getenv("ORDER_NOTIFY_TO"),
		LogMode:       getenv("LOG_MODE", "development"),
		LogFile:       os.Getenv("LOG_FILE"),
		AdminName:     getenv("ADMIN_NAME", "Store Admin"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// listenAddr accepts "8080" as well as ":8080" or "host:8080".
func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
