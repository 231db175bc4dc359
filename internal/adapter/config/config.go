package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database       *Database
	HTTP           *HTTP
	Redis          *Redis
	Kafka          *Kafka
	DeviceGateway  *DeviceGateway
	PaymentGateway *PaymentGateway
	App            *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	LogFile  string `env:"LOG_FILE"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
	// NotifyURL is the public callback endpoint handed to the payment gateway.
	NotifyURL string `env:"PAYMENT_NOTIFY_URL"`
}

type Redis struct {
	Addr string `env:"REDIS_ADDRESS"`
	// DirectoryTTLSeconds bounds staleness of cached device/merchant reads.
	DirectoryTTLSeconds int `env:"DIRECTORY_CACHE_TTL" envDefault:"60"`
}

type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_NOTIFY_TOPIC" envDefault:"washpoint.notifications"`
}

type DeviceGateway struct {
	HostString string `env:"DEVICE_GW_ADDRESS"`
	AppID      string `env:"DEVICE_GW_APP_ID"`
	Secret     string `env:"DEVICE_GW_SECRET"`
	// FailureRate is only honored in simulated mode (no Secret configured).
	FailureRate float64 `env:"DEVICE_GW_FAILURE_RATE" envDefault:"0"`
}

type PaymentGateway struct {
	HostString string `env:"PAY_GW_ADDRESS"`
	MerchantID string `env:"PAY_GW_MCH_ID"`
	// CallbackKey signs and decrypts callback envelopes, must be 32 bytes.
	CallbackKey string `env:"PAY_GW_CALLBACK_KEY"`
	APIKey      string `env:"PAY_GW_API_KEY"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var redis Redis
	var kafka Kafka
	var devgw DeviceGateway
	var paygw PaymentGateway
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&redis.Addr, "r", "", "Redis address")
	flag.StringVar(&devgw.HostString, "g", "", "Device gateway address")
	flag.StringVar(&paygw.HostString, "p", "", "Payment gateway address")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	for name, target := range map[string]interface{}{
		"database":        &db,
		"http":            &http,
		"redis":           &redis,
		"kafka":           &kafka,
		"device gateway":  &devgw,
		"payment gateway": &paygw,
		"app":             &app,
	} {
		if err := env.Parse(target); err != nil {
			return nil, fmt.Errorf("error parsing %s config: %w", name, err)
		}
	}

	config := Config{
		Database:       &db,
		HTTP:           &http,
		Redis:          &redis,
		Kafka:          &kafka,
		DeviceGateway:  &devgw,
		PaymentGateway: &paygw,
		App:            &app,
	}

	return &config, nil
}
