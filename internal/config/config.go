package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// SourceLocal reads the exports from DATA_DIR on disk.
	SourceLocal = "local"
	// SourceS3 reads the exports from an S3 bucket.
	SourceS3 = "s3"
)

type Config struct {
	// Server
	Port        int
	Environment string

	// Data source
	SourceBackend     string
	DataDir           string
	BillingFile       string
	OrdersFile        string
	SupplementaryFile string

	// S3 (only when SourceBackend == "s3")
	S3Bucket    string
	S3Region    string
	S3Prefix    string
	AWSEndpoint string // For LocalStack in development

	// Reconciliation
	RegionColumn string
	MaxFileBytes int64

	// Display formatting
	CurrencyLocale string
	CurrencySymbol string
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Port:              getEnvInt("PORT", 8080),
		Environment:       getEnv("ENVIRONMENT", "development"),
		SourceBackend:     getEnv("SOURCE_BACKEND", SourceLocal),
		DataDir:           getEnv("DATA_DIR", "."),
		BillingFile:       getEnv("BILLING_FILE", "dados_conexao_unificada.csv"),
		OrdersFile:        getEnv("ORDERS_FILE", "dados_pedidos.csv"),
		SupplementaryFile: getEnv("SUPPLEMENTARY_FILE", "resumo_gastos.xlsx"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "sa-east-1"),
		S3Prefix:          getEnv("S3_PREFIX", "exports"),
		AWSEndpoint:       getEnv("AWS_ENDPOINT", ""),
		RegionColumn:      getEnv("REGION_COLUMN", "REGIAO"),
		MaxFileBytes:      int64(getEnvInt("MAX_FILE_BYTES", 50*1024*1024)),
		CurrencyLocale:    getEnv("CURRENCY_LOCALE", "pt-BR"),
		CurrencySymbol:    getEnv("CURRENCY_SYMBOL", "R$"),
	}

	// Validate required fields
	if cfg.SourceBackend != SourceLocal && cfg.SourceBackend != SourceS3 {
		return nil, fmt.Errorf("SOURCE_BACKEND must be %q or %q", SourceLocal, SourceS3)
	}
	if cfg.SourceBackend == SourceS3 && cfg.S3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required when SOURCE_BACKEND is %q", SourceS3)
	}
	if cfg.BillingFile == "" || cfg.OrdersFile == "" {
		return nil, fmt.Errorf("BILLING_FILE and ORDERS_FILE are required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
