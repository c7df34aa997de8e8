package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, DefaultStoreName, cfg.StoreName)
	assert.Equal(t, DefaultLowStockThreshold, cfg.LowStockThreshold)
	assert.Equal(t, []string{"Cash", "Debit Card", "E-Wallet"}, cfg.PaymentMethods)
	assert.Equal(t, DefaultSalesTopic, cfg.KafkaSalesTopic)
	assert.False(t, cfg.ReceiptArchiveEnabled())
}

func TestFromEnv_MissingJWTSecret(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{}))
	require.Error(t, err)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"JWT_SECRET":          "s3cret",
		"PAYMENT_METHODS":     "Cash, QRIS ,",
		"LOW_STOCK_THRESHOLD": "3",
		"R2_ENDPOINT":         "https://r2.example",
		"R2_BUCKET_NAME":      "receipts",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"Cash", "QRIS"}, cfg.PaymentMethods)
	assert.Equal(t, 3, cfg.LowStockThreshold)
	assert.True(t, cfg.ReceiptArchiveEnabled())
}

func TestFromEnv_BadThreshold(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{
		"JWT_SECRET":          "s3cret",
		"LOW_STOCK_THRESHOLD": "-1",
	}))
	require.Error(t, err)
}

func TestFromEnv_ManagerBootstrap(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"JWT_SECRET":       "s3cret",
		"MANAGER_EMAIL":    "owner@warung.id",
		"MANAGER_PASSWORD": "rahasia",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Manager", cfg.ManagerName)
	assert.Equal(t, "owner@warung.id", cfg.ManagerEmail)

	_, err = FromEnv(envOf(map[string]string{
		"JWT_SECRET":    "s3cret",
		"MANAGER_EMAIL": "owner@warung.id",
	}))
	require.Error(t, err)
}
