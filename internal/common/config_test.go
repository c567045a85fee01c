package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DASHSCOPE_API_KEY", "sk-test")
	t.Setenv("MINIO_HOST", "minio.local:9000")
	t.Setenv("MINIO_ACCESS_KEY", "access")
	t.Setenv("MINIO_SECRET_KEY", "secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	cfg := LoadConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "qwen-vl-max-latest", cfg.LLM.Model)
	assert.Equal(t, "https://dashscope.aliyuncs.com/compatible-mode/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "expense-reports", cfg.Storage.Bucket)
	assert.Equal(t, 7*24*time.Hour, cfg.Storage.URLExpiry)
	assert.Equal(t, 1600, cfg.Image.MaxDimension)
	assert.False(t, cfg.Extract.EnforceTotalReconciliation)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QWEN_MODEL", "qwen-vl-plus")
	t.Setenv("QWEN_TIMEOUT", "90s")
	t.Setenv("MINIO_SECURE", "true")
	t.Setenv("IMAGE_MAX_DIMENSION", "2048")
	t.Setenv("ENFORCE_TOTAL_RECONCILIATION", "true")

	cfg := LoadConfig()
	assert.Equal(t, "qwen-vl-plus", cfg.LLM.Model)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.Storage.Secure)
	assert.Equal(t, 2048, cfg.Image.MaxDimension)
	assert.True(t, cfg.Extract.EnforceTotalReconciliation)
}

func TestValidateReportsAllMissingVars(t *testing.T) {
	t.Setenv("DASHSCOPE_API_KEY", "")
	t.Setenv("MINIO_HOST", "")
	t.Setenv("MINIO_ACCESS_KEY", "")
	t.Setenv("MINIO_SECRET_KEY", "")

	err := LoadConfig().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DASHSCOPE_API_KEY")
	assert.Contains(t, err.Error(), "MINIO_HOST")
	assert.Contains(t, err.Error(), "MINIO_ACCESS_KEY")
	assert.Contains(t, err.Error(), "MINIO_SECRET_KEY")
}
