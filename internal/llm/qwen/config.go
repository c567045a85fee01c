package qwen

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the DashScope (Qwen) client. The service exposes an
// OpenAI-compatible API, so BaseURL defaults to the compatible-mode
// endpoint.
type Config struct {
	APIKey      string        // if empty, falls back to env DASHSCOPE_API_KEY
	BaseURL     string        // default https://dashscope.aliyuncs.com/compatible-mode/v1
	Model       string        // e.g. "qwen-vl-max-latest"
	Temperature float32       // 0..2
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("DASHSCOPE_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "qwen-vl-max-latest"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}
