package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Listen string `yaml:"listen"`
}

type Platform struct {
	BaseURL       string `yaml:"base_url"`
	AuthEndpoint  string `yaml:"auth_endpoint"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	StaticToken   string `yaml:"static_token"`
	AuthHeader    string `yaml:"auth_header"`
	TimeoutSecond int    `yaml:"timeout_second"`
	PageSize      int    `yaml:"page_size"`
	Retry         Retry  `yaml:"retry"`
	// ScenarioFile 在 base_url 为空时生效，静态客户端从该文件加载演示数据。
	ScenarioFile string `yaml:"scenario_file"`
}

type Retry struct {
	Attempts       int `yaml:"attempts"`
	BackoffSeconds int `yaml:"backoff_seconds"`
}

type Nav struct {
	// Mode 取 template 或 http，默认 template。
	Mode          string `yaml:"mode"`
	BaseURL       string `yaml:"base_url"`
	Endpoint      string `yaml:"endpoint"`
	TimeoutSecond int    `yaml:"timeout_second"`
}

type Cache struct {
	SummaryTTLSecond int      `yaml:"summary_ttl_second"`
	RefreshCron      string   `yaml:"refresh_cron"`
	WarmObjects      []string `yaml:"warm_objects"`
	WarmOnStart      bool     `yaml:"warm_on_start"`
}

type Components struct {
	IdleTimeoutSecond int    `yaml:"idle_timeout_second"`
	SweepCron         string `yaml:"sweep_cron"`
	ParallelRows      int    `yaml:"parallel_rows"`
}

type Config struct {
	HTTP       HTTP       `yaml:"http"`
	Platform   Platform   `yaml:"platform"`
	Nav        Nav        `yaml:"nav"`
	Cache      Cache      `yaml:"cache"`
	Components Components `yaml:"components"`
}

// LoadConfig 从文件加载配置。
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, nil
}
