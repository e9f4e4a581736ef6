package logging

import "go.uber.org/zap"

// New 返回命令行工具用的 zap logger，只输出告警以上，不打堆栈。
func New() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
