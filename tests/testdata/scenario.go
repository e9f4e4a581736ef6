package testdata

import (
	"path/filepath"
	"runtime"
	"testing"

	"crm2grid/internal/platform"
)

// LoadScenario 读取 configs/scenario.yaml，供集成测试构造静态客户端。
func LoadScenario(tb testing.TB) platform.Scenario {
	tb.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		tb.Fatalf("runtime caller failed")
	}
	baseDir := filepath.Dir(file)                  // tests/testdata
	rootDir := filepath.Dir(filepath.Dir(baseDir)) // 模块根目录
	path := filepath.Join(rootDir, "configs", "scenario.yaml")

	sc, err := platform.LoadScenario(path)
	if err != nil {
		tb.Fatalf("load scenario %s failed: %v", path, err)
	}
	return sc
}
