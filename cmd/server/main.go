package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"crm2grid/internal/app"
	"crm2grid/internal/grid"
	"crm2grid/internal/job"
	"crm2grid/internal/metrics"
	"crm2grid/internal/nav"
	"crm2grid/internal/platform"
	"crm2grid/internal/router"
	"crm2grid/pkg/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := app.LoadConfig("configs/config.yaml")
	if err != nil {
		fmt.Printf("load config failed: %v\n", err)
		return
	}

	logger, err := logging.NewAppLogger()
	if err != nil {
		fmt.Printf("init logger failed: %v\n", err)
		return
	}
	defer func() { _ = logger.Sync() }()

	listen := cfg.HTTP.Listen
	if strings.TrimSpace(listen) == "" {
		listen = ":8080"
	}

	client, err := buildPlatformClient(cfg, logger)
	if err != nil {
		logger.Fatal("create platform client failed", zap.Error(err))
	}

	navigator, err := buildNavigator(cfg)
	if err != nil {
		logger.Fatal("create navigator failed", zap.Error(err))
	}

	svc, err := app.NewService(cfg, client, navigator, logger)
	if err != nil {
		logger.Fatal("create app service failed", zap.Error(err))
	}
	defer func() { _ = svc.Close(context.Background()) }()

	metrics.MustRegister(prometheus.DefaultRegisterer)
	handler := router.NewListHandler(svc, logger)
	engine := router.NewEngine(handler)

	jobs := &job.Jobs{
		SummaryRefresher: job.NewScheduler("summary-refresh", cfg.Cache.RefreshCron, svc.RefreshSummaries, logger),
		InstanceSweeper:  job.NewScheduler("instance-sweep", cfg.Components.SweepCron, svc.SweepInstances, logger),
		Heartbeat:        job.NewStatsLogger(svc, logger),
	}
	cancelJobs := jobs.Start(ctx)
	defer cancelJobs()

	svc.Warm(ctx)

	logger.Info("http server starting", zap.String("listen", listen))
	if err := engine.Run(listen); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}

func buildPlatformClient(cfg app.Config, logger *zap.Logger) (platform.Client, error) {
	baseURL := strings.TrimSpace(cfg.Platform.BaseURL)
	if baseURL == "" {
		client := &platform.StaticClient{}
		if path := strings.TrimSpace(cfg.Platform.ScenarioFile); path != "" {
			sc, err := platform.LoadScenario(path)
			if err != nil {
				return nil, err
			}
			client.Load(sc)
		}
		logger.Warn("platform base_url empty, serving from static client")
		return client, nil
	}

	var tokenSource platform.TokenSource
	if cfg.Platform.AuthEndpoint != "" && cfg.Platform.Username != "" {
		ts, err := platform.NewPasswordTokenSource(platform.PasswordTokenConfig{
			Endpoint: cfg.Platform.AuthEndpoint,
			Username: cfg.Platform.Username,
			Password: cfg.Platform.Password,
			Timeout:  5 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		tokenSource = ts
	} else if cfg.Platform.StaticToken != "" {
		tokenSource = &platform.StaticTokenSource{Value: cfg.Platform.StaticToken}
	}

	return platform.NewHTTPClient(platform.HTTPConfig{
		BaseURL:        baseURL,
		TokenSource:    tokenSource,
		AuthHeaderName: cfg.Platform.AuthHeader,
		Timeout:        time.Duration(cfg.Platform.TimeoutSecond) * time.Second,
		PageSize:       cfg.Platform.PageSize,
		Retry: platform.RetryConfig{
			Attempts: cfg.Platform.Retry.Attempts,
			Backoff:  time.Duration(cfg.Platform.Retry.BackoffSeconds) * time.Second,
		},
	})
}

func buildNavigator(cfg app.Config) (grid.Navigator, error) {
	if cfg.Nav.Mode == "http" {
		return nav.NewHTTPNavigator(cfg.Nav.Endpoint, time.Duration(cfg.Nav.TimeoutSecond)*time.Second)
	}
	return nav.NewTemplateNavigator(cfg.Nav.BaseURL), nil
}
