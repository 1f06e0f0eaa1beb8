package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	profileflow "github.com/goliatone/go-profileflow"
	"github.com/goliatone/go-profileflow/components/lookups"
	"github.com/goliatone/go-profileflow/internal/config"
	"github.com/goliatone/go-profileflow/internal/logger"
	"github.com/goliatone/go-profileflow/pkg/apiclient"
	"github.com/goliatone/go-profileflow/pkg/contract"
	"github.com/goliatone/go-profileflow/pkg/fieldspec"
	"github.com/goliatone/go-profileflow/pkg/profile"
	"github.com/goliatone/go-profileflow/pkg/prompt"
	"github.com/goliatone/go-profileflow/pkg/wizard"
)

var _ prompt.Flow = (*profileflow.Screen)(nil)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	apiURL := flag.String("api", "", "profile API base URL (overrides config)")
	token := flag.String("token", "", "bearer token (overrides config)")
	demo := flag.Bool("demo", false, "serve the sample lookup backend locally and use it")
	step := flag.String("step", "", "step to resume from (slug or 1-6)")
	registration := flag.String("registration", "", "JSON file with registration data to prefill")
	metricsAddr := flag.String("metrics-addr", "", "expose Prometheus metrics on this address")
	checkPayloads := flag.Bool("contract", false, "check each step payload against the bundled OpenAPI contract before sending (off by default, or set contract: true in the config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *token != "" {
		cfg.API.Token = *token
	}
	if *checkPayloads {
		cfg.Contract = true
	}

	zl, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *demo {
		addr, shutdown, err := serveDemo(zl.Named("demo"))
		if err != nil {
			log.Fatalf("Failed to start demo backend: %v", err)
		}
		defer shutdown()
		cfg.API.BaseURL = addr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, zl)
	}

	client, err := apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithTokenSource(apiclient.StaticToken(cfg.API.Token)),
		apiclient.WithEndpoints(apiclient.Endpoints(cfg.Endpoints)),
		apiclient.WithMetrics(apiclient.NewMetrics(prometheus.DefaultRegisterer)),
		apiclient.WithLogger(zl.Named("api")),
	)
	if err != nil {
		log.Fatalf("Failed to build API client: %v", err)
	}

	specs, err := loadSpecs(cfg.Steps)
	if err != nil {
		log.Fatalf("Failed to load field definitions: %v", err)
	}

	driver := prompt.NewSurveyDriver(os.Stdout)
	opts := []profileflow.Option{
		profileflow.WithFieldSpecs(specs),
		profileflow.WithLogger(zl),
		profileflow.WithNotifier(prompt.Notifier(driver)),
		profileflow.WithNavigator(wizard.NavigatorFunc(func(context.Context) {
			_ = driver.Info(ctx, "\nProfile complete. Taking you to your dashboard.")
		})),
	}
	if cfg.Contract {
		checker, err := contract.Default()
		if err != nil {
			log.Fatalf("Failed to load payload contract: %v", err)
		}
		opts = append(opts, profileflow.WithChecker(checker))
	}
	if *step != "" {
		start, err := profile.ParseStep(*step)
		if err != nil {
			log.Fatalf("Invalid step: %v", err)
		}
		opts = append(opts, profileflow.WithStartStep(start))
	}
	if *registration != "" {
		payload, err := readRegistration(*registration)
		if err != nil {
			log.Fatalf("Failed to read registration data: %v", err)
		}
		opts = append(opts, profileflow.WithRegistration(payload))
	}

	screen, err := profileflow.New(client, opts...)
	if err != nil {
		log.Fatalf("Failed to build wizard: %v", err)
	}
	if err := screen.Mount(ctx); err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	session, err := prompt.NewSession(screen, specs,
		prompt.WithDriver(driver),
		prompt.WithOutput(os.Stdout),
		prompt.WithLogger(zl.Named("prompt")),
	)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	if err := session.Run(ctx); err != nil {
		if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Println("\nYour progress on completed steps has been saved.")
			return
		}
		log.Fatalf("Wizard failed: %v", err)
	}
}

func loadSpecs(path string) (*fieldspec.Store, error) {
	if path == "" {
		return fieldspec.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fieldspec.Parse(data, path)
}

func readRegistration(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return payload, nil
}

func serveDemo(zl *zap.Logger) (string, func(), error) {
	component, err := lookups.New(lookups.WithLogger(zl))
	if err != nil {
		return "", nil, err
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	srv := &http.Server{Handler: component.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("demo backend stopped", zap.Error(err))
		}
	}()
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	zl.Info("demo backend listening", zap.String("addr", listener.Addr().String()))
	return "http://" + listener.Addr().String(), shutdown, nil
}

func serveMetrics(addr string, zl *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Warn("metrics server stopped", zap.Error(err))
	}
}
