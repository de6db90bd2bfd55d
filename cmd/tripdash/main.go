// tripdash renders a web dashboard for the lifecycle of a single
// ride-hailing trip: passenger and fare tables, driver bidding, a full
// event timeline and a map with a routed overlay.
//
// Usage:
//
//	tripdash --port 8080 --trip_api_url https://events.example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tripdash/internal/routing"
	"tripdash/internal/store"
	"tripdash/internal/tripapi"
	"tripdash/internal/web"
)

var (
	httpPort        = flag.Int("port", 8080, "HTTP port")
	shutdownTimeout = flag.Duration("shutdown_timeout", 10*time.Second, "HTTP server shutdown timeout")
	tripAPIURL      = flag.String("trip_api_url", "", "Trip lifecycle event API base URL")
	osrmURL         = flag.String("osrm_url", routing.DefaultBaseURL, "OSRM-compatible routing service base URL")
	refreshMinSecs  = flag.Int("refresh_min_secs", 10, "Minimum live refresh interval in seconds")
	configPath      = flag.String("config", "", "Optional YAML config file")
)

// fileConfig mirrors the flags for YAML configuration. Explicit flags
// win over file values.
type fileConfig struct {
	Port           int    `yaml:"port"`
	TripAPIURL     string `yaml:"trip_api_url"`
	OSRMURL        string `yaml:"osrm_url"`
	RefreshMinSecs int    `yaml:"refresh_min_secs"`
}

func main() {
	// Missing .env is fine; it only supplies env fallbacks.
	_ = godotenv.Load()
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := applyConfig(); err != nil {
		log.Fatal("config", zap.Error(err))
	}

	var trips *tripapi.Client
	if *tripAPIURL != "" {
		trips = tripapi.NewClient(*tripAPIURL, 15*time.Second)
	}
	osrm := routing.NewClient(*osrmURL, 10*time.Second)

	srv := web.New(log, store.New(), trips, osrm,
		time.Duration(*refreshMinSecs)*time.Second)

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *httpPort),
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", fmt.Sprintf("http://localhost:%d/", *httpPort)))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("shutdown initiated")

	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server shut down successfully")
	}
}

// applyConfig folds the optional YAML file and env fallbacks into the
// flag values, leaving explicitly set flags alone.
func applyConfig() error {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
		if !set["port"] && fc.Port != 0 {
			*httpPort = fc.Port
		}
		if !set["trip_api_url"] && fc.TripAPIURL != "" {
			*tripAPIURL = fc.TripAPIURL
		}
		if !set["osrm_url"] && fc.OSRMURL != "" {
			*osrmURL = fc.OSRMURL
		}
		if !set["refresh_min_secs"] && fc.RefreshMinSecs != 0 {
			*refreshMinSecs = fc.RefreshMinSecs
		}
	}

	if !set["trip_api_url"] && *tripAPIURL == "" {
		*tripAPIURL = os.Getenv("TRIPDASH_API_URL")
	}
	if !set["osrm_url"] {
		if v := os.Getenv("TRIPDASH_OSRM_URL"); v != "" {
			*osrmURL = v
		}
	}
	return nil
}
