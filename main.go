package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"housepricer/db"
	"housepricer/house"
	qhttp "housepricer/http"
	"housepricer/logging"
	"housepricer/ml"
)

type Config struct {
	Artifacts struct {
		Model    string `yaml:"model"`
		Features string `yaml:"features"`
	} `yaml:"artifacts"`
	Prediction struct {
		Band      float64 `yaml:"band"`
		CacheSize int     `yaml:"cache_size"`
	} `yaml:"prediction"`
	Http struct {
		Port int `yaml:"port"`
	} `yaml:"http"`
	Log      logging.Config `yaml:"log"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
}

func main() {
	// 1. Load config
	config, err := loadConfig("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(config.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	qhttp.SetLogger(logger)

	// 2. Load artifacts. Either failure is fatal: the form is useless
	// without both the model and the feature order.
	model, err := ml.LoadModel(config.Artifacts.Model)
	if err != nil {
		logger.Fatal("Failed to load model artifact", zap.Error(err))
	}
	featureNames, err := ml.LoadFeatureNames(config.Artifacts.Features)
	if err != nil {
		logger.Fatal("Failed to load feature names", zap.Error(err))
	}
	if len(model.FeatureImportances()) != len(featureNames) {
		logger.Fatal("Model importances do not match feature names",
			zap.Int("importances", len(model.FeatureImportances())),
			zap.Int("features", len(featureNames)))
	}
	logger.Info("Artifacts loaded",
		zap.String("model", config.Artifacts.Model),
		zap.Int("trees", len(model.Trees)),
		zap.Strings("features", featureNames))

	stopWatch, err := ml.WatchArtifacts(logger, config.Artifacts.Model, config.Artifacts.Features)
	if err != nil {
		logger.Warn("Artifact watcher unavailable", zap.Error(err))
	} else {
		defer stopWatch()
	}

	// 3. Optional prediction history
	if config.Database.Path != "" {
		if err := db.InitDB(config.Database.Path); err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer db.Close()
		qhttp.SetHistoryEnabled(true)
		logger.Info("Prediction history enabled", zap.String("path", config.Database.Path))
	}

	// 4. Wire handlers
	qhttp.SetModel(model)
	qhttp.SetFeatureNames(featureNames)
	if config.Prediction.Band > 0 {
		qhttp.SetBand(config.Prediction.Band)
	} else {
		qhttp.SetBand(house.DefaultBand)
	}
	qhttp.SetCacheSize(config.Prediction.CacheSize)

	// 5. Start HTTP server
	serverConfig := qhttp.DefaultServerConfig()
	serverConfig.Port = config.Http.Port
	server := qhttp.NewServer(serverConfig)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 6. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	if err := server.Stop(); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Exiting")
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
