package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment")
	}
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	config_file := os.Getenv("TRAVELTIME_CONFIG")
	if config_file == "" {
		config_file = "./config.yaml"
	}
	config, err := ReadConfig(config_file)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	manager, err := NewNetworkManager(config)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	app := mux.NewRouter()
	RegisterRoutes(app, manager)

	addr := fmt.Sprintf(":%d", config.Server.Port)
	slog.Info("listening on " + addr)
	if err := http.ListenAndServe(addr, app); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
