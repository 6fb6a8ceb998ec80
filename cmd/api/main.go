// @title Pet Care Tracker API
// @version 1.0
// @description Registro local de cuidado de mascotas con espejo remoto opcional.
// @BasePath /
package main

import (
	"net/http"
	"os"
	"time"

	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/router"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	log := logger.NewFromEnv()

	r, err := router.NewRouter(router.Options{
		DevAuth: os.Getenv("AUTH_MODE") == "dev",
		DataDir: dataDir,
		Logger:  log,
	})
	if err != nil {
		log.Error("startup failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr, "data_dir": dataDir})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
