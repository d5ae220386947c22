package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2001J/Smart-Home-IoT-Simulator/internal/api"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/config"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/automation"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/devices"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/metrics"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/simulation"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/websocket"
	"github.com/2001J/Smart-Home-IoT-Simulator/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	collector := metrics.NewCollector()
	system := automation.NewSystem(log, collector)

	// Device registry: custom fixture if configured, embedded reference
	// configuration otherwise
	devs, err := loadDevices(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to load devices")
	}
	for _, d := range devs {
		if err := system.AddDevice(d); err != nil {
			log.WithError(err).WithField("device_id", d.ID()).Fatal("Failed to register device")
		}
	}

	for _, rule := range automation.DefaultRules(cfg.Simulation.TargetTemp, cfg.Simulation.MorningHour, cfg.Simulation.EveningHour) {
		if err := system.AddRule(rule); err != nil {
			log.WithError(err).WithField("rule", rule.Name()).Fatal("Failed to register rule")
		}
	}

	log.WithFields(map[string]interface{}{
		"devices": len(system.Devices()),
		"rules":   len(system.Rules()),
		"rooms":   len(system.Rooms()),
	}).Info("Automation system initialized")

	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	driver := simulation.NewDriver(system, cfg.Simulation.TickInterval(), log, collector)
	driver.OnTick(func(simulation.TickEvent) {
		wsHub.Broadcast(websocket.StateSnapshotMessage(system))
	})
	if err := driver.Start(context.Background()); err != nil {
		log.WithError(err).Fatal("Failed to start simulation driver")
	}

	var server *http.Server
	if cfg.Server.Enabled {
		router := api.NewRouter(cfg, system, collector, wsHub, log)
		server = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		}
		go func() {
			log.WithField("addr", server.Addr).Info("HTTP server listening")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Fatal("HTTP server failed")
			}
		}()
	}

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	if err := driver.Stop(); err != nil {
		log.WithError(err).Warn("Error stopping simulation driver")
	}

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Error shutting down HTTP server")
		}
	}

	log.Info("Shutdown complete")
}

func loadDevices(cfg *config.Config) ([]devices.Device, error) {
	if cfg.DevicesFile == "" {
		return devices.DefaultDevices()
	}
	data, err := os.ReadFile(cfg.DevicesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read devices file: %w", err)
	}
	return devices.LoadFixture(data)
}
