// Command orewire-server runs a standalone Minecraft Java Edition
// protocol 767 server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"orewire-server/internal/config"
	"orewire-server/internal/logging"
	"orewire-server/internal/server"
)

const serverVersion = "0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version", "--about":
			fmt.Printf("orewire-server v%s (protocol 767, 1.21.1)\n", serverVersion)
			return
		}
	}

	logFile, err := logging.Init()
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logging:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	cfg, err := config.Load("config.toml")
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	srv, err := server.New(cfg, logrus.NewEntry(logrus.StandardLogger()))
	if err != nil {
		logrus.WithError(err).Fatal("build server")
	}

	maintenance := server.NewMaintenance()
	if err := maintenance.ScheduleChunkGC("@every 5m", func() {
		logrus.Debug("running scheduled chunk garbage collection sweep")
	}); err != nil {
		logrus.WithError(err).Fatal("schedule maintenance")
	}
	maintenance.Start()
	defer maintenance.Stop()

	metricsServer := server.NewMetricsServer(cfg.MetricsListen)
	metricsServer.Start()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stopWatch, err := config.Watch("config.toml", func(reloaded *config.ServerConfig) {
		logrus.Info("config.toml changed; most settings take effect for new connections only")
		srv.UpdateConfig(reloaded)
	})
	if err != nil {
		logrus.WithError(err).Warn("could not watch config.toml for changes")
	} else {
		defer stopWatch()
	}

	logrus.WithField("addr", fmt.Sprintf("%s:%d", cfg.IP, cfg.Port)).Info("starting orewire-server")

	if err := srv.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	defer shutdownCancel()
	if err := metricsServer.Stop(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("metrics server shutdown error")
	}
}
