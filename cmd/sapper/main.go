package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sapper/internal/app"
	"github.com/vancomm/sapper/internal/config"
	"github.com/vancomm/sapper/internal/logging"
)

var configPath string

func init() {
	const (
		defaultConfigPath = "/run/config.json"
		usage             = "config file path"
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, usage)
	flag.StringVar(&configPath, "c", defaultConfigPath, usage+" (shorthand)")
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	c, err := config.Load(configPath)
	if err != nil {
		logrus.Fatal("unable to load config: ", err)
	}

	log, err := logging.New(c)
	if err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}

	log.Info("starting up, mode = ", c.Mode)
	log.WithFields(c.Fields()).Debug("config")

	a, err := app.New(log, c)
	if err != nil {
		log.Fatal("unable to create app: ", err)
	}

	if err := a.Start(mainCtx); err != nil {
		log.Fatal(err)
	}
	log.Info("shut down")
}
