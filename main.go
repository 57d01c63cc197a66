package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"kitchen-ledger/internal/config"
	"kitchen-ledger/internal/database"
	"kitchen-ledger/internal/inventory"
	"kitchen-ledger/internal/logger"
	"kitchen-ledger/internal/router"
	"kitchen-ledger/internal/seed"
	"kitchen-ledger/internal/util"

	"github.com/sirupsen/logrus"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	closeLog, err := logger.Init(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("init logger")
	}
	defer closeLog()

	if err := ensureDir(cfg.Backup.Dir); err != nil {
		logrus.WithError(err).Fatal("create backup dir")
	}

	if cfg.JWT.Secret == "" {
		secret, err := util.RandomString(48)
		if err != nil {
			logrus.WithError(err).Fatal("generate jwt secret")
		}
		cfg.JWT.Secret = secret
		logrus.Warn("jwt.secret is empty, using a random secret; tokens will not survive a restart")
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("init database")
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("migrate database")
	}

	ledger := inventory.New(db)

	if cfg.App.SeedFile != "" {
		if err := applySeed(ledger, cfg.App.SeedFile); err != nil {
			logrus.WithError(err).Fatal("apply seed file")
		}
	}

	r := router.SetupRouter(cfg, db, ledger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logrus.WithField("addr", addr).Info("server listening")
	if err := r.Run(addr); err != nil {
		logrus.WithError(err).Fatal("run server")
	}
}

// applySeed loads the starter inventory; a missing file is not an error.
func applySeed(ledger *inventory.Ledger, path string) error {
	f, err := seed.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logrus.WithField("file", path).Info("no seed file, skipping")
			return nil
		}
		return err
	}
	res, err := seed.Apply(context.Background(), ledger, f)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"ingredients":  res.Ingredients,
		"menu_items":   res.MenuItems,
		"requirements": res.Requirements,
	}).Info("seed applied")
	return nil
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
