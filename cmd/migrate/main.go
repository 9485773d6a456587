package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BradenHooton/storefront/internal/config"
	"github.com/BradenHooton/storefront/migrations"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/pflag"
)

const (
	dsnFlag     = "dsn"
	timeoutFlag = "timeout"
)

var commands = map[string]bool{
	"up":        true,
	"up-by-one": true,
	"down":      true,
	"status":    true,
	"reset":     true,
	"version":   true,
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	dsn := flags.StringP(dsnFlag, "d", "", "database connection string (defaults to DB_* environment)")
	timeout := flags.DurationP(timeoutFlag, "t", 5*time.Minute, "overall migration timeout")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <up|up-by-one|down|status|reset|version>\n", os.Args[0])
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	if flags.NArg() < 1 || !commands[flags.Arg(0)] {
		flags.Usage()
		os.Exit(2)
	}
	command := flags.Arg(0)

	if *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			logger.Error("failed to load configuration", slog.Any("error", err))
			os.Exit(1)
		}
		*dsn = cfg.Database.DSN()
	}

	connConfig, err := pgx.ParseConfig(*dsn)
	if err != nil {
		logger.Error("invalid database connection string", slog.Any("error", err))
		os.Exit(1)
	}

	db := stdlib.OpenDB(*connConfig)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := migrations.Run(ctx, db, command, flags.Args()[1:]...); err != nil {
		logger.Error("migration failed", slog.String("command", command), slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("migration finished", slog.String("command", command))
}
