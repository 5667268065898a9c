/* main.go
 * The "main" method for running the pool. Loads the configuration, connects to the tournament's database and runs one
 * subcommand
 * Usage: go run . [-config pool.yaml] [-tournament worldcup2018] <command> [args]
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"handicap-pool/api/api"
	"handicap-pool/bot"
	"handicap-pool/config"
	"handicap-pool/metrics"
	"handicap-pool/web"

	"github.com/sirupsen/logrus"
)

const usage = `usage: pool [-config file] [-tournament db_name] <command> [args]

commands:
  bot                                   run the discord bot
  web                                   run the fixtures webhook, series and metrics endpoints
  add-gambler <name>                    register a gambler
  drop-gambler <name>                   remove a gambler
  add-auction <team> <gambler> <price>  record who bought a team
  set-score <match id> <a> <b>          record a result
  set-weight <match id> <weight>        change the stake of a match
  show                                  print the standings
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		logrus.WithError(err).Fatal("pool exited")
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("pool", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML configuration file, overrides "+config.ConfigFileEnv)
	tournament := fs.String("tournament", "", "db name of the tournament to use, overrides the configured one")
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}
	command, commandArgs := fs.Arg(0), fs.Args()[1:]

	if *configPath != "" {
		if err := os.Setenv(config.ConfigFileEnv, *configPath); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *tournament != "" {
		cfg.Tournament = *tournament
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewManager()
	a, err := api.NewAPI(ctx, cfg, logger, m)
	if err != nil {
		return fmt.Errorf("failed to initialize API: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Store.GetClient().Disconnect(disconnectCtx); err != nil {
			logger.WithError(err).Warn("failed to disconnect from mongodb")
		}
	}()

	switch command {
	case "bot":
		b, err := bot.NewBot(cfg.DiscordToken, a, cfg)
		if err != nil {
			return err
		}
		return b.Run(ctx)

	case "web":
		return web.Start(ctx, web.Config{Addr: cfg.Addr, API: a, Metrics: m, Logger: logger})

	default:
		return runAdmin(ctx, a, command, commandArgs, os.Stdout)
	}
}
