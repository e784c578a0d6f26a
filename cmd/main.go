package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/urfave/cli"

	"github.com/luca-patrignani/voting-chain/config"
	"github.com/luca-patrignani/voting-chain/voting"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "voting-chain"
	app.Usage = "record voters, candidates and votes on a proof-of-work chain"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "difficulty, d",
			Usage: "leading zero hex characters required in a block hash",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "configuration file (yaml, json, toml, ...)",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "log rejected actions and other debug output",
		},
	}
	app.Action = run
	return app
}

// loadConfig layers the command line flags over config.Load.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"), config.EnvFile)
	if err != nil {
		return config.Config{}, err
	}
	if c.IsSet("difficulty") {
		cfg.Difficulty = c.Int("difficulty")
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	return cfg, cfg.Validate()
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Debug {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}

	session := uuid.New()
	// Create a new slog logger with the default PTerm logger as handler
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger)).With("session", session.String())

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("V", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("oting ", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("C", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("hain", pterm.FgDarkGray.ToStyle()),
	).Render()
	pterm.Info.Printfln("Session %s, %s", session, cfg)

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Mining the genesis block (difficulty %d) ...", cfg.Difficulty))
	l, err := voting.New(cfg.Difficulty, voting.WithLogger(logger))
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newMenu(l, ptermPrompter{}, os.Stdout, logger).run(ctx)
}
