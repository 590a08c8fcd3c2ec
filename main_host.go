//go:build !tinygo

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"points/app"
	"points/firmware/action"
	"points/firmware/console"
	"points/firmware/snapshot"
	"points/hal"
	"points/internal/config"
	"points/kernel"
	"points/web"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	var configPath, envFile string
	var headless, echo, noWeb bool
	var ticks uint64
	var webAddr string
	flag.StringVar(&configPath, "config", "", "YAML config file (default points.yaml if present).")
	flag.StringVar(&envFile, "env", ".env", "Env file with POINTS_* overrides.")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&echo, "echo", false, "Log LCD contents in headless mode.")
	flag.StringVar(&webAddr, "web", "", "Web inlet address.")
	flag.BoolVar(&noWeb, "no-web", false, "Disable the web inlet.")
	flag.Parse()

	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			cfg.Runner.Headless = headless
		case "ticks":
			cfg.Runner.Ticks = ticks
		case "echo":
			cfg.Runner.EchoLCD = echo
		case "web":
			cfg.Web.Addr = webAddr
		case "no-web":
			cfg.Web.Enabled = !noWeb
		}
	})
	setupLogging(cfg.LogLevel)

	if err := run(cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("points counter stopped")
		os.Exit(1)
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).With().Timestamp().Logger()
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sys := kernel.NewSystem()
	appCfg := cfg.App()
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg, sys)
	}
	opts := hal.HostOptions{EEPROMPath: cfg.EEPROM}

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Web.Enabled {
		hub := web.DefaultHubConfig()
		if cfg.Web.PushInterval > 0 {
			hub.PushInterval = cfg.Web.PushInterval
		}
		srv := web.New(sys, web.Options{
			Addr:           cfg.Web.Addr,
			AllowedOrigins: cfg.Web.AllowedOrigins,
			Hub:            hub,
		})
		g.Go(func() error { return srv.Run(ctx) })
	}
	if cfg.Console {
		// Stdin reads cannot be cancelled, so the console stays outside the group.
		go runConsole(sys)
	}

	if cfg.Runner.Headless {
		g.Go(func() error {
			err := hal.RunHeadless(ctx, newApp, opts, hal.HeadlessConfig{
				Interval: cfg.Device.LoopInterval,
				Ticks:    cfg.Runner.Ticks,
				EchoLCD:  cfg.Runner.EchoLCD,
			})
			if err == nil {
				// A finite run ends the whole process.
				return context.Canceled
			}
			return err
		})
		return g.Wait()
	}

	// The window owns the main thread; closing it stops the other services.
	winErr := hal.RunWindow(newApp, opts, cfg.Device.LoopInterval)
	stop()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return winErr
}

func runConsole(sys *kernel.System) {
	state := func() (snapshot.Snapshot, bool) {
		s, _, ok := snapshot.Read(sys.Shared())
		return s, ok
	}
	c := console.New(action.NewInlet(sys, kernel.EPConsole), state, os.Stdout)
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		c.Exec(sc.Text())
	}
	if err := sc.Err(); err != nil {
		log.Warn().Err(err).Msg("console input closed")
	}
}
