package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ylikuutio/ylikuutio/internal/config"
	"github.com/ylikuutio/ylikuutio/internal/console"
	"github.com/ylikuutio/ylikuutio/internal/core/factory"
	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
	"github.com/ylikuutio/ylikuutio/internal/injector"
	"github.com/ylikuutio/ylikuutio/internal/scripting"
	"github.com/ylikuutio/ylikuutio/pkg/concurrent"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to a TOML config file (default $"+config.EnvConfigPath+")")
		envFile     = flag.String("env", ".env", "dotenv file to load before reading the config")
		interactive = flag.Bool("console", false, "open a command console on the first universe")
		script      = flag.String("script", "", "Lua script to run on the first universe")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [description.yaml ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath, *envFile, *interactive, *script, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "ylikuutio:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, envFile string, interactive bool, script string, descriptions []string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	if configPath == "" {
		configPath = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	logger, err := injector.InitializeLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	runtimes, err := build(ctx, cfg, logger, descriptions)
	defer func() {
		for _, rt := range runtimes {
			if rt != nil {
				rt.Universe.Destroy()
			}
		}
	}()
	if err != nil {
		return err
	}

	for i, rt := range runtimes {
		u := rt.Universe
		source := "<empty>"
		if i < len(descriptions) {
			source = descriptions[i]
		}
		logger.Info("universe ready",
			log.String("source", source),
			log.Int("scenes", u.NumberOfChildren()),
			log.Int("entities", u.NumberOfDescendants()),
			log.Int("names", u.Registry().Len()),
			log.Int("allocated", u.Hub().NumberOfInstances()),
		)
	}

	first := runtimes[0]
	engine := scripting.NewEngine(first.Factory, logger)
	defer engine.Close()

	if script != "" {
		if err := engine.DoFile(script); err != nil {
			return err
		}
	}

	if interactive {
		c := console.New(first.Factory, os.Stdout,
			console.WithPrompt(cfg.Console.Prompt),
			console.WithHistory(cfg.Console.History),
			console.WithScripts(engine),
			console.WithLogger(logger.Named("console")),
		)
		if err := c.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
			return fmt.Errorf("console: %w", err)
		}
	}
	return nil
}

// build loads every description into its own universe. Universes share
// nothing, so they are built concurrently. With no descriptions a single
// empty universe is returned.
func build(ctx context.Context, cfg *config.Config, logger *log.Logger, descriptions []string) ([]*injector.Runtime, error) {
	if len(descriptions) == 0 {
		return []*injector.Runtime{injector.InitializeRuntime(cfg, logger)}, nil
	}

	return concurrent.Map(ctx, descriptions, 0, func(_ context.Context, path string) (*injector.Runtime, error) {
		d, err := factory.LoadFile(path)
		if err != nil {
			return nil, err
		}
		rt := injector.InitializeRuntime(cfg, logger)
		if err := rt.Factory.Build(d); err != nil {
			return rt, fmt.Errorf("build %s: %w", path, err)
		}
		return rt, nil
	})
}
