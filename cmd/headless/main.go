package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lao-tseu-is-alive/go-exterminator/internal/headless"
	"github.com/lao-tseu-is-alive/go-exterminator/pkg/simulation"
	"go.uber.org/zap"
)

func main() {
	var (
		configFile string
		runs       int
		ticks      int
		seedBase   uint64
		seedStep   uint64
		parallel   int
		timeout    time.Duration
		verbose    bool
	)
	flag.StringVar(&configFile, "config", "", "JSON or YAML config file (defaults when empty)")
	flag.IntVar(&runs, "runs", 8, "number of seeded games")
	flag.IntVar(&ticks, "ticks", 60*120, "frames per game at 60 fps")
	flag.Uint64Var(&seedBase, "seed-base", 42, "seed of the first game")
	flag.Uint64Var(&seedStep, "seed-step", 1, "seed increment between games")
	flag.IntVar(&parallel, "parallel", 0, "concurrent games (0 = one per CPU)")
	flag.DurationVar(&timeout, "timeout", time.Minute, "time limit per game")
	flag.BoolVar(&verbose, "verbose", false, "development logging")
	flag.Parse()

	if runs <= 0 || ticks <= 0 {
		fmt.Fprintln(os.Stderr, "error: -runs and -ticks must be > 0")
		os.Exit(2)
	}

	newLogger := zap.NewProduction
	if verbose {
		newLogger = zap.NewDevelopment
	}
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	cfg := simulation.DefaultConfig()
	if configFile != "" {
		if cfg, err = simulation.LoadConfig(configFile); err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := headless.SweepOptions{
		Run:      headless.DefaultOptions(),
		Timeout:  timeout,
		Parallel: parallel,
	}
	opts.Run.Ticks = ticks

	fmt.Printf("=== Exterminator headless sweep ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", runs, ticks, seedBase, seedStep)

	start := time.Now()
	summaries, err := headless.Sweep(ctx, cfg, headless.Seeds(seedBase, seedStep, runs), opts, log)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}
	for _, s := range summaries {
		fmt.Println(s)
	}
	fmt.Printf("\n%s\nwall time %s\n", headless.Aggregate(summaries), time.Since(start).Round(time.Millisecond))
}
