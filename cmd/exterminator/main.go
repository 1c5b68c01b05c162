package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-exterminator/pkg/simulation"
	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", "", "JSON or YAML config file, reloaded on change")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	cfg := simulation.DefaultConfig()
	var watcher *simulation.ConfigWatcher
	if *configFile != "" {
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			sugar.Fatalf("config: %v", err)
		}
		if watcher, err = simulation.WatchConfig(*configFile, sugar); err != nil {
			sugar.Warnf("config %s will not be reloaded: %v", *configFile, err)
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	rng := cfg.NewRand()
	cave, mask, err := simulation.LoadCave(cfg, rng)
	if err != nil {
		sugar.Fatalf("cave: %v", err)
	}
	world := simulation.NewWorld(cfg, mask, rng, sugar)

	ebiten.SetWindowSize(int(cfg.World.Width), int(cfg.World.Height))
	ebiten.SetWindowTitle("Exterminator")

	game := newGame(world, cave, watcher, sugar)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		sugar.Fatalf("game: %v", err)
	}
}
