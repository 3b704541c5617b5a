package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"svw.info/blockfall/internal/adapters/terminal"
	"svw.info/blockfall/internal/config"
	"svw.info/blockfall/internal/domain"
	"svw.info/blockfall/internal/generator"
	"svw.info/blockfall/internal/hint"
	"svw.info/blockfall/internal/infrastructure/storage"
	"svw.info/blockfall/internal/infrastructure/tracelog"
	"svw.info/blockfall/internal/ports"
	"svw.info/blockfall/internal/solver"
	"svw.info/blockfall/internal/usecase"
	"svw.info/blockfall/internal/validator"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	scenarioID := flag.String("scenario", "", "start from the batches of a stored scenario")
	auto := flag.Bool("auto", false, "let the greedy player play and print the result")
	count := flag.Int("count", 50, "batches to generate for -auto without a scenario")
	seed := flag.Int64("seed", 0, "random seed (0 uses the config seed or the clock)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	// the screen owns stdout while playing
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	if !*auto {
		logger = slog.New(slog.DiscardHandler)
	}

	if *seed == 0 {
		*seed = cfg.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	greedy := solver.NewGreedySolver()
	uc := usecase.NewService(
		greedy,
		solver.NewBacktrackingSolver(),
		generator.NewBatchGenerator(),
		validator.New(),
		hint.NewGreedy(greedy),
		storage.NewFS(cfg.Server.ScenarioDir),
	)
	uc.Logger = logger
	var tracer ports.Tracer
	if cfg.Server.TraceDir != "" {
		tw := tracelog.New(cfg.Server.TraceDir, "turns")
		defer tw.Close()
		uc.Tracer = tw
		tracer = tw
	}

	ctx := context.Background()
	dim := cfg.Dimension
	var batches []domain.FillBatch
	if *scenarioID != "" {
		s, err := uc.Load(ctx, *scenarioID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scenario: %v\n", err)
			os.Exit(1)
		}
		if _, batches, err = uc.ScenarioBoard(ctx, s); err != nil {
			fmt.Fprintf(os.Stderr, "scenario %s: %v\n", s.ID, err)
			os.Exit(1)
		}
		dim = s.Dimension
	}

	if *auto {
		if batches == nil {
			if batches, _, err = uc.Generate(ctx, *seed, dim, 1, *count); err != nil {
				fmt.Fprintf(os.Stderr, "generate: %v\n", err)
				os.Exit(1)
			}
		}
		res, err := uc.PlayGreedy(ctx, dim, batches)
		if err != nil {
			fmt.Fprintf(os.Stderr, "play: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("turns %d  moves %d  score %d  level %d  over %v\n",
			res.Turns, len(res.Moves), res.Progress.Score, res.Progress.Level, res.Over)
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	game := usecase.NewGame(dim, batches, *seed, tracer)
	game.Logger = logger
	terminal.New(ctx, game, uc.Hinter).Run(screen)
}
