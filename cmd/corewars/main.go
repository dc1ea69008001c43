package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"corewars/internal/config"
	"corewars/internal/logger"
	"corewars/internal/match"
	"corewars/internal/report"
	"corewars/internal/war"
)

func main() {
	var cfgPath, warriorsDir, zombiesDir, out, dump string
	var seed int64
	var n, workers int
	var saveLog, verbose bool
	flag.StringVar(&cfgPath, "config", "", "match config (yaml)")
	flag.StringVar(&warriorsDir, "warriors", "", "directory of warrior binaries (instead of config groups)")
	flag.StringVar(&zombiesDir, "zombies", "", "directory of zombie binaries, used with -warriors")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.StringVar(&dump, "dump", "", "write the final arena, zstd-compressed, to this file (single run only)")
	flag.Int64Var(&seed, "seed", 0, "seed override (0 = from config)")
	flag.IntVar(&n, "n", 1, "number of matches")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "concurrent matches in batch mode")
	flag.BoolVar(&saveLog, "log", true, "save the birth/death event log when n==1")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := logger.NewTextLogger(level)

	cfg, groups, err := loadInput(cfgPath, warriorsDir, zombiesDir)
	if err != nil {
		log.Error("cannot load warriors", "error", err)
		os.Exit(1)
	}
	settings := match.SettingsFromConfig(cfg)
	if seed != 0 {
		settings.Seed = seed
	}
	// nothing would ever resume a headless match
	settings.StartPaused = false

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if n <= 1 {
		settings.Record = saveLog
		runner := match.NewRunner(settings, match.WithLogger(log))
		if err := runner.Load(groups); err != nil {
			log.Error("load failed", "error", err)
			os.Exit(1)
		}
		res, err := runner.Run(ctx)
		if err != nil {
			log.Warn("match interrupted", "error", err, "rounds", res.Rounds)
		}
		if err := os.WriteFile(out, report.MarshalPretty(res), 0644); err != nil {
			log.Error("write result", "error", err)
			os.Exit(1)
		}
		if dump != "" {
			if err := writeDump(dump, runner.War()); err != nil {
				log.Error("write arena dump", "error", err)
				os.Exit(1)
			}
		}
		fmt.Printf("Single match finished. Rounds=%d, Survivors=%q, Draw=%v -> %s\n", res.Rounds, res.Winners, res.Draw, out)
		return
	}

	metrics := &war.BasicMetricsCollector{}
	sum, err := match.RunBatch(ctx, settings, groups, n, workers, match.WithLogger(logger.NoopLogger()), match.WithMetrics(metrics))
	if err != nil {
		log.Error("batch failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, report.MarshalPretty(sum), 0644); err != nil {
		log.Error("write summary", "error", err)
		os.Exit(1)
	}
	log.Info("batch metrics",
		"rounds", metrics.Rounds.Load(),
		"opcodes", metrics.Opcodes.Load(),
		"avg_round", metrics.AvgRound(),
		"cpu_deaths", metrics.CPUDeaths.Load(),
		"memory_deaths", metrics.MemoryDeaths.Load(),
	)
	fmt.Printf("Batch %d done (draws %d, timeouts %d) -> %s\n", sum.Runs, sum.Draws, sum.TimedOut, filepath.Base(out))
}

func loadInput(cfgPath, warriorsDir, zombiesDir string) (*config.MatchConfig, []war.WarriorGroup, error) {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.LoadMatch(cfgPath); err != nil {
			return nil, nil, err
		}
	}
	if warriorsDir != "" {
		defs, err := config.ScanWarriors(warriorsDir, zombiesDir)
		if err != nil {
			return nil, nil, err
		}
		cfg.Groups = defs
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	if len(cfg.Groups) == 0 {
		return nil, nil, fmt.Errorf("no warriors: pass -config or -warriors")
	}
	groups, err := match.Groups(cfg.Dir, cfg.Groups)
	if err != nil {
		return nil, nil, err
	}
	return cfg, groups, nil
}

func writeDump(path string, w *war.War) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteArenaSnapshot(f, w.Memory().Segment(war.ArenaSegment)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
