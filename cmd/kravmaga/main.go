package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atnzpe/krav-maga-analyzer/internal/config"
	"github.com/atnzpe/krav-maga-analyzer/internal/ingest"
	"github.com/atnzpe/krav-maga-analyzer/internal/ingest/mediapipe"
	"github.com/atnzpe/krav-maga-analyzer/internal/pose"
	"github.com/atnzpe/krav-maga-analyzer/internal/report"
	"github.com/atnzpe/krav-maga-analyzer/internal/session"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	studentPath := flag.String("student", "", "path to the student's landmark export (required)")
	masterPath := flag.String("master", "", "path to the master's landmark export (required)")
	outDir := flag.String("out", "", "report output directory (overrides config)")
	workers := flag.Int("workers", 0, "concurrent frame comparisons (overrides config)")
	dryRun := flag.Bool("dry-run", false, "analyze and log the summary without writing reports")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("kravmaga", Version)
		return
	}

	if *studentPath == "" || *masterPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: kravmaga -student student.json -master master.json [-config config.yaml] [-out dir] [-workers N] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *outDir != "" {
		cfg.Report.Dir = *outDir
	}
	if *workers > 0 {
		cfg.Analysis.Workers = *workers
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
	log.Info("kravmaga starting", "version", Version)

	ctx := context.Background()
	provider := mediapipe.NewProvider(log)

	student, studentStats, err := provider.Load(ctx, *studentPath)
	if err != nil {
		log.Error("failed to load student export", "error", err)
		os.Exit(1)
	}
	printIngestStats(log, "student", studentStats)

	master, masterStats, err := provider.Load(ctx, *masterPath)
	if err != nil {
		log.Error("failed to load master export", "error", err)
		os.Exit(1)
	}
	printIngestStats(log, "master", masterStats)

	cmp := pose.NewComparator(cfg.Analysis.VisibilityFloor, log)
	analyzer := session.New(cmp, cfg.Analysis.Workers, log)

	sess, err := analyzer.Run(ctx, student, master)
	if err != nil {
		log.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	sum := sess.Summarize()
	log.Info("session summary",
		"frames", sum.Frames,
		"mean_score", fmt.Sprintf("%.1f", sum.MeanScore),
		"min_score", fmt.Sprintf("%.1f", sum.MinScore),
		"max_score", fmt.Sprintf("%.1f", sum.MaxScore),
		"best_frame", sum.BestFrame,
		"worst_frame", sum.WorstFrame,
		"missed_frames", sum.MissedFrames,
		"degraded_frames", sum.DegradedFrames,
	)

	if *dryRun {
		log.Info("DRY RUN mode — no reports written")
		return
	}

	rep := report.Build(sess)
	if err := writeReports(cfg, rep); err != nil {
		log.Error("failed to write reports", "error", err)
		os.Exit(1)
	}
	log.Info("analysis complete", "session_id", sess.ID, "report_dir", cfg.Report.Dir)
}

func writeReports(cfg *config.Config, rep *report.Report) error {
	if err := os.MkdirAll(cfg.Report.Dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}
	for _, format := range cfg.Report.Formats {
		path := filepath.Join(cfg.Report.Dir, "session_"+rep.SessionID+"."+format)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		switch format {
		case "json":
			err = rep.WriteJSON(f)
		case "html":
			err = rep.WriteHTML(f)
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

func printIngestStats(log *slog.Logger, source string, stats *ingest.Stats) {
	log.Info("export loaded",
		"source", source,
		"frames_received", stats.FramesReceived,
		"frames_detected", stats.FramesDetected,
		"frames_undetected", stats.FramesUndetected,
		"frames_rejected", stats.FramesRejected,
	)
	if len(stats.UnknownJoints) > 0 {
		log.Info("unknown landmark names in export", "source", source, "names", stats.UnknownJoints)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
