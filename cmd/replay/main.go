// Command replay posts offline voice-engine JSON exports to the
// call-ingestion API.
//
// Usage:
//
//	replay -mode aggregate -file analysis.json -api http://localhost:8080/api/calls
//	replay -mode percall  -file results.json   -api http://localhost:8080/api/calls
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"call-analytics/internal/replay"
	"call-analytics/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var (
		mode  = flag.String("mode", "aggregate", "export shape: aggregate or percall")
		file  = flag.String("file", "", "path to the JSON export")
		api   = flag.String("api", os.Getenv("REPLAY_API_URL"), "calls ingestion endpoint")
		delay = flag.Duration("delay", 200*time.Millisecond, "politeness delay between sends")
		skip  = flag.Int("skip", 0, "aggregate mode: skip the first N entries (already posted)")
	)
	flag.Parse()

	log := logger.New(os.Getenv("APP_ENV"))
	slog.SetDefault(log)

	if *file == "" || *api == "" {
		log.Error("both -file and -api are required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	payloads, err := loadPayloads(*mode, *file, *skip)
	if err != nil {
		log.Error("load failed", "mode", *mode, "file", *file, "err", err)
		os.Exit(1)
	}
	log.Info("export loaded", "mode", *mode, "file", *file, "entries", len(payloads))

	client, err := replay.NewClient(replay.Config{APIURL: *api, Delay: *delay}, log)
	if err != nil {
		log.Error("client init failed", "err", err)
		os.Exit(1)
	}

	stats := client.Run(ctx, payloads)
	log.Info("replay finished",
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"total", len(payloads),
	)
	if stats.Failed > 0 {
		os.Exit(1)
	}
}

func loadPayloads(mode, file string, skip int) ([]replay.CallPayload, error) {
	switch mode {
	case "percall":
		calls, err := replay.LoadResults(file, replay.DefaultResultKeys())
		if err != nil {
			return nil, err
		}
		out := make([]replay.CallPayload, len(calls))
		for i, c := range calls {
			out[i] = c.Payload()
		}
		return out, nil
	case "aggregate":
		entries, err := replay.LoadAnalysis(file, skip)
		if err != nil {
			return nil, err
		}
		out := make([]replay.CallPayload, len(entries))
		for i, e := range entries {
			out[i] = e.Payload()
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
