// tide-bench measures commit/notify throughput of the observable store
// under configurable listener counts and writer concurrency.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tide/pkg/snapshot"
	"github.com/vango-dev/tide/pkg/store"
)

type benchConfig struct {
	Listeners  int
	Ops        int
	Workers    int
	Selectors  bool
	JSONOutput string
}

type benchState struct {
	Seq     int
	Payload string
}

type benchReport struct {
	Listeners     int     `json:"listeners"`
	Ops           int     `json:"ops"`
	Workers       int     `json:"workers"`
	Selectors     bool    `json:"selectors"`
	DurationMS    float64 `json:"duration_ms"`
	OpsPerSec     float64 `json:"ops_per_sec"`
	NsPerOp       float64 `json:"ns_per_op"`
	Notifications uint64  `json:"notifications"`
	GoVersion     string  `json:"go_version"`
}

func main() {
	cfg := benchConfig{}

	rootCmd := &cobra.Command{
		Use:   "tide-bench",
		Short: "Benchmark the tide observable store",
		Long: `tide-bench drives a store with concurrent functional updates and a
configurable set of subscribed listeners, then reports commit/notify
throughput. With --selectors each listener reads its slice through a
snapshot binding on every notification, exercising the per-commit
snapshot cache.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cfg)
		},
	}

	rootCmd.Flags().IntVar(&cfg.Listeners, "listeners", 10, "Number of subscribed listeners")
	rootCmd.Flags().IntVar(&cfg.Ops, "ops", 100000, "Total number of commits")
	rootCmd.Flags().IntVar(&cfg.Workers, "workers", 4, "Concurrent committing goroutines")
	rootCmd.Flags().BoolVar(&cfg.Selectors, "selectors", false, "Read a snapshot binding inside each listener")
	rootCmd.Flags().StringVar(&cfg.JSONOutput, "json", "", "Write the report as JSON to this file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func runBench(cfg benchConfig) error {
	if cfg.Listeners < 0 || cfg.Ops <= 0 || cfg.Workers <= 0 {
		return fmt.Errorf("invalid configuration: listeners=%d ops=%d workers=%d",
			cfg.Listeners, cfg.Ops, cfg.Workers)
	}

	s := store.New(func(s *store.Store[benchState]) benchState {
		return benchState{Payload: "tide-bench"}
	}, store.WithName[benchState]("bench"))

	var notifications atomic.Uint64
	var snapshotSink atomic.Int64

	for i := 0; i < cfg.Listeners; i++ {
		if cfg.Selectors {
			b := snapshot.Bind[benchState](s, func(st benchState) int { return st.Seq })
			s.SubscribeFunc(func() {
				notifications.Add(1)
				snapshotSink.Store(int64(b.Snapshot()))
			})
		} else {
			s.SubscribeFunc(func() {
				notifications.Add(1)
			})
		}
	}

	perWorker := cfg.Ops / cfg.Workers
	total := perWorker * cfg.Workers

	var wg sync.WaitGroup
	start := time.Now()
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.SetFrom(func(st benchState) benchState {
					st.Seq++
					return st
				})
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	if got := s.Get().Seq; got != total {
		return fmt.Errorf("lost updates: expected seq %d, got %d", total, got)
	}

	report := benchReport{
		Listeners:     cfg.Listeners,
		Ops:           total,
		Workers:       cfg.Workers,
		Selectors:     cfg.Selectors,
		DurationMS:    float64(elapsed.Microseconds()) / 1000,
		OpsPerSec:     float64(total) / elapsed.Seconds(),
		NsPerOp:       float64(elapsed.Nanoseconds()) / float64(total),
		Notifications: notifications.Load(),
		GoVersion:     runtime.Version(),
	}

	printReport(report)

	if cfg.JSONOutput != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if err := os.WriteFile(cfg.JSONOutput, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("\nReport written to %s\n", cfg.JSONOutput)
	}

	return nil
}

func printReport(r benchReport) {
	fmt.Println("tide-bench results")
	fmt.Printf("  Listeners:      %d\n", r.Listeners)
	fmt.Printf("  Workers:        %d\n", r.Workers)
	fmt.Printf("  Commits:        %d\n", r.Ops)
	fmt.Printf("  Notifications:  %d\n", r.Notifications)
	fmt.Printf("  Duration:       %.2f ms\n", r.DurationMS)
	fmt.Printf("  Throughput:     %.0f commits/sec\n", r.OpsPerSec)
	fmt.Printf("  Latency:        %.0f ns/commit\n", r.NsPerOp)
}
