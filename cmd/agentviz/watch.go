package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agentviz/agentviz/internal/config"
	"github.com/agentviz/agentviz/internal/layout"
	"github.com/agentviz/agentviz/internal/platform"
	"github.com/agentviz/agentviz/internal/render"
	"github.com/agentviz/agentviz/internal/store"
	"github.com/agentviz/agentviz/internal/view"
)

var (
	watchURL       string
	watchInterval  time.Duration
	watchOutput    string
	watchStorePath string
	watchWidth     float64
	watchHeight    float64
	watchSeed      int64
	watchCount     int
)

func init() {
	// Load .env if present (for AGENTVIZ_API_KEY)
	_ = godotenv.Load()

	watchCmd.Flags().StringVar(&watchURL, "url", "", "Platform base URL (default: config platform_url)")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 5*time.Second, "Polling interval")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "network.html", "Output file, rewritten on each change")
	watchCmd.Flags().StringVar(&watchStorePath, "store", "", "Snapshot store path (default: config store_path)")
	watchCmd.Flags().Float64Var(&watchWidth, "width", 0, "Viewport width")
	watchCmd.Flags().Float64Var(&watchHeight, "height", 0, "Viewport height")
	watchCmd.Flags().Int64Var(&watchSeed, "seed", 0, "Layout seed")
	watchCmd.Flags().IntVar(&watchCount, "count", 0, "Stop after N polls (0 = run until interrupted)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the platform and re-render on change",
	Long: `Poll the platform API for agent/connection snapshots, persist each
new snapshot to the local store, and re-render the output file whenever
the data changes.

Watch mode keeps node positions stable across refreshes: nodes already on
screen keep their settled positions, only new agents are placed randomly.
Unchanged snapshots are skipped entirely.

Environment:
  AGENTVIZ_API_KEY  API key sent to the platform (overrides config)`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	baseURL := watchURL
	if baseURL == "" {
		baseURL = cfg.PlatformURL
	}
	if baseURL == "" {
		exitWithError(ExitConfigError, "no platform URL: use --url or set platform_url in %s", config.Path())
	}

	apiKey := os.Getenv("AGENTVIZ_API_KEY")
	if apiKey == "" {
		apiKey = cfg.APIKey
	}

	client := platform.NewClient(baseURL, platform.WithAPIKey(apiKey))

	db, err := store.Open(storePath(cfg, watchStorePath))
	if err != nil {
		exitWithError(ExitError, "opening snapshot store: %v", err)
	}
	defer db.Close()

	vp := viewportFromFlags(cfg, watchWidth, watchHeight)
	seed := watchSeed
	if seed == 0 {
		seed = cfg.Seed
	}
	v := view.New(vp, seed, view.WithPositionCache(layout.NewPositionCache()))

	if err := writeLoadingPage(); err != nil {
		exitWithError(ExitError, "priming output: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	polls := 0
	for {
		pollOnce(ctx, client, db, v, vp)
		polls++
		if watchCount > 0 && polls >= watchCount {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// WatchEvent is the JSON line emitted after each poll.
type WatchEvent struct {
	Time       string `json:"time"`
	State      string `json:"state"`
	Nodes      int    `json:"nodes,omitempty"`
	Edges      int    `json:"edges,omitempty"`
	SnapshotID int64  `json:"snapshot_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

func pollOnce(ctx context.Context, client *platform.Client, db *store.DB, v *view.View, vp layout.Viewport) {
	now := time.Now()

	snap, err := client.FetchSnapshot(ctx)
	if err != nil {
		reportWatch(WatchEvent{Time: now.Format(time.RFC3339), State: "error", Error: err.Error()})
		return
	}

	var buf bytes.Buffer
	surf := render.NewSVG(&buf, vp)
	res := v.Render(snap, false, surf)
	surf.End()

	event := WatchEvent{
		Time:  now.Format(time.RFC3339),
		State: string(res.State),
		Nodes: res.Nodes,
		Edges: res.Edges,
	}

	if res.State == view.StateSkipped {
		reportWatch(event)
		return
	}

	id, err := db.Save(snap, now)
	if err != nil {
		event.Error = fmt.Sprintf("storing snapshot: %v", err)
		reportWatch(event)
		return
	}
	event.SnapshotID = id

	if err := writeWatchOutput(buf.String(), res); err != nil {
		event.Error = err.Error()
	}
	reportWatch(event)
}

// writeLoadingPage primes an HTML output with the loading placeholder so
// a viewer opening the file before the first poll completes sees feedback
// instead of a missing file. Non-HTML outputs are not primed.
func writeLoadingPage() error {
	if resolveFormat("", watchOutput) != "html" {
		return nil
	}
	return writeOutput(watchOutput, []byte(render.GenerateLoadingHTML()))
}

// writeWatchOutput writes the rendered page, choosing the HTML wrapper or
// raw SVG by the output extension.
func writeWatchOutput(svgMarkup string, res view.Result) error {
	format := resolveFormat("", watchOutput)
	switch format {
	case "html":
		var page string
		if res.State == view.StateEmpty {
			page = render.GenerateEmptyHTML()
		} else {
			var err error
			page, err = render.GenerateHTML(svgMarkup, render.DefaultHTMLOptions())
			if err != nil {
				return fmt.Errorf("generating html: %w", err)
			}
		}
		return writeOutput(watchOutput, []byte(page))
	default:
		return writeOutput(watchOutput, []byte(svgMarkup))
	}
}

var (
	watchOK   = color.New(color.FgGreen)
	watchDim  = color.New(color.Faint)
	watchFail = color.New(color.FgRed)
)

func reportWatch(event WatchEvent) {
	if !humanOutput {
		outputJSON(event)
		return
	}

	switch {
	case event.Error != "":
		watchFail.Printf("%s  error: %s\n", event.Time, event.Error)
	case event.State == string(view.StateSkipped):
		watchDim.Printf("%s  unchanged\n", event.Time)
	default:
		watchOK.Printf("%s  %s: %d nodes, %d edges -> %s\n",
			event.Time, event.State, event.Nodes, event.Edges, watchOutput)
	}
}
