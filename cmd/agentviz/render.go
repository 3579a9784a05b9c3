package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentviz/agentviz/internal/agent"
	"github.com/agentviz/agentviz/internal/config"
	"github.com/agentviz/agentviz/internal/layout"
	"github.com/agentviz/agentviz/internal/render"
	"github.com/agentviz/agentviz/internal/store"
	"github.com/agentviz/agentviz/internal/view"
)

var (
	renderInput     string
	renderJSONL     string
	renderFromStore string
	renderStorePath string
	renderOutput    string
	renderFormat    string
	renderWidth     float64
	renderHeight    float64
	renderSeed      int64
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "Snapshot JSON file ('-' for stdin)")
	renderCmd.Flags().StringVar(&renderJSONL, "jsonl", "", "Snapshot JSONL export file")
	renderCmd.Flags().StringVar(&renderFromStore, "from-store", "", "Load from the snapshot store: 'latest' or a snapshot ID")
	renderCmd.Flags().StringVar(&renderStorePath, "store", "", "Snapshot store path (default: config store_path)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file path (default: stdout; required for png)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "Output format: svg, png, or html (default: inferred from output path, else svg)")
	renderCmd.Flags().Float64Var(&renderWidth, "width", 0, "Viewport width (default: config, else 800)")
	renderCmd.Flags().Float64Var(&renderHeight, "height", 0, "Viewport height (default: config, else 600)")
	renderCmd.Flags().Int64Var(&renderSeed, "seed", 0, "Layout seed; identical seeds give identical layouts")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an agent network snapshot",
	Long: `Render an agents/connections snapshot as SVG, PNG, or HTML.

The snapshot is laid out with a fixed 50-iteration force simulation and
drawn with status-driven styling: active agents green, busy amber, idle
blue, offline gray. Active connections are green, failed ones red and
dashed, collaborations purple.

Examples:
  # Render a JSON snapshot to SVG on stdout
  agentviz render --input snapshot.json > network.svg

  # Render the latest stored snapshot to a PNG
  agentviz render --from-store latest --output network.png

  # Self-contained HTML page with hover tooltips and pulse animation
  agentviz render --input snapshot.json --output network.html`,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	snap, err := loadSnapshot(cfg)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	vp := viewportFromFlags(cfg, renderWidth, renderHeight)
	seed := renderSeed
	if seed == 0 {
		seed = cfg.Seed
	}

	format := resolveFormat(renderFormat, renderOutput)
	v := view.New(vp, seed)

	switch format {
	case "svg":
		markup, res := renderSVG(v, snap, vp)
		if err := writeOutput(renderOutput, []byte(markup)); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		reportRender(res, format)
	case "html":
		markup, res := renderSVG(v, snap, vp)
		var page string
		switch res.State {
		case view.StateEmpty:
			page = render.GenerateEmptyHTML()
		default:
			page, err = render.GenerateHTML(markup, render.DefaultHTMLOptions())
			if err != nil {
				exitWithError(ExitError, "generating html: %v", err)
			}
		}
		if err := writeOutput(renderOutput, []byte(page)); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		reportRender(res, format)
	case "png":
		if renderOutput == "" {
			exitWithError(ExitError, "png output requires --output")
		}
		surf := render.NewPNG(vp)
		res := v.Render(snap, false, surf)
		if err := surf.SavePNG(renderOutput); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		reportRender(res, format)
	default:
		exitWithError(ExitError, "invalid format %q: must be svg, png, or html", format)
	}

	return nil
}

// loadSnapshot resolves the input flags to a snapshot. Exactly one source
// is used; --input wins over --jsonl over --from-store.
func loadSnapshot(cfg *config.Config) (*agent.Snapshot, error) {
	switch {
	case renderInput == "-":
		return agent.DecodeSnapshot(os.Stdin)
	case renderInput != "":
		f, err := os.Open(renderInput)
		if err != nil {
			return nil, fmt.Errorf("opening snapshot: %w", err)
		}
		defer f.Close()
		return agent.DecodeSnapshot(f)
	case renderJSONL != "":
		return store.ReadJSONL(renderJSONL)
	case renderFromStore != "":
		db, err := store.Open(storePath(cfg, renderStorePath))
		if err != nil {
			return nil, err
		}
		defer db.Close()

		var snap *agent.Snapshot
		if renderFromStore == "latest" {
			snap, err = db.LoadLatest()
		} else {
			var id int64
			id, err = strconv.ParseInt(renderFromStore, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid snapshot id %q", renderFromStore)
			}
			snap, err = db.Load(id)
		}
		if err != nil {
			return nil, err
		}
		if snap == nil {
			return nil, fmt.Errorf("snapshot %q not found in store", renderFromStore)
		}
		return snap, nil
	default:
		return nil, fmt.Errorf("no input: use --input, --jsonl, or --from-store")
	}
}

// renderSVG runs the view onto an SVG surface and returns the markup.
func renderSVG(v *view.View, snap *agent.Snapshot, vp layout.Viewport) (string, view.Result) {
	var buf bytes.Buffer
	surf := render.NewSVG(&buf, vp)
	res := v.Render(snap, false, surf)
	surf.End()
	return buf.String(), res
}

// resolveFormat picks the output format from the flag, falling back to the
// output file extension, then svg.
func resolveFormat(flag, output string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".png":
		return "png"
	case ".html", ".htm":
		return "html"
	}
	return "svg"
}

// storePath resolves the snapshot store path from flag, config, and the
// default location, in that order.
func storePath(cfg *config.Config, flag string) string {
	if flag != "" {
		return flag
	}
	if cfg.StorePath != "" {
		return cfg.StorePath
	}
	return config.DefaultStorePath()
}

// viewportFromFlags resolves the viewport from flags and config.
func viewportFromFlags(cfg *config.Config, width, height float64) layout.Viewport {
	cw, ch := cfg.Viewport()
	if width <= 0 {
		width = cw
	}
	if height <= 0 {
		height = ch
	}
	return layout.Viewport{Width: width, Height: height}
}

// writeOutput writes data to the path, or stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// RenderResponse is the JSON response for render commands.
type RenderResponse struct {
	State  string `json:"state"`
	Format string `json:"format"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
	Output string `json:"output,omitempty"`
}

func reportRender(res view.Result, format string) {
	if renderOutput == "" && format != "png" {
		// Rendered bytes already went to stdout; stay quiet.
		return
	}
	if humanOutput {
		fmt.Printf("Rendered %d nodes, %d edges to %s (%s)\n", res.Nodes, res.Edges, renderOutput, res.State)
		return
	}
	outputJSON(RenderResponse{
		State:  string(res.State),
		Format: format,
		Nodes:  res.Nodes,
		Edges:  res.Edges,
		Output: renderOutput,
	})
}
