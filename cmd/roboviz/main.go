package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/roboviz/internal/arbiter"
	"github.com/san-kum/roboviz/internal/config"
	"github.com/san-kum/roboviz/internal/export"
	"github.com/san-kum/roboviz/internal/geom"
	"github.com/san-kum/roboviz/internal/playback"
	"github.com/san-kum/roboviz/internal/storage"
	"github.com/san-kum/roboviz/internal/stream"
	"github.com/san-kum/roboviz/internal/viz"
	"github.com/san-kum/roboviz/internal/wire"
	"github.com/san-kum/roboviz/internal/world"
)

var (
	configFile string
	dataDir    string
	backendURL string
	profile    string
	themeName  string
	frameRate  int
	seed       int64
	rayCount   int
	rayLength  float64
	rayFov     float64
	placement  string
	svgOut     string
	svgFrame   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roboviz",
		Short: "terminal visualizer for robot navigation training",
		RunE:  runWatch,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".roboviz", "recording data directory")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", 0, "frame rate")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for demo physics")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "follow the training backend, falling back to demo physics",
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&backendURL, "url", "", "backend base url")
	watchCmd.Flags().StringVar(&profile, "profile", "", "environment profile")
	rootCmd.Flags().StringVar(&backendURL, "url", "", "backend base url")
	rootCmd.Flags().StringVar(&profile, "profile", "", "environment profile")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "run the local wanderer without a backend",
		RunE:  runDemo,
	}
	demoCmd.Flags().StringVar(&profile, "profile", "", "environment profile")
	demoCmd.Flags().IntVar(&rayCount, "rays", 0, "override sensor ray count")
	demoCmd.Flags().Float64Var(&rayLength, "ray-length", 0, "override sensor range")
	demoCmd.Flags().Float64Var(&rayFov, "fov", 0, "override sensor field of view (degrees)")
	demoCmd.Flags().StringVar(&placement, "placement", "", "sensor placement (front, front_sides, front_rear, sides, 360)")

	replayCmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "play back a recorded frame file",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "list environment profiles",
		RunE:  listProfiles,
	}

	recordingsCmd := &cobra.Command{
		Use:   "recordings",
		Short: "list saved recordings",
		RunE:  listRecordings,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportCmd.Flags().StringVar(&svgOut, "out", "frame.svg", "output file")
	exportCmd.Flags().IntVar(&svgFrame, "frame", -1, "frame index (-1 means last)")

	rootCmd.AddCommand(watchCmd, demoCmd, replayCmd, profilesCmd, recordingsCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the config file (if any) with command line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if backendURL != "" {
		cfg.Backend.URL = backendURL
	}
	if profile != "" {
		cfg.Profile = profile
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if frameRate > 0 {
		cfg.FPS = frameRate
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if rayCount > 0 {
		cfg.Sensor.RayCount = rayCount
	}
	if rayLength > 0 {
		cfg.Sensor.RayLength = rayLength
	}
	if rayFov > 0 {
		cfg.Sensor.RayFovDegrees = rayFov
	}
	if placement != "" {
		cfg.Sensor.Placement = placement
	}
	return cfg, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	arb := arbiter.NewContext(cfg.Profile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interval := time.Duration(cfg.Backend.PollIntervalMs) * time.Millisecond
	go stream.NewStatusPoller(cfg.StatusURL(), interval, arb).Run(ctx)
	go stream.NewPreview(cfg.PreviewURL(), arb).Run(ctx)
	go stream.NewTraining(cfg.TrainingURL(), arb).Run(ctx)

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	m := viz.NewWatch(arb, cfg.FPS, cfg.Theme, cfg.Seed).WithStore(store)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := world.Get(cfg.Profile)
	applySensorOverrides(&p, cfg.Sensor)

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	m := viz.NewDemo(p, cfg.FPS, cfg.Theme, cfg.Seed).WithStore(store)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func applySensorOverrides(p *world.Profile, s config.SensorConfig) {
	if s.RayCount > 0 {
		p.Sensor.RayCount = s.RayCount
	}
	if s.RayLength > 0 {
		p.Sensor.RayLength = s.RayLength
	}
	if s.RayFovDegrees > 0 {
		p.Sensor.RayFovDegrees = s.RayFovDegrees
	}
	if s.Placement != "" {
		p.Sensor.Placement = geom.Placement(s.Placement)
	}
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	frames, err := loadFrames(args[0])
	if err != nil {
		return fmt.Errorf("load recording: %w", err)
	}
	ticker, err := playback.NewTicker(frames)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	m := viz.NewReplay(ticker, cfg.FPS, cfg.Theme)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// loadFrames accepts either a recording file path or a run ID from the
// data directory.
func loadFrames(ref string) ([]world.SimulationState, error) {
	if _, err := os.Stat(ref); err == nil {
		return wire.LoadRecording(ref)
	}
	return storage.New(dataDir).LoadFrames(ref)
}

func listRecordings(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recordings found in", dataDir)
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROFILE\tSOURCE\tFRAMES\tEPISODES\tREWARD\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.2f\t%s\n",
			r.ID, r.Profile, r.Source, r.Frames, r.Episodes, r.Reward,
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	frames, err := loadFrames(args[0])
	if err != nil {
		return fmt.Errorf("load recording: %w", err)
	}
	if len(frames) == 0 {
		return fmt.Errorf("%s: recording has no frames", args[0])
	}
	idx := svgFrame
	if idx < 0 || idx >= len(frames) {
		idx = len(frames) - 1
	}
	if err := export.WriteFrameSVG(svgOut, frames[idx], 120, 40, 4); err != nil {
		return err
	}
	fmt.Printf("wrote frame %d of %s to %s\n", idx, args[0], svgOut)
	return nil
}

func listProfiles(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tWORLD\tOBSTACLES\tRAYS\tDRIVE\tDESCRIPTION")
	for _, key := range world.Keys() {
		p := world.Get(key)
		fmt.Fprintf(w, "%s\t%.0fx%.0f\t%d\t%d\t%s\t%s\n",
			p.Key, p.World.Width, p.World.Height,
			len(p.Obstacles), p.Sensor.RayCount, p.Model, p.Description)
	}
	return w.Flush()
}
