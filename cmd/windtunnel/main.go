package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/windtunnel/internal/gui"
	"github.com/san-kum/windtunnel/internal/logging"
	"github.com/san-kum/windtunnel/internal/storage"
	"github.com/san-kum/windtunnel/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	logFile  string

	// scenario
	configFile string
	preset     string
	stlFile    string
	length     float64
	width      float64
	height     float64
	velocity   float64
	density    float64
	viscosity  float64
	scale      []float64
	position   []float64
	rotate     []string
	cd         float64
	seed       uint64
	turbulence bool
	integrator string

	// outputs
	outFile      string
	withMetadata bool
	saveRun      bool
	area         float64
	plotFile     string
	vStart       float64
	vEnd         float64
	vStep        float64
	format       string
	force        bool
	viewName     string
	themeName    string
	cellsW       int
	cellsH       int
	showStream   bool
	showPressure bool
	showSurface  bool
	outDir       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "windtunnel",
		Short:         "virtual wind tunnel: drag, power and illustrative flow fields",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Default().Sync()
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", storage.DefaultDir, "data directory for run history")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (default stderr; <data>/windtunnel.log for tui and gui)")
	addScenarioFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal wind tunnel",
		RunE:  runTUI,
	}
	addScenarioFlags(tuiCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "3D wind tunnel window",
		RunE:  runGUI,
	}
	addScenarioFlags(guiCmd)
	guiCmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for exports and saved configs")

	rootCmd.AddCommand(tuiCmd, guiCmd)
	rootCmd.AddCommand(simulationCommands()...)
	rootCmd.AddCommand(configCommands()...)
	rootCmd.AddCommand(historyCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging installs the process logger. The UIs own the terminal, so
// they log to a file.
func setupLogging(cmd *cobra.Command) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	path := logFile
	if path == "" && isUI(cmd) {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return err
		}
		path = filepath.Join(dataDir, "windtunnel.log")
	}
	var l *logging.Logger
	if path == "" {
		l, err = logging.New(level)
	} else {
		l, err = logging.New(level, path)
	}
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logging.SetDefault(l)
	return nil
}

func isUI(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui" || cmd.Name() == "gui"
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := buildSession(cmd)
	if err != nil {
		return err
	}
	return tui.Run(s)
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, err := buildSession(cmd)
	if err != nil {
		return err
	}
	gui.Run(s, outDir)
	return nil
}
