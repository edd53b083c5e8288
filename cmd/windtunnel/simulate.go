package main

import (
	"context"
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/windtunnel/internal/aero"
	"github.com/san-kum/windtunnel/internal/export"
	"github.com/san-kum/windtunnel/internal/flow"
	"github.com/san-kum/windtunnel/internal/viz"
	"github.com/spf13/cobra"
)

func simulationCommands() []*cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute drag and power at one velocity",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().Float64Var(&area, "area", 0, "frontal area (m²), overrides the object's")
	runCmd.Flags().StringVarP(&outFile, "out", "o", "", "export the result (.json or .csv)")
	runCmd.Flags().BoolVar(&withMetadata, "metadata", false, "wrap JSON output with the config")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "record the run in the data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "drag and power over a velocity range",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&vStart, "start", aero.DefaultRange.Start, "first velocity (m/s)")
	sweepCmd.Flags().Float64Var(&vEnd, "end", aero.DefaultRange.End, "last velocity (m/s)")
	sweepCmd.Flags().Float64Var(&vStep, "step", aero.DefaultRange.Step, "velocity step (m/s)")
	sweepCmd.Flags().Float64Var(&area, "area", 0, "frontal area (m²), overrides the object's")
	sweepCmd.Flags().StringVarP(&outFile, "out", "o", "", "export the sweep (.json or .csv)")
	sweepCmd.Flags().StringVar(&plotFile, "plot", "", "write a PNG chart")
	sweepCmd.Flags().BoolVar(&saveRun, "save", false, "record the run in the data directory")

	fieldsCmd := &cobra.Command{
		Use:       "fields [streamlines|pressure|surface]",
		Short:     "export a synthetic flow field",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"streamlines", "pressure", "surface"},
		RunE:      runFields,
	}
	addScenarioFlags(fieldsCmd)
	fieldsCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (.json or .csv)")
	fieldsCmd.MarkFlagRequired("out")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "draw the tunnel scene to the terminal or an image",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	addScenarioFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "image file (.png or .svg); prints to the terminal when empty")
	renderCmd.Flags().StringVar(&viewName, "view", "iso", "camera view (xy, xz, yz, iso)")
	renderCmd.Flags().StringVar(&themeName, "theme", viz.ThemeLab.Name, fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	renderCmd.Flags().IntVar(&cellsW, "cols", 100, "canvas width in character cells")
	renderCmd.Flags().IntVar(&cellsH, "rows", 32, "canvas height in character cells")
	renderCmd.Flags().BoolVar(&showStream, "streamlines", false, "trace and draw streamlines")
	renderCmd.Flags().BoolVar(&showPressure, "pressure", false, "draw the tunnel pressure volume")
	renderCmd.Flags().BoolVar(&showSurface, "surface", false, "shade the object by surface pressure")

	meshCmd := &cobra.Command{
		Use:   "mesh [file.stl]",
		Short: "inspect and transform an STL file",
		Args:  cobra.ExactArgs(1),
		RunE:  runMesh,
	}
	addScenarioFlags(meshCmd)
	meshCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the placed mesh as binary STL")

	return []*cobra.Command{runCmd, sweepCmd, fieldsCmd, renderCmd, meshCmd}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	s, err := buildSession(cmd)
	if err != nil {
		return err
	}

	a := s.FrontalArea()
	if cmd.Flags().Changed("area") {
		a = area
	}
	f := s.Config.Flow
	res := aero.Evaluate(f.Density, f.Velocity, a, s.Cd)
	s.Result = &res

	fmt.Println(s.ResultText())
	fmt.Printf("Reynolds: %.4g\n", s.Reynolds())

	if outFile != "" {
		meta := s.Config
		if !withMetadata {
			meta = nil
		}
		if err := export.SaveResult(outFile, res, meta); err != nil {
			return err
		}
		fmt.Printf("Single run data exported to: %s\n", outFile)
	}
	if saveRun {
		id, err := s.SaveRun(context.Background(), false)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", id)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := buildSession(cmd)
	if err != nil {
		return err
	}
	r := aero.Range{Start: vStart, End: vEnd, Step: vStep}

	if cmd.Flags().Changed("area") {
		data, err := aero.Sweep(r, s.Config.Flow.Density, area, s.Cd)
		if err != nil {
			return err
		}
		s.Range, s.RangeData = r, data
	} else if err := s.RangeAnalysis(r); err != nil {
		return err
	}
	data := s.RangeData

	fmt.Println(asciigraph.Plot(data.DragForces,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("drag force (N) vs velocity"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(data.Powers,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power (W) vs velocity"),
	))
	last := data.Len() - 1
	fmt.Printf("\n%d samples, %.4g..%.4g m/s, max drag %.2f N, max power %.2f W\n",
		data.Len(), data.Velocities[0], data.Velocities[last], data.DragForces[last], data.Powers[last])

	if outFile != "" {
		if err := s.ExportRange(outFile); err != nil {
			return err
		}
		fmt.Println(s.Status)
	}
	if plotFile != "" {
		if err := s.PlotRange(plotFile); err != nil {
			return err
		}
		fmt.Println(s.Status)
	}
	if saveRun {
		id, err := s.SaveRun(context.Background(), true)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", id)
	}
	return nil
}

func runFields(cmd *cobra.Command, args []string) error {
	s, err := buildSession(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()

	switch args[0] {
	case "streamlines":
		if err := s.VisualizeStreamlines(ctx); err != nil {
			return err
		}
		err = export.SaveStreamlines(outFile, s.Streamlines)
	case "pressure":
		if err := s.VisualizeTunnelPressure(); err != nil {
			return err
		}
		err = export.SavePressure(outFile, s.Pressure)
	case "surface":
		if err := s.VisualizePressure(); err != nil {
			return fmt.Errorf("%s (use --stl)", s.Status)
		}
		var pv *flow.PressureVolume
		if pv, err = export.SurfaceVolume(s.Object, s.SurfacePressure); err == nil {
			err = export.SavePressure(outFile, pv)
		}
	default:
		return fmt.Errorf("unknown field %q (want streamlines, pressure or surface)", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s exported to: %s\n", args[0], outFile)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := buildSession(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()
	s.Theme = viz.GetTheme(themeName)
	if err := s.SetView(viewName); err != nil {
		return err
	}
	if showStream {
		if err := s.VisualizeStreamlines(ctx); err != nil {
			return err
		}
	}
	if showPressure {
		if err := s.VisualizeTunnelPressure(); err != nil {
			return err
		}
	}
	if showSurface {
		if err := s.VisualizePressure(); err != nil {
			return fmt.Errorf("%s (use --stl)", s.Status)
		}
	}

	if outFile == "" {
		c := s.Render(cellsW, cellsH)
		fmt.Println(c.Render(viz.Painter(s.Theme)))
		return nil
	}
	c := s.Render(cellsW, cellsH)
	if err := export.SaveScreenshot(outFile, c, s.Theme); err != nil {
		return err
	}
	fmt.Printf("Screenshot saved to: %s\n", outFile)
	return nil
}

func runMesh(cmd *cobra.Command, args []string) error {
	stlFile = args[0]
	s, err := buildSession(cmd)
	if err != nil {
		return err
	}
	m := s.Object
	b := m.Bounds()
	e := m.Extent()
	p := s.Config.ObjectPosition

	fmt.Printf("file:       %s\n", stlFile)
	fmt.Printf("triangles:  %d\n", m.NumTriangles())
	fmt.Printf("vertices:   %d\n", m.NumVertices())
	fmt.Printf("bounds:     x [%.3f, %.3f]  y [%.3f, %.3f]  z [%.3f, %.3f]\n", b[0], b[1], b[2], b[3], b[4], b[5])
	fmt.Printf("extent:     %.3f x %.3f x %.3f m\n", e.X, e.Y, e.Z)
	fmt.Printf("position:   [%g, %g, %g]\n", p[0], p[1], p[2])
	fmt.Printf("area:       %.4f m²\n", s.FrontalArea())

	if t := s.Config.Tunnel; e.X > t.Length || e.Y > t.Width || e.Z > t.Height {
		fmt.Fprintln(os.Stderr, "warning: object is larger than the tunnel")
	}

	if outFile != "" {
		if err := m.SaveSTL(outFile); err != nil {
			return err
		}
		fmt.Printf("written: %s\n", outFile)
	}
	return nil
}
