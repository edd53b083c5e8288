package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/windtunnel/internal/export"
	"github.com/san-kum/windtunnel/internal/storage"
	"github.com/spf13/cobra"
)

func historyCommands() []*cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "chart a saved range run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&outFile, "out", "o", "", "write a PNG chart instead of printing")

	rmCmd := &cobra.Command{
		Use:   "rm [run_id]",
		Short: "delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.New(dataDir).Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted: %s\n", args[0])
			return nil
		},
	}

	return []*cobra.Command{listCmd, showCmd, plotCmd, rmCmd}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tVELOCITY\tCD\tAREA\tSAMPLES\tCONFIG")

	for _, run := range runs {
		v := 0.0
		if run.Config != nil {
			v = run.Config.Flow.Velocity
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.3f\t%.2f\t%d\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			v,
			run.DragCoefficient,
			run.FrontalArea,
			run.Samples,
			run.ConfigHash,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	header, rows, err := st.LoadRows(args[0])
	if err != nil {
		return err
	}

	out := struct {
		*storage.RunMetadata
		Columns []string    `json:"columns"`
		Rows    [][]float64 `json:"rows"`
	}{meta, header, rows}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	if meta.Kind != storage.KindRange {
		return fmt.Errorf("run %s is a %s run, nothing to plot", runID, meta.Kind)
	}
	data, err := st.LoadRange(runID)
	if err != nil {
		return err
	}
	if data.Len() < 2 {
		return fmt.Errorf("no data to plot")
	}

	if outFile != "" {
		if err := export.PlotRange(outFile, data); err != nil {
			return err
		}
		fmt.Printf("Range plot saved to: %s\n", outFile)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", data.Len())
	for _, series := range []struct {
		caption string
		values  []float64
	}{
		{"drag force (N)", data.DragForces},
		{"power (W)", data.Powers},
	} {
		fmt.Println(asciigraph.Plot(series.values,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		))
		fmt.Println()
	}
	return nil
}
