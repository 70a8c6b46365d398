package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"stookwijzer/internal/config"
	"stookwijzer/internal/observability"
	"stookwijzer/internal/providers/rivm"
	"stookwijzer/internal/stookwijzer"

	"github.com/spf13/cobra"
)

// ErrNoAdvice is returned when the lookup succeeds but carries no current advice.
var ErrNoAdvice = errors.New("no data available for these coordinates")

type serviceFactory func(cfg *config.Config, logger *slog.Logger) (stookwijzer.Service, error)

func defaultServiceFactory(cfg *config.Config, logger *slog.Logger) (stookwijzer.Service, error) {
	return stookwijzer.NewStookwijzerService(cfg, observability.NewMetricsForTesting(), logger)
}

func newRootCmd(newService serviceFactory) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "stookwijzer",
		Short:         "Wood-burning advice from the RIVM Stookwijzer",
		Long:          `Look up the current wood-burning advice, wind and air quality for a location in the Netherlands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging on stderr")

	rootCmd.AddCommand(
		newAdviceCmd(newService, &verbose),
		newBBoxCmd(),
	)
	return rootCmd
}

func newAdviceCmd(newService serviceFactory, verbose *bool) *cobra.Command {
	var (
		latitude  float64
		longitude float64
		output    string
	)

	cmd := &cobra.Command{
		Use:   "advice",
		Short: "Get the burn advice for a location",
		Long:  `Transform the WGS84 location to RD New, query the RIVM Stookwijzer layer and print the advice report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "text" {
				return fmt.Errorf("unsupported output format %q (want json or text)", output)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.Log.Level = "error"
			if *verbose {
				cfg.Log.Level = "debug"
			}
			logger := cfg.NewLoggerTo(cmd.ErrOrStderr())

			svc, err := newService(cfg, logger)
			if err != nil {
				return err
			}

			report, err := svc.GetAdvice(cmd.Context(), latitude, longitude)
			if err != nil {
				return err
			}
			if !report.HasAdvice() {
				return ErrNoAdvice
			}

			if output == "json" {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return writeText(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().Float64Var(&latitude, "latitude", 0, "Latitude in decimal degrees (WGS84)")
	cmd.Flags().Float64Var(&longitude, "longitude", 0, "Longitude in decimal degrees (WGS84)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: json or text")
	_ = cmd.MarkFlagRequired("latitude")
	_ = cmd.MarkFlagRequired("longitude")

	return cmd
}

func newBBoxCmd() *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "bbox",
		Short: "Print the WMS bounding box for an RD New point",
		RunE: func(cmd *cobra.Command, args []string) error {
			bbox, err := rivm.NewBoundingBox(x, y)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), bbox)
			return err
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "RD New x in meters")
	cmd.Flags().Float64Var(&y, "y", 0, "RD New y in meters")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

func writeJSON(w io.Writer, report *stookwijzer.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeText(w io.Writer, report *stookwijzer.Report) error {
	var b strings.Builder

	original := report.Coordinates.Original
	fmt.Fprintf(&b, "Location:  %.4f, %.4f", original.Latitude, original.Longitude)
	if original.Timezone != "" {
		fmt.Fprintf(&b, " (%s)", original.Timezone)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "RD New:    %.2f, %.2f\n", report.Coordinates.Transformed.X, report.Coordinates.Transformed.Y)
	fmt.Fprintf(&b, "Advice:    %s\n", colorLabel(*report.Advice))
	fmt.Fprintf(&b, "Alert:     %s\n", yesNo(report.Alert != nil && *report.Alert))
	fmt.Fprintf(&b, "Wind:      %s m/s, %s Bft\n", formatFloat(report.WindspeedMs), formatInt(report.WindspeedBft))
	fmt.Fprintf(&b, "LKI:       %s\n", formatInt(report.AirQualityIndex))
	if report.LastUpdated != nil {
		fmt.Fprintf(&b, "Updated:   %s\n", report.LastUpdated.Format(time.RFC3339))
	}

	if len(report.ForecastAdvice) > 0 {
		b.WriteString("Forecast:\n")
		for i, f := range report.ForecastAdvice {
			alert := ""
			if i < len(report.ForecastAlert) && report.ForecastAlert[i].Alert {
				alert = "  alert"
			}
			fmt.Fprintf(&b, "  %s  %s%s\n", f.Datetime.Format("Mon 15:04"), colorLabel(f.Advice), alert)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func colorLabel(c stookwijzer.Color) string {
	if c == stookwijzer.ColorUnknown {
		return "unknown"
	}
	return string(c)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
