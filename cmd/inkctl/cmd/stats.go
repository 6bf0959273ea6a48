package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/inkpress/inkctl/internal/service"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Probe the backend and print client metrics",
	Long: `Send a probe request to the backend and print the client-side
metrics for this run: request counts, latencies, retries, and cache
activity. Useful for checking connectivity and spotting a flaky
backend.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsProbes int

func init() {
	statsCmd.Flags().IntVar(&statsProbes, "probes", 1, "number of probe requests to send")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	var probeErr error
	for i := 0; i < statsProbes; i++ {
		if _, err := app.categories.List(cmd.Context(), service.CategoryListParams{Limit: 1}); err != nil {
			probeErr = err
		}
	}
	if probeErr != nil {
		fmt.Fprintf(os.Stderr, "Probe failed: %v\n", probeErr)
	}

	families, err := app.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(os.Stdout, "%s%s %s\n", mf.GetName(), formatLabels(m), formatValue(mf.GetType(), m))
		}
	}

	return probeErr
}

func formatLabels(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		parts = append(parts, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func formatValue(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%g", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		if h.GetSampleCount() == 0 {
			return "count=0"
		}
		mean := h.GetSampleSum() / float64(h.GetSampleCount())
		return fmt.Sprintf("count=%d mean=%.3fs", h.GetSampleCount(), mean)
	default:
		return "?"
	}
}
