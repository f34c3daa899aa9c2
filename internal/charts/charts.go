// Package charts renders deck analysis reports as interactive HTML charts.
package charts

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/analysis"
	"github.com/ramonehamilton/TCG-Deck-Companion/internal/fsutil"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title    string   // Page title
	Subtitle string   // Shown under each chart title
	Width    string   // Chart width (e.g., "900px")
	Height   string   // Chart height (e.g., "500px")
	Theme    string   // Chart theme
	Colors   []string // Series colors, cycled
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:  "Deck analysis",
		Width:  "900px",
		Height: "500px",
		Theme:  "light",
		Colors: []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

// DataPoint represents a single data point in a chart.
type DataPoint struct {
	Label string
	Value float64
}

// FromCounts converts report counts to data points.
func FromCounts(counts []analysis.Count) []DataPoint {
	points := make([]DataPoint, len(counts))
	for i, c := range counts {
		points[i] = DataPoint{Label: c.Label, Value: float64(c.Cards)}
	}
	return points
}

func globalOptions(title string, config ChartConfig, trigger string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:     config.Width,
			Height:    config.Height,
			Theme:     config.Theme,
			PageTitle: config.Title,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: trigger,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithColorsOpts(opts.Colors(config.Colors)),
	}
}

// NewBarChart builds a single-series bar chart.
func NewBarChart(title, series string, data []DataPoint, config ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(title, config, "axis")...)

	xLabels := make([]string, len(data))
	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries(series, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
		)
	return bar
}

// NewPieChart builds a pie chart of the data's shares.
func NewPieChart(title, series string, data []DataPoint, config ChartConfig) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(globalOptions(title, config, "item")...)

	items := make([]opts.PieData, len(data))
	for i, point := range data {
		items[i] = opts.PieData{Name: point.Label, Value: point.Value}
	}

	pie.AddSeries(series, items).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c}",
			}),
		)
	return pie
}

// RenderReport writes the cost curve, type split and faction/aspect split
// of a report to one HTML page.
func RenderReport(report *analysis.Report, config ChartConfig, outputPath string) error {
	page := components.NewPage()
	page.PageTitle = config.Title

	page.AddCharts(
		NewBarChart("Cost curve", "Cards", FromCounts(report.CostCurve), config),
		NewPieChart("Card types", "Cards", FromCounts(report.Types), config),
	)
	if len(report.Groups) > 0 {
		page.AddCharts(NewBarChart("Factions / aspects", "Cards", FromCounts(report.Groups), config))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if err := fsutil.WriteFileAtomic(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write chart file: %w", err)
	}
	return nil
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
