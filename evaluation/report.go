package evaluation

import (
	"fmt"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/gmatenda/variant-bench/utils"
)

// Metrics is one PASS row of the hap.py summary: how well the caller did on
// one variant type.
type Metrics struct {
	Type      string
	Recall    float64
	Precision float64
	F1        float64
}

// ParseHappySummary reads a hap.py summary.csv and returns the PASS metrics
// per variant type.
func ParseHappySummary(path string) ([]Metrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return nil, fmt.Errorf("reading hap.py summary %s: %w", path, df.Err)
	}

	passRows := df.Filter(dataframe.F{Colname: "Filter", Comparator: series.Eq, Comparando: "PASS"})
	if passRows.Err != nil {
		return nil, fmt.Errorf("no PASS rows in %s: %w", path, passRows.Err)
	}

	variantTypes := passRows.Col("Type").Records()
	recalls := passRows.Col("METRIC.Recall").Float()
	precisions := passRows.Col("METRIC.Precision").Float()
	f1s := passRows.Col("METRIC.F1_Score").Float()

	var metrics []Metrics
	for i := range variantTypes {
		metrics = append(metrics, Metrics{
			Type:      variantTypes[i],
			Recall:    recalls[i],
			Precision: precisions[i],
			F1:        f1s[i],
		})
	}
	return metrics, nil
}

// MeanF1 is the unweighted mean F1 over all variant types.
func MeanF1(metrics []Metrics) float64 {
	f1s := make([]float64, len(metrics))
	for i, m := range metrics {
		f1s[i] = m.F1
	}
	return stat.Mean(f1s, nil)
}

func createMetricsBar(metrics []Metrics) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "Benchmark metrics (PASS)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score"}),
	)

	var names []string
	var recallData, precisionData, f1Data []opts.BarData
	for _, m := range metrics {
		names = append(names, m.Type)
		recallData = append(recallData, opts.BarData{Value: m.Recall})
		precisionData = append(precisionData, opts.BarData{Value: m.Precision})
		f1Data = append(f1Data, opts.BarData{Value: m.F1})
	}

	bar.SetXAxis(names).
		AddSeries("Recall", recallData).
		AddSeries("Precision", precisionData).
		AddSeries("F1", f1Data)
	return bar
}

func createStageBar(order []string, durations map[string]time.Duration) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "Stage durations"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Seconds"}),
	)

	var data []opts.BarData
	for _, stage := range order {
		data = append(data, opts.BarData{Value: durations[stage].Seconds()})
	}
	bar.SetXAxis(order).AddSeries("Duration", data)
	return bar
}

// WriteReport renders the benchmark report: per-type metrics from the hap.py
// summary plus stage timings replayed from the run log (when one exists).
func WriteReport(summaryCSV string, runLogPath string, outputHTML string) error {
	fmt.Printf("Creating benchmark report ...\n\n")

	metrics, err := ParseHappySummary(summaryCSV)
	if err != nil {
		return err
	}
	fmt.Printf("Mean F1 across variant types: %.4f\n", MeanF1(metrics))

	entries, err := utils.ParseRunLog(runLogPath)
	if err != nil {
		return err
	}
	order, durations := utils.StageDurations(entries)

	var metricsBar, stageBar *charts.Bar
	var g errgroup.Group
	g.Go(func() error {
		metricsBar = createMetricsBar(metrics)
		return nil
	})
	g.Go(func() error {
		if len(order) > 0 {
			stageBar = createStageBar(order, durations)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(metricsBar)
	if stageBar != nil {
		page.AddCharts(stageBar)
	}

	f, err := os.Create(outputHTML)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Println("Report saved at:", outputHTML)
	return page.Render(f)
}
