package dashboard

import (
	"io"

	"optionflow/internal/flow"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	titleOpenInterest = "Open Interest by Instrument"
	titleCallPut      = "Call vs Put Distribution"
	titleWriterBuyer  = "Call/Put Writers vs Buyers"
)

// NewChartPage builds the bar chart and the two pie charts for a model.
func NewChartPage(m flow.Model) *components.Page {
	page := components.NewPage()
	page.PageTitle = "Option Flow Charts"
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		openInterestBar(m.Rows),
		countPie(titleCallPut, "Option Type", flow.CountByOptionType(m.Rows)),
		countPie(titleWriterBuyer, "Writer Type", flow.CountByLabel(m.Rows)),
	)
	return page
}

// RenderCharts writes the chart page as a standalone HTML document.
func RenderCharts(w io.Writer, m flow.Model) error {
	return NewChartPage(m).Render(w)
}

func openInterestBar(rows []flow.AnnotatedRow) *charts.Bar {
	names, values := flow.OpenInterestSeries(rows)

	items := make([]opts.BarData, 0, len(values))
	for _, v := range values {
		items = append(items, opts.BarData{Value: v})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: titleOpenInterest}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Instrument"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Open Interest"}),
	)
	bar.SetXAxis(names).AddSeries("Open Interest", items)
	return bar
}

func countPie(title, series string, counts []flow.Count) *charts.Pie {
	items := make([]opts.PieData, 0, len(counts))
	for _, c := range counts {
		items = append(items, opts.PieData{Name: c.Name, Value: c.Value})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	)
	pie.AddSeries(series, items)
	return pie
}
