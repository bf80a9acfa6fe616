// Package chart draws a bar chart comparing the prices of a listing.
package chart

import (
	"errors"
	"fmt"
	"fuelscraper/internal/stations"
	"io"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNoPrices = errors.New("chart: no station has a price")

type Bar struct {
	Name  string
	Price decimal.Decimal
}

type Summary struct {
	Bars    []Bar
	Average decimal.Decimal
	Lowest  decimal.Decimal
}

// Summarize collects the priced records in order, records without a price
// are left out.
func Summarize(records []stations.StationRecord) (Summary, error) {
	var summary Summary
	sum := decimal.Zero
	for _, r := range records {
		r = stations.Normalize(r)
		if !r.Price.Valid {
			continue
		}
		price := r.Price.Decimal
		if len(summary.Bars) == 0 || price.LessThan(summary.Lowest) {
			summary.Lowest = price
		}
		sum = sum.Add(price)
		summary.Bars = append(summary.Bars, Bar{Name: r.Name, Price: price})
	}
	if len(summary.Bars) == 0 {
		return Summary{}, ErrNoPrices
	}
	summary.Average = sum.Div(decimal.NewFromInt(int64(len(summary.Bars))))
	return summary, nil
}

const (
	barWidth    = 28
	barSpacing  = 12
	chartHeight = 600
	// room for the axes and the rotated labels
	chartPadding = 160
)

var barColor = drawing.ColorFromHex("87ceeb")

// RenderSVG writes the chart of the priced records as an svg document.
func RenderSVG(w io.Writer, records []stations.StationRecord) error {
	summary, err := Summarize(records)
	if err != nil {
		return err
	}

	highest := summary.Bars[0].Price
	bars := make([]chart.Value, len(summary.Bars))
	for i, b := range summary.Bars {
		if b.Price.GreaterThan(highest) {
			highest = b.Price
		}
		bars[i] = chart.Value{
			Label: b.Name,
			Value: b.Price.InexactFloat64(),
			Style: chart.Style{
				FillColor:   barColor,
				StrokeColor: barColor,
			},
		}
	}
	yRange := &chart.ContinuousRange{
		Min: 0,
		Max: highest.InexactFloat64() * 1.1,
	}

	graph := chart.BarChart{
		Title:      "Gas Prices Comparison",
		Width:      len(bars)*(barWidth+barSpacing) + chartPadding,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 90,
		},
		YAxis: chart.YAxis{
			Name:  "Price",
			Range: yRange,
		},
		Bars: bars,
		Elements: []chart.Renderable{
			referenceLine("Average Price", summary.Average, drawing.ColorRed, yRange),
			referenceLine("Lowest Price", summary.Lowest, drawing.ColorBlue, yRange),
		},
	}
	return graph.Render(chart.SVG, w)
}

// referenceLine draws a labelled horizontal line across the canvas at price.
func referenceLine(label string, price decimal.Decimal, color drawing.Color, yRange *chart.ContinuousRange) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		y := canvas.Bottom - yRange.Translate(price.InexactFloat64())

		r.SetStrokeColor(color)
		r.SetStrokeWidth(2)
		r.MoveTo(canvas.Left, y)
		r.LineTo(canvas.Right, y)
		r.Stroke()

		r.SetFont(defaults.Font)
		r.SetFontColor(color)
		r.SetFontSize(10)
		r.Text(fmt.Sprintf("%s: %s", label, price.StringFixed(2)), canvas.Left+4, y-4)
	}
}
