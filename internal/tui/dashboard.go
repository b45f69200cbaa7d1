package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/i474232898/clima-ecuador/internal/common"
	"github.com/i474232898/clima-ecuador/internal/dashboard"
	"github.com/i474232898/clima-ecuador/internal/gazetteer"
	"github.com/i474232898/clima-ecuador/internal/timezone"
	"github.com/i474232898/clima-ecuador/internal/view"
)

// Dashboard is the terminal rendition of the weather dashboard. Fetches run
// on their own goroutines; every widget update goes through QueueUpdateDraw.
type Dashboard struct {
	*tview.Flex

	app    *tview.Application
	ctrl   *dashboard.Controller
	tz     timezone.Resolver
	logger *zap.Logger

	provinces *tview.List
	cities    *tview.List
	card      *tview.TextView
	days      *tview.List
	chart     *tview.TextView
	table     *tview.Table
	status    *tview.TextView

	focusOrder []tview.Primitive
	focused    int

	// Only touched on the UI goroutine.
	series       view.Series
	citiesFor    string
	lastState    dashboard.State
	fetchTimeout time.Duration
}

// New creates the dashboard widgets. Nothing is fetched until Start.
func New(app *tview.Application, ctrl *dashboard.Controller, tz timezone.Resolver, logger *zap.Logger) *Dashboard {
	d := &Dashboard{
		Flex:         tview.NewFlex(),
		app:          app,
		ctrl:         ctrl,
		tz:           tz,
		logger:       logger.Named("tui"),
		provinces:    tview.NewList(),
		cities:       tview.NewList(),
		card:         tview.NewTextView(),
		days:         tview.NewList(),
		chart:        tview.NewTextView(),
		table:        tview.NewTable(),
		status:       tview.NewTextView(),
		series:       view.DefaultSeries,
		fetchTimeout: 30 * time.Second,
	}

	d.provinces.ShowSecondaryText(false).
		SetBorder(true).
		SetTitle("Provincia")
	for _, p := range gazetteer.Provinces() {
		d.provinces.AddItem(p, "", 0, nil)
	}
	d.provinces.SetSelectedFunc(func(_ int, province, _ string, _ rune) {
		d.fetch(func(ctx context.Context) dashboard.State {
			return d.ctrl.SelectProvince(ctx, province)
		})
	})

	d.cities.ShowSecondaryText(false).
		SetBorder(true).
		SetTitle("Ciudad")
	d.cities.SetSelectedFunc(func(_ int, city, _ string, _ rune) {
		d.fetch(func(ctx context.Context) dashboard.State {
			return d.ctrl.SelectCity(ctx, city)
		})
	})

	d.card.SetDynamicColors(true).
		SetBorder(true).
		SetTitle("Condiciones actuales")

	d.days.SetBorder(true).
		SetTitle("Pronóstico")
	d.days.SetSelectedFunc(func(_ int, _, date string, _ rune) {
		d.Render(d.ctrl.SelectDay(date))
	})

	d.chart.SetDynamicColors(true).
		SetBorder(true)

	d.table.SetBorders(false).
		SetFixed(1, 0).
		SetBorder(true).
		SetTitle("Por hora")

	d.status.SetDynamicColors(true)

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.provinces, 0, 1, true).
		AddItem(d.cities, 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tview.NewFlex().
			AddItem(d.card, 0, 1, false).
			AddItem(d.days, 36, 1, false), 12, 1, false).
		AddItem(d.chart, 7, 1, false).
		AddItem(d.table, 0, 1, false).
		AddItem(d.status, 1, 1, false)

	d.AddItem(left, 34, 1, true).
		AddItem(right, 0, 1, false)

	d.focusOrder = []tview.Primitive{d.provinces, d.cities, d.days, d.table}
	app.SetInputCapture(d.handleKey)

	return d
}

// Start loads the initial location in the background.
func (d *Dashboard) Start() {
	d.Render(d.ctrl.View())
	d.fetch(d.ctrl.Refresh)
}

// Update renders st from any goroutine.
func (d *Dashboard) Update(st dashboard.State) {
	d.app.QueueUpdateDraw(func() {
		d.Render(st)
	})
}

func (d *Dashboard) fetch(run func(ctx context.Context) dashboard.State) {
	d.status.SetText("[yellow]Cargando…")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.fetchTimeout)
		defer cancel()

		st := run(ctx)
		if st.LastFailure != nil {
			d.logger.Warn("dashboard is stale",
				zap.String("location", st.Location().Key()),
				zap.String("reason", string(st.LastFailure.Reason)),
			)
		}
		d.Update(st)
	}()
}

func (d *Dashboard) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		d.focused = (d.focused + 1) % len(d.focusOrder)
		d.app.SetFocus(d.focusOrder[d.focused])
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	switch event.Rune() {
	case 't':
		d.setSeries(view.SeriesTemperature)
	case 'h':
		d.setSeries(view.SeriesHumidity)
	case 'p':
		d.setSeries(view.SeriesPrecipitation)
	case 'r':
		d.fetch(d.ctrl.Refresh)
	case 'q':
		d.app.Stop()
	default:
		return event
	}
	return nil
}

func (d *Dashboard) setSeries(s view.Series) {
	d.series = s
	d.renderChart(view.BuildHourlyChart(d.lastState.Hourly, s))
}

// Render draws st. It must run on the UI goroutine.
func (d *Dashboard) Render(st dashboard.State) {
	d.lastState = st
	page := view.Build(st, d.series, d.tz)

	d.renderLocation(page)
	d.card.SetText(cardText(page.Card))
	d.renderDays(page.Days)
	d.renderChart(page.Chart)
	d.renderTable(page.Table)

	if page.LastFailure != nil {
		d.status.SetText(fmt.Sprintf("[red]Datos desactualizados (%s) · %s", page.LastFailure.Reason, page.TimeZone))
	} else {
		d.status.SetText(fmt.Sprintf("[green]%s, %s · %s · t/h/p gráfico · r recargar · q salir", page.City, page.Province, page.TimeZone))
	}
}

func (d *Dashboard) renderLocation(page view.Page) {
	if i := indexOf(page.Provinces, page.Province); i >= 0 && i != d.provinces.GetCurrentItem() {
		d.provinces.SetCurrentItem(i)
	}

	if d.citiesFor != page.Province {
		d.cities.Clear()
		for _, c := range page.Cities {
			d.cities.AddItem(c, "", 0, nil)
		}
		d.citiesFor = page.Province
	}
	if i := indexOf(page.Cities, page.City); i >= 0 {
		d.cities.SetCurrentItem(i)
	}
}

func (d *Dashboard) renderDays(days []view.DayOption) {
	d.days.Clear()
	for i, day := range days {
		main := fmt.Sprintf("%s %s %d°C", day.Label, common.ConditionSymbol(day.Description), day.MeanTemperature)
		if day.Selected {
			main = "[::b]" + main
		}
		// The date rides in the secondary text so selection can recover it.
		d.days.AddItem(main, day.Date, 0, nil)
		if day.Selected {
			d.days.SetCurrentItem(i)
		}
	}
	d.days.ShowSecondaryText(false)
}

func (d *Dashboard) renderChart(chart view.HourlyChart) {
	d.chart.SetTitle(chart.Label + "  (t/h/p)")
	if !chart.Available {
		d.chart.SetText(view.MessageNoForecast)
		return
	}

	d.chart.SetText(fmt.Sprintf("[%s]%s[-]\n%s\nmin %s · max %s",
		chart.Color,
		sparkline(chart.Values, chart.Min, chart.Max),
		hourAxis(len(chart.Values)),
		trimFloat(chart.Min),
		trimFloat(chart.Max),
	))
}

func (d *Dashboard) renderTable(table view.HourlyTable) {
	d.table.Clear()
	for col, h := range table.Headers {
		d.table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorSteelBlue).
			SetSelectable(false))
	}

	if table.Message != "" {
		d.table.SetCell(1, 0, tview.NewTableCell(table.Message).SetExpansion(1))
		return
	}

	for r, row := range table.Rows {
		cells := row.Cells()
		cells[1] = common.ConditionSymbol(row.Condition) + " " + cells[1]
		for col, text := range cells {
			align := tview.AlignRight
			if col < 2 {
				align = tview.AlignLeft
			}
			d.table.SetCell(r+1, col, tview.NewTableCell(text).SetAlign(align).SetExpansion(1))
		}
	}
}

func cardText(c view.ConditionsCard) string {
	if !c.Available {
		return view.MessageNoForecast
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-]  %s %s\n", c.City, common.ConditionSymbol(c.Description), c.Description)
	fmt.Fprintf(&b, "[::b]%s[::-]  Max: %s / Min: %s\n", c.Temperature, c.TempMax, c.TempMin)
	fmt.Fprintf(&b, "Sensación %s\n", c.FeelsLike)
	fmt.Fprintf(&b, "Humedad %s   Nubosidad %s\n", c.Humidity, c.CloudCover)
	fmt.Fprintf(&b, "Viento %s %s\n", c.Wind, c.WindDeg)
	fmt.Fprintf(&b, "Presión %s   Lluvia %s\n", c.Pressure, c.Rain)
	fmt.Fprintf(&b, "Amanecer %s   Atardecer %s", c.Sunrise, c.Sunset)
	return b.String()
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
