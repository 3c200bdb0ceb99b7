package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"batglance/internal/models"
	"batglance/internal/ui/components"
	"batglance/internal/ui/styles"
)

// View renders the history tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	snapshot := m.state.GetSnapshot()
	if snapshot == nil || !snapshot.Summary.HasData() {
		return m.renderEmpty()
	}

	sections := []string{
		m.renderHeader(),
		m.renderTrendCard(),
		m.renderIntervalsCard(snapshot),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderLoading() string {
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(styles.HelpStyle.Render("Reading power log..."))
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("History"),
		"",
		styles.HelpStyle.Render("No power events found in the log."),
		styles.HelpStyle.Render("Intervals will appear once the log has been read."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("History")

	modeStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)

	modeIndicator := modeStyle.Render(fmt.Sprintf("[t] %s", m.mode.String()))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", modeIndicator)

	var subtitle string
	history := m.state.GetHistory()
	if len(history) > 0 {
		first := history[0].TakenAt
		last := history[len(history)-1].TakenAt
		subtitle = styles.HelpStyle.Render(fmt.Sprintf("Readings: %s → %s (%d this session)",
			first.Format("15:04:05"),
			last.Format("15:04:05"),
			len(history),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderTrendCard() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◢")
	rows = append(rows,
		fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render(m.mode.String())),
		"",
	)

	history := m.state.GetHistory()
	if len(history) < 2 {
		rows = append(rows, styles.HelpStyle.Render("  Not enough readings yet, the chart needs at least two."))
	} else {
		chartWidth := max(cardWidth-12, 30)
		chartHeight := 8

		var chart string
		switch m.mode {
		case modeLevel:
			chart = components.RenderLineChart(
				models.LevelSeries(history),
				chartWidth, chartHeight,
				"Battery level per reading (%)",
			)
		default:
			chart = components.RenderDualLineChart(
				models.ScreenDrainSeries(history),
				models.SleepDrainSeries(history),
				chartWidth, chartHeight,
				"Drain per reading (%/h)",
			)
		}

		for _, line := range strings.Split(chart, "\n") {
			rows = append(rows, "  "+line)
		}

		if m.mode == modeDrain {
			rows = append(rows, "")
			legend := components.RenderLegend([]components.LegendItem{
				{Label: "Screen", Color: components.ChartScreenColor},
				{Label: "Sleep", Color: components.ChartSleepColor},
			})
			rows = append(rows, "  "+legend)
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderIntervalsCard(snapshot *models.Snapshot) string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("☰")
	rows = append(rows,
		fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Power Intervals")),
		"",
	)

	intervals := snapshot.Summary.Intervals
	if len(intervals) == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No intervals reconstructed yet."))
	} else {
		header := fmt.Sprintf("  %-8s %-7s %-7s %-9s %s",
			"Kind", "Start", "End", "Duration", "Drain")
		rows = append(rows, styles.TableHeaderStyle.Render(header))

		now := time.Now()
		// Newest first, the open interval at the top.
		for i := len(intervals) - 1; i >= 0; i-- {
			rows = append(rows, m.renderIntervalRow(intervals[i], now))
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderIntervalRow(iv models.Interval, now time.Time) string {
	kindStyle := styles.ScreenIntervalStyle
	if iv.Kind == models.IntervalSleep {
		kindStyle = styles.SleepIntervalStyle
	}

	end := "now"
	if !iv.Open() {
		end = iv.End.Format("15:04")
	}

	drain := "-"
	if d, ok := iv.Drain(); ok {
		drain = fmt.Sprintf("%d%%", d)
	}

	row := fmt.Sprintf("  %-8s %-7s %-7s %-9s %s",
		iv.Kind.String(),
		iv.Start.Format("15:04"),
		end,
		formatIntervalDuration(iv.Duration(now)),
		drain,
	)
	return kindStyle.Render(row)
}

// formatIntervalDuration renders a duration as a compact h/m string.
func formatIntervalDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	mins := int(d/time.Minute) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", h, mins)
}
