package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"batglance/internal/models"
	"batglance/internal/ui/components"
	"batglance/internal/ui/styles"
)

// View renders the dashboard component.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	var sections []string

	sections = append(sections, m.renderTitle())

	snapshot := m.state.GetSnapshot()
	if snapshot == nil || !snapshot.Summary.HasData() {
		sections = append(sections, m.renderEmpty())
	} else {
		sections = append(sections, m.renderSummaryCard(snapshot.Summary))
		sections = append(sections, m.renderBatteryCard(snapshot.Summary))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

// renderTitle renders the dashboard title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("batglance")
	subtitle := styles.HelpStyle.Render("Screen time and battery drain since last charge")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderEmpty renders the hint shown when the log yielded nothing. An
// empty log and an unreadable one look identical to the analyzer, so
// the message covers both.
func (m *Model) renderEmpty() string {
	cardWidth := max(m.width-6, 40)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Since Last Charge"))
	rows = append(rows, "")
	emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
	rows = append(rows, fmt.Sprintf("  %s %s", emptyIcon,
		styles.HelpStyle.Render("No power events found")))
	rows = append(rows, "")
	rows = append(rows, styles.InfoTextStyle.Render("  ╰─▶ The power log may be empty or unreadable"))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderSummaryCard renders the screen time and drain rate card.
func (m *Model) renderSummaryCard(summary models.Summary) string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Since Last Charge")))
	rows = append(rows, "")

	rows = append(rows, m.renderStat("Screen on",
		lipgloss.NewStyle().Bold(true).Render(summary.ScreenOnText())))

	screenRate := styles.GetDrainStyle(summary.ScreenDrainPerHour).
		Render(fmt.Sprintf("%.1f%%/h", summary.ScreenDrainPerHour))
	rows = append(rows, m.renderStat("Screen drain", screenRate))

	sleepRate := styles.GetDrainStyle(summary.SleepDrainPerHour).
		Render(fmt.Sprintf("%.1f%%/h", summary.SleepDrainPerHour))
	rows = append(rows, m.renderStat("Sleep drain", sleepRate))

	rows = append(rows, "")
	rows = append(rows, m.renderChargeLine(summary))

	if remaining, ok := summary.EstimatedRemaining(); ok {
		rows = append(rows, m.renderStat("Est. remaining", formatDuration(remaining)))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderBatteryCard renders the current battery level bar.
func (m *Model) renderBatteryCard(summary models.Summary) string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("▮")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Battery")))
	rows = append(rows, "")
	rows = append(rows, "  "+components.SimpleBatteryBar(summary.CurrentLevel, "Level", cardWidth-8))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderStat(label, value string) string {
	labelStr := styles.ProgressLabelStyle.Width(16).Render(label)
	return fmt.Sprintf("  %s %s", labelStr, value)
}

// renderChargeLine reports the reference charge, or the fallback window
// when no charge was found in the log.
func (m *Model) renderChargeLine(summary models.Summary) string {
	if !summary.ChargeDetected {
		return m.renderStat("Last charge",
			styles.HelpStyle.Render("none found, showing last 24h"))
	}

	since := summary.TimeSinceCharge(time.Now())
	value := fmt.Sprintf("%s ago at %s (%d%%)",
		formatDuration(since),
		summary.LastChargeTime.Format("15:04"),
		summary.LastChargeLevel,
	)
	return m.renderStat("Last charge", value)
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	mins := int(d/time.Minute) % 60

	if h >= 24 {
		days := h / 24
		remainingHours := h % 24
		return fmt.Sprintf("%dd %02dh", days, remainingHours)
	}

	return fmt.Sprintf("%dh %02dm", h, mins)
}
