// Package components provides reusable UI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"batglance/internal/logger"
	"batglance/internal/ui/styles"
)

// BatteryBar renders a battery level bar with label and percentage.
type BatteryBar struct {
	progress progress.Model
}

// NewBatteryBar creates a new battery bar with gradient colors. The
// gradient runs red to green so a full battery reads green.
func NewBatteryBar() BatteryBar {
	p := progress.New(
		progress.WithScaledGradient("#ff6b6b", "#51cf66"),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return BatteryBar{progress: p}
}

// Init initializes the progress bar model.
func (b BatteryBar) Init() tea.Cmd {
	return nil
}

// Update handles progress bar animation messages.
func (b BatteryBar) Update(msg tea.Msg) (BatteryBar, tea.Cmd) {
	model, cmd := b.progress.Update(msg)
	b.progress = model.(progress.Model)
	return b, cmd
}

// SetWidth sets the progress bar width.
func (b *BatteryBar) SetWidth(width int) {
	b.progress.Width = width
}

// View renders the battery bar with percentage and label.
func (b BatteryBar) View(level int, label string, width int) string {
	barWidth := width - 30 // Reserve space for label and percentage
	if barWidth < 10 {
		barWidth = 10
	}
	b.progress.Width = barWidth

	bar := b.progress.ViewAs(float64(level) / 100)

	percentStr := styles.GetBatteryStyle(level).
		Width(6).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%d%%", level))

	labelStr := styles.ProgressLabelStyle.Width(15).Render(label)

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		labelStr,
		bar,
		" ",
		percentStr,
	)
}

// ViewCompact renders a compact version without label.
func (b BatteryBar) ViewCompact(level int, width int) string {
	barWidth := width - 8
	if barWidth < 5 {
		barWidth = 5
	}
	b.progress.Width = barWidth

	bar := b.progress.ViewAs(float64(level) / 100)
	percentStr := styles.GetBatteryStyle(level).Render(fmt.Sprintf("%d%%", level))

	return lipgloss.JoinHorizontal(lipgloss.Center, bar, " ", percentStr)
}

// RenderGradientBar renders just the bar part with gradient colors.
func RenderGradientBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := int(float64(width) * percent / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	var barChars []string
	for i := 0; i < width; i++ {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor("#ff6b6b", "#51cf66", t)
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			barChars = append(barChars, style.Render("█"))
		} else {
			style := lipgloss.NewStyle().Foreground(styles.Subtle)
			barChars = append(barChars, style.Render("░"))
		}
	}

	return strings.Join(barChars, "")
}

// SimpleBatteryBar renders a simple ASCII battery bar with gradient colors.
func SimpleBatteryBar(level int, label string, width int) string {
	labelWidth := len(label) + 1
	percentWidth := 6
	barWidth := width - labelWidth - percentWidth - 4

	if barWidth < 5 {
		barWidth = 5
	}

	bar := RenderGradientBar(float64(level), barWidth)

	labelStr := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(label)

	percentStr := styles.GetBatteryStyle(level).
		Width(percentWidth).
		Align(lipgloss.Right).
		Render(fmt.Sprintf("%d%%", level))

	return fmt.Sprintf("%s [%s] %s", labelStr, bar, percentStr)
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
