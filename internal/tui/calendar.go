package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/goals-tui/internal/goals"
)

// calendarGridWidth is seven two-character cells with single-space gutters
const calendarGridWidth = 7*3 - 1

// weekdayHeader returns the two-letter day names starting at first
func weekdayHeader(first time.Weekday) string {
	names := make([]string, 7)
	for i := range names {
		names[i] = time.Weekday((int(first) + i) % 7).String()[:2]
	}
	return strings.Join(names, " ")
}

// monthOffset is the number of blank cells before the 1st
func monthOffset(firstOfMonth time.Time, first time.Weekday) int {
	return (int(firstOfMonth.Weekday()) - int(first) + 7) % 7
}

// renderMonth renders the month containing selected as a grid. Days with
// goals are highlighted, today is underlined and the selected day inverted.
func renderMonth(selected, today time.Time, first time.Weekday, loc *time.Location, hasGoals func(time.Time) bool) string {
	sel := selected.In(loc)
	year, month, _ := sel.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := start.AddDate(0, 1, -1).Day()

	title := lipgloss.NewStyle().
		Width(calendarGridWidth).
		Align(lipgloss.Center).
		Bold(true).
		Render(start.Format("January 2006"))

	lines := []string{title, labelStyle.Render(weekdayHeader(first))}

	cells := make([]string, 0, 42)
	for i := 0; i < monthOffset(start, first); i++ {
		cells = append(cells, "  ")
	}
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, loc)
		style := lipgloss.NewStyle()
		if goals.SameDay(day, sel, loc) {
			style = style.Inherit(selectedStyle)
		} else if hasGoals != nil && hasGoals(day) {
			style = style.Inherit(goalDayStyle)
		}
		if goals.SameDay(day, today, loc) {
			style = style.Inherit(todayStyle)
		}
		cells = append(cells, style.Render(fmt.Sprintf("%2d", d)))
	}

	for i := 0; i < len(cells); i += 7 {
		end := min(i+7, len(cells))
		lines = append(lines, strings.Join(cells[i:end], " "))
	}

	lines = append(lines, "")
	lines = append(lines, goalDayStyle.Render("##")+labelStyle.Render(" has goals"))

	return strings.Join(lines, "\n")
}

// addMonths moves t by n calendar months in loc, clamping the day to the
// length of the target month.
func addMonths(t time.Time, n int, loc *time.Location) time.Time {
	local := t.In(loc)
	year, month, day := local.Date()
	start := time.Date(year, month+time.Month(n), 1,
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), loc)
	daysInMonth := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, loc).Day()
	return start.AddDate(0, 0, min(day, daysInMonth)-1)
}
