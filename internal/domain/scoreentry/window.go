package scoreentry

import (
	"time"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
)

// WindowDays is how many days either side of the selected date are loaded, to absorb
// timezone skew between operators and stored game dates.
const WindowDays = 1

// Window returns the calendar dates loaded for a selected date: the day before, the day
// itself and the day after, in ascending order.
func Window(date time.Time) []time.Time {
	day := Day(date)
	out := make([]time.Time, 0, 2*WindowDays+1)
	for offset := -WindowDays; offset <= WindowDays; offset++ {
		out = append(out, day.AddDate(0, 0, offset))
	}
	return out
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WindowLabel renders the window as shown next to the date picker.
func WindowLabel(date time.Time) string {
	return "includes games from " + pick.FormatDate(Day(date)) + " ± 1 day"
}
