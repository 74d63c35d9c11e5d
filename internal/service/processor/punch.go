package processor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/blackhole-hr/attendance-backend-go/internal/pkg/duration"
)

// Biometric terminals emit punches as HH:MM tokens, sometimes run together in
// one cell ("11:3820:00" is 11:38 followed by 20:00). Scanning for the pattern
// instead of splitting on whitespace recovers both layouts.
var punchPattern = regexp.MustCompile(`\d{1,2}:\d{2}`)

// punchTime is a wall-clock punch as minutes since midnight.
type punchTime int

func (t punchTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// extractPunches pulls every valid HH:MM token out of a raw cell.
func extractPunches(cell string) []punchTime {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "nan") || strings.EqualFold(cell, "none") {
		return nil
	}

	var punches []punchTime
	for _, tok := range punchPattern.FindAllString(cell, -1) {
		var h, m int
		if _, err := fmt.Sscanf(tok, "%d:%d", &h, &m); err != nil {
			continue
		}
		if h > 23 || m > 59 {
			continue
		}
		punches = append(punches, punchTime(h*60+m))
	}
	return punches
}

// pairDuration is the worked time between a punch-in and a punch-out, rounded
// to the nearest 5 minutes. A punch-out earlier than the punch-in wraps past
// midnight (night shift).
func pairDuration(in, out punchTime) duration.Duration {
	minutes := int(out) - int(in)
	if minutes < 0 {
		minutes += 24 * 60
	}
	return duration.Duration((minutes + 2) / 5 * 5)
}

// applyPunchLogic turns a day's punch list into worked time, status and a
// display string:
//
//	0 punches        absent
//	1 punch          max hours, missing punch-out
//	2 punches        the pair's duration
//	even count > 2   sequential pairs summed
//	odd count > 2    corrupted, max hours
func applyPunchLogic(punches []punchTime, maxHours duration.Duration) (duration.Duration, attendance.Status, string) {
	switch count := len(punches); {
	case count == 0:
		return 0, attendance.StatusAbsent, ""

	case count == 1:
		return maxHours, attendance.StatusMissingPunchOut, punches[0].String()

	case count == 2:
		return pairDuration(punches[0], punches[1]), attendance.StatusPresent,
			punches[0].String() + " - " + punches[1].String()

	case count%2 == 1:
		tokens := make([]string, len(punches))
		for i, p := range punches {
			tokens[i] = p.String()
		}
		return maxHours, attendance.StatusPunchError, strings.Join(tokens, " ")

	default:
		var total duration.Duration
		pairs := make([]string, 0, count/2)
		for i := 0; i < count; i += 2 {
			total = duration.Add(total, pairDuration(punches[i], punches[i+1]))
			pairs = append(pairs, punches[i].String()+" - "+punches[i+1].String())
		}
		return total, attendance.StatusPresent, strings.Join(pairs, " | ")
	}
}
