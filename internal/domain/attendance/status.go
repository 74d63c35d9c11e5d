package attendance

import "strings"

// Status is the canonical attendance label for one daily record. Source
// documents and manual edits carry free-text variants; Canonicalize folds
// them into this vocabulary before anything is counted.
type Status string

const (
	StatusPresent         Status = "Present"
	StatusAbsent          Status = "Absent"
	StatusWorkFromHome    Status = "Work From Home"
	StatusAdminAssigned   Status = "Admin Assigned"
	StatusMissingPunchOut Status = "System Assigned – Missing Punch-Out"
	StatusPunchError      Status = "Punch Error – Auto Assigned"
	StatusAutoAssigned    Status = "Auto Assigned"
	StatusUnknown         Status = "Unknown"
)

// Canonicalize maps a raw status string onto the vocabulary by substring,
// most specific marker first. Unrecognized input becomes StatusUnknown rather
// than an error; classification falls back to worked time for those.
func Canonicalize(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return StatusUnknown
	case strings.Contains(s, "work from home"), s == "wfh":
		return StatusWorkFromHome
	case strings.Contains(s, "missing punch"):
		return StatusMissingPunchOut
	case strings.Contains(s, "punch error"):
		return StatusPunchError
	case strings.Contains(s, "admin"), strings.Contains(s, "selected"):
		return StatusAdminAssigned
	case strings.Contains(s, "absent"):
		return StatusAbsent
	case strings.Contains(s, "present"):
		return StatusPresent
	case strings.Contains(s, "auto"), strings.Contains(s, "assigned"):
		return StatusAutoAssigned
	default:
		return StatusUnknown
	}
}

// DayClass is the day-count bucket a record lands in. Every record belongs
// to exactly one class.
type DayClass int

const (
	ClassUncounted DayClass = iota
	ClassPresent
	ClassAbsent
	ClassAutoAssigned
)

// isAssignedFamily reports whether the status is one of the auto-assigned
// variants that count toward auto-assigned days regardless of worked time.
func isAssignedFamily(status Status) bool {
	switch status {
	case StatusAdminAssigned, StatusMissingPunchOut, StatusPunchError, StatusAutoAssigned:
		return true
	}
	return false
}
