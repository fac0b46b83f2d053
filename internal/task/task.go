package task

import "time"

// ID identifies a task.
type ID string

// Task is a single to-do item.
type Task struct {
	ID        ID
	Text      string
	Due       Date
	Completed bool
}

// Classify returns the task's classification relative to ref.
func (t Task) Classify(ref time.Time) Classification {
	return Classify(t.Due, ref)
}

// Classification describes a due date relative to the current day.
type Classification int

const (
	Upcoming Classification = iota
	DueToday
	Overdue
)

// Classify compares due against the calendar day of ref.
func Classify(due Date, ref time.Time) Classification {
	switch c := due.Compare(DateOf(ref)); {
	case c < 0:
		return Overdue
	case c == 0:
		return DueToday
	default:
		return Upcoming
	}
}

func (c Classification) String() string {
	switch c {
	case Overdue:
		return "overdue"
	case DueToday:
		return "today"
	default:
		return "upcoming"
	}
}

// Label returns the badge shown next to a due date, or "" for upcoming dates.
func (c Classification) Label() string {
	switch c {
	case Overdue:
		return "(Overdue)"
	case DueToday:
		return "(Today)"
	default:
		return ""
	}
}

// Stats summarizes the list for the footer line.
type Stats struct {
	Total     int
	Completed int
}
