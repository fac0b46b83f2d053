// Package task owns the in-memory task list: creation, completion toggling,
// gated deletion, and the expiry sweep.
//
// # Ordering
//
// The list is always sorted ascending by due date. Tasks sharing a due date
// keep the order in which they were added.
//
// # Dates
//
// Due dates are calendar dates with no time-of-day. Comparisons against the
// current instant first reduce that instant to its calendar day in its own
// location, so a task due today is never overdue:
//
//	due <  today  -> Overdue (and removed by the next sweep)
//	due == today  -> DueToday
//	due >  today  -> Upcoming
//
// # Rejections
//
// Invalid input is not an error. Add reports failure through its boolean
// result, Delete refuses tasks that are not completed, and Toggle or Delete on
// an unknown ID does nothing. A sweep may remove a task moments before the user
// acts on it, so unknown IDs are expected.
package task
