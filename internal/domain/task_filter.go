package domain

import "time"

// TaskFilter holds the optional predicates for listing a user's tasks.
// Zero values mean "no constraint" for that field. The owning user is not
// part of the filter: stores always conjoin it with the caller's identity
// so owner scoping can never be bypassed by omission.
type TaskFilter struct {
	Status   TaskStatus
	Category string

	// DueOn restricts results to tasks whose due date falls within the
	// calendar day containing this instant, interpreted in the instant's
	// location.
	DueOn *time.Time
}

// DueWindow returns the [start, end) bounds of the calendar day selected by
// DueOn, and whether the filter is set. The window is inclusive of every
// timestamp within the day, including both boundary instants at store
// precision.
func (f TaskFilter) DueWindow() (start, end time.Time, ok bool) {
	if f.DueOn == nil {
		return time.Time{}, time.Time{}, false
	}

	d := *f.DueOn
	start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return start, start.AddDate(0, 0, 1), true
}

// TaskPatch is a partial update for a task. Nil pointers and empty strings
// are both skipped when applying: a caller can set a field to a new
// non-empty value or leave it unchanged, but cannot clear a field through
// update. This falsy-skip behavior is deliberate and documented; downstream
// callers depend on it.
type TaskPatch struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      TaskStatus
	Category    string
}

// ApplyTo overwrites the task's fields with the patch's non-empty values
// and stamps UpdatedAt. Returns an error if the patched task fails
// validation (e.g. an unknown status value).
func (p TaskPatch) ApplyTo(t *Task) error {
	if p.Title != "" {
		t.Title = p.Title
	}
	if p.Description != "" {
		t.Description = p.Description
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.Status != "" {
		t.Status = p.Status
	}
	if p.Category != "" {
		t.Category = p.Category
	}

	if err := t.Validate(); err != nil {
		return err
	}

	t.UpdatedAt = time.Now().UTC()
	return nil
}
