package task

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func seqIDs() func() ID {
	n := 0
	return func() ID {
		n++
		return ID(fmt.Sprintf("t%d", n))
	}
}

func newTestStore(now time.Time) *Store {
	return NewStore(WithClock(FixedClock(now)), WithIDFunc(seqIDs()))
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func texts(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

var refNow = time.Date(2025, time.November, 1, 9, 0, 0, 0, time.Local)

func TestAddSortsByDueDate(t *testing.T) {
	s := newTestStore(refNow)

	s.AddInput("Task C", "2025-12-31")
	s.AddInput("Task A", "2025-11-15")
	s.AddInput("Task B", "2025-12-01")

	got := strings.Join(texts(s.Tasks()), ",")
	if got != "Task A,Task B,Task C" {
		t.Errorf("order: got %s, want Task A,Task B,Task C", got)
	}
}

func TestAddKeepsInsertionOrderForEqualDates(t *testing.T) {
	s := newTestStore(refNow)

	s.AddInput("first", "2025-12-01")
	s.AddInput("later", "2025-12-05")
	s.AddInput("second", "2025-12-01")
	s.AddInput("earliest", "2025-11-20")
	s.AddInput("third", "2025-12-01")

	got := strings.Join(texts(s.Tasks()), ",")
	want := "earliest,first,second,third,later"
	if got != want {
		t.Errorf("order: got %s, want %s", got, want)
	}
}

func TestAddOrderInvariantHoldsAfterEachAdd(t *testing.T) {
	s := newTestStore(refNow)
	dates := []string{"2026-03-01", "2025-12-01", "2026-01-15", "2025-12-01", "2025-11-02", "2026-03-01"}

	for i, d := range dates {
		s.AddInput(fmt.Sprintf("task %d", i), d)
		tasks := s.Tasks()
		for j := 1; j < len(tasks); j++ {
			if tasks[j].Due.Before(tasks[j-1].Due) {
				t.Fatalf("after add %d: %v before %v at %d", i, tasks[j].Due, tasks[j-1].Due, j)
			}
		}
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		text string
		date string
	}{
		{"empty text", "", "2025-12-31"},
		{"whitespace text", "   ", "2025-12-31"},
		{"tab and newline text", "\t\n", "2025-12-31"},
		{"missing date", "X", ""},
		{"blank date", "X", "  "},
		{"unparseable date", "X", "someday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(refNow)
			s.AddInput("existing", "2025-12-01")

			got, ok := s.AddInput(tt.text, tt.date)
			if ok {
				t.Fatalf("AddInput(%q, %q): expected rejection, got %+v", tt.text, tt.date, got)
			}
			if got != (Task{}) {
				t.Errorf("rejected add returned non-zero task %+v", got)
			}
			if s.Len() != 1 {
				t.Errorf("Len: got %d, want 1", s.Len())
			}
		})
	}
}

func TestAddRejectsZeroDate(t *testing.T) {
	s := newTestStore(refNow)
	if _, ok := s.Add("X", Date{}); ok {
		t.Fatal("expected zero date to be rejected")
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
}

func TestAddReturnsNewTask(t *testing.T) {
	s := newTestStore(refNow)

	got, ok := s.AddInput("  padded  ", "2025-12-31")
	if !ok {
		t.Fatal("expected add to succeed")
	}
	if got.ID != "t1" {
		t.Errorf("ID: got %q, want t1", got.ID)
	}
	if got.Text != "  padded  " {
		t.Errorf("Text: got %q, want text stored as given", got.Text)
	}
	if got.Completed {
		t.Error("new task should not be completed")
	}
	if got.Due != mustDate(t, "2025-12-31") {
		t.Errorf("Due: got %v", got.Due)
	}
}

func TestDefaultIDsAreUnique(t *testing.T) {
	s := NewStore()
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		task, ok := s.AddInput("x", "2099-01-01")
		if !ok {
			t.Fatal("add failed")
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %q", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestToggle(t *testing.T) {
	s := newTestStore(refNow)
	a, _ := s.AddInput("a", "2025-12-01")
	b, _ := s.AddInput("b", "2025-12-02")

	if !s.Toggle(a.ID) {
		t.Fatal("Toggle: expected task to be found")
	}
	got, _ := s.Get(a.ID)
	if !got.Completed {
		t.Error("expected a to be completed")
	}
	other, _ := s.Get(b.ID)
	if other.Completed {
		t.Error("toggle must only affect the target task")
	}

	s.Toggle(a.ID)
	got, _ = s.Get(a.ID)
	if got.Completed {
		t.Error("expected second toggle to clear completion")
	}

	if got := strings.Join(texts(s.Tasks()), ","); got != "a,b" {
		t.Errorf("toggle changed order: %s", got)
	}
}

func TestToggleUnknownIsNoop(t *testing.T) {
	s := newTestStore(refNow)
	s.AddInput("a", "2025-12-01")

	if s.Toggle("missing") {
		t.Error("Toggle on unknown id should report false")
	}
	if s.Stats().Completed != 0 {
		t.Error("unknown toggle changed state")
	}
}

func TestDeleteRequiresCompletion(t *testing.T) {
	s := newTestStore(refNow)
	a, _ := s.AddInput("a", "2025-12-01")

	if s.Delete(a.ID) {
		t.Fatal("Delete of uncompleted task should be refused")
	}
	if _, ok := s.Get(a.ID); !ok {
		t.Fatal("refused delete removed the task")
	}

	s.Toggle(a.ID)
	if !s.Delete(a.ID) {
		t.Fatal("Delete of completed task should succeed")
	}
	if _, ok := s.Get(a.ID); ok {
		t.Error("deleted task still present")
	}
	if s.Delete(a.ID) {
		t.Error("second Delete should report false")
	}
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	s := newTestStore(refNow)
	s.AddInput("a", "2025-12-01")

	if s.Delete("missing") {
		t.Error("Delete on unknown id should report false")
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
}

func TestDeletePreservesOrder(t *testing.T) {
	s := newTestStore(refNow)
	s.AddInput("a", "2025-12-01")
	b, _ := s.AddInput("b", "2025-12-02")
	s.AddInput("c", "2025-12-03")

	s.Toggle(b.ID)
	s.Delete(b.ID)

	if got := strings.Join(texts(s.Tasks()), ","); got != "a,c" {
		t.Errorf("order after delete: got %s, want a,c", got)
	}
}

func TestSweepExpiredBoundary(t *testing.T) {
	ref := time.Date(2025, time.December, 10, 23, 59, 0, 0, time.Local)
	today := DateOf(ref)

	s := newTestStore(ref)
	yesterday, _ := s.Add("yesterday", today.AddDays(-1))
	s.Add("today", today)
	s.Add("tomorrow", today.AddDays(1))

	removed := s.SweepExpired(ref)
	if len(removed) != 1 || removed[0] != yesterday.ID {
		t.Fatalf("removed: got %v, want [%s]", removed, yesterday.ID)
	}
	if got := strings.Join(texts(s.Tasks()), ","); got != "today,tomorrow" {
		t.Errorf("remaining: got %s, want today,tomorrow", got)
	}
}

func TestSweepExpiredRemovesCompletedAndPending(t *testing.T) {
	ref := time.Date(2025, time.December, 10, 8, 0, 0, 0, time.Local)
	today := DateOf(ref)

	s := newTestStore(ref)
	done, _ := s.Add("done", today.AddDays(-3))
	s.Toggle(done.ID)
	s.Add("pending", today.AddDays(-2))
	s.Add("keep", today.AddDays(5))

	removed := s.SweepExpired(ref)
	if len(removed) != 2 {
		t.Fatalf("removed: got %v, want 2 ids", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
}

func TestSweepExpiredIsIdempotent(t *testing.T) {
	ref := time.Date(2025, time.December, 10, 12, 0, 0, 0, time.Local)
	today := DateOf(ref)

	s := newTestStore(ref)
	s.Add("old", today.AddDays(-1))
	s.Add("keep", today)

	first := s.SweepExpired(ref)
	before := s.Tasks()
	second := s.SweepExpired(ref)

	if len(first) != 1 {
		t.Errorf("first sweep: got %v, want 1 id", first)
	}
	if len(second) != 0 {
		t.Errorf("second sweep: got %v, want none", second)
	}
	if got, want := texts(s.Tasks()), texts(before); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("second sweep changed list: got %v, want %v", got, want)
	}
}

func TestSweepExpiredLaterReference(t *testing.T) {
	ref := time.Date(2025, time.December, 10, 12, 0, 0, 0, time.Local)
	today := DateOf(ref)

	s := newTestStore(ref)
	s.Add("a", today)
	s.Add("b", today.AddDays(1))
	s.Add("c", today.AddDays(2))

	if removed := s.SweepExpired(ref); len(removed) != 0 {
		t.Fatalf("first sweep removed %v", removed)
	}
	if removed := s.SweepExpired(ref.Add(48 * time.Hour)); len(removed) != 2 {
		t.Errorf("later sweep: got %v, want 2 ids", removed)
	}
	if got := strings.Join(texts(s.Tasks()), ","); got != "c" {
		t.Errorf("remaining: got %s, want c", got)
	}
}

func TestSweepExpiredEmptyStore(t *testing.T) {
	s := newTestStore(refNow)
	if removed := s.SweepExpired(refNow); len(removed) != 0 {
		t.Errorf("empty sweep: got %v", removed)
	}
	if removed := s.Sweep(); len(removed) != 0 {
		t.Errorf("empty Sweep: got %v", removed)
	}
}

func TestSweepUsesStoreClock(t *testing.T) {
	now := time.Date(2025, time.December, 10, 12, 0, 0, 0, time.Local)
	s := newTestStore(now)
	s.Add("old", DateOf(now).AddDays(-1))

	if removed := s.Sweep(); len(removed) != 1 {
		t.Errorf("Sweep: got %v, want 1 id", removed)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(refNow)
	a, _ := s.AddInput("a", "2025-12-01")
	s.AddInput("b", "2025-12-02")
	s.Toggle(a.ID)

	got := s.Stats()
	if got.Total != 2 || got.Completed != 1 {
		t.Errorf("Stats: got %+v, want {Total:2 Completed:1}", got)
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	s := newTestStore(refNow)
	s.AddInput("a", "2025-12-01")

	tasks := s.Tasks()
	tasks[0].Completed = true
	tasks[0].Text = "mutated"

	got, _ := s.Get(tasks[0].ID)
	if got.Completed || got.Text != "a" {
		t.Errorf("store mutated through Tasks copy: %+v", got)
	}
}

func TestEndToEnd(t *testing.T) {
	s := newTestStore(refNow)
	if s.Len() != 0 {
		t.Fatal("expected empty store")
	}

	added, ok := s.AddInput("Buy groceries", "2025-12-31")
	if !ok {
		t.Fatal("add failed")
	}
	tasks := s.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("Len: got %d, want 1", len(tasks))
	}
	want := Task{ID: added.ID, Text: "Buy groceries", Due: mustDate(t, "2025-12-31")}
	if tasks[0] != want {
		t.Errorf("task: got %+v, want %+v", tasks[0], want)
	}

	s.Toggle(added.ID)
	got, _ := s.Get(added.ID)
	if !got.Completed {
		t.Fatal("expected completed after toggle")
	}

	if !s.Delete(added.ID) {
		t.Fatal("expected delete to succeed")
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	now := time.Date(2025, time.December, 10, 12, 0, 0, 0, time.Local)
	s := NewStore(WithClock(FixedClock(now)))
	today := DateOf(now)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				task, _ := s.Add("x", today.AddDays(j%3-1))
				s.Toggle(task.ID)
				s.Delete(task.ID)
				s.Sweep()
			}
		}(i)
	}
	wg.Wait()

	for _, task := range s.Tasks() {
		if task.Due.Before(today) {
			t.Errorf("expired task survived final sweep: %+v", task)
		}
	}
}

func TestStoreLogsEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := NewStore(WithLogger(logger), WithIDFunc(seqIDs()), WithClock(FixedClock(refNow)))

	s.AddInput("", "2025-12-01")
	a, _ := s.AddInput("a", "2025-12-01")
	s.Delete(a.ID)

	out := buf.String()
	for _, want := range []string{"add rejected", "task added", "delete refused"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
