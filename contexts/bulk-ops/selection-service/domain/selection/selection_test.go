package selection

import "testing"

func TestToggleSetSemantics(t *testing.T) {
	sel := New()
	sel.Toggle("a")
	sel.Toggle("b")
	sel.Toggle("a")
	if sel.IsSelected("a") {
		t.Fatalf("a toggled twice must be deselected")
	}
	if !sel.IsSelected("b") || sel.Count() != 1 {
		t.Fatalf("expected only b selected, count=%d", sel.Count())
	}
	if got := len(sel.IDs()); got != sel.Count() {
		t.Fatalf("IDs length %d diverges from Count %d", got, sel.Count())
	}
}

func TestSelectUpdatesAnchor(t *testing.T) {
	sel := New()
	sel.Select("a")
	sel.Select("b")
	if sel.LastSelectedID() != "b" {
		t.Fatalf("anchor should be b, got %q", sel.LastSelectedID())
	}
	sel.Deselect("b")
	if !sel.IsSelected("a") || sel.Count() != 1 {
		t.Fatalf("deselect removed wrong id")
	}
}

func TestContextMismatchResets(t *testing.T) {
	draft := Context{EntityType: EntityAsset, FilterParams: []Param{{Key: "status", Value: "draft"}}}
	published := Context{EntityType: EntityAsset, FilterParams: []Param{{Key: "status", Value: "published"}}}

	sel := New()
	sel.EnsureContext(draft)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		sel.Select(id)
	}
	if sel.Count() != 5 {
		t.Fatalf("seed failed, count=%d", sel.Count())
	}

	sel.EnsureContext(published)
	if sel.Count() != 0 {
		t.Fatalf("context switch must reset selection, count=%d", sel.Count())
	}

	sel.Select("x")
	sel.EnsureContext(published)
	if sel.Count() != 1 {
		t.Fatalf("matching context must keep selection, count=%d", sel.Count())
	}
}

func TestSelectRange(t *testing.T) {
	ordered := []string{"a", "b", "c", "d", "e"}
	sel := New()
	sel.Select("b")
	sel.SelectRange("b", "d", ordered)
	for _, id := range []string{"b", "c", "d"} {
		if !sel.IsSelected(id) {
			t.Fatalf("%s should be in the range", id)
		}
	}
	if sel.IsSelected("e") {
		t.Fatalf("e is outside the range")
	}
	if sel.LastSelectedID() != "d" {
		t.Fatalf("anchor should move to d, got %q", sel.LastSelectedID())
	}
}

func TestSelectRangeReversed(t *testing.T) {
	ordered := []string{"a", "b", "c", "d", "e"}
	sel := New()
	sel.SelectRange("d", "b", ordered)
	for _, id := range []string{"b", "c", "d"} {
		if !sel.IsSelected(id) {
			t.Fatalf("%s should be in the reversed range", id)
		}
	}
	if sel.LastSelectedID() != "b" {
		t.Fatalf("anchor should be the clicked id b, got %q", sel.LastSelectedID())
	}
}

func TestSelectRangeDegradesOnMissingEndpoint(t *testing.T) {
	ordered := []string{"a", "b", "c", "d", "e"}
	sel := New()
	sel.SelectRange("missing", "d", ordered)
	if !sel.IsSelected("d") || sel.Count() != 1 {
		t.Fatalf("missing endpoint must degrade to single-select of d")
	}
}

func TestSelectAll(t *testing.T) {
	sel := New()
	sel.Select("z")
	sel.SelectAll([]string{"a", "b", "c"})
	if sel.Count() != 3 || sel.IsSelected("z") {
		t.Fatalf("select-all must replace the selection")
	}
	if sel.LastSelectedID() != "c" {
		t.Fatalf("anchor should be the last supplied id")
	}
}

func TestIsAllSelected(t *testing.T) {
	sel := New()
	if sel.IsAllSelected(0) {
		t.Fatalf("empty filter total can never be all-selected")
	}
	sel.SelectAll([]string{"a", "b"})
	if sel.IsAllSelected(0) {
		t.Fatalf("total of zero stays false regardless of count")
	}
	if !sel.IsAllSelected(2) {
		t.Fatalf("two of two should be all-selected")
	}
	if sel.IsAllSelected(3) {
		t.Fatalf("two of three is not all-selected")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	ctx := Context{EntityType: EntityUser, FilterParams: []Param{{Key: "role", Value: "contributor"}}}
	sel := New()
	sel.EnsureContext(ctx)
	sel.Select("u1")
	sel.Select("u2")

	blob, err := sel.Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	restored := Unmarshal(blob)
	if restored.Count() != 2 || !restored.IsSelected("u1") {
		t.Fatalf("restore lost ids")
	}
	if restored.LastSelectedID() != "u2" {
		t.Fatalf("restore lost anchor")
	}
	if !restored.Context().Equal(ctx) {
		t.Fatalf("restore lost context")
	}

	restored.EnsureContext(ctx)
	if restored.Count() != 2 {
		t.Fatalf("restored context must survive the match check")
	}
}

func TestUnmarshalCorruptFallsBackToEmpty(t *testing.T) {
	sel := Unmarshal([]byte(`{"ids": not json`))
	if sel.Count() != 0 {
		t.Fatalf("corrupt blob must yield the empty selection")
	}
	sel.Select("a")
	if !sel.IsSelected("a") {
		t.Fatalf("fallback selection must stay usable")
	}
}

func TestClear(t *testing.T) {
	sel := New()
	sel.EnsureContext(Context{EntityType: EntityAsset})
	sel.Select("a")
	sel.Clear()
	if sel.Count() != 0 || sel.LastSelectedID() != "" {
		t.Fatalf("clear must reset ids and anchor")
	}
	// After Clear the next EnsureContext re-scopes without carrying stale ids.
	sel.EnsureContext(Context{EntityType: EntityAsset})
	if sel.Count() != 0 {
		t.Fatalf("clear must not resurrect ids")
	}
}
