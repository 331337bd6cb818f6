package tasks

import (
	"encoding/json"
	"testing"

	"github.com/kingrea/shiftboard/internal/roster"
)

func task(id int, name string, effort int) AssignedTask {
	return AssignedTask{
		Rule:       Rule{ID: id, Code: "X", Name: name, Type: TypeGeneral, Effort: effort},
		InstanceID: name + "-instance",
	}
}

func TestBookLoadReflectsLiveState(t *testing.T) {
	b := make(Book)
	if got := b.Load(roster.Mon, "Jane Smith"); got != 0 {
		t.Fatalf("empty load = %d, want 0", got)
	}
	b.Append(roster.Mon, "Jane Smith", task(1, "a", 45))
	b.Append(roster.Mon, "Jane Smith", task(2, "b", 0)) // defaults to 30
	if got := b.Load(roster.Mon, "Jane Smith"); got != 75 {
		t.Fatalf("load = %d, want 75", got)
	}
}

func TestBookHasRule(t *testing.T) {
	b := make(Book)
	b.Append(roster.Mon, "Jane Smith", task(7, "a", 30))
	if !b.HasRule(roster.Mon, "Jane Smith", 7) {
		t.Fatal("expected rule 7 present")
	}
	if b.HasRule(roster.Tue, "Jane Smith", 7) || b.HasRule(roster.Mon, "Other", 7) {
		t.Fatal("rule presence leaked across keys")
	}
}

func TestBookRemove(t *testing.T) {
	b := make(Book)
	b.Append(roster.Mon, "Jane Smith", task(1, "a", 30))
	b.Append(roster.Mon, "Jane Smith", task(2, "b", 30))
	if !b.Remove(roster.Mon, "Jane Smith", "a-instance") {
		t.Fatal("remove reported false")
	}
	if list := b.Worklist(roster.Mon, "Jane Smith"); len(list) != 1 || list[0].ID != 2 {
		t.Fatalf("unexpected worklist after remove: %+v", list)
	}
	if b.Remove(roster.Mon, "Jane Smith", "missing") {
		t.Fatal("removing a missing instance should report false")
	}
}

func TestBookSpliceDayAtomic(t *testing.T) {
	b := make(Book)
	b.Append(roster.Mon, "Old Person", task(1, "stale", 30))
	b.Append(roster.Tue, "Jane Smith", task(2, "keep", 30))

	sub := map[string][]AssignedTask{"Jane Smith": {task(3, "fresh", 30)}}
	b.SpliceDay(roster.Mon, sub)

	if b.HasRule(roster.Mon, "Old Person", 1) {
		t.Fatal("splice left stale monday data")
	}
	if !b.HasRule(roster.Mon, "Jane Smith", 3) {
		t.Fatal("splice dropped fresh monday data")
	}
	if !b.HasRule(roster.Tue, "Jane Smith", 2) {
		t.Fatal("splice touched another day")
	}
}

func TestBookJSONRoundTrip(t *testing.T) {
	b := make(Book)
	b.Append(roster.Fri, "Jane Smith", task(1, "a", 30))
	b.Append(roster.Fri, "Mary-Jo Kent", task(2, "b", 45)) // dash inside a name
	b.Append(roster.Mon, "Jane Smith", task(3, "c", 15))

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Book
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.HasRule(roster.Fri, "Mary-Jo Kent", 2) {
		t.Fatalf("dashed name did not round-trip: %s", data)
	}
	if !decoded.HasRule(roster.Fri, "Jane Smith", 1) || !decoded.HasRule(roster.Mon, "Jane Smith", 3) {
		t.Fatalf("book did not round-trip: %s", data)
	}
}

func TestBookUnmarshalToleratesJunkKeys(t *testing.T) {
	raw := `{"fri-Jane Smith": [{"id": 1, "name": "a", "instanceId": "x"}], "notaday-Bob": []}`
	var b Book
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !b.HasRule(roster.Fri, "Jane Smith", 1) {
		t.Fatal("valid key dropped")
	}
	if len(b) != 1 {
		t.Fatalf("junk key should be skipped, book = %+v", b)
	}
}

func TestSortWorklist(t *testing.T) {
	list := []AssignedTask{
		{Rule: Rule{ID: 1, Code: "MAN", Name: "note", Type: TypeManual}},
		{Rule: Rule{ID: 2, Code: "T1", Name: "set", Type: TypeGeneral}},
		{Rule: Rule{ID: 3, Code: "ON", Name: "truck", Type: TypeSkilled}},
	}
	SortWorklist(list)
	if list[0].ID != 3 || list[1].ID != 2 || list[2].ID != 1 {
		t.Fatalf("unexpected order: %+v", list)
	}
}
