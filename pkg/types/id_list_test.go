package types

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestIdListToggle(t *testing.T) {
	list := IdList{}
	if !list.Toggle("a") {
		t.Error("expected a to be added")
	}
	if list.Toggle("a") {
		t.Error("expected a to be removed")
	}
	if !list.IsEmpty() {
		t.Errorf("expected empty list, got %v", list.Ids())
	}
}

func TestIdListIdsSorted(t *testing.T) {
	list := NewIdList("c", "a", "b")
	if !slices.Equal(list.Ids(), []ValueId{"a", "b", "c"}) {
		t.Errorf("expected sorted ids, got %v", list.Ids())
	}
	var none IdList
	if none.Ids() == nil {
		t.Error("expected non nil ids for a nil list")
	}
}

func TestIdListClone(t *testing.T) {
	list := NewIdList("a")
	clone := list.Clone()
	clone.Add("b")
	if list.Contains("b") {
		t.Error("clone shares storage with the original")
	}
	var none IdList
	if none.Clone() == nil {
		t.Error("clone of nil should be usable")
	}
}

func TestIdListIntersection(t *testing.T) {
	list := NewIdList("silk", "lawn")
	if !list.HasIntersection([]ValueId{"cotton", "lawn"}) {
		t.Error("expected intersection")
	}
	if list.HasIntersection(nil) {
		t.Error("expected no intersection with nothing")
	}
}

func TestIdListJson(t *testing.T) {
	data, err := json.Marshal(NewIdList("b", "a"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["a","b"]` {
		t.Errorf("unexpected json %s", data)
	}
	data, _ = json.Marshal(IdList{})
	if string(data) != `[]` {
		t.Errorf("expected empty array, got %s", data)
	}
	var list IdList
	if err = json.Unmarshal([]byte(`["x","y","x"]`), &list); err != nil {
		t.Fatal(err)
	}
	if list.Len() != 2 {
		t.Errorf("expected 2 ids, got %d", list.Len())
	}
}
