package core

import "testing"

func TestAggregate_Literal(t *testing.T) {
	rows := []Row{
		{Category: "A", Value: 100},
		{Category: "B", Value: 150},
		{Category: "A", Value: 50},
		{Category: "C", Value: 200},
		{Category: "B", Value: 75},
	}
	res := Aggregate(rows)
	want := Result{"A": 150, "B": 225, "C": 200}
	if len(res) != len(want) {
		t.Fatalf("result size: got %d, want %d", len(res), len(want))
	}
	for cat, sum := range want {
		if res[cat] != sum {
			t.Errorf("%s: got %v, want %v", cat, res[cat], sum)
		}
	}
}

func TestAggregate_KeySetMatchesDistinctCategories(t *testing.T) {
	rows := []Row{
		{Category: "Food", Value: 1},
		{Category: "Rent", Value: 2},
		{Category: "Food", Value: 3},
	}
	res := Aggregate(rows)
	distinct := map[string]bool{}
	for _, r := range rows {
		distinct[r.Category] = true
	}
	if len(res) != len(distinct) {
		t.Fatalf("key count: got %d, want %d", len(res), len(distinct))
	}
	for cat := range distinct {
		if _, ok := res[cat]; !ok {
			t.Errorf("category %s dropped from result", cat)
		}
	}
}

func TestAggregate_FractionalSums(t *testing.T) {
	rows := []Row{
		{Category: "A", Value: 0.1},
		{Category: "A", Value: 0.2},
	}
	res := Aggregate(rows)
	// Plain float64 accumulation in source order.
	if res["A"] != 0.1+0.2 {
		t.Fatalf("A: got %v", res["A"])
	}
}

func TestAggregate_Empty(t *testing.T) {
	res := Aggregate(nil)
	if res == nil {
		t.Fatal("result must be non-nil so it serializes as {}")
	}
	if len(res) != 0 {
		t.Fatalf("result size: got %d, want 0", len(res))
	}
}
