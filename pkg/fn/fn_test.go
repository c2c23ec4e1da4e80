package fn

import (
	"strconv"
	"strings"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	if len(got) != 3 || got[0] != "1" || got[2] != "3" {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]string{"H-001", "SG-001", "H-002"}, func(s string) bool {
		return strings.HasPrefix(s, "H-")
	})
	if len(got) != 2 || got[1] != "H-002" {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestFilterMap(t *testing.T) {
	got := FilterMap([]any{"a", 1, "b", nil}, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestReduce(t *testing.T) {
	sum := Reduce([]int{1, 2, 3, 4}, 0, func(acc, v int) int { return acc + v })
	if sum != 10 {
		t.Fatalf("sum = %d, want 10", sum)
	}
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy([]string{"H-001", "SG-001", "H-002"}, func(s string) string {
		return strings.SplitN(s, "-", 2)[0]
	})
	if len(groups["H"]) != 2 || len(groups["SG"]) != 1 {
		t.Fatalf("unexpected: %v", groups)
	}
}

func TestUnique(t *testing.T) {
	got := Unique([]string{"a", "b", "a", "c", "b"})
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestUniqueBy(t *testing.T) {
	type item struct{ id, name string }
	got := UniqueBy([]item{{"1", "a"}, {"1", "b"}, {"2", "c"}}, func(i item) string { return i.id })
	if len(got) != 2 || got[0].name != "a" {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestChunk(t *testing.T) {
	got := Chunk([]int{1, 2, 3, 4, 5}, 2)
	if len(got) != 3 || len(got[2]) != 1 {
		t.Fatalf("unexpected: %v", got)
	}
	if Chunk([]int{1}, 0) != nil {
		t.Fatal("expected nil for n <= 0")
	}
}

func TestFlatMap(t *testing.T) {
	got := FlatMap([][]int{{1, 2}, {3}}, func(v []int) []int { return v })
	if len(got) != 3 || got[2] != 3 {
		t.Fatalf("unexpected: %v", got)
	}
}
