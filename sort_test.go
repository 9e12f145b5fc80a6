package sortpar_test

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/lanrat/sortpar"
)

// small chunks and several workers so that every test exercises the merge
var testConfigs = []*sortpar.Config{
	nil,
	{NumWorkers: 1, MinChunkSize: 1},
	{NumWorkers: 3, MinChunkSize: 5},
	{NumWorkers: 8, MinChunkSize: 2},
}

var allStrategies = []sortpar.Strategy{
	sortpar.Lexicographic,
	sortpar.GeneralNumeric,
	sortpar.NaturalOrder,
	sortpar.VersionOrder,
}

// makeTestLines returns size lines mixing words, numbers, versions and blanks
func makeTestLines(r *rand.Rand, size int) []string {
	words := []string{"apple", "Apple", "  banana", "cherry!", "item", "v1.2.", "", "-", "3.5x", "nan", "1e3"}
	a := make([]string, size)
	for i := range a {
		switch r.Intn(5) {
		case 0:
			a[i] = words[r.Intn(len(words))]
		case 1:
			a[i] = fmt.Sprintf("%d", r.Intn(200)-100)
		case 2:
			a[i] = fmt.Sprintf("item%d", r.Intn(50))
		case 3:
			a[i] = fmt.Sprintf("%d.%d.%d", r.Intn(3), r.Intn(12), r.Intn(12))
		default:
			a[i] = fmt.Sprintf("%s%s %d", strings.Repeat(" ", r.Intn(3)), words[r.Intn(len(words))], r.Intn(10))
		}
	}
	return a
}

func isPermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

func TestScenarioDefault(t *testing.T) {
	lines := []string{"baseball", "apple", "car"}
	got := sortpar.Sort(lines, sortpar.SortConfig{})
	want := []string{"apple", "baseball", "car"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !slices.Equal(lines, want) {
		t.Fatalf("input not sorted in place: %q", lines)
	}
}

func TestScenarioLeadingBlanks(t *testing.T) {
	lines := []string{"    c", "d", "a", "    b"}
	got := sortpar.Sort(lines, sortpar.SortConfig{Filters: []sortpar.Filter{sortpar.StripLeadingBlanks}})
	want := []string{"a", "    b", "    c", "d"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	// without the filter the blank prefixed lines sort first
	lines = []string{"a", "    b", "    c", "d"}
	got = sortpar.Sort(lines, sortpar.SortConfig{})
	want = []string{"    b", "    c", "a", "d"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioReverse(t *testing.T) {
	got := sortpar.Sort([]string{"a", "b", "c"}, sortpar.SortConfig{Reverse: true})
	want := []string{"c", "b", "a"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioUnique(t *testing.T) {
	lines := []string{"b", "a", "b", "c", "a"}
	got := sortpar.Sort(lines, sortpar.SortConfig{Unique: true})
	want := []string{"a", "b", "c"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestScenarioUniqueKeepsComparatorEqual checks that unique only drops identical text
func TestScenarioUniqueKeepsComparatorEqual(t *testing.T) {
	lines := []string{"test", "cool", "TEST", "zebra", "test", "Cool"}
	sc := sortpar.SortConfig{Unique: true, Stable: true, Filters: []sortpar.Filter{sortpar.CaseFold}}
	got := sortpar.Sort(lines, sc)
	want := []string{"cool", "Cool", "test", "TEST", "zebra"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioFold(t *testing.T) {
	lines := []string{"APPLE", "bike", "car", "apple", "BIKE", "CAR"}
	got := sortpar.Sort(lines, sortpar.SortConfig{Stable: true, Filters: []sortpar.Filter{sortpar.CaseFold}})
	want := []string{"APPLE", "apple", "bike", "BIKE", "car", "CAR"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioStrategies(t *testing.T) {
	testCases := []struct {
		name     string
		strategy sortpar.Strategy
		input    []string
		want     []string
	}{
		{
			"general numeric",
			sortpar.GeneralNumeric,
			[]string{"10", "abc", "-2.5", "3.5x", "1e1x", "2"},
			[]string{"-2.5", "abc", "2", "3.5x", "10", "1e1x"},
		},
		{
			"human numeric",
			sortpar.NaturalOrder,
			[]string{"item10", "item2", "item1", "item02b"},
			[]string{"item1", "item2", "item02b", "item10"},
		},
		{
			"version",
			sortpar.VersionOrder,
			[]string{"1.10.0", "1.2.0", "1.9.3", "1.2.0-rc1"},
			[]string{"1.2.0-rc1", "1.2.0", "1.9.3", "1.10.0"},
		},
		{
			"lexicographic",
			sortpar.Lexicographic,
			[]string{"item10", "item2", "Item3"},
			[]string{"Item3", "item10", "item2"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := sortpar.Sort(slices.Clone(tc.input), sortpar.SortConfig{Strategy: tc.strategy, Stable: true})
			if !slices.Equal(got, tc.want) {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSortEmpty(t *testing.T) {
	for _, sc := range []sortpar.SortConfig{{}, {Unique: true}, {Stable: true, Reverse: true}} {
		if got := sortpar.Sort(nil, sc); len(got) != 0 {
			t.Errorf("sorting nil returned %q", got)
		}
		got := sortpar.Sort([]string{"x"}, sc)
		if !slices.Equal(got, []string{"x"}) {
			t.Errorf("sorting one line returned %q", got)
		}
	}
}

// TestSortOrdered checks that every combination of strategy, filters and
// direction produces an ordered permutation of its input
func TestSortOrdered(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	filterSets := [][]sortpar.Filter{
		nil,
		{sortpar.StripLeadingBlanks},
		{sortpar.DictionaryOrder, sortpar.CaseFold},
		{sortpar.StripLeadingBlanks, sortpar.DictionaryOrder, sortpar.CaseFold},
	}

	for _, strategy := range allStrategies {
		for _, filters := range filterSets {
			for _, reverse := range []bool{false, true} {
				for _, config := range testConfigs {
					sc := sortpar.SortConfig{Strategy: strategy, Filters: filters, Reverse: reverse}
					input := makeTestLines(r, 300)
					got := sortpar.SortWithConfig(slices.Clone(input), sc, config)
					if !isPermutation(input, got) {
						t.Fatalf("%v %v reverse=%v: output is not a permutation of the input", strategy, filters, reverse)
					}
					// version order falls back pairwise so it is not a total order on mixed input
					if strategy == sortpar.VersionOrder {
						continue
					}
					if i := sortpar.FirstDisorder(got, sc); i >= 0 {
						t.Fatalf("%v %v reverse=%v: disorder at %d: %q > %q", strategy, filters, reverse, i, got[i-1], got[i])
					}
				}
			}
		}
	}
}

// TestSortVersionsOrdered sorts input made only of versions, where version order is total
func TestSortVersionsOrdered(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	input := make([]string, 500)
	for i := range input {
		input[i] = fmt.Sprintf("v%d.%d.%d", r.Intn(4), r.Intn(20), r.Intn(20))
	}
	sc := sortpar.SortConfig{Strategy: sortpar.VersionOrder}
	for _, config := range testConfigs {
		got := sortpar.SortWithConfig(slices.Clone(input), sc, config)
		if !sortpar.IsSorted(got, sc) {
			t.Fatal("versions not sorted")
		}
	}
}

// TestSortStable checks that equal lines keep their input order, also when reversed,
// and that the result does not depend on the worker count
func TestSortStable(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	input := make([]string, 1000)
	for i := range input {
		// the numeric key repeats, the id after it records the input order
		input[i] = fmt.Sprintf("%d id%04d", r.Intn(30), i)
	}

	for _, reverse := range []bool{false, true} {
		sc := sortpar.SortConfig{Strategy: sortpar.GeneralNumeric, Stable: true, Reverse: reverse}
		want := slices.Clone(input)
		slices.SortStableFunc(want, func(a, b string) int {
			return sortpar.Compare(a, b, sc)
		})

		for _, config := range testConfigs {
			got := sortpar.SortWithConfig(slices.Clone(input), sc, config)
			if !slices.Equal(got, want) {
				t.Fatalf("reverse=%v config=%+v: stable sort differs from reference", reverse, config)
			}
			for i := 1; i < len(got); i++ {
				if sortpar.Compare(got[i-1], got[i], sc) == 0 && got[i-1] > got[i] {
					t.Fatalf("reverse=%v: equal lines out of input order: %q before %q", reverse, got[i-1], got[i])
				}
			}
		}
	}
}

func TestSortIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	// version order is left out, its pairwise fallback is not transitive on mixed input
	for _, strategy := range allStrategies[:3] {
		sc := sortpar.SortConfig{Strategy: strategy, Stable: true, Filters: []sortpar.Filter{sortpar.CaseFold}}
		once := sortpar.SortWithConfig(makeTestLines(r, 400), sc, testConfigs[2])
		twice := sortpar.SortWithConfig(slices.Clone(once), sc, testConfigs[3])
		if !slices.Equal(once, twice) {
			t.Errorf("%v: sorting sorted output changed it", strategy)
		}
	}
}

// TestSortUnstableDeterministic checks that repeated unstable sorts agree
func TestSortUnstableDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	input := makeTestLines(r, 2000)
	sc := sortpar.SortConfig{Filters: []sortpar.Filter{sortpar.CaseFold, sortpar.StripLeadingBlanks}}
	config := &sortpar.Config{NumWorkers: 4, MinChunkSize: 16}
	first := sortpar.SortWithConfig(slices.Clone(input), sc, config)
	for i := 0; i < 5; i++ {
		again := sortpar.SortWithConfig(slices.Clone(input), sc, config)
		if !slices.Equal(first, again) {
			t.Fatal("unstable sort is not deterministic")
		}
	}
}

func TestFirstDisorder(t *testing.T) {
	sc := sortpar.SortConfig{}
	if i := sortpar.FirstDisorder([]string{"a", "b", "b", "c"}, sc); i != -1 {
		t.Errorf("FirstDisorder = %d, want -1", i)
	}
	if i := sortpar.FirstDisorder([]string{"a", "c", "b"}, sc); i != 2 {
		t.Errorf("FirstDisorder = %d, want 2", i)
	}
	sc.Unique = true
	if i := sortpar.FirstDisorder([]string{"a", "b", "b", "c"}, sc); i != 2 {
		t.Errorf("FirstDisorder with unique = %d, want 2", i)
	}
	sc = sortpar.SortConfig{Reverse: true}
	if !sortpar.IsSorted([]string{"c", "b", "a"}, sc) {
		t.Error("reverse ordered lines not reported sorted")
	}
}

func TestCompare(t *testing.T) {
	sc := sortpar.SortConfig{Filters: []sortpar.Filter{sortpar.StripLeadingBlanks, sortpar.CaseFold}}
	if c := sortpar.Compare("   Apple", "apple", sc); c != 0 {
		t.Errorf("Compare = %d, want 0", c)
	}
	if c := sortpar.Compare("a", "B", sc); c >= 0 {
		t.Errorf("Compare = %d, want < 0", c)
	}
	sc.Reverse = true
	if c := sortpar.Compare("a", "B", sc); c <= 0 {
		t.Errorf("reversed Compare = %d, want > 0", c)
	}
}

func BenchmarkSort(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	input := makeTestLines(r, 100000)
	sc := sortpar.SortConfig{Strategy: sortpar.NaturalOrder, Filters: []sortpar.Filter{sortpar.CaseFold}}
	buf := make([]string, len(input))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(buf, input)
		sortpar.Sort(buf, sc)
	}
}
