package regrid

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

type pair struct {
	Name  string
	Count int
}

func pairColumns() *ProvidedColumns[pair] {
	return NewProvidedColumns(
		NewColumn[pair]("Name", Lens(NewTextCell(), StructField[pair, string]("Name"))),
		NewColumn[pair]("Count", Lens(NewValueCell[int](), StructField[pair, int]("Count"))),
	)
}

func TestProvidedColumns_RemapItems(t *testing.T) {
	items := Items[pair]{{"B", 1}, {"A", 1}, {"C", 0}}
	tests := []struct {
		name string
		spec RemapSpec
		want []LogIdx
	}{
		{
			name: "stable by count",
			spec: RemapSpec{SortBy: []SortSpec{NewSortSpec(1, Ascending)}},
			want: []LogIdx{2, 0, 1},
		},
		{
			name: "descending count keeps ties in logical order",
			spec: RemapSpec{SortBy: []SortSpec{NewSortSpec(1, Descending)}},
			want: []LogIdx{0, 1, 2},
		},
		{
			name: "by name",
			spec: RemapSpec{SortBy: []SortSpec{NewSortSpec(0, Ascending)}},
			want: []LogIdx{1, 0, 2},
		},
		{
			name: "count then name",
			spec: RemapSpec{SortBy: []SortSpec{NewSortSpec(1, Ascending), NewSortSpec(0, Ascending)}},
			want: []LogIdx{2, 1, 0},
		},
		{
			name: "unknown column is ignored",
			spec: RemapSpec{SortBy: []SortSpec{NewSortSpec(7, Ascending), NewSortSpec(1, Ascending)}},
			want: []LogIdx{2, 0, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remap := pairColumns().RemapItems(items, tt.spec)
			require.Equal(t, tt.want, remap.Order())
		})
	}
}

func TestProvidedColumns_RemapItems_Identity(t *testing.T) {
	remap := pairColumns().RemapItems(Items[pair]{{"B", 1}, {"A", 2}}, RemapSpec{})
	require.True(t, remap.IsIdentity())
	require.Equal(t, 2, remap.Len(2))

	log, ok := remap.LogIdx(1, 2)
	require.True(t, ok)
	require.Equal(t, LogIdx(1), log)

	_, ok = remap.LogIdx(2, 2)
	require.False(t, ok)
}

func TestProvidedColumns_RemapItems_Permutation(t *testing.T) {
	var items Items[pair]
	for i := range 50 {
		items = append(items, pair{Name: string(rune('a' + i%7)), Count: (i * 31) % 11})
	}
	spec := RemapSpec{SortBy: []SortSpec{NewSortSpec(1, Descending), NewSortSpec(0, Ascending)}}
	remap := pairColumns().RemapItems(items, spec)

	order := remap.Order()
	require.Len(t, order, len(items))
	sorted := slices.Clone(order)
	slices.Sort(sorted)
	for i, log := range sorted {
		require.Equal(t, LogIdx(i), log, "bijection onto [0,n)")
	}
	for vis, log := range order {
		got, ok := remap.VisIdx(log, len(items))
		require.True(t, ok)
		require.Equal(t, VisIdx(vis), got)
	}
	for i := 1; i < len(order); i++ {
		prev, next := items[order[i-1]], items[order[i]]
		require.GreaterOrEqual(t, prev.Count, next.Count)
		if prev.Count == next.Count {
			require.LessOrEqual(t, prev.Name, next.Name)
		}
	}
}

func TestProvidedColumns_InitialSpec(t *testing.T) {
	text := func(name string) TableColumn[pair] {
		return NewColumn[pair](name, Lens(NewTextCell(), StructField[pair, string]("Name")))
	}
	tests := []struct {
		name string
		cols []TableColumn[pair]
		want []SortSpec
	}{
		{
			name: "no sorted columns",
			cols: []TableColumn[pair]{text("a"), text("b")},
			want: nil,
		},
		{
			name: "sort order first",
			cols: []TableColumn[pair]{
				text("a").Sort(Descending),
				text("b").Sort(Ascending).SortOrder(2),
				text("c").Sort(Ascending).SortOrder(1),
				text("d"),
			},
			want: []SortSpec{
				NewSortSpec(2, Ascending),
				NewSortSpec(1, Ascending),
				NewSortSpec(0, Descending),
			},
		},
		{
			name: "sort order without direction is skipped",
			cols: []TableColumn[pair]{
				text("a").SortOrder(0),
				text("b").Sort(Descending),
			},
			want: []SortSpec{NewSortSpec(1, Descending)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := NewProvidedColumns(tt.cols...).InitialSpec()
			require.Equal(t, tt.want, spec.SortBy)
		})
	}
}

func TestRemapSpec_ToggleSort(t *testing.T) {
	var spec RemapSpec

	require.True(t, spec.ToggleSort(1, false))
	require.Equal(t, []SortSpec{NewSortSpec(1, Ascending)}, spec.SortBy)

	require.True(t, spec.ToggleSort(1, false))
	require.Equal(t, []SortSpec{NewSortSpec(1, Descending)}, spec.SortBy, "primary key flips")

	require.True(t, spec.ToggleSort(0, false))
	require.Equal(t, []SortSpec{NewSortSpec(0, Ascending), NewSortSpec(1, Descending)}, spec.SortBy)

	require.True(t, spec.ToggleSort(1, false))
	require.Equal(t, []SortSpec{NewSortSpec(1, Ascending), NewSortSpec(0, Ascending)}, spec.SortBy, "secondary key becomes primary ascending")

	require.False(t, spec.ToggleSort(0, true))
	require.Equal(t, []SortSpec{NewSortSpec(1, Ascending), NewSortSpec(0, Ascending)}, spec.SortBy, "fixed column unchanged")

	sort, ok := spec.SortFor(0)
	require.True(t, ok)
	require.Equal(t, Ascending, sort.Direction)
	_, ok = spec.SortFor(5)
	require.False(t, ok)
}

func TestRemap_VisIdx(t *testing.T) {
	remap := FullRemap([]LogIdx{2, 0, 1})
	for vis, log := range []LogIdx{2, 0, 1} {
		got, ok := remap.LogIdx(VisIdx(vis), 3)
		require.True(t, ok)
		require.Equal(t, log, got)

		back, ok := remap.VisIdx(log, 3)
		require.True(t, ok)
		require.Equal(t, VisIdx(vis), back)
	}
	_, ok := remap.LogIdx(-1, 3)
	require.False(t, ok)
	_, ok = remap.VisIdx(3, 3)
	require.False(t, ok)
}

func TestSortDirection(t *testing.T) {
	require.Equal(t, -1, Ascending.Apply(-1))
	require.Equal(t, 1, Descending.Apply(-1))
	require.Equal(t, Descending, Ascending.Toggled())
	require.Equal(t, Ascending, Descending.Toggled())
}
