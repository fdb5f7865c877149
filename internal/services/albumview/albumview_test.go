package albumview

import (
	"testing"
	"time"

	"galeria/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func albumAt(title string, albumDate *time.Time, createdAt time.Time) models.Album {
	return models.Album{
		ID:        uuid.New(),
		Title:     title,
		AlbumDate: albumDate,
		CreatedAt: createdAt,
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestParseSortOption(t *testing.T) {
	tests := []struct {
		raw      string
		expected SortOption
		ok       bool
	}{
		{"date_desc", SortDateDesc, true},
		{"date_asc", SortDateAsc, true},
		{"name_asc", SortNameAsc, true},
		{"name_desc", SortNameDesc, true},
		{"", DefaultSort, true},
		{"garbage", DefaultSort, false},
		{"DATE_DESC", DefaultSort, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseSortOption(tt.raw)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestGroupKey(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected string
	}{
		{time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), "Enero 2024"},
		{time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), "Junio 2024"},
		{time.Date(2023, time.September, 30, 0, 0, 0, 0, time.UTC), "Septiembre 2023"},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "Diciembre 2025"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GroupKey(tt.date))
	}
}

func TestFilter(t *testing.T) {
	albums := []models.Album{
		albumAt("Boda de Ana", nil, time.Now()),
		albumAt("Cumpleaños", nil, time.Now()),
		albumAt("boda playa", nil, time.Now()),
	}

	t.Run("blank query returns everything", func(t *testing.T) {
		assert.Len(t, Filter(albums, ""), 3)
		assert.Len(t, Filter(albums, "   "), 3)
	})

	t.Run("case insensitive substring match", func(t *testing.T) {
		got := Filter(albums, "BODA")
		require.Len(t, got, 2)
		assert.Equal(t, "Boda de Ana", got[0].Title)
		assert.Equal(t, "boda playa", got[1].Title)
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, Filter(albums, "viaje"))
	})

	t.Run("source slice is not mutated", func(t *testing.T) {
		got := Filter(albums, "")
		got[0].Title = "changed"
		assert.Equal(t, "Boda de Ana", albums[0].Title)
	})
}

func TestSort_ByDate(t *testing.T) {
	created := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	// album_date имеет приоритет над created_at
	old := albumAt("viejo", datePtr(2020, time.January, 1), created)
	noDate := albumAt("sin fecha", nil, created)
	fresh := albumAt("nuevo", datePtr(2024, time.June, 1), created)

	albums := []models.Album{noDate, old, fresh}

	t.Run("date_desc", func(t *testing.T) {
		got := Sort(albums, SortDateDesc)
		require.Len(t, got, 3)
		assert.Equal(t, "nuevo", got[0].Title)
		assert.Equal(t, "sin fecha", got[1].Title)
		assert.Equal(t, "viejo", got[2].Title)
	})

	t.Run("date_asc", func(t *testing.T) {
		got := Sort(albums, SortDateAsc)
		assert.Equal(t, "viejo", got[0].Title)
		assert.Equal(t, "sin fecha", got[1].Title)
		assert.Equal(t, "nuevo", got[2].Title)
	})

	t.Run("ties keep original order", func(t *testing.T) {
		first := albumAt("primero", datePtr(2024, time.May, 5), created)
		second := albumAt("segundo", datePtr(2024, time.May, 5), created)

		got := Sort([]models.Album{first, second}, SortDateDesc)
		assert.Equal(t, "primero", got[0].Title)
		assert.Equal(t, "segundo", got[1].Title)
	})

	t.Run("source slice is not mutated", func(t *testing.T) {
		_ = Sort(albums, SortDateAsc)
		assert.Equal(t, "sin fecha", albums[0].Title)
	})
}

func TestSort_ByName(t *testing.T) {
	now := time.Now()
	albums := []models.Album{
		albumAt("Mudanza", nil, now),
		albumAt("Ángel", nil, now),
		albumAt("boda", nil, now),
	}

	t.Run("name_asc uses spanish collation", func(t *testing.T) {
		got := Sort(albums, SortNameAsc)
		require.Len(t, got, 3)
		// Á сортируется рядом с A, а не после Z, как в байтовом сравнении
		assert.Equal(t, "Ángel", got[0].Title)
		assert.Equal(t, "boda", got[1].Title)
		assert.Equal(t, "Mudanza", got[2].Title)
	})

	t.Run("name_desc is the exact reverse", func(t *testing.T) {
		got := Sort(albums, SortNameDesc)
		assert.Equal(t, "Mudanza", got[0].Title)
		assert.Equal(t, "boda", got[1].Title)
		assert.Equal(t, "Ángel", got[2].Title)
	})
}

func TestGroup_ChronologicalUnderDateSort(t *testing.T) {
	albums := []models.Album{
		albumAt("junio uno", datePtr(2024, time.June, 20), time.Now()),
		albumAt("mayo", datePtr(2024, time.May, 1), time.Now()),
		albumAt("junio dos", datePtr(2024, time.June, 5), time.Now()),
		albumAt("enero 2023", datePtr(2023, time.January, 10), time.Now()),
	}

	groups := Group(Sort(albums, SortDateDesc))

	require.Len(t, groups, 3)
	assert.Equal(t, "Junio 2024", groups[0].Key)
	assert.Equal(t, "Mayo 2024", groups[1].Key)
	assert.Equal(t, "Enero 2023", groups[2].Key)

	require.Len(t, groups[0].Albums, 2)
	assert.Equal(t, "junio uno", groups[0].Albums[0].Title)
	assert.Equal(t, "junio dos", groups[0].Albums[1].Title)
}

// Порядок групп следует за сортировкой, а не за календарем: при
// сортировке по имени один и тот же месяц не склеивает позиции, группа
// встает там, где встретился ее первый альбом. Тест фиксирует это
// поведение намеренно.
func TestGroup_FollowsSortOrderNotCalendar(t *testing.T) {
	albums := []models.Album{
		albumAt("Ana", datePtr(2024, time.June, 1), time.Now()),
		albumAt("Beto", datePtr(2024, time.May, 1), time.Now()),
		albumAt("Carla", datePtr(2024, time.June, 15), time.Now()),
	}

	groups := Group(Sort(albums, SortNameAsc))

	require.Len(t, groups, 2)
	assert.Equal(t, "Junio 2024", groups[0].Key)
	assert.Equal(t, "Mayo 2024", groups[1].Key)

	// Carla идет после Beto, но попадает в первую группу
	require.Len(t, groups[0].Albums, 2)
	assert.Equal(t, "Ana", groups[0].Albums[0].Title)
	assert.Equal(t, "Carla", groups[0].Albums[1].Title)
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, Group([]models.Album{}))
}
