package albumview

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"galeria/internal/domain/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption режим сортировки списка альбомов
type SortOption string

const (
	SortDateDesc SortOption = "date_desc"
	SortDateAsc  SortOption = "date_asc"
	SortNameAsc  SortOption = "name_asc"
	SortNameDesc SortOption = "name_desc"
)

// DefaultSort сортировка по умолчанию, новые альбомы первыми
const DefaultSort = SortDateDesc

// ParseSortOption разбирает значение query-параметра сортировки
func ParseSortOption(s string) (SortOption, bool) {
	switch SortOption(s) {
	case SortDateDesc, SortDateAsc, SortNameAsc, SortNameDesc:
		return SortOption(s), true
	case "":
		return DefaultSort, true
	}
	return DefaultSort, false
}

// Продукт испаноязычный, ключи групп составляются из испанских месяцев
var spanishMonths = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// GroupKey возвращает ключ группы для даты, например "Junio 2024"
func GroupKey(t time.Time) string {
	return fmt.Sprintf("%s %d", spanishMonths[t.Month()-1], t.Year())
}

// Filter отбирает альбомы, заголовок которых содержит запрос без учета
// регистра. Пустой или пробельный запрос возвращает список как есть.
// Исходный список не изменяется.
func Filter(albums []models.Album, query string) []models.Album {
	result := make([]models.Album, 0, len(albums))

	if strings.TrimSpace(query) == "" {
		return append(result, albums...)
	}

	q := strings.ToLower(query)
	for _, album := range albums {
		if strings.Contains(strings.ToLower(album.Title), q) {
			result = append(result, album)
		}
	}

	return result
}

// Sort возвращает отсортированную копию списка. Даты сравниваются по
// EffectiveDate, имена через collate для испанской локали. Сортировка
// стабильная: равные элементы сохраняют исходный порядок.
func Sort(albums []models.Album, mode SortOption) []models.Album {
	result := append(make([]models.Album, 0, len(albums)), albums...)

	var less func(a, b models.Album) bool
	switch mode {
	case SortDateAsc:
		less = func(a, b models.Album) bool { return a.EffectiveDate().Before(b.EffectiveDate()) }
	case SortNameAsc:
		cl := collate.New(language.Spanish)
		less = func(a, b models.Album) bool { return cl.CompareString(a.Title, b.Title) < 0 }
	case SortNameDesc:
		cl := collate.New(language.Spanish)
		less = func(a, b models.Album) bool { return cl.CompareString(b.Title, a.Title) < 0 }
	default: // date_desc
		less = func(a, b models.Album) bool { return b.EffectiveDate().Before(a.EffectiveDate()) }
	}

	sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })

	return result
}

// AlbumGroup группа альбомов одного месяца
type AlbumGroup struct {
	Key    string         `json:"key"`
	Albums []models.Album `json:"albums"`
}

// Group разбивает отсортированный список на группы "<месяц> <год>" по
// EffectiveDate. Порядок групп определяется первым вхождением ключа в
// отсортированном списке, а не хронологией: при сортировке по имени
// группы идут вперемешку. Это осознанное поведение, группировка --
// пост-обработка результата сортировки, см. тест.
func Group(sorted []models.Album) []AlbumGroup {
	var groups []AlbumGroup
	index := make(map[string]int)

	for _, album := range sorted {
		key := GroupKey(album.EffectiveDate())
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, AlbumGroup{Key: key})
		}
		groups[i].Albums = append(groups[i].Albums, album)
	}

	return groups
}
