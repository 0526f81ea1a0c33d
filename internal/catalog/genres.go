package catalog

// UnknownGenre is the display name for genre ids missing from the table.
const UnknownGenre = "Другое"

var genreNames = map[int]string{
	28:    "Боевик",
	12:    "Приключения",
	16:    "Мультфильм",
	35:    "Комедия",
	18:    "Драма",
	36:    "История",
	878:   "Фантастика",
	10749: "Мелодрама",
}

// GenreName returns the display name of a genre id.
func GenreName(id int) string {
	if name, ok := genreNames[id]; ok {
		return name
	}
	return UnknownGenre
}

// GenreNames maps ids to display names, preserving order. The result is never nil.
func GenreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, GenreName(id))
	}
	return names
}
