package catalog

import "moviechain/internal/models"

func poster(text string) string {
	return "https://via.placeholder.com/300x450?text=" + text
}

// defaultMovies is the built-in demo catalog. Order matters: lookup and
// candidate generation scan it front to back.
func defaultMovies() []models.Movie {
	return []models.Movie{
		{Key: "inception", Title: "Inception", Year: "2010", ID: 1, GenreIDs: []int{878, 28},
			Overview: "Погружение в мир снов.", VoteAverage: 8.8, PosterURL: poster("Inception")},
		{Key: "interstellar", Title: "Interstellar", Year: "2014", ID: 2, GenreIDs: []int{878, 18},
			Overview: "Путешествие через космос и время.", VoteAverage: 8.6, PosterURL: poster("Interstellar")},
		{Key: "arrival", Title: "Arrival", Year: "2016", ID: 3, GenreIDs: []int{878, 18},
			Overview: "Контакт с внеземным разумом.", VoteAverage: 7.9, PosterURL: poster("Arrival")},
		{Key: "moon", Title: "Moon", Year: "2009", ID: 4, GenreIDs: []int{878, 18},
			Overview: "Одиночество на лунной базе.", VoteAverage: 7.9, PosterURL: poster("Moon")},
		{Key: "her", Title: "Her", Year: "2013", ID: 5, GenreIDs: []int{18, 10749},
			Overview: "Любовь в эру ИИ.", VoteAverage: 8.0, PosterURL: poster("Her")},
		{Key: "gladiator", Title: "Gladiator", Year: "2000", ID: 6, GenreIDs: []int{36, 28, 18},
			Overview: "Римская эпопея о мести и чести.", VoteAverage: 8.5, PosterURL: poster("Gladiator")},
		{Key: "braveheart", Title: "Braveheart", Year: "1995", ID: 7, GenreIDs: []int{36, 18, 28},
			Overview: "Историческая драма о борьбе за свободу.", VoteAverage: 8.3, PosterURL: poster("Braveheart")},
		{Key: "the_lion_king", Title: "The Lion King", Year: "1994", ID: 8, GenreIDs: []int{16, 12, 18},
			Overview: "Анимационная эпопея о становлении короля.", VoteAverage: 8.5, PosterURL: poster("Lion+King")},
		{Key: "the_social_network", Title: "The Social Network", Year: "2010", ID: 9, GenreIDs: []int{18},
			Overview: "История создания Facebook.", VoteAverage: 7.7, PosterURL: poster("Social+Network")},
	}
}
