package jikan

import (
	"strconv"
	"strings"
)

// MetadataSummary is the normalized projection of one catalog entry.
// It lives for a single lookup call and is merged into an upload draft.
type MetadataSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Cover    string   `json:"cover"`
	Genres   []string `json:"genres"`
	Duration string   `json:"duration"`
}

// Detail is the rich block the watch page displays alongside a record.
type Detail struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Synopsis     string   `json:"synopsis"`
	Score        float32  `json:"score"`
	Year         int32    `json:"year"`
	EpisodeCount int32    `json:"episode_count"`
	Genres       []string `json:"genres"`
	Cover        string   `json:"cover"`
}

func toSummary(data AnimeData) MetadataSummary {
	return MetadataSummary{
		ID:       strconv.Itoa(int(data.MalID)),
		Title:    strings.TrimSpace(data.Title),
		Cover:    strings.TrimSpace(data.Images.JPG.ImageURL),
		Genres:   genreNames(data),
		Duration: CleanDuration(data.Duration),
	}
}

func toDetail(data AnimeData) Detail {
	return Detail{
		ID:           strconv.Itoa(int(data.MalID)),
		Title:        strings.TrimSpace(data.Title),
		Synopsis:     strings.TrimSpace(data.Synopsis),
		Score:        data.Score,
		Year:         data.Year,
		EpisodeCount: data.Episodes,
		Genres:       genreNames(data),
		Cover:        strings.TrimSpace(data.Images.JPG.ImageURL),
	}
}

func genreNames(data AnimeData) []string {
	genres := make([]string, 0, len(data.Genres))
	for _, g := range data.Genres {
		if name := strings.TrimSpace(g.Name); name != "" {
			genres = append(genres, name)
		}
	}
	return genres
}

// CleanDuration strips the per-episode wording Jikan appends to runtimes,
// e.g. "24 min per ep" becomes "24 min".
func CleanDuration(d string) string {
	d = strings.TrimSpace(d)
	for _, suffix := range []string{" per ep", " per episode"} {
		if strings.HasSuffix(d, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(d, suffix))
		}
	}
	return d
}
