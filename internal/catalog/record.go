package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record is one persisted anime entry. The zero value is an empty record.
//
// On the wire the record is flat: scalar fields and numeric episode keys
// are siblings within one object, e.g.
//
//	{"title":"X","duration":"24m","cover":"c.jpg","genres":["Action"],"1":"u1.mp4","3":"u3.mp4"}
//
// Existing stored data uses this layout, so the JSON codec below preserves
// it; in memory episodes live in an explicit map.
type Record struct {
	Title    string
	Duration string
	Cover    string
	Genres   []string
	Episodes map[int]string
}

// Entry pairs a store key with its record.
type Entry struct {
	ID     string `json:"id"`
	Record Record `json:"record"`
}

// EpisodeSource is one playable episode, labeled for display.
type EpisodeSource struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
	URL    string `json:"url"`
}

// Sources derives the ordered episode source list: every episode entry,
// ascending by number. Scalar fields are excluded by construction.
func (r Record) Sources() []EpisodeSource {
	numbers := make([]int, 0, len(r.Episodes))
	for n := range r.Episodes {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	out := make([]EpisodeSource, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, EpisodeSource{
			Number: n,
			Label:  fmt.Sprintf("Episode %d", n),
			URL:    r.Episodes[n],
		})
	}
	return out
}

func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, 4+len(r.Episodes))
	m["title"] = r.Title
	m["duration"] = r.Duration
	m["cover"] = r.Cover
	m["genres"] = r.Genres
	for n, u := range r.Episodes {
		if n < 1 {
			return nil, fmt.Errorf("catalog: episode number %d is not positive", n)
		}
		m[strconv.Itoa(n)] = u
	}
	return json.Marshal(m)
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*r = Record{}
	for k, v := range raw {
		if n, err := strconv.Atoi(strings.TrimSpace(k)); err == nil {
			if n < 1 {
				continue
			}
			var u string
			if err := json.Unmarshal(v, &u); err != nil {
				return fmt.Errorf("catalog: episode %d: %w", n, err)
			}
			if r.Episodes == nil {
				r.Episodes = make(map[int]string)
			}
			r.Episodes[n] = u
			continue
		}

		switch k {
		case "title":
			if err := json.Unmarshal(v, &r.Title); err != nil {
				return err
			}
		case "duration":
			if err := json.Unmarshal(v, &r.Duration); err != nil {
				return err
			}
		case "cover":
			if err := json.Unmarshal(v, &r.Cover); err != nil {
				return err
			}
		case "genres":
			if err := json.Unmarshal(v, &r.Genres); err != nil {
				return err
			}
		}
		// Unknown scalar keys are tolerated and dropped.
	}
	return nil
}

func (r Record) clone() Record {
	out := r
	if r.Genres != nil {
		out.Genres = append([]string(nil), r.Genres...)
	}
	if r.Episodes != nil {
		out.Episodes = make(map[int]string, len(r.Episodes))
		for n, u := range r.Episodes {
			out.Episodes[n] = u
		}
	}
	return out
}
