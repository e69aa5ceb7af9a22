package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/moodify/core/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yml
var embeddedCatalog []byte

type catalogFile struct {
	Genres []string                            `yaml:"genres"`
	Moods  map[string]map[string][]models.Song `yaml:"moods"`
}

// Catalog is the read-only (mood, genre) -> songs table.
type Catalog struct {
	genres  []string
	moods   []string
	entries map[string]map[string][]models.Song
	byID    map[string]songRef
}

type songRef struct {
	mood  string
	genre string
	song  models.Song
}

// Default parses the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Parse builds a Catalog from YAML. Keys are lowercased; song ids must be unique.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		entries: make(map[string]map[string][]models.Song, len(file.Moods)),
		byID:    make(map[string]songRef),
	}
	genreSet := make(map[string]struct{})
	for _, g := range file.Genres {
		g = normalizeKey(g)
		if _, ok := genreSet[g]; !ok && g != "" {
			genreSet[g] = struct{}{}
			c.genres = append(c.genres, g)
		}
	}

	for rawMood, genres := range file.Moods {
		mood := normalizeKey(rawMood)
		if !models.IsKnownMood(mood) {
			return nil, fmt.Errorf("catalog: unknown mood %q", rawMood)
		}
		c.moods = append(c.moods, mood)
		c.entries[mood] = make(map[string][]models.Song, len(genres))
		for rawGenre, songs := range genres {
			genre := normalizeKey(rawGenre)
			if _, ok := genreSet[genre]; !ok {
				genreSet[genre] = struct{}{}
				c.genres = append(c.genres, genre)
			}
			for _, s := range songs {
				if s.ID == "" {
					return nil, fmt.Errorf("catalog: song without id in %s/%s", mood, genre)
				}
				if prev, dup := c.byID[s.ID]; dup {
					return nil, fmt.Errorf("catalog: duplicate song id %q in %s/%s and %s/%s", s.ID, prev.mood, prev.genre, mood, genre)
				}
				c.byID[s.ID] = songRef{mood: mood, genre: genre, song: s}
			}
			c.entries[mood][genre] = songs
		}
	}
	sort.Slice(c.moods, func(i, j int) bool { return moodRank(c.moods[i]) < moodRank(c.moods[j]) })
	return c, nil
}

// Resolve returns a copy of the songs for the exact (mood, genre) pair.
// An absent pair yields an empty slice, never an error.
func (c *Catalog) Resolve(mood, genre string) []models.Song {
	songs := c.entries[normalizeKey(mood)][normalizeKey(genre)]
	out := make([]models.Song, len(songs))
	copy(out, songs)
	return out
}

// ResolveMood returns every song for mood across genres, in genre order.
func (c *Catalog) ResolveMood(mood string) []models.Song {
	out := make([]models.Song, 0)
	for _, genre := range c.genres {
		out = append(out, c.Resolve(mood, genre)...)
	}
	return out
}

// Lookup finds songID in the (mood, genre) entry. An empty genre matches any genre of mood.
// The returned song is the catalog's canonical record.
func (c *Catalog) Lookup(mood, genre, songID string) (models.Song, bool) {
	ref, ok := c.byID[songID]
	if !ok || ref.mood != normalizeKey(mood) {
		return models.Song{}, false
	}
	if g := normalizeKey(genre); g != "" && ref.genre != g {
		return models.Song{}, false
	}
	return ref.song, true
}

// Genres lists genres in catalog order.
func (c *Catalog) Genres() []string {
	return append([]string(nil), c.genres...)
}

// Moods lists the moods that have catalog entries.
func (c *Catalog) Moods() []string {
	return append([]string(nil), c.moods...)
}

// HasGenre reports whether genre is part of the catalog.
func (c *Catalog) HasGenre(genre string) bool {
	g := normalizeKey(genre)
	for _, known := range c.genres {
		if known == g {
			return true
		}
	}
	return false
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func moodRank(mood string) int {
	for i, m := range models.AllMoods {
		if m == mood {
			return i
		}
	}
	return len(models.AllMoods)
}

// ByID finds a song anywhere in the catalog.
func (c *Catalog) ByID(songID string) (models.Song, bool) {
	ref, ok := c.byID[strings.TrimSpace(songID)]
	return ref.song, ok
}
