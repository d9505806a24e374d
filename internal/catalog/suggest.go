package catalog

import (
	"sort"
	"strings"

	"uilibs/internal/models"
)

// Suggestion is an autocomplete entry for the search box: either a library
// or a tag.
type Suggestion struct {
	Library *models.Library
	Tag     string
}

// AllTags returns the unique tags across all libraries, sorted for display.
func AllTags(libraries []models.Library) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, lib := range libraries {
		for _, tag := range lib.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// Suggest returns up to limit autocomplete entries for the given input:
// libraries whose name, author, or tags contain the input, followed by
// matching tags. Matching is case-insensitive.
func Suggest(libraries []models.Library, input string, limit int) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(input))
	if q == "" || limit <= 0 {
		return nil
	}

	var suggestions []Suggestion
	for i := range libraries {
		lib := &libraries[i]
		if strings.Contains(strings.ToLower(lib.Name), q) ||
			strings.Contains(strings.ToLower(lib.Author), q) ||
			tagMatches(lib.Tags, q) {
			suggestions = append(suggestions, Suggestion{Library: lib})
			if len(suggestions) >= limit {
				return suggestions
			}
		}
	}

	for _, tag := range AllTags(libraries) {
		if strings.Contains(strings.ToLower(tag), q) {
			suggestions = append(suggestions, Suggestion{Tag: tag})
			if len(suggestions) >= limit {
				break
			}
		}
	}
	return suggestions
}

func tagMatches(tags []string, q string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
