package lookup

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Kamar-Folarin/git-search/internal/models"
)

// SortKey selects a repository ordering.
type SortKey string

const (
	SortByName    SortKey = "name"
	SortByStars   SortKey = "stars"
	SortByForks   SortKey = "forks"
	SortByUpdated SortKey = "updated"
	SortByCreated SortKey = "created"
	// SortBySize is the default view after a lookup. It is not offered in
	// the sort selector.
	SortBySize SortKey = "size"
)

// SortKeys lists the keys offered in the sort selector, in display order.
var SortKeys = []SortKey{SortByName, SortByStars, SortByForks, SortByCreated, SortByUpdated}

// ParseSortKey accepts the selector keys and "size".
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case SortByName, SortByStars, SortByForks, SortByUpdated, SortByCreated, SortBySize:
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// SortRepositories returns a sorted copy of repos; the input is not modified.
// The sort is stable, so applying the same key again keeps the order.
// An unrecognised key returns the copy unchanged.
func SortRepositories(repos []models.Repository, key SortKey) []models.Repository {
	sorted := make([]models.Repository, len(repos))
	copy(sorted, repos)

	less := lessFunc(sorted, key)
	if less == nil {
		return sorted
	}
	sort.SliceStable(sorted, less)
	return sorted
}

func lessFunc(r []models.Repository, key SortKey) func(i, j int) bool {
	switch key {
	case SortByName:
		// collate.Collator is not safe for concurrent use
		c := collate.New(language.English)
		return func(i, j int) bool { return c.CompareString(r[i].Name, r[j].Name) < 0 }
	case SortByStars:
		return func(i, j int) bool { return r[i].StarsCount > r[j].StarsCount }
	case SortByForks:
		return func(i, j int) bool { return r[i].ForksCount > r[j].ForksCount }
	case SortByUpdated:
		return func(i, j int) bool { return r[i].UpdatedAt.After(r[j].UpdatedAt) }
	case SortByCreated:
		return func(i, j int) bool { return r[i].CreatedAt.After(r[j].CreatedAt) }
	case SortBySize:
		return func(i, j int) bool { return r[i].Size > r[j].Size }
	}
	return nil
}
