package names

import (
	"cmp"
	"slices"

	"github.com/matst80/slask-wardrobe/pkg/types"
)

func sortEntries(entries []types.NameEntry) {
	slices.SortFunc(entries, func(a, b types.NameEntry) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Id, b.Id)
	})
}
