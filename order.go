package syb

import (
	"cmp"
	"slices"
)

// extPriority lists the extensions that sort ahead of all others, in order.
var extPriority = []string{".mp3", ".wav", ".jpg"}

// extRank returns the position of ext in extPriority, or len(extPriority)
// for extensions without a priority.
func extRank(ext string) int {
	if i := slices.Index(extPriority, ext); i >= 0 {
		return i
	}
	return len(extPriority)
}

// Compare orders two entries the way game archives are laid out.
//
// Entries with the same extension compare by name using [CompareNames].
// Entries with different extensions compare by extension priority:
// .mp3 first, then .wav, then .jpg. Two different extensions outside that
// list compare equal.
func Compare(a, b Entry) int {
	ea, eb := a.Ext(), b.Ext()
	if ea == eb {
		return CompareNames(a.Name, b.Name)
	}
	return cmp.Compare(extRank(ea), extRank(eb))
}

// Less reports whether a sorts before b.
func Less(a, b Entry) bool {
	return Compare(a, b) < 0
}

// CompareNames compares names byte by byte, except that '_' sorts after
// every other byte. A name sorts before any longer name it is a prefix of.
func CompareNames(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] == b[i] {
			continue
		}
		return cmp.Compare(nameKey(a[i]), nameKey(b[i]))
	}
	return cmp.Compare(len(a), len(b))
}

func nameKey(c byte) int {
	if c == '_' {
		return 256
	}
	return int(c)
}

// SortEntries orders entries in place for packing.
//
// The result is stable: entries that Compare equal keep their relative
// order. Compare alone is not a strict weak ordering, because names are only
// compared between entries of the same extension, so sorting runs in two
// passes. The first stably groups entries by extension priority. The second
// sorts each extension's entries by name within the positions that extension
// already occupies, leaving the interleaving of unprioritized extensions as
// it arrived.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(extRank(a.Ext()), extRank(b.Ext()))
	})

	slots := make(map[string][]int)
	var exts []string
	for i, e := range entries {
		ext := e.Ext()
		if _, ok := slots[ext]; !ok {
			exts = append(exts, ext)
		}
		slots[ext] = append(slots[ext], i)
	}

	for _, ext := range exts {
		idx := slots[ext]
		group := make([]Entry, len(idx))
		for j, i := range idx {
			group[j] = entries[i]
		}
		slices.SortStableFunc(group, func(a, b Entry) int {
			return CompareNames(a.Name, b.Name)
		})
		for j, i := range idx {
			entries[i] = group[j]
		}
	}
}
