package hypixel

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// MaxSuggestions is Discord's cap on autocomplete choices.
const MaxSuggestions = 25

// Entry pairs a display name with a canonical product id.
type Entry struct {
	Name string
	ID   string
}

// DisplayName turns a canonical id into its lowercase, space separated form.
func DisplayName(id string) string {
	return strings.ToLower(strings.ReplaceAll(id, "_", " "))
}

// CanonicalID turns typed words back into the id form, e.g. "enchanted diamond"
// becomes ENCHANTED_DIAMOND.
func CanonicalID(words ...string) string {
	return strings.ToUpper(strings.Join(strings.Fields(strings.Join(words, " ")), "_"))
}

// Catalog is the cached list of known products, rebuilt wholesale on refresh.
type Catalog struct {
	mu      sync.RWMutex
	entries []Entry
}

// Replace rebuilds the catalog from a bazaar snapshot, sorted by display name.
func (c *Catalog) Replace(data *BazaarData) {
	entries := make([]Entry, 0, len(data.Products))
	for key, p := range data.Products {
		id := p.ProductID
		if id == "" {
			id = key
		}
		entries = append(entries, Entry{Name: DisplayName(id), ID: id})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name == entries[j].Name {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Name < entries[j].Name
	})

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
}

// Len returns the number of known products.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Suggest returns up to limit entries whose display name starts with prefix.
// Matching is case-sensitive and keeps catalog order.
func (c *Catalog) Suggest(prefix string, limit int) []Entry {
	if limit <= 0 || limit > MaxSuggestions {
		limit = MaxSuggestions
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, 0, limit)
	for _, e := range c.entries {
		if strings.HasPrefix(e.Name, prefix) {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// Closest returns the known id with the smallest edit distance to id.
// ok is false when the catalog is empty.
func (c *Catalog) Closest(id string) (match string, distance int, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, e := range c.entries {
		d := levenshtein.ComputeDistance(id, e.ID)
		if !ok || d < distance {
			match, distance, ok = e.ID, d, true
		}
	}
	return match, distance, ok
}

// SameInitial returns every known id starting with the first character of id,
// compared case-insensitively.
func (c *Catalog) SameInitial(id string) []string {
	if id == "" {
		return nil
	}
	initial := strings.ToUpper(string([]rune(id)[0]))

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []string
	for _, e := range c.entries {
		if strings.HasPrefix(strings.ToUpper(e.ID), initial) {
			out = append(out, e.ID)
		}
	}
	return out
}
