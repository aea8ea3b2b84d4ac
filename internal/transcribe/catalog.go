package transcribe

import "strings"

// Model describes one entry of the fixed Whisper model catalog.
type Model struct {
	ID         string
	Label      string
	Parameters string
	Tradeoff   string
}

// Catalog is the fixed model set, ordered by increasing size and accuracy.
var catalog = []Model{
	{ID: "tiny", Label: "Tiny", Parameters: "39M", Tradeoff: "fastest"},
	{ID: "base", Label: "Base", Parameters: "74M", Tradeoff: "balanced"},
	{ID: "small", Label: "Small", Parameters: "244M", Tradeoff: "good accuracy"},
	{ID: "medium", Label: "Medium", Parameters: "769M", Tradeoff: "high accuracy"},
	{ID: "large", Label: "Large", Parameters: "1550M", Tradeoff: "best accuracy"},
}

var catalogByID = func() map[string]Model {
	m := make(map[string]Model, len(catalog))
	for _, entry := range catalog {
		m[entry.ID] = entry
	}
	return m
}()

// Models returns the catalog in size order.
func Models() []Model {
	cp := make([]Model, len(catalog))
	copy(cp, catalog)
	return cp
}

// LookupModel resolves a model identifier, case-insensitively.
func LookupModel(id string) (Model, bool) {
	model, ok := catalogByID[strings.ToLower(strings.TrimSpace(id))]
	return model, ok
}
