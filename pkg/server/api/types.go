// Package api holds the JSON payloads exchanged with the page script.
package api

type Languages struct {
	Current   string   `json:"current"`
	Languages []string `json:"languages"`
}

type LanguageRequest struct {
	Language string `json:"language"`
}

// FieldValueRequest carries an edit. Seq, when set, orders edits of one
// field; older edits are dropped.
type FieldValueRequest struct {
	Value string `json:"value"`
	Seq   uint64 `json:"seq,omitempty"`
}

type IncludedRequest struct {
	Included *bool `json:"included"`
}

type Report struct {
	Report string `json:"report"`
	// Stale marks a field edit dropped in favour of a newer one.
	Stale bool `json:"stale,omitempty"`
}

type ImportResult struct {
	Restored int `json:"restored"`
}

type Error struct {
	Error string `json:"error"`
}
