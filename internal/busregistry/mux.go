package busregistry

import "github.com/pandablocks/pandad/internal/hashtable"

// MuxTable holds the two global, append-only bit_mux/pos_mux name
// enumerations (§4.7). Entries are added once, during register
// binding, by every bit_out/pos_out field that publishes itself onto
// the corresponding mux, and never removed afterwards.
type MuxTable struct {
	BitMux *hashtable.NameIndex
	PosMux *hashtable.NameIndex
}

// NewMuxTable returns empty bit_mux/pos_mux tables.
func NewMuxTable() *MuxTable {
	return &MuxTable{
		BitMux: hashtable.NewNameIndex(),
		PosMux: hashtable.NewNameIndex(),
	}
}
