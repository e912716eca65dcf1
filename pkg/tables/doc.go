// Package tables holds the typed data tables exported from the design
// spreadsheets and the Manager that loads them.
//
// Each record file (buff.go, hero.go, npc_hero.go, skill.go) follows the same
// pattern: a struct whose fields appear in sheet column order, a DecodeX
// function that reads those fields from a codec.DataBuffer in exactly that
// order, and an Encode method that writes them back. Enumerated columns are
// closed Go types with a ParseX function that rejects unknown codes.
//
// A Manager is an explicit value rather than a global. Build one at startup,
// call LoadAll once with a provider.Provider, then hand it to whatever needs
// lookups:
//
//	m := tables.NewManager()
//	if err := m.LoadAll(ctx, provider.NewDirProvider("./data", "")); err != nil {
//	    return err
//	}
//	hero, ok := m.Hero(1)
package tables
