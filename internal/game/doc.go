// Package game defines the canonical typed representation of an archived
// quiz show: games, rounds, categories, and clues, plus deterministic
// clue identifiers and air-date parsing helpers.
//
// All types are transient value objects constructed by a single parse and
// never mutated after return; persistence is the caller's concern.
package game
