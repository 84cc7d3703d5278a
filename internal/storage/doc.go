// Package storage persists normalized games in a local SQLite database.
//
// The scraper itself holds no state; this package is the storage
// collaborator that receives finished Game values and creates or replaces
// Game and Clue rows keyed by source game ID and clue ID. Because clue
// IDs are derived from structural position, importing the same show twice
// lands on the same rows.
package storage
