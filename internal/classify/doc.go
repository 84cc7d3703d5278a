// Package classify holds the pure classification rules applied to parsed
// archive data: tournament/special-episode detection from show titles,
// show number and season extraction, and per-clue derivation of daily
// double, triple stumper, final-round, and identifier fields.
//
// Everything here is side-effect-free and independent of the HTTP layer,
// so edge cases are testable against literal fixtures.
package classify
