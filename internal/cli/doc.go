// Package cli implements the command-line interface for trivia-archive.
//
// The cli package provides the Cobra-based CLI with subcommands to fetch a
// single game, fetch a listing page, run a batch import into the local
// database, and list stored games, with text and JSON output formats. It
// coordinates the scraper, importer, storage, and config packages.
package cli
