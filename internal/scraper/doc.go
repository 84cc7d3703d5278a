// Package scraper provides HTTP fetching and HTML parsing for archived
// quiz-show pages.
//
// Two stateless operations make up the package: FetchShowList retrieves
// one page of the show listing and extracts lightweight entries for every
// discoverable show link, and FetchGame retrieves a show's detail page
// and parses it into the full typed game structure. The source markup
// varies across eras, so extraction uses resilient selector lookups with
// explicit fallbacks; only a missing show number is fatal to a parse.
// Expected failures never propagate as errors: FetchGame returns nil and
// FetchShowList returns an empty slice.
package scraper
