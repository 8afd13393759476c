// Package entity defines the domain models for the news feature.
package entity

import "github.com/mmcdole/gofeed"

// Feed is a parsed RSS, Atom or JSON feed, served as gofeed renders it.
type Feed = gofeed.Feed

// MaxLinks caps the number of feeds one request may ask for.
const MaxLinks = 20
