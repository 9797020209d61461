package utils

import _ "embed"

// DefaultFeed is the feed replayed when no feed file is configured
//
//go:embed walkthrough.feed
var DefaultFeed string
