package config

import "time"

// Fetch Constants
const (
	// FetchTimeout is the per-request HTTP timeout
	FetchTimeout = 30 * time.Second

	// MaxFetchAttempts bounds automatic retries on transient HTTP errors
	MaxFetchAttempts = 3

	// RetryBaseDelay is the initial backoff delay, doubled per attempt
	RetryBaseDelay = 1 * time.Second

	// UserAgent identifies the aggregator to origin servers
	UserAgent = "WaveFeeds Bot/1.0 (+https://4thwave.ai)"
)

// Pipeline Constants
const (
	// DefaultLinkLimit caps candidate links taken from one source index
	DefaultLinkLimit = 20

	// DefaultMaxItems caps items per emitted feed when the config is silent
	DefaultMaxItems = 50

	// DescriptionLimit is the maximum description length in runes
	DescriptionLimit = 800
)

// Output Constants
const (
	// FeedDir is the subdirectory feed files are written into
	FeedDir = "feeds"

	// HomepageFile is the regenerated feed listing page
	HomepageFile = "index.html"
)

// DefaultTechLeaders are the topic slugs collected into the
// tech-leaders spotlight feed when the config does not override them.
var DefaultTechLeaders = []string{
	"boston-dynamics",
	"deepmind",
	"nvidia",
	"openai",
	"tesla",
}
