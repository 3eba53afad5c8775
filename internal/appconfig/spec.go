package appconfig

import (
	"time"
)

type Config struct {
	// ServiceAddress is the listen address the HTTP server would listen on.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9030"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for
	// debugging and provide a more contextual message when encountered a panic. See
	// internal/server/httpserver/http.go for the actual implementation details.
	DevMode bool `split_words:"true"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for
	// the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// TrustedProxies is a list of proxies that are trusted to report a real IP via the
	// X-Forwarded-For header.
	TrustedProxies []string `split_words:"true" default:"::1,127.0.0.1"`

	// DataURL is the URL of a remote draw history snapshot (the lottery-data.json produced by
	// the update pipeline). When set, refreshes fetch from it; otherwise DataFilePath is read.
	DataURL string `split_words:"true"`

	// UpdateInfoURL is the URL of the remote update-info.json sidecar. Optional even when
	// DataURL is set; a missing sidecar is synthesized from the loaded data.
	UpdateInfoURL string `split_words:"true"`

	// DataFilePath is the path of the local draw history snapshot.
	DataFilePath string `split_words:"true" default:"data/lottery-data.json"`

	// UpdateInfoPath is the path of the local update-info.json sidecar.
	UpdateInfoPath string `split_words:"true" default:"data/update-info.json"`

	// FetchTimeout is the timeout budget for a single remote snapshot fetch, retries included.
	FetchTimeout time.Duration `split_words:"true" default:"30s"`

	// RefreshInterval describes the interval in-between dataset refreshes.
	RefreshInterval time.Duration `split_words:"true" default:"1h"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `split_words:"true" default:"60s"`
}
