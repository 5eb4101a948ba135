package inspect

import "errors"

// ErrClosed is returned by Inspect after Close.
var ErrClosed = errors.New("inspector closed")

// Option configures the Inspector at creation time.
type Option func(*config)

type config struct {
	diskCache        bool
	cacheDir         string
	memoryLimitPages uint32 // 0 = wazero default (65536 pages = 4GB)
}

func defaultConfig() config {
	return config{}
}

// WithDiskCache enables a persistent compilation cache.
// Optionally provide a custom directory; otherwise uses DefaultCacheDir.
//
// Examples:
//
//	inspect.New(inspect.WithDiskCache())            // default dir
//	inspect.New(inspect.WithDiskCache("/tmp/cache")) // custom dir
func WithDiskCache(dir ...string) Option {
	return func(c *config) {
		c.diskCache = true
		if len(dir) > 0 && dir[0] != "" {
			c.cacheDir = dir[0]
		}
	}
}

// WithMemoryLimit caps the memory a compiled module may declare, in 64KB pages.
func WithMemoryLimit(pages uint32) Option {
	return func(c *config) {
		c.memoryLimitPages = pages
	}
}
