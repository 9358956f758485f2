package scrape

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/kxue43/aws-scrape-creds/jsonstream"
)

type (
	cacher struct {
		logger   Logger
		now      func() time.Time
		filePath string
	}

	// cacheStatus is the outcome of looking up a cache file. Everything but statusHit is a miss.
	cacheStatus int
)

const (
	statusHit cacheStatus = iota
	statusAbsent
	statusUnreadable
	statusMalformed
	statusNoExpiration
	statusBadExpiration
	statusExpired
)

const (
	cacheDirName    = ".aws"
	cacheFilePrefix = "gccache"
	expirationPath  = ".Expiration"
)

var (
	ErrCacheSave = errors.New("failed to save cache file")

	// Tried in order. Layouts without a zone designator are read as UTC.
	expirationLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02",
	}
)

// CachePath returns the cache file for profile under the home directory.
// The profile name is appended to the file name prefix verbatim.
func CachePath(home, profile string) string {
	return filepath.Join(home, cacheDirName, cacheFilePrefix+profile)
}

func parseExpiration(s string) (ts time.Time, err error) {
	for _, layout := range expirationLayouts {
		if ts, err = time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, nil
		}
	}

	return ts, fmt.Errorf("%q is not an ISO-8601 timestamp", s)
}

func newCacher(logger Logger, filePath string) *cacher {
	return &cacher{logger: logger, now: time.Now, filePath: filePath}
}

// lookup returns the cache file contents if and only if the status is statusHit.
// Every miss is logged; none of them is an error to the caller.
func (c *cacher) lookup(ctx context.Context) (contents []byte, status cacheStatus) {
	contents, err := os.ReadFile(c.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		c.logger.Infof("credentials don't exist yet at %q", c.filePath)

		return nil, statusAbsent
	} else if err != nil {
		c.logger.Errorf("failed to read cache file %q: %s", c.filePath, err)

		return nil, statusUnreadable
	}

	raw, err := jsonstream.StringAt(ctx, contents, expirationPath)

	switch {
	case errors.Is(err, jsonstream.ErrInvalidJSON), errors.Is(err, jsonstream.ErrNotObject):
		c.logger.Infof("cache file %q doesn't hold a JSON object", c.filePath)

		return nil, statusMalformed
	case errors.Is(err, jsonstream.ErrKeyNotFound):
		c.logger.Infof("couldn't read expiration from cache file %q", c.filePath)

		return nil, statusNoExpiration
	case err != nil:
		c.logger.Errorf("invalid expiration in cache file %q: %s", c.filePath, err)

		return nil, statusBadExpiration
	case raw == "":
		c.logger.Infof("couldn't read expiration from cache file %q", c.filePath)

		return nil, statusNoExpiration
	}

	expiration, err := parseExpiration(raw)
	if err != nil {
		c.logger.Errorf("invalid expiration in cache file %q: %s", c.filePath, err)

		return nil, statusBadExpiration
	}

	if !expiration.After(c.now()) {
		c.logger.Infof("credentials expired at %s", expiration.UTC().Format(time.RFC3339))

		return nil, statusExpired
	}

	return contents, statusHit
}

// Non-nil returned error wraps [ErrCacheSave].
func (c *cacher) save(contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0700); err != nil {
		return fmt.Errorf("%w: failed to create cache directory: %s", ErrCacheSave, err.Error())
	}

	if err := os.WriteFile(c.filePath, contents, 0600); err != nil {
		return fmt.Errorf("%w: failed to write to disk: %s", ErrCacheSave, err.Error())
	}

	return nil
}
