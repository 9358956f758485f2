// Package scrape implements an AWS CLI credential process that replays pasted credentials.
// Credentials are cached on disk per profile, byte for byte as they were pasted, and reused until
// the "Expiration" timestamp inside them has passed. On a cache miss the operator is asked to paste
// fresh credentials on standard input.
package scrape
