package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
)

type (
	Logger interface {
		Infof(string, ...any)
		Errorf(string, ...any)
	}

	Console interface {
		Logger
		Prompt(string) error
	}

	ScrapeCmd struct {
		console Console
		cacher  *cacher
		Profile string
	}
)

const pastePrompt = "please paste your credentials"

var (
	ErrInvalidInput = errors.New("invalid CLI input")
	ErrInputRead    = errors.New("failed to read pasted credentials")
	ErrOutputWrite  = errors.New("failed to write credentials to destination")
)

// Non-nil returned error wraps [ErrInvalidInput].
func (a *ScrapeCmd) ValidateInputs() error {
	if a.Profile == "" {
		return fmt.Errorf("%w: --profile is required", ErrInvalidInput)
	}

	return nil
}

// Init points the command at the cache file of its profile under home.
// Non-nil returned error wraps [ErrInvalidInput].
func (a *ScrapeCmd) Init(console Console, home string) error {
	if home == "" {
		return fmt.Errorf("%w: home directory is empty", ErrInvalidInput)
	}

	a.console = console

	a.cacher = newCacher(console, CachePath(home, a.Profile))

	return nil
}

// Resolve returns cached credentials of the profile if they are still valid.
// Otherwise it prompts for new credentials, reads src to EOF and caches what was read.
// Non-nil returned error wraps [ErrInputRead] or [ErrCacheSave].
func (a *ScrapeCmd) Resolve(ctx context.Context, src io.Reader) (contents []byte, err error) {
	contents, status := a.cacher.lookup(ctx)
	if status == statusHit {
		return contents, nil
	}

	if contents, err = a.paste(src); err != nil {
		return nil, err
	}

	if err = a.cacher.save(contents); err != nil {
		return nil, err
	}

	return contents, nil
}

// Non-nil returned error means failure.
func (a *ScrapeCmd) Run(ctx context.Context, src io.Reader, dest io.Writer) error {
	// Output of the AWS CLI credential process.
	output, err := a.Resolve(ctx, src)
	if err != nil {
		return err
	}

	if _, err = dest.Write(output); err != nil {
		return fmt.Errorf("%w: %s", ErrOutputWrite, err.Error())
	}

	return nil
}

// Non-nil returned error wraps [ErrInputRead].
func (a *ScrapeCmd) paste(src io.Reader) ([]byte, error) {
	if err := a.console.Prompt(pastePrompt); err != nil {
		return nil, fmt.Errorf("%w: failed to prompt: %s", ErrInputRead, err.Error())
	}

	contents, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputRead, err.Error())
	}

	if len(contents) == 0 {
		return nil, fmt.Errorf("%w: standard input is empty", ErrInputRead)
	}

	return contents, nil
}
