// Package jsonstream looks up scalar values in a JSON document by walking its token stream,
// so the document itself never has to be decoded into Go values or re-serialized.
package jsonstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Angler struct {
	dec         *json.Decoder
	keys        []string
	currentPath strings.Builder
}

var (
	ErrInvalidJSON = errors.New("document is not valid JSON")
	ErrKeyNotFound = errors.New("key not found")
	ErrNotObject   = errors.New("value is not a JSON object")
	ErrNotScalar   = errors.New("value is not a JSON scalar")
	ErrNotString   = errors.New("value is not a JSON string")
)

func IsObjectStart(t json.Token) bool {
	if d, ok := t.(json.Delim); ok && d == '{' {
		return true
	}

	return false
}

func IsStartingDelim(t json.Token) bool {
	if d, ok := t.(json.Delim); ok && (d == '{' || d == '[') {
		return true
	}

	return false
}

func IsEndingDelim(t json.Token) bool {
	if d, ok := t.(json.Delim); ok && (d == '}' || d == ']') {
		return true
	}

	return false
}

func IsTargetKey(t json.Token, key string) bool {
	if s, ok := t.(string); ok && s == key {
		return true
	}

	return false
}

// NewAngler prepares a lookup of path in stream. A path is a sequence of object keys, each
// preceded by ".", e.g. ".Credentials.Expiration".
func NewAngler(stream io.Reader, path string) (*Angler, error) {
	if !strings.HasPrefix(path, ".") {
		return nil, errors.New(`path must start with the dot character "."`)
	}

	if strings.HasSuffix(path, ".") {
		return nil, errors.New(`path must not end with the dot character "."`)
	}

	keys := strings.Split(path, ".")[1:]

	dec := json.NewDecoder(stream)
	dec.UseNumber()

	return &Angler{dec: dec, keys: keys}, nil
}

// Land returns the scalar at the angler's path.
// Non-nil returned error wraps [ErrKeyNotFound], [ErrNotObject] or [ErrNotScalar] when the document is
// well-formed but doesn't hold a scalar at the path. Syntax errors are returned as they come from the decoder.
func (a *Angler) Land(ctx context.Context) (value any, err error) {
	a.currentPath.WriteString(".")

	for _, key := range a.keys {
		if err = a.toTargetKey(ctx, key); err != nil {
			return nil, err
		}
	}

	return a.getValue()
}

func (a *Angler) toTargetKey(ctx context.Context, key string) (err error) {
	var t json.Token

	// consume the starting '{' token
	if t, err = a.dec.Token(); err != nil {
		return
	} else if !IsObjectStart(t) {
		return fmt.Errorf("%w: at path %q", ErrNotObject, a.currentPath.String())
	}

	if key == "" || strings.Contains(key, " ") {
		a.currentPath.WriteString(`"` + key + `"`)
	} else {
		a.currentPath.WriteString(key)
	}

	done := ctx.Done()

	// the last token; it always starts with '{'
	last := t
	// level of the current token; start with -1 as there's no "current" token in the beginning
	level := -1
	// the count of level-zero tokens so far
	count := 0

	for level > 0 || a.dec.More() {
		select {
		case <-done:
			return fmt.Errorf("failed to find target key %q in time: %w", a.currentPath.String(), context.Cause(ctx))
		default:
		}

		if t, err = a.dec.Token(); err != nil {
			return
		}

		if IsStartingDelim(last) {
			level += 1
		}

		if IsEndingDelim(last) {
			level -= 1
		}

		if level == 0 {
			count += 1
		}

		if level == 0 && (count%2 == 1) && IsTargetKey(t, key) {
			return nil
		}

		last = t
	}

	return fmt.Errorf("%w: %q", ErrKeyNotFound, a.currentPath.String())
}

func (a *Angler) getValue() (t json.Token, err error) {
	t, err = a.dec.Token()
	if err != nil {
		return nil, err
	}

	if d, ok := t.(json.Delim); ok {
		return nil, fmt.Errorf("%w: the value at path %q is the delimiter %v", ErrNotScalar, a.currentPath.String(), d)
	}

	return t, nil
}

// StringAt returns the string at path in the JSON document doc.
// It fails with [ErrInvalidJSON] unless doc as a whole is valid JSON.
// A JSON null at path is reported as [ErrKeyNotFound].
func StringAt(ctx context.Context, doc []byte, path string) (string, error) {
	if !json.Valid(doc) {
		return "", ErrInvalidJSON
	}

	angler, err := NewAngler(bytes.NewReader(doc), path)
	if err != nil {
		return "", err
	}

	value, err := angler.Land(ctx)
	if err != nil {
		return "", err
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", fmt.Errorf("%w: %q is null", ErrKeyNotFound, path)
	default:
		return "", fmt.Errorf("%w: %q holds %v", ErrNotString, path, v)
	}
}
