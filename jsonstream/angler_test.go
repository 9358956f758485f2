package jsonstream

import (
	"context"
	"encoding/json"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Zip(first []string, second []any) iter.Seq2[string, any] {
	n := min(len(first), len(second))

	return func(yield func(string, any) bool) {
		for i := range n {
			if !yield(first[i], second[i]) {
				return
			}
		}
	}
}

func TestLand(t *testing.T) {
	var tests = []struct {
		contents string
		paths    []string
		expected []any
	}{
		{
			contents: `
			{
				"Version": 1,
				"AccessKeyId": "access-key-id",
				"Regions": ["us-east-1", "eu-west-1"],
				"SessionToken": null,
				"Source": {
					"Profile": "dev"
				},
				"Expiration": "2999-01-01T00:00:00+00:00"
			}
			`,
			paths: []string{
				".Source.Profile",
				".Expiration",
				".Version",
			},
			expected: []any{
				"dev",
				"2999-01-01T00:00:00+00:00",
				json.Number("1"),
			},
		},
		{
			contents: `
			{
				"a": 1,
				"b": {
					"u": "y",
					"v": 2
				},
				"c": null,
				"d": {
					"e f": {
						"g": "z",
						"h": "w"
					},
					"": {
						"s": "here"
					}
				},
				"f": "x"
			}
			`,
			paths: []string{
				".d.e f.g",
				".d.e f.h",
				".b.v",
				".d..s",
			},
			expected: []any{
				"z",
				"w",
				json.Number("2"),
				"here",
			},
		},
		{
			contents: `
			{
				"Expiration": "decoy",
				"Expiration2": "x",
				"Nested": [{"Expiration": "inner"}],
				"Credentials": {
					"Expiration": "f",
					"Version": "y"
				},
				"g": "z"
			}
			`,
			paths: []string{
				".Expiration2",
				".Credentials.Version",
				".g",
			},
			expected: []any{
				"x",
				"y",
				"z",
			},
		},
	}

	for _, test := range tests {
		for path, expected := range Zip(test.paths, test.expected) {
			angler, err := NewAngler(strings.NewReader(test.contents), path)
			require.NoError(t, err, "path %q should be accepted", path)

			value, err := angler.Land(context.Background())
			require.NoError(t, err, "should be able to land on %q", path)

			assert.Equal(t, expected, value, "value at %q should match", path)
		}
	}
}

func TestNewAnglerRejectsBadPaths(t *testing.T) {
	for _, path := range []string{"Expiration", ".Expiration.", ""} {
		_, err := NewAngler(strings.NewReader(`{}`), path)
		assert.Error(t, err, "path %q should be rejected", path)
	}
}

func TestLandCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	angler, err := NewAngler(strings.NewReader(`{"a": 1, "b": 2}`), ".b")
	require.NoError(t, err)

	_, err = angler.Land(ctx)
	assert.ErrorIs(t, err, context.Canceled, "a cancelled context should stop the search")
}

func TestStringAt(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path", func(t *testing.T) {
		value, err := StringAt(ctx, []byte(`{"AccessKeyId":"a","Expiration":"2999-01-01T00:00:00Z"}`), ".Expiration")
		require.NoError(t, err)

		assert.Equal(t, "2999-01-01T00:00:00Z", value)
	})

	var failures = []struct {
		name     string
		doc      string
		expected error
	}{
		{name: "Not JSON", doc: `not json`, expected: ErrInvalidJSON},
		{name: "Trailing garbage after target", doc: `{"Expiration":"2999-01-01T00:00:00Z"} trailing`, expected: ErrInvalidJSON},
		{name: "Truncated", doc: `{"Expiration":"2999-01-01T00:00:00Z",`, expected: ErrInvalidJSON},
		{name: "Empty", doc: ``, expected: ErrInvalidJSON},
		{name: "Missing key", doc: `{"AccessKeyId":"a"}`, expected: ErrKeyNotFound},
		{name: "Key only nested", doc: `{"Credentials":{"Expiration":"2999-01-01T00:00:00Z"}}`, expected: ErrKeyNotFound},
		{name: "Null value", doc: `{"Expiration":null}`, expected: ErrKeyNotFound},
		{name: "Top-level array", doc: `[{"Expiration":"2999-01-01T00:00:00Z"}]`, expected: ErrNotObject},
		{name: "Number value", doc: `{"Expiration":1700000000}`, expected: ErrNotString},
		{name: "Boolean value", doc: `{"Expiration":true}`, expected: ErrNotString},
		{name: "Object value", doc: `{"Expiration":{"at":"now"}}`, expected: ErrNotScalar},
	}

	for _, test := range failures {
		t.Run(test.name, func(t *testing.T) {
			_, err := StringAt(ctx, []byte(test.doc), ".Expiration")
			assert.ErrorIs(t, err, test.expected)
		})
	}
}
