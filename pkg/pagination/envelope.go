package pagination

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformedEnvelope is returned when a page body lacks the envelope keys.
var ErrMalformedEnvelope = errors.New("pagination: malformed envelope")

// Envelope is one page of a collection as returned by the server.
type Envelope struct {
	Count    int
	Next     string
	Previous string
	Results  []gjson.Result
}

// ParseEnvelope parses a page body. Both "count" and "results" must be
// present; "next" and "previous" may be null.
func ParseEnvelope(body []byte) (*Envelope, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedEnvelope)
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedEnvelope)
	}

	count, err := parseCount(root)
	if err != nil {
		return nil, err
	}

	results := root.Get("results")
	if !results.IsArray() {
		return nil, fmt.Errorf("%w: results missing or not an array", ErrMalformedEnvelope)
	}

	return &Envelope{
		Count:    count,
		Next:     root.Get("next").String(),
		Previous: root.Get("previous").String(),
		Results:  results.Array(),
	}, nil
}

// ParseCount reads only the "count" key of a page body.
func ParseCount(body []byte) (int, error) {
	if !gjson.ValidBytes(body) {
		return 0, fmt.Errorf("%w: invalid JSON", ErrMalformedEnvelope)
	}
	return parseCount(gjson.ParseBytes(body))
}

func parseCount(root gjson.Result) (int, error) {
	count := root.Get("count")
	if count.Type != gjson.Number {
		return 0, fmt.Errorf("%w: count missing or not a number", ErrMalformedEnvelope)
	}
	if count.Int() < 0 {
		return 0, fmt.Errorf("%w: negative count %d", ErrMalformedEnvelope, count.Int())
	}
	return int(count.Int()), nil
}
