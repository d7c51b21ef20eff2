package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

var tokenEncoding = base64.RawURLEncoding

// Cursor is a decoded pagination position.
type Cursor[K Key] struct {
	Direction Direction
	Key       K
}

// NewCursor creates a cursor anchored on key.
func NewCursor[K Key](d Direction, key K) *Cursor[K] {
	return &Cursor[K]{Direction: d, Key: key}
}

// wire form; named members keep older tokens decodable when optional
// members are added
type cursorPayload[K Key] struct {
	Direction Direction `json:"d"`
	Key       K         `json:"k"`
}

// Codec turns cursors into URL-safe tokens and back.
// The JSON member names of K must match the Names in the schema.
// Tokens are opaque but not signed, so decoded keys are untrusted input.
type Codec[K Key] struct {
	schema KeySchema
}

func NewCodec[K Key](schema KeySchema) *Codec[K] {
	return &Codec[K]{schema: schema}
}

func (c *Codec[K]) Schema() KeySchema {
	return c.schema
}

func (c *Codec[K]) Encode(cursor Cursor[K]) (string, error) {
	b, err := json.Marshal(cursorPayload[K]{Direction: cursor.Direction, Key: cursor.Key})
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return tokenEncoding.EncodeToString(b), nil
}

// MustEncode is like Encode but panics on error.
func (c *Codec[K]) MustEncode(cursor Cursor[K]) string {
	token, err := c.Encode(cursor)
	if err != nil {
		panic(err)
	}
	return token
}

func (c *Codec[K]) Decode(token string) (Cursor[K], error) {
	var cursor Cursor[K]

	b, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return cursor, &DecodeError{Kind: Malformed, Err: err}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return cursor, &DecodeError{Kind: Malformed, Err: err}
		}
		return cursor, &DecodeError{Kind: InvalidShape, Err: err}
	}

	rawDir, ok := top["d"]
	if !ok || isNull(rawDir) {
		return cursor, &DecodeError{Kind: InvalidShape, Err: errors.New("missing direction")}
	}
	var dir string
	if err := json.Unmarshal(rawDir, &dir); err != nil {
		return cursor, &DecodeError{Kind: InvalidShape, Err: err}
	}
	if err := cursor.Direction.UnmarshalText([]byte(dir)); err != nil {
		return cursor, err
	}

	rawKey, ok := top["k"]
	if !ok || isNull(rawKey) {
		return cursor, &DecodeError{Kind: InvalidShape, Err: errors.New("missing key")}
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(rawKey, &members); err != nil {
		return cursor, &DecodeError{Kind: InvalidShape, Err: err}
	}
	for _, f := range c.schema {
		v, ok := members[f.Name]
		if !ok || isNull(v) {
			return cursor, &DecodeError{Kind: InvalidShape, Err: fmt.Errorf("missing key field %q", f.Name)}
		}
	}
	if err := json.Unmarshal(rawKey, &cursor.Key); err != nil {
		return cursor, &DecodeError{Kind: InvalidShape, Err: err}
	}

	return cursor, nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
