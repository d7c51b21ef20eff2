package pagination

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawToken(payload string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

func TestCodec_Roundtrip(t *testing.T) {
	codec := NewCodec[eventKey](eventSchema)

	tests := []struct {
		name   string
		cursor Cursor[eventKey]
	}{
		{
			name:   "next",
			cursor: Cursor[eventKey]{Direction: Next, Key: eventKey{CreatedAt: baseTime, ID: 10}},
		},
		{
			name:   "prev",
			cursor: Cursor[eventKey]{Direction: Prev, Key: eventKey{CreatedAt: baseTime.Add(time.Nanosecond), ID: 1}},
		},
		{
			name:   "zero values",
			cursor: Cursor[eventKey]{Direction: Next, Key: eventKey{}},
		},
		{
			name:   "negative id",
			cursor: Cursor[eventKey]{Direction: Prev, Key: eventKey{CreatedAt: baseTime, ID: -42}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := codec.Encode(tt.cursor)
			require.NoError(t, err)

			decoded, err := codec.Decode(token)
			require.NoError(t, err)

			assert.Equal(t, tt.cursor.Direction, decoded.Direction)
			assert.Equal(t, tt.cursor.Key.ID, decoded.Key.ID)
			assert.True(t, tt.cursor.Key.CreatedAt.Equal(decoded.Key.CreatedAt))
		})
	}
}

func TestCodec_EncodeIsURLSafe(t *testing.T) {
	codec := NewCodec[eventKey](eventSchema)

	for i := int64(0); i < 50; i++ {
		token := codec.MustEncode(Cursor[eventKey]{Direction: Prev, Key: eventKey{CreatedAt: baseTime.Add(time.Duration(i) * time.Hour), ID: i * 7919}})
		assert.NotContains(t, token, "=")
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
	}
}

func TestCodec_UsesNamedMembers(t *testing.T) {
	codec := NewCodec[eventKey](eventSchema)

	token := codec.MustEncode(Cursor[eventKey]{Direction: Next, Key: eventKey{CreatedAt: baseTime, ID: 3}})
	b, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)

	payload := string(b)
	assert.True(t, strings.HasPrefix(payload, "{"))
	assert.Contains(t, payload, `"d":"next"`)
	assert.Contains(t, payload, `"created_at"`)
	assert.Contains(t, payload, `"id":3`)
}

func TestCodec_EncodeRejectsUnknownDirection(t *testing.T) {
	codec := NewCodec[eventKey](eventSchema)

	_, err := codec.Encode(Cursor[eventKey]{Direction: Direction(7)})
	assert.Error(t, err)
}

func TestCodec_DecodeErrors(t *testing.T) {
	codec := NewCodec[eventKey](eventSchema)

	tests := []struct {
		name  string
		token string
		kind  DecodeErrorKind
	}{
		{name: "not base64", token: "not-valid-base64!", kind: Malformed},
		{name: "padded std base64", token: "e30=", kind: Malformed},
		{name: "not json", token: rawToken("invalid-json"), kind: Malformed},
		{name: "truncated json", token: rawToken(`{"d":"next","k":{`), kind: Malformed},
		{name: "array payload", token: rawToken(`["next",{"created_at":"2024-03-01T12:00:00Z","id":1}]`), kind: InvalidShape},
		{name: "null payload", token: rawToken(`null`), kind: InvalidShape},
		{name: "missing direction", token: rawToken(`{"k":{"created_at":"2024-03-01T12:00:00Z","id":1}}`), kind: InvalidShape},
		{name: "numeric direction", token: rawToken(`{"d":1,"k":{"created_at":"2024-03-01T12:00:00Z","id":1}}`), kind: InvalidShape},
		{name: "missing key", token: rawToken(`{"d":"next"}`), kind: InvalidShape},
		{name: "null key", token: rawToken(`{"d":"next","k":null}`), kind: InvalidShape},
		{name: "positional key", token: rawToken(`{"d":"next","k":["2024-03-01T12:00:00Z",1]}`), kind: InvalidShape},
		{name: "missing key field", token: rawToken(`{"d":"next","k":{"created_at":"2024-03-01T12:00:00Z"}}`), kind: InvalidShape},
		{name: "null key field", token: rawToken(`{"d":"next","k":{"created_at":"2024-03-01T12:00:00Z","id":null}}`), kind: InvalidShape},
		{name: "wrong field type", token: rawToken(`{"d":"next","k":{"created_at":"2024-03-01T12:00:00Z","id":"one"}}`), kind: InvalidShape},
		{name: "unparsable timestamp", token: rawToken(`{"d":"next","k":{"created_at":"yesterday","id":1}}`), kind: InvalidShape},
		{name: "unknown direction", token: rawToken(`{"d":"sideways","k":{"created_at":"2024-03-01T12:00:00Z","id":1}}`), kind: UnknownDirection},
		{name: "upper case direction", token: rawToken(`{"d":"NEXT","k":{"created_at":"2024-03-01T12:00:00Z","id":1}}`), kind: UnknownDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.token)
			require.Error(t, err)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.kind, de.Kind)
			assert.ErrorIs(t, err, tt.kind.sentinel())
		})
	}
}

func TestCodec_DecodeIgnoresUnknownMembers(t *testing.T) {
	codec := NewCodec[eventKey](eventSchema)

	token := rawToken(`{"d":"prev","v":2,"k":{"created_at":"2024-03-01T12:00:00Z","id":9,"score":1.5}}`)
	cursor, err := codec.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, Prev, cursor.Direction)
	assert.Equal(t, int64(9), cursor.Key.ID)
	assert.True(t, baseTime.Equal(cursor.Key.CreatedAt))
}

func TestDecodeError_DoesNotLeakKeyValues(t *testing.T) {
	codec := NewCodec[eventKey](eventSchema)

	_, err := codec.Decode(rawToken(`{"d":"next","k":{"created_at":"secret-2024","id":1}}`))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret")
}
