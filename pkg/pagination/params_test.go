package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Limit(t *testing.T) {
	codec := NewCodec[eventKey](eventSchema)

	tests := []struct {
		name      string
		limit     *string
		wantLimit int
		wantCode  ValidationCode
	}{
		{name: "absent uses default", limit: nil, wantLimit: DefaultLimit},
		{name: "minimum", limit: strPtr("1"), wantLimit: 1},
		{name: "maximum", limit: strPtr("100"), wantLimit: 100},
		{name: "typical", limit: strPtr("10"), wantLimit: 10},
		{name: "zero", limit: strPtr("0"), wantCode: InvalidLimit},
		{name: "negative", limit: strPtr("-5"), wantCode: InvalidLimit},
		{name: "non numeric", limit: strPtr("ten"), wantCode: InvalidLimit},
		{name: "empty", limit: strPtr(""), wantCode: InvalidLimit},
		{name: "fraction", limit: strPtr("1.5"), wantCode: InvalidLimit},
		{name: "just above maximum", limit: strPtr("101"), wantCode: LimitTooLarge},
		{name: "far above maximum", limit: strPtr("500"), wantCode: LimitTooLarge},
		{name: "overflow", limit: strPtr("99999999999999999999999"), wantCode: LimitTooLarge},
		{name: "negative overflow", limit: strPtr("-99999999999999999999999"), wantCode: InvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Validate(Params{Limit: tt.limit}, codec)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantLimit, page.Limit)
				assert.Nil(t, page.Cursor)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantCode, ve.Code)
			assert.Equal(t, LimitParam, ve.Param)
			assert.ErrorIs(t, err, tt.wantCode.sentinel())
		})
	}
}

func TestValidate_LimitTooLargeMessage(t *testing.T) {
	_, err := Validate(Params{Limit: strPtr("500")}, NewCodec[eventKey](eventSchema))
	require.Error(t, err)
	assert.Equal(t, "limit exceeds maximum of 100", err.Error())
}

func TestValidate_Cursor(t *testing.T) {
	codec := NewCodec[eventKey](eventSchema)
	valid := codec.MustEncode(Cursor[eventKey]{Direction: Prev, Key: eventKey{CreatedAt: baseTime, ID: 4}})

	t.Run("absent", func(t *testing.T) {
		page, err := Validate(Params{}, codec)
		require.NoError(t, err)
		assert.Nil(t, page.Cursor)
		assert.Empty(t, page.Token)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Validate(Params{Cursor: strPtr("")}, codec)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, EmptyCursor, ve.Code)
		assert.Equal(t, CursorParam, ve.Param)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Validate(Params{Cursor: strPtr("not-valid-base64!")}, codec)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, InvalidCursor, ve.Code)
		assert.ErrorIs(t, err, ErrInvalidCursor)
		assert.ErrorIs(t, err, ErrMalformed)
		assert.Equal(t, "cursor is not valid", ve.Error())
	})

	t.Run("valid", func(t *testing.T) {
		page, err := Validate(Params{Cursor: &valid, Limit: strPtr("7")}, codec)
		require.NoError(t, err)
		require.NotNil(t, page.Cursor)
		assert.Equal(t, Prev, page.Cursor.Direction)
		assert.Equal(t, int64(4), page.Cursor.Key.ID)
		assert.Equal(t, valid, page.Token)
		assert.Equal(t, 7, page.Limit)
	})

	t.Run("limit checked before cursor", func(t *testing.T) {
		_, err := Validate(Params{Cursor: strPtr("%%%"), Limit: strPtr("0")}, codec)
		assert.ErrorIs(t, err, ErrInvalidLimit)
	})
}

func TestParamsFromQuery(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantCursor *string
		wantLimit  *string
	}{
		{name: "none", query: ""},
		{name: "both", query: "cursor=abc&limit=5", wantCursor: strPtr("abc"), wantLimit: strPtr("5")},
		{name: "empty cursor kept", query: "cursor=&limit=", wantCursor: strPtr(""), wantLimit: strPtr("")},
		{name: "other params ignored", query: "q=go&limit=3", wantLimit: strPtr("3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			p := ParamsFromQuery(q)
			assert.Equal(t, tt.wantCursor, p.Cursor)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}
