package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	CursorParam = "cursor"
	LimitParam  = "limit"
)

var (
	validate  = validator.New()
	limitRule = fmt.Sprintf("min=1,max=%d", MaxLimit)
)

// Params is the raw, unvalidated pagination input. A nil field means the
// parameter was absent from the request.
type Params struct {
	Cursor *string
	Limit  *string
}

// ParamsFromQuery reads cursor and limit from a query string, keeping the
// difference between an absent and an empty parameter.
func ParamsFromQuery(q url.Values) Params {
	var p Params
	if q.Has(CursorParam) {
		c := q.Get(CursorParam)
		p.Cursor = &c
	}
	if q.Has(LimitParam) {
		l := q.Get(LimitParam)
		p.Limit = &l
	}
	return p
}

// Page is a validated pagination request.
type Page[K Key] struct {
	Cursor *Cursor[K]
	Limit  int
	// Token is the cursor exactly as the client sent it, echoed in the
	// self link.
	Token string
}

// Validate checks raw parameters and decodes the cursor. It runs before
// any datastore access.
func Validate[K Key](p Params, codec *Codec[K]) (Page[K], error) {
	page := Page[K]{Limit: DefaultLimit}

	if p.Limit != nil {
		limit, err := parseLimit(*p.Limit)
		if err != nil {
			return Page[K]{}, err
		}
		page.Limit = limit
	}

	if p.Cursor != nil {
		if *p.Cursor == "" {
			return Page[K]{}, &ValidationError{
				Code:    EmptyCursor,
				Param:   CursorParam,
				Message: "cursor must not be empty",
			}
		}
		cursor, err := codec.Decode(*p.Cursor)
		if err != nil {
			return Page[K]{}, &ValidationError{
				Code:    InvalidCursor,
				Param:   CursorParam,
				Message: "cursor is not valid",
				Err:     err,
			}
		}
		page.Cursor = &cursor
		page.Token = *p.Cursor
	}

	return page, nil
}

func parseLimit(raw string) (int, error) {
	limit, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return 0, limitTooLarge(err)
		}
		return 0, invalidLimit(err)
	}

	if err := validate.Var(limit, limitRule); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Tag() == "max" {
			return 0, limitTooLarge(err)
		}
		return 0, invalidLimit(err)
	}
	return limit, nil
}

func invalidLimit(err error) *ValidationError {
	return &ValidationError{
		Code:    InvalidLimit,
		Param:   LimitParam,
		Message: "limit must be a positive integer",
		Err:     err,
	}
}

func limitTooLarge(err error) *ValidationError {
	return &ValidationError{
		Code:    LimitTooLarge,
		Param:   LimitParam,
		Message: fmt.Sprintf("limit exceeds maximum of %d", MaxLimit),
		Err:     err,
	}
}
