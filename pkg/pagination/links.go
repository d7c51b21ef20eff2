package pagination

import (
	"net/url"
	"strconv"
)

// Links are the hypermedia links of a page. Absent links are omitted
// from JSON rather than rendered as null.
type Links struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

// LinkBuilder renders page URLs. BasePath is the route path without a
// query string; Fixed carries routing parameters repeated on every link.
type LinkBuilder struct {
	BasePath string
	Fixed    url.Values
}

func (b LinkBuilder) URL(token string, limit int) string {
	v := url.Values{}
	for k, vals := range b.Fixed {
		if k == CursorParam || k == LimitParam {
			continue
		}
		v[k] = append([]string(nil), vals...)
	}
	if token != "" {
		v.Set(CursorParam, token)
	}
	v.Set(LimitParam, strconv.Itoa(limit))
	return b.BasePath + "?" + v.Encode()
}

// BuildLinks assembles self, next and prev links. Self echoes the token
// the client sent.
func BuildLinks[K Key](codec *Codec[K], b LinkBuilder, page Page[K], next, prev *Cursor[K]) (Links, error) {
	links := Links{Self: b.URL(page.Token, page.Limit)}

	if next != nil {
		token, err := codec.Encode(*next)
		if err != nil {
			return Links{}, err
		}
		links.Next = b.URL(token, page.Limit)
	}
	if prev != nil {
		token, err := codec.Encode(*prev)
		if err != nil {
			return Links{}, err
		}
		links.Prev = b.URL(token, page.Limit)
	}
	return links, nil
}
