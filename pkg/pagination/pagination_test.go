package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContext(t *testing.T) {
	cases := []struct {
		query      string
		limit, off int
	}{
		{"", DefaultLimit, 0},
		{"limit=25", 25, 0},
		{"limit=0", DefaultLimit, 0},
		{"limit=9999", MaxLimit, 0},
		{"limit=10&offset=30", 10, 30},
		{"limit=10&page=3", 10, 20},
		{"offset=-5", DefaultLimit, 0},
		{"limit=abc", DefaultLimit, 0},
	}
	for _, tc := range cases {
		got := paramsFor(t, tc.query)
		if got.Limit != tc.limit || got.Offset != tc.off {
			t.Errorf("%q: got %+v, want limit=%d offset=%d", tc.query, got, tc.limit, tc.off)
		}
	}
}

func TestResponseHasMore(t *testing.T) {
	if r := NewResponse(nil, 30, 10, 0); !r.HasMore {
		t.Error("HasMore = false at offset 0 of 30")
	}
	if r := NewResponse(nil, 30, 10, 20); r.HasMore {
		t.Error("HasMore = true at final page")
	}
}
