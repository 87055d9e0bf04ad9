package jsonx

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseStrictJSONBody(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		in      string
		wantErr error // nil means any error
		ok      bool
	}{
		{"ok", `{"name":"x"}`, nil, true},
		{"empty", "  \n", ErrEmptyBody, false},
		{"trailing", `{"name":"x"} {}`, ErrTrailingJSON, false},
		{"unknown field", `{"name":"x","extra":1}`, nil, false},
		{"type mismatch", `{"name":1}`, nil, false},
		{"truncated", `{"name":`, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.in))
			var dst body
			err := ParseStrictJSONBody(req, &dst)
			if tt.ok {
				if err != nil || dst.Name != "x" {
					t.Fatalf("got %+v, %v", dst, err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}
