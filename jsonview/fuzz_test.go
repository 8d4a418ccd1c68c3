package jsonview

import (
	"errors"
	"testing"
)

func FuzzRenderHTML(f *testing.F) {
	seeds := []string{
		``,
		`[]`,
		`{}`,
		`[{"a":"44581","b":"/x/media_1.png","c":"/x","d":"[1,2]","e":"0","f":"t"}]`,
		`{"data":[{"Path":"/a"}]}`,
		`{":names":["s"],"s":{"data":[{"k":1}]}}`,
		`{"a":[{"x":null}],"b":{"data":[{"y":[{"z":1}]}]}}`,
		`[{"a":1},["bad"]]`,
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	r, err := New(Config{Sanitize: true})
	if err != nil {
		f.Fatalf("failed to create renderer: %v", err)
	}

	f.Fuzz(func(t *testing.T, payload string) {
		_, err := r.RenderHTML([]byte(payload))
		if err != nil && !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("unexpected error class: %v", err)
		}
	})
}

func FuzzDetect(f *testing.F) {
	for _, seed := range []string{"", "0", "44581", "1642643210", "/a/media_b", "//x", "[1]", "[", "1e999"} {
		f.Add(seed)
	}

	d, err := NewDetector(Config{})
	if err != nil {
		f.Fatalf("failed to create detector: %v", err)
	}

	f.Fuzz(func(t *testing.T, s string) {
		desc := d.Detect(String(s))
		if desc.Kind == "" {
			t.Fatalf("empty kind for %q", s)
		}
		if desc.Kind == KindText && desc.Text != s {
			t.Fatalf("text cell changed value: %q -> %q", s, desc.Text)
		}
	})
}
