package manifest

import (
	"errors"
	"testing"
)

func TestCheckRanges(t *testing.T) {
	t.Run("catalog_ranges_are_valid", func(t *testing.T) {
		p := New(Options{Name: "demo", Entry: "src/app.js", IncludeAuth: true})
		if err := CheckRanges(p); err != nil {
			t.Errorf("CheckRanges error: %v", err)
		}
	})

	t.Run("reports_every_bad_range", func(t *testing.T) {
		p := &PackageJSON{
			Dependencies:    map[string]string{"express": "latest-ish", "mongoose": "^7.6.0"},
			DevDependencies: map[string]string{"nodemon": "banana"},
		}
		err := CheckRanges(p)
		if !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("CheckRanges error = %v, want ErrInvalidRange", err)
		}
		var joined interface{ Unwrap() []error }
		if !errors.As(err, &joined) || len(joined.Unwrap()) != 2 {
			t.Errorf("expected two joined errors, got %v", err)
		}
	})
}
