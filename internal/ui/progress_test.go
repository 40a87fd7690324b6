package ui

import (
	"bytes"
	"testing"
)

func TestHeadlessProgressBar(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	pb := newHeadlessProgressBar("src/app.js", 3, &buf)
	pb.Increment(1)
	pb.SetTitle("src/config/db.js")
	pb.Increment(1)
	pb.Done()
	pb.Done()

	want := "[1/3] src/app.js\n[2/3] src/config/db.js\n[3/3] src/config/db.js\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHeadlessProgressBarDoneAfterLastIncrement(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	pb := newHeadlessProgressBar("README.md", 1, &buf)
	pb.Increment(5)
	pb.Done()

	if got := buf.String(); got != "[1/1] README.md\n" {
		t.Errorf("output = %q", got)
	}
}

func TestProgressStartHeadless(t *testing.T) {
	t.Parallel()

	hm := NewHeadlessManager()
	hm.ForceHeadless(true)

	var buf bytes.Buffer
	pb := NewProgress(testTheme(), hm, &buf).Start("Writing", 2)
	if _, ok := pb.(*headlessProgressBar); !ok {
		t.Fatalf("Start() = %T, want *headlessProgressBar", pb)
	}
	pb.Increment(2)
	pb.Done()
	if buf.String() != "[2/2] Writing\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestProgressStartNoColorIsHeadless(t *testing.T) {
	t.Parallel()

	hm := NewHeadlessManager()
	hm.ForceHeadless(false)

	var buf bytes.Buffer
	pb := NewProgress(NewTheme(ThemeConfig{NoColor: true}), hm, &buf).Start("Writing", 1)
	if _, ok := pb.(*headlessProgressBar); !ok {
		t.Fatalf("Start() = %T, want *headlessProgressBar", pb)
	}
	pb.Done()
}

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct{ v, limit, want int }{
		{3, 5, 3},
		{7, 5, 5},
		{-1, 5, 0},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.limit); got != tt.want {
			t.Errorf("clamp(%d, %d) = %d, want %d", tt.v, tt.limit, got, tt.want)
		}
	}
}
