package main

import (
	"testing"

	"github.com/KibbeWater/repkg/pack"
)

func TestSkipEntry(t *testing.T) {
	t.Parallel()

	entry := func(p string) *pack.Entry {
		return &pack.Entry{Path: p, Kind: pack.KindOf(p)}
	}

	tests := []struct {
		name string
		path string
		opts extractOptions
		want bool
	}{
		{"no filters", "a/b.tex", extractOptions{}, false},
		{"only match", "a/b.tex", extractOptions{only: "tex"}, false},
		{"only mismatch", "scene.json", extractOptions{only: "tex"}, true},
		{"only case-insensitive", "A/B.TEX", extractOptions{only: "tex"}, false},
		{"ignore match", "a/b.tex", extractOptions{ignore: "tex"}, true},
		{"ignore mismatch", "scene.json", extractOptions{ignore: "tex"}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := skipEntry(entry(tt.path), &tt.opts); got != tt.want {
				t.Errorf("skipEntry(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtForMIME(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mime string
		want string
	}{
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"video/mp4", ".mp4"},
		{"application/octet-stream", ".bin"},
	}

	for _, tt := range tests {
		if got := extForMIME(tt.mime); got != tt.want {
			t.Errorf("extForMIME(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}
