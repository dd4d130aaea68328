package registry

import (
	"testing"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
)

func stubParse([]byte) (core.LevelData, []ParseWarning, error) {
	return core.LevelData{}, nil, nil
}

func TestRegisterAndLookup(t *testing.T) {
	Register(Format{Name: "test-reg", Extensions: []string{".TREG"}, Parse: stubParse})

	f, err := ForExtension(".treg")
	if err != nil {
		t.Fatalf("ForExtension: %v", err)
	}
	if f.Name != "test-reg" {
		t.Errorf("expected format test-reg, got %q", f.Name)
	}
	if !Supports(".TReg") {
		t.Error("Supports should be case-insensitive")
	}
	if _, err := Get("test-reg"); err != nil {
		t.Errorf("Get: %v", err)
	}

	found := false
	for _, ext := range Extensions() {
		if ext == ".treg" {
			found = true
		}
	}
	if !found {
		t.Error("Extensions should list .treg")
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := ForExtension(".nope"); err == nil {
		t.Error("expected error for unknown extension")
	}
	if _, err := Get("nope"); err == nil {
		t.Error("expected error for unknown format")
	}
	if Supports(".nope") {
		t.Error("Supports(.nope) should be false")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(Format{Name: "test-dup", Extensions: []string{".tdup"}, Parse: stubParse})

	testCases := []struct {
		name string
		f    Format
	}{
		{"same name", Format{Name: "test-dup", Parse: stubParse}},
		{"same extension", Format{Name: "test-dup2", Extensions: []string{".TDUP"}, Parse: stubParse}},
		{"no parser", Format{Name: "test-nil"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			Register(tc.f)
		})
	}
}

func TestParseWarningString(t *testing.T) {
	w := ParseWarning{Line: 3, Text: "0102", Reason: "record must be 6 digits"}
	if got, want := w.String(), `line 3: record must be 6 digits ("0102")`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := (ParseWarning{Reason: "x"}).String(); got != "x" {
		t.Errorf("String() = %q, want %q", got, "x")
	}
}
