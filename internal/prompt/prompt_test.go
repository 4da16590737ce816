package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadLine(t *testing.T) {
	var out bytes.Buffer
	line, err := ReadLine(strings.NewReader("  hello \nrest"), &out, "> ")
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if line != "hello" {
		t.Errorf("Expected 'hello', got '%s'", line)
	}
	if out.String() != "> " {
		t.Errorf("Expected prompt '> ', got '%s'", out.String())
	}

	line, err = ReadLine(strings.NewReader("partial"), &out, "")
	if err != nil || line != "partial" {
		t.Errorf("Expected 'partial' at EOF, got '%s', %v", line, err)
	}
}

func TestConfirm(t *testing.T) {
	cases := map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		"n\n":     false,
		"\n":      false,
		"maybe\n": false,
		"":        false,
	}
	for in, want := range cases {
		var out bytes.Buffer
		got, err := Confirm(strings.NewReader(in), &out, "Remove?")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("Confirm(%q) = %v, expected %v", in, got, want)
		}
		if out.String() != "Remove? [y/n] " {
			t.Errorf("Unexpected prompt %q", out.String())
		}
	}
}
