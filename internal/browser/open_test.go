package browser

import "testing"

func TestCommand(t *testing.T) {
	cmd, err := Command("linux", "https://example.com")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if len(cmd.Args) != 2 || cmd.Args[0] != "xdg-open" || cmd.Args[1] != "https://example.com" {
		t.Errorf("Unexpected args: %v", cmd.Args)
	}

	cmd, _ = Command("windows", "https://example.com")
	if cmd.Args[len(cmd.Args)-1] != "https://example.com" || cmd.Args[3] != "" {
		t.Errorf("Unexpected windows args: %v", cmd.Args)
	}

	if _, err := Command("plan9", "https://example.com"); err == nil {
		t.Error("Expected error for unsupported OS")
	}
	if _, err := Command("darwin", ""); err == nil {
		t.Error("Expected error for empty url")
	}
}
