package lending

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteSeedSnippet(t *testing.T) {
	games := []BoardGame{
		{ID: 1, Name: "Avalon", Description: "d", ImageURL: "u", Category: CategoryParty, IsPopular: true, Selected: true},
		{ID: 2, Name: "Azul", Description: "d2", ImageURL: "u2", Category: CategoryFamily},
	}

	var buf bytes.Buffer
	if err := WriteSeedSnippet(&buf, games); err != nil {
		t.Fatalf("write snippet: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "var initialBoardGames = []BoardGame{\n") {
		t.Fatalf("snippet must declare the seed literal, got:\n%s", out)
	}
	if !strings.Contains(out, `Name: "Avalon"`) || !strings.Contains(out, `Name: "Azul"`) {
		t.Fatalf("snippet missing games:\n%s", out)
	}
	if !strings.Contains(out, "IsPopular: true") {
		t.Fatalf("popular flag should be emitted for popular games:\n%s", out)
	}
	if strings.Contains(out, "Selected") {
		t.Fatalf("selection state must never be exported:\n%s", out)
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Fatalf("snippet must close the literal:\n%s", out)
	}
}
