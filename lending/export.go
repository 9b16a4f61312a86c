package lending

import (
	"fmt"
	"io"
)

// WriteSeedSnippet dumps the catalog as a Go source snippet ready to paste
// over the literal in seed.go, promoting the current state to a new seed
// dataset. Selection flags are forced false; they are UI state, not data.
func WriteSeedSnippet(w io.Writer, games []BoardGame) error {
	if _, err := fmt.Fprintln(w, "var initialBoardGames = []BoardGame{"); err != nil {
		return err
	}
	for _, g := range games {
		line := fmt.Sprintf("\t{ID: %d, Name: %q, Description: %q, ImageURL: %q, Category: %q",
			g.ID, g.Name, g.Description, g.ImageURL, g.Category)
		if g.IsPopular {
			line += ", IsPopular: true"
		}
		line += "},"
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
