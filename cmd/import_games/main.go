package main

import (
	"encoding/json"
	"fmt"
	"os"

	"boardgame-lending/lending"
)

// import_games replaces the stored catalog with the contents of a JSON file
// (an array of board games in the persisted format). Intended for promoting
// a curated list in bulk instead of adding games one by one.
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <db path> <games.json>\n", os.Args[0])
		os.Exit(1)
	}
	dbPath, jsonPath := os.Args[1], os.Args[2]

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", jsonPath, err)
		os.Exit(1)
	}

	var games []lending.BoardGame
	if err := json.Unmarshal(data, &games); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", jsonPath, err)
		os.Exit(1)
	}

	// Assign fresh sequential ids and drop stale selection flags so the
	// imported file can be hand-written without bookkeeping.
	for i := range games {
		games[i].ID = i + 1
		games[i].Selected = false
	}

	slot, err := lending.OpenSlot(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer slot.Close()

	if err := lending.SaveCatalog(slot, games); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d games into %s\n", len(games), dbPath)
	for _, g := range games {
		fmt.Printf("  %-3d %-30s %s\n", g.ID, g.Name, g.Category)
	}
}
