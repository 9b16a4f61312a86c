package lending

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"boardgame-lending/utils/logger"
)

const (
	catalogKey  = "catalog"
	passcodeKey = "passcode"
)

// DefaultPasscode guards the manage-games view until the librarian sets
// their own via SetPasscode.
const DefaultPasscode = "librarian"

// CatalogStore owns the canonical in-memory collection of BoardGame and
// writes it through to the durable slot after every mutation. It is not safe
// for concurrent writers; the application is single-threaded by design.
type CatalogStore struct {
	slot  *Slot
	games []BoardGame
}

// NewCatalogStore wraps the given slot. Call Initialize before use.
func NewCatalogStore(slot *Slot) *CatalogStore {
	return &CatalogStore{slot: slot}
}

// Initialize loads the persisted catalog, applying migration defaults to
// records saved before the category and popularity fields existed. It fails
// open: any read or parse error falls back to the seed catalog and is only
// logged, never returned.
func (cs *CatalogStore) Initialize() {
	value, ok, err := cs.slot.Get(catalogKey)
	if err != nil {
		logger.Errorf("load catalog: %v, falling back to seed data", err)
		cs.games = seedCatalog()
	} else if !ok {
		cs.games = seedCatalog()
	} else {
		var games []BoardGame
		if err := json.Unmarshal([]byte(value), &games); err != nil {
			logger.Errorf("parse stored catalog: %v, falling back to seed data", err)
			cs.games = seedCatalog()
		} else {
			for i := range games {
				migrate(&games[i])
			}
			cs.games = games
		}
	}

	cs.ensurePasscode()
}

// migrate fills fields absent on records persisted by older versions.
func migrate(g *BoardGame) {
	if g.Category == "" {
		g.Category = DefaultCategory
	}
	// IsPopular defaults to false, which the zero value already provides.
}

// ------------------ Reads ------------------

// Games returns a copy of the full catalog in stored order.
func (cs *CatalogStore) Games() []BoardGame {
	games := make([]BoardGame, len(cs.games))
	copy(games, cs.games)
	return games
}

// Selected returns the currently selected games in catalog order.
func (cs *CatalogStore) Selected() []BoardGame {
	var selected []BoardGame
	for _, g := range cs.games {
		if g.Selected {
			selected = append(selected, g)
		}
	}
	return selected
}

// FilterByCategory returns the subset matching the category, or the popular
// subset for FilterPopular, or everything for FilterAll. An empty result is
// a valid state, not an error.
func (cs *CatalogStore) FilterByCategory(category string) []BoardGame {
	switch category {
	case "", FilterAll:
		return cs.Games()
	case FilterPopular:
		var popular []BoardGame
		for _, g := range cs.games {
			if g.IsPopular {
				popular = append(popular, g)
			}
		}
		return popular
	default:
		var matched []BoardGame
		for _, g := range cs.games {
			if g.Category == category {
				matched = append(matched, g)
			}
		}
		return matched
	}
}

// SearchByName returns games whose name contains q, case-insensitively.
func (cs *CatalogStore) SearchByName(q string) []BoardGame {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return cs.Games()
	}
	var matched []BoardGame
	for _, g := range cs.games {
		if strings.Contains(strings.ToLower(g.Name), q) {
			matched = append(matched, g)
		}
	}
	return matched
}

// ------------------ Mutations ------------------
// Every mutation writes the collection through to the slot so the durable
// copy never trails memory by more than one mutation.

// ToggleSelect flips the selected flag on the game with the given id.
// Unknown ids are a no-op.
func (cs *CatalogStore) ToggleSelect(id int) {
	for i := range cs.games {
		if cs.games[i].ID == id {
			cs.games[i].Selected = !cs.games[i].Selected
			cs.persist()
			return
		}
	}
}

// ClearSelections resets every selected flag, as happens after a borrow is
// acknowledged.
func (cs *CatalogStore) ClearSelections() {
	for i := range cs.games {
		cs.games[i].Selected = false
	}
	cs.persist()
}

// Add appends a new game with a fresh unique id and returns it.
func (cs *CatalogStore) Add(name, description, imageURL, category string, popular bool) BoardGame {
	if category == "" {
		category = DefaultCategory
	}
	game := BoardGame{
		ID:          cs.nextID(),
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		Category:    category,
		IsPopular:   popular,
	}
	cs.games = append(cs.games, game)
	cs.persist()
	return game
}

// Update replaces the record with a matching id in place. Unknown ids are a
// silent no-op; callers are expected to pass existing ids only.
func (cs *CatalogStore) Update(game BoardGame) {
	for i := range cs.games {
		if cs.games[i].ID == game.ID {
			cs.games[i] = game
			cs.persist()
			return
		}
	}
}

// Delete removes every game whose id appears in ids.
func (cs *CatalogStore) Delete(ids []int) {
	drop := make(map[int]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := cs.games[:0]
	for _, g := range cs.games {
		if !drop[g.ID] {
			kept = append(kept, g)
		}
	}
	cs.games = kept
	cs.persist()
}

// ResetToSeed replaces the collection with the built-in catalog and clears
// the durable slot.
func (cs *CatalogStore) ResetToSeed() {
	cs.games = seedCatalog()
	if err := cs.slot.Delete(catalogKey); err != nil {
		logger.Errorf("clear catalog slot: %v", err)
	}
}

// nextID yields max existing id + 1, or 1 for an empty collection.
func (cs *CatalogStore) nextID() int {
	max := 0
	for _, g := range cs.games {
		if g.ID > max {
			max = g.ID
		}
	}
	return max + 1
}

// persist serializes the collection into the slot. Write failures are logged
// only; they are not actionable by the user and the in-memory state stays
// authoritative for the session.
func (cs *CatalogStore) persist() {
	data, err := json.Marshal(cs.games)
	if err != nil {
		logger.Errorf("serialize catalog: %v", err)
		return
	}
	if err := cs.slot.Put(catalogKey, string(data)); err != nil {
		logger.Errorf("persist catalog: %v", err)
	}
}

// SaveCatalog writes games directly into the slot under the catalog key,
// applying the same migration defaults as Initialize. Used by the import
// tool to replace the stored catalog wholesale.
func SaveCatalog(slot *Slot, games []BoardGame) error {
	for i := range games {
		migrate(&games[i])
	}
	data, err := json.Marshal(games)
	if err != nil {
		return fmt.Errorf("serialize catalog: %w", err)
	}
	return slot.Put(catalogKey, string(data))
}

// ------------------ Librarian passcode ------------------

// ensurePasscode seeds the default passcode hash on first run.
func (cs *CatalogStore) ensurePasscode() {
	_, ok, err := cs.slot.Get(passcodeKey)
	if err != nil {
		logger.Errorf("load passcode: %v", err)
		return
	}
	if ok {
		return
	}
	if err := cs.SetPasscode(DefaultPasscode); err != nil {
		logger.Errorf("seed default passcode: %v", err)
	}
}

// SetPasscode stores a bcrypt hash of the librarian passcode.
func (cs *CatalogStore) SetPasscode(passcode string) error {
	if strings.TrimSpace(passcode) == "" {
		return fmt.Errorf("passcode cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash passcode: %w", err)
	}
	return cs.slot.Put(passcodeKey, string(hash))
}

// VerifyPasscode reports whether the passcode matches the stored hash.
func (cs *CatalogStore) VerifyPasscode(passcode string) bool {
	hash, ok, err := cs.slot.Get(passcodeKey)
	if err != nil || !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}
