package lending

// BoardGame represents one game in the catalog. Selected is transient UI
// state only; it never means "currently borrowed" and is reset after a
// successful borrow submission.
type BoardGame struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	IsPopular   bool   `json:"isPopular"`
	Selected    bool   `json:"selected"`
}

// Game categories. DefaultCategory is applied to records persisted before
// categories existed.
const (
	CategoryParty    = "เกมปาร์ตี้"
	CategoryStrategy = "เกมวางแผน"
	CategoryPuzzle   = "เกมปริศนา"
	CategoryFamily   = "เกมครอบครัว"

	DefaultCategory = CategoryParty
)

// Pseudo-categories accepted by the list filter. FilterPopular matches the
// IsPopular flag regardless of category.
const (
	FilterAll     = "ทั้งหมด"
	FilterPopular = "ยอดนิยม"
)

// Categories lists the fixed category set in display order.
func Categories() []string {
	return []string{CategoryParty, CategoryStrategy, CategoryPuzzle, CategoryFamily}
}

// BorrowerInfo carries one borrow submission. It is built fresh per attempt
// from the form fields and the then-selected games, and discarded after.
type BorrowerInfo struct {
	StudentID       string
	Classroom       string
	NumberOfPlayers string
	Major           string
	Games           []string
}
