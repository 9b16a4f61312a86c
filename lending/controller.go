package lending

import (
	"context"
	"errors"
	"strings"
)

// View identifies the active screen.
type View string

const (
	ViewList          View = "LIST"
	ViewSearch        View = "SEARCH"
	ViewBorrowForm    View = "BORROW_FORM"
	ViewBorrowSuccess View = "BORROW_SUCCESS"
	ViewManageGames   View = "MANAGE_GAMES"
)

var (
	// ErrNoSelection blocks the confirm transition when nothing is selected.
	ErrNoSelection = errors.New("กรุณาเลือกบอร์ดเกมอย่างน้อย 1 รายการ")
	// ErrMissingFields blocks submission while required fields are blank.
	ErrMissingFields = errors.New("กรุณากรอกข้อมูลให้ครบทุกช่อง")
	// ErrBadPasscode blocks entry to the manage-games view.
	ErrBadPasscode = errors.New("รหัสผ่านไม่ถูกต้อง")
)

// ledgerService is what the controller needs from the ledger client.
type ledgerService interface {
	SubmitBorrow(ctx context.Context, info BorrowerInfo) SubmitResult
	SubmitReturnAll(ctx context.Context, studentID string, games []string) SubmitResult
}

// Controller owns the active view and mediates between user intent, the
// catalog store, and the ledger client. It never caches game slices; every
// read is recomputed from the store.
type Controller struct {
	store  *CatalogStore
	ledger ledgerService
	view   View
}

// NewController starts on the list view.
func NewController(store *CatalogStore, ledger ledgerService) *Controller {
	return &Controller{store: store, ledger: ledger, view: ViewList}
}

// View returns the active view.
func (c *Controller) View() View { return c.view }

// Store exposes the catalog store for read/mutate access from the UI layer.
func (c *Controller) Store() *CatalogStore { return c.store }

// ------------------ Navigation ------------------

// GoToList returns to the list view. Valid from every state.
func (c *Controller) GoToList() { c.view = ViewList }

// GoToSearch switches to the search view. No data changes on the way.
func (c *Controller) GoToSearch() { c.view = ViewSearch }

// EnterManage switches to the manage-games view after verifying the
// librarian passcode.
func (c *Controller) EnterManage(passcode string) error {
	if !c.store.VerifyPasscode(passcode) {
		return ErrBadPasscode
	}
	c.view = ViewManageGames
	return nil
}

// ConfirmSelection moves from List or Search to the borrow form, but only
// when at least one game is selected. A zero selection is a validation
// failure: the view stays put and the ledger is never touched.
func (c *Controller) ConfirmSelection() error {
	if len(c.store.Selected()) == 0 {
		return ErrNoSelection
	}
	c.view = ViewBorrowForm
	return nil
}

// Back leaves the borrow form (or any secondary view) for the list without
// side effects.
func (c *Controller) Back() { c.view = ViewList }

// AcknowledgeSuccess leaves the success screen, clearing every selected
// flag on the way out.
func (c *Controller) AcknowledgeSuccess() {
	c.store.ClearSelections()
	c.view = ViewList
}

// ------------------ Submission ------------------

// SubmitBorrow validates the borrower fields, captures the names of the
// then-selected games in catalog order, and drives the sequential borrow
// submission. On success the view advances to BorrowSuccess; on failure it
// stays on the form with the result message for inline display.
func (c *Controller) SubmitBorrow(ctx context.Context, studentID, classroom, numberOfPlayers, major string) (SubmitResult, error) {
	info := BorrowerInfo{
		StudentID:       strings.TrimSpace(studentID),
		Classroom:       strings.TrimSpace(classroom),
		NumberOfPlayers: strings.TrimSpace(numberOfPlayers),
		Major:           strings.TrimSpace(major),
	}
	if info.StudentID == "" || info.Classroom == "" || info.NumberOfPlayers == "" || info.Major == "" {
		return SubmitResult{}, ErrMissingFields
	}

	selected := c.store.Selected()
	if len(selected) == 0 {
		return SubmitResult{}, ErrNoSelection
	}
	for _, g := range selected {
		info.Games = append(info.Games, g.Name)
	}

	result := c.ledger.SubmitBorrow(ctx, info)
	if result.OK {
		c.view = ViewBorrowSuccess
	}
	return result, nil
}

// SubmitReturn drives a multi-select return: one concurrent request per
// game, reduced to the first failure in stable input order. The view does
// not change; returns run as an overlay on whatever screen is active.
func (c *Controller) SubmitReturn(ctx context.Context, studentID string, games []string) (SubmitResult, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" || len(games) == 0 {
		return SubmitResult{}, ErrMissingFields
	}
	return c.ledger.SubmitReturnAll(ctx, studentID, games), nil
}

// ------------------ Derived views ------------------

// FilteredGames returns the display subset for the list view. Derived on
// every call, never stored.
func (c *Controller) FilteredGames(filter string) []BoardGame {
	return c.store.FilterByCategory(filter)
}

// SearchGames returns the display subset for the search view.
func (c *Controller) SearchGames(query string) []BoardGame {
	return c.store.SearchByName(query)
}
