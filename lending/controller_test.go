package lending

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// stubLedger records calls and returns canned results so controller tests
// never touch the network.
type stubLedger struct {
	borrowCalls []BorrowerInfo
	returnCalls [][]string
	result      SubmitResult
}

func (s *stubLedger) SubmitBorrow(_ context.Context, info BorrowerInfo) SubmitResult {
	s.borrowCalls = append(s.borrowCalls, info)
	return s.result
}

func (s *stubLedger) SubmitReturnAll(_ context.Context, _ string, games []string) SubmitResult {
	s.returnCalls = append(s.returnCalls, games)
	return s.result
}

func tempController(t *testing.T) (*Controller, *stubLedger) {
	t.Helper()
	ledger := &stubLedger{result: SubmitResult{OK: true}}
	return NewController(tempStore(t), ledger), ledger
}

func TestControllerStartsOnList(t *testing.T) {
	ctrl, _ := tempController(t)
	if ctrl.View() != ViewList {
		t.Fatalf("initial view must be %s, got %s", ViewList, ctrl.View())
	}
}

func TestConfirmSelectionRequiresSelection(t *testing.T) {
	ctrl, ledger := tempController(t)

	err := ctrl.ConfirmSelection()
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("want ErrNoSelection, got %v", err)
	}
	if ctrl.View() != ViewList {
		t.Fatalf("zero selection must not transition, got %s", ctrl.View())
	}
	if len(ledger.borrowCalls) != 0 {
		t.Fatalf("ledger must never be invoked on a rejected confirm")
	}
}

func TestSuccessfulSingleGameBorrow(t *testing.T) {
	ctrl, ledger := tempController(t)
	store := ctrl.Store()

	store.ToggleSelect(1) // Avalon
	if err := ctrl.ConfirmSelection(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if ctrl.View() != ViewBorrowForm {
		t.Fatalf("confirm should open the borrow form, got %s", ctrl.View())
	}

	result, err := ctrl.SubmitBorrow(context.Background(), "10957", "000", "5", "การบัญชี")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.OK {
		t.Fatalf("want success, got %+v", result)
	}
	if ctrl.View() != ViewBorrowSuccess {
		t.Fatalf("successful borrow should advance to %s, got %s", ViewBorrowSuccess, ctrl.View())
	}

	if len(ledger.borrowCalls) != 1 {
		t.Fatalf("want exactly one submission, got %d", len(ledger.borrowCalls))
	}
	info := ledger.borrowCalls[0]
	want := BorrowerInfo{StudentID: "10957", Classroom: "000", NumberOfPlayers: "5",
		Major: "การบัญชี", Games: []string{"Avalon"}}
	if !reflect.DeepEqual(info, want) {
		t.Fatalf("submitted info mismatch:\nwant %+v\ngot  %+v", want, info)
	}

	ctrl.AcknowledgeSuccess()
	if ctrl.View() != ViewList {
		t.Fatalf("acknowledge should return to the list")
	}
	if store.Games()[0].Selected {
		t.Fatalf("selection must be cleared after acknowledgement")
	}
}

func TestSubmitBorrowTrimsFields(t *testing.T) {
	ctrl, ledger := tempController(t)
	ctrl.Store().ToggleSelect(1)
	ctrl.ConfirmSelection()

	if _, err := ctrl.SubmitBorrow(context.Background(), " 10957 ", " 000 ", " 5 ", " การบัญชี "); err != nil {
		t.Fatalf("submit: %v", err)
	}
	info := ledger.borrowCalls[0]
	if info.StudentID != "10957" || info.Classroom != "000" || info.NumberOfPlayers != "5" || info.Major != "การบัญชี" {
		t.Fatalf("fields must be trimmed before transmission: %+v", info)
	}
}

func TestSubmitBorrowValidatesRequiredFields(t *testing.T) {
	ctrl, ledger := tempController(t)
	ctrl.Store().ToggleSelect(1)
	ctrl.ConfirmSelection()

	_, err := ctrl.SubmitBorrow(context.Background(), "10957", "   ", "5", "การบัญชี")
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("want ErrMissingFields, got %v", err)
	}
	if ctrl.View() != ViewBorrowForm {
		t.Fatalf("validation failure must stay on the form")
	}
	if len(ledger.borrowCalls) != 0 {
		t.Fatalf("validation failure must not reach the ledger")
	}
}

func TestSubmitBorrowGamesFollowCatalogOrder(t *testing.T) {
	ctrl, ledger := tempController(t)
	// Select out of order; submission order follows the catalog.
	ctrl.Store().ToggleSelect(4)
	ctrl.Store().ToggleSelect(1)
	ctrl.ConfirmSelection()

	if _, err := ctrl.SubmitBorrow(context.Background(), "1", "c", "2", "m"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	got := ledger.borrowCalls[0].Games
	if !reflect.DeepEqual(got, []string{"Avalon", "Catan"}) {
		t.Fatalf("want stable catalog order, got %v", got)
	}
}

func TestFailedBorrowStaysOnForm(t *testing.T) {
	ctrl, ledger := tempController(t)
	ledger.result = SubmitResult{OK: false, Message: "ไม่พบ Sheet X"}
	ctrl.Store().ToggleSelect(1)
	ctrl.ConfirmSelection()

	result, err := ctrl.SubmitBorrow(context.Background(), "1", "c", "2", "m")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.OK {
		t.Fatalf("want failure result")
	}
	if ctrl.View() != ViewBorrowForm {
		t.Fatalf("failed borrow must stay on the form, got %s", ctrl.View())
	}
	if ctrl.Store().Games()[0].Selected != true {
		t.Fatalf("failed borrow must not clear selection")
	}
}

func TestBackFromBorrowFormHasNoSideEffects(t *testing.T) {
	ctrl, ledger := tempController(t)
	ctrl.Store().ToggleSelect(1)
	ctrl.ConfirmSelection()

	ctrl.Back()
	if ctrl.View() != ViewList {
		t.Fatalf("back should land on the list")
	}
	if !ctrl.Store().Games()[0].Selected {
		t.Fatalf("back must not clear selection")
	}
	if len(ledger.borrowCalls) != 0 {
		t.Fatalf("back must not submit anything")
	}
}

func TestNavigationBetweenListSearchManage(t *testing.T) {
	ctrl, _ := tempController(t)

	ctrl.GoToSearch()
	if ctrl.View() != ViewSearch {
		t.Fatalf("want search view")
	}
	ctrl.GoToList()

	if err := ctrl.EnterManage("wrong"); !errors.Is(err, ErrBadPasscode) {
		t.Fatalf("want ErrBadPasscode, got %v", err)
	}
	if ctrl.View() != ViewList {
		t.Fatalf("failed passcode must not switch views")
	}
	if err := ctrl.EnterManage(DefaultPasscode); err != nil {
		t.Fatalf("enter manage: %v", err)
	}
	if ctrl.View() != ViewManageGames {
		t.Fatalf("want manage view, got %s", ctrl.View())
	}
	ctrl.Back()
	if ctrl.View() != ViewList {
		t.Fatalf("back should exit manage")
	}
}

func TestSubmitReturnValidatesInput(t *testing.T) {
	ctrl, ledger := tempController(t)

	if _, err := ctrl.SubmitReturn(context.Background(), "  ", []string{"Avalon"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("blank student id must be rejected, got %v", err)
	}
	if _, err := ctrl.SubmitReturn(context.Background(), "10957", nil); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("empty game list must be rejected, got %v", err)
	}
	if len(ledger.returnCalls) != 0 {
		t.Fatalf("validation failures must not reach the ledger")
	}

	result, err := ctrl.SubmitReturn(context.Background(), "10957", []string{"Avalon", "Catan"})
	if err != nil || !result.OK {
		t.Fatalf("valid return should delegate to the ledger: %v %+v", err, result)
	}
	if !reflect.DeepEqual(ledger.returnCalls, [][]string{{"Avalon", "Catan"}}) {
		t.Fatalf("unexpected delegated games: %+v", ledger.returnCalls)
	}
}

func TestFilteredGamesAreDerivedNotCached(t *testing.T) {
	ctrl, _ := tempController(t)

	before := len(ctrl.FilteredGames(FilterAll))
	ctrl.Store().Add("New", "d", "u", CategoryParty, false)
	after := len(ctrl.FilteredGames(FilterAll))
	if after != before+1 {
		t.Fatalf("filtered view must reflect store mutations immediately")
	}
}
