package lending

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"boardgame-lending/utils/logger"
)

// Ledger endpoint actions and response status tags.
const (
	actionBorrow = "borrow"
	actionReturn = "return"

	statusSuccess  = "success"
	statusNotFound = "not_found"
	statusError    = "error"
)

// User-facing failure messages. Transport and parse failures are collapsed
// into these; application-level messages come from the endpoint (possibly
// translated, see translateServerMessage).
const (
	msgUnreachable = "ไม่สามารถเชื่อมต่อกับเซิร์ฟเวอร์ได้ กรุณาลองใหม่อีกครั้ง"
	msgMalformed   = "เซิร์ฟเวอร์ตอบกลับข้อมูลในรูปแบบที่ไม่ถูกต้อง"
	msgNoGames     = "ไม่มีรายการบอร์ดเกมที่จะบันทึก"
	msgReturnFail  = "การคืนบอร์ดเกมไม่สำเร็จ"
)

var (
	errUnreachable = errors.New("ledger endpoint unreachable")
	errMalformed   = errors.New("malformed ledger response")
)

const defaultLedgerTimeout = 30 * time.Second

// LedgerConfig controls how the client reaches the ledger endpoint.
type LedgerConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// LedgerClient records borrow and return events against the remote
// spreadsheet-backed endpoint, one ledger row per request.
type LedgerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewLedgerClient constructs a ledger client with the provided configuration.
func NewLedgerClient(cfg LedgerConfig) *LedgerClient {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultLedgerTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &LedgerClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: client,
	}
}

// ledgerRequest is the wire format the Apps Script endpoint expects.
type ledgerRequest struct {
	Action      string `json:"action"`
	StudentID   string `json:"Student_ID"`
	Classroom   string `json:"Classroom,omitempty"`
	PlayerCount string `json:"Player_Count,omitempty"`
	Major       string `json:"Major,omitempty"`
	BoardGame   string `json:"Board_Game"`
}

// ledgerResponse is the textual body every ledger call answers with.
type ledgerResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SubmitResult reduces one or more ledger calls into a single outcome.
// Message is only meaningful when OK is false.
type SubmitResult struct {
	OK      bool
	Message string
}

// SubmitBorrow records one ledger row per selected game, strictly in order.
// A failing request halts the sequence immediately: the endpoint appends one
// row per call, so stopping limits the inconsistent rows a doomed submission
// can create. Any status other than "error" counts as a successful step.
func (c *LedgerClient) SubmitBorrow(ctx context.Context, info BorrowerInfo) SubmitResult {
	if len(info.Games) == 0 {
		return SubmitResult{OK: false, Message: msgNoGames}
	}

	for _, game := range info.Games {
		resp, err := c.post(ctx, ledgerRequest{
			Action:      actionBorrow,
			StudentID:   info.StudentID,
			Classroom:   info.Classroom,
			PlayerCount: info.NumberOfPlayers,
			Major:       info.Major,
			BoardGame:   game,
		})
		if err != nil {
			return failureFor(err)
		}
		if resp.Status == statusError {
			return SubmitResult{OK: false, Message: translateServerMessage(resp.Message)}
		}
	}
	return SubmitResult{OK: true}
}

// SubmitReturn records a single return row. Only a "success" status counts;
// "not_found" and "error" both surface as failures with the server message.
func (c *LedgerClient) SubmitReturn(ctx context.Context, studentID, gameName string) SubmitResult {
	resp, err := c.post(ctx, ledgerRequest{
		Action:    actionReturn,
		StudentID: studentID,
		BoardGame: gameName,
	})
	if err != nil {
		return failureFor(err)
	}
	if resp.Status != statusSuccess {
		message := translateServerMessage(resp.Message)
		if message == "" {
			message = msgReturnFail
		}
		return SubmitResult{OK: false, Message: message}
	}
	return SubmitResult{OK: true}
}

// SubmitReturnAll issues one return request per game concurrently; the rows
// are independent, so no ordering is needed between them. The reduction is
// deterministic: results are inspected in input order and the first failure
// by that order wins, regardless of arrival order.
func (c *LedgerClient) SubmitReturnAll(ctx context.Context, studentID string, games []string) SubmitResult {
	if len(games) == 0 {
		return SubmitResult{OK: false, Message: msgNoGames}
	}

	results := make([]SubmitResult, len(games))
	var wg sync.WaitGroup
	for i, game := range games {
		wg.Add(1)
		go func(i int, game string) {
			defer wg.Done()
			results[i] = c.SubmitReturn(ctx, studentID, game)
		}(i, game)
	}
	wg.Wait()

	for _, r := range results {
		if !r.OK {
			return r
		}
	}
	return SubmitResult{OK: true}
}

// post sends one request and parses the response body. Transport failures
// map to errUnreachable and unparseable bodies to errMalformed; both halt
// the caller's sequence.
func (c *LedgerClient) post(ctx context.Context, payload ledgerRequest) (*ledgerResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal ledger request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build ledger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debugf("ledger %s %q: %v", payload.Action, payload.BoardGame, err)
		return nil, errUnreachable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		logger.Debugf("ledger %s %q: read body: %v", payload.Action, payload.BoardGame, err)
		return nil, errUnreachable
	}

	var parsed ledgerResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		logger.Debugf("ledger %s %q: unparseable body %q", payload.Action, payload.BoardGame, strings.TrimSpace(string(respBody)))
		return nil, errMalformed
	}
	return &parsed, nil
}

// failureFor maps a post error onto the caller-visible result.
func failureFor(err error) SubmitResult {
	if errors.Is(err, errMalformed) {
		return SubmitResult{OK: false, Message: msgMalformed}
	}
	return SubmitResult{OK: false, Message: msgUnreachable}
}

// translateServerMessage rewrites known low-level endpoint failures into
// operator-facing diagnostics. The Apps Script dereferences a null sheet
// when the target tab was renamed or deleted; its raw TypeError means
// nothing to a librarian. Unrecognized messages pass through verbatim.
func translateServerMessage(msg string) string {
	if strings.Contains(msg, "Cannot read properties of null") {
		return "ไม่พบ Sheet สำหรับบันทึกข้อมูลในสเปรดชีต กรุณาตรวจสอบชื่อชีตปลายทาง"
	}
	return msg
}
