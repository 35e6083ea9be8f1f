// Package google implements the tabular store port against one worksheet of
// a Google spreadsheet via the Sheets v4 API.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/IlRyze11/gestione-spese/internal/store"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// DefaultHandleTTL is how long an opened Sheets service handle is reused
// before the next call reopens it.
const DefaultHandleTTL = time.Minute

// dataRange spans the six ledger columns. No sheet prefix means the first
// worksheet, which matches how the spreadsheet is laid out.
const dataRange = "A:F"

var ErrMissingCredentials = errors.New("missing credentials: set GOOGLE_SERVICE_ACCOUNT_JSON or provide a credentials file")

// Config selects the spreadsheet and the credential sources.
type Config struct {
	SpreadsheetID string
	// SheetName is the worksheet tab. Empty targets the first worksheet.
	SheetName string
	// ServiceAccountJSON is the embedded-secret credential source, tried
	// first. CredentialsFile (default "credentials.json") is the fallback.
	ServiceAccountJSON string
	CredentialsFile    string
	// HandleTTL caps how long the service handle is cached. Zero means
	// DefaultHandleTTL.
	HandleTTL time.Duration
}

// Client is a tabular store backed by one named remote spreadsheet.
type Client struct {
	cfg Config

	mu              sync.Mutex
	svc             *gsheet.Service
	handleExpiresAt time.Time
}

var _ store.Store = (*Client)(nil)

func New(cfg Config) *Client {
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = "credentials.json"
	}
	if cfg.HandleTTL <= 0 {
		cfg.HandleTTL = DefaultHandleTTL
	}
	return &Client{cfg: cfg}
}

// Connect opens the service handle eagerly. Callers treat a failure here as
// fatal: no usable credentials or an unreachable spreadsheet stops the run.
func (c *Client) Connect(ctx context.Context) error {
	_, err := c.handle(ctx)
	return err
}

// handle returns the cached Sheets service, reopening it after the TTL so a
// long-lived process does not hold a stale connection forever.
func (c *Client) handle(ctx context.Context) (*gsheet.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.svc != nil && time.Now().Before(c.handleExpiresAt) {
		return c.svc, nil
	}

	opt, err := c.credentialsOption()
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx, opt, goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	c.svc = svc
	c.handleExpiresAt = time.Now().Add(c.cfg.HandleTTL)
	slog.DebugContext(ctx, "Opened Google Sheets handle", "spreadsheet_id", c.cfg.SpreadsheetID, "ttl", c.cfg.HandleTTL)
	return c.svc, nil
}

// credentialsOption picks the embedded secret first and the local credential
// file second.
func (c *Client) credentialsOption() (goption.ClientOption, error) {
	if strings.TrimSpace(c.cfg.ServiceAccountJSON) != "" {
		return goption.WithCredentialsJSON([]byte(c.cfg.ServiceAccountJSON)), nil
	}
	if _, err := os.Stat(c.cfg.CredentialsFile); err == nil {
		return goption.WithCredentialsFile(c.cfg.CredentialsFile), nil
	}
	return nil, ErrMissingCredentials
}

// InvalidateHandle drops the cached service so the next call reopens it.
func (c *Client) InvalidateHandle() {
	c.mu.Lock()
	c.handleExpiresAt = time.Time{}
	c.mu.Unlock()
}

func (c *Client) sheetRange() string {
	if c.cfg.SheetName == "" {
		return dataRange
	}
	return fmt.Sprintf("'%s'!%s", c.cfg.SheetName, dataRange)
}

// ReadAll fetches every row of the worksheet. The first row is taken as the
// column header; subsequent rows are keyed by it. An empty or header-only
// worksheet yields no rows.
func (c *Client) ReadAll(ctx context.Context) ([]store.Row, error) {
	svc, err := c.handle(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Spreadsheets.Values.Get(c.cfg.SpreadsheetID, c.sheetRange()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.sheetRange(), err)
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}
	header := toStrings(resp.Values[0])
	rows := make([]store.Row, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		cols := toStrings(raw)
		row := make(store.Row, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(cols) {
				row[name] = cols[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// OverwriteAll clears the worksheet and writes header plus rows starting at
// A1 in one update call. There is no partial-write recovery: a failure after
// the clear can leave the sheet empty, an accepted risk for this store.
func (c *Client) OverwriteAll(ctx context.Context, header []string, rows [][]string) error {
	svc, err := c.handle(ctx)
	if err != nil {
		return err
	}
	if _, err := svc.Spreadsheets.Values.Clear(c.cfg.SpreadsheetID, c.sheetRange(), &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", c.sheetRange(), err)
	}

	values := make([][]any, 0, len(rows)+1)
	values = append(values, toAnys(header))
	for _, r := range rows {
		values = append(values, toAnys(r))
	}
	vr := &gsheet.ValueRange{Values: values}
	startCell := "A1"
	if c.cfg.SheetName != "" {
		startCell = fmt.Sprintf("'%s'!A1", c.cfg.SheetName)
	}
	if _, err := svc.Spreadsheets.Values.Update(c.cfg.SpreadsheetID, startCell, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("update %s: %w", startCell, err)
	}
	slog.InfoContext(ctx, "Ledger overwritten on remote sheet", "rows", len(rows))
	return nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func toAnys(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
