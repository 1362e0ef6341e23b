package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"nutrilog/internal/ledger"

	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client backs the ledger with one Google spreadsheet, one sheet tab per
// logical table.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	tabs          map[ledger.Table]string
}

var _ ledger.Store = (*Client)(nil)

// NewFromEnv creates a Sheets-backed ledger using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials
// (GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS). Optional tab overrides:
// SHEET_FOOD_LOG, SHEET_WEIGHT_LOG, SHEET_FAVORITES, SHEET_BUDGETS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	tabs := map[ledger.Table]string{
		ledger.FoodLog:   tabName("SHEET_FOOD_LOG", "Food Log"),
		ledger.WeightLog: tabName("SHEET_WEIGHT_LOG", "Weight Log"),
		ledger.Favorites: tabName("SHEET_FAVORITES", "Favorites"),
		ledger.Budgets:   tabName("SHEET_BUDGETS", "Budgets"),
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID, tabs: tabs}, nil
}

func tabName(envKey, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	return fallback
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) ReadRange(ctx context.Context, table ledger.Table, rng ledger.Range) ([]ledger.Row, error) {
	tab, err := c.tab(table)
	if err != nil {
		return nil, err
	}
	a1 := fmt.Sprintf("%s!A:Z", tab)
	if rng.MaxRows > 0 {
		a1 = fmt.Sprintf("%s!A1:Z%d", tab, rng.MaxRows)
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		return nil, mapAPIError(table, err)
	}
	rows := make([]ledger.Row, 0, len(resp.Values))
	for _, raw := range resp.Values {
		rows = append(rows, toRow(raw))
	}
	return rows, nil
}

func (c *Client) AppendRow(ctx context.Context, table ledger.Table, row ledger.Row) (string, error) {
	tab, err := c.tab(table)
	if err != nil {
		return "", err
	}
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}
	vr := &gsheet.ValueRange{Values: [][]any{cells}}
	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, fmt.Sprintf("%s!A:Z", tab), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", mapAPIError(table, err)
	}
	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	slog.DebugContext(ctx, "Row appended to sheet", "table", table, "ref", ref)
	return ref, nil
}

func (c *Client) DeleteRow(ctx context.Context, table ledger.Table, match func(ledger.Row) bool) error {
	tab, err := c.tab(table)
	if err != nil {
		return err
	}
	rows, err := c.ReadRange(ctx, table, ledger.Range{})
	if err != nil {
		if errors.Is(err, ledger.ErrTableMissing) {
			return fmt.Errorf("%s: %w", table, ledger.ErrNotFound)
		}
		return err
	}
	idx := -1
	for i, r := range rows {
		if match(r) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%s: %w", table, ledger.ErrNotFound)
	}

	sheetID, err := c.sheetID(ctx, tab)
	if err != nil {
		return err
	}
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(idx),
					EndIndex:   int64(idx + 1),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return mapAPIError(table, err)
	}
	return nil
}

func (c *Client) tab(table ledger.Table) (string, error) {
	tab, ok := c.tabs[table]
	if !ok {
		return "", fmt.Errorf("no sheet tab configured for table %q", table)
	}
	return tab, nil
}

func (c *Client) sheetID(ctx context.Context, tab string) (int64, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, &ledger.StoreUnavailableError{Err: err}
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == tab {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet tab %q: %w", tab, ledger.ErrTableMissing)
}

func toRow(in []any) ledger.Row {
	out := make(ledger.Row, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// mapAPIError folds Sheets API failures into the ledger taxonomy: a range
// that does not resolve means the tab was never created (zero rows for
// readers); anything else is transient infrastructure.
func mapAPIError(table ledger.Table, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound ||
			(apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "Unable to parse range")) {
			return fmt.Errorf("%s: %w", table, ledger.ErrTableMissing)
		}
	}
	return &ledger.StoreUnavailableError{Err: fmt.Errorf("%s: %w", table, err)}
}
