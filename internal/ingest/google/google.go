// Package google reads the input table from a Google Sheets range using
// service-account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"tally/internal/core"
	ports "tally/internal/ingest"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	readRange     string
}

// Ensure interface conformance
var _ ports.TableReader = (*Client)(nil)

// New creates a Sheets-backed table reader for one spreadsheet range, e.g.
// "Entries!A:C". Credentials come from the environment, see newSheetsService.
func New(ctx context.Context, spreadsheetID, readRange string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if strings.TrimSpace(readRange) == "" {
		return nil, errors.New("missing read range")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, readRange: readRange}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
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
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// ReadTable fetches the configured range and converts the values matrix into
// a raw table. The first row of the range is the header.
func (c *Client) ReadTable(ctx context.Context) (core.Table, error) {
	if c.svc == nil {
		return core.Table{}, errors.New("sheets service not initialized")
	}
	source := "sheets:" + c.spreadsheetID
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return core.Table{}, &core.IngestionError{Source: source, Err: fmt.Errorf("read %s: %w", c.readRange, err)}
	}
	if len(resp.Values) == 0 {
		return core.Table{}, &core.IngestionError{Source: source, Err: errors.New("empty range: no header row")}
	}
	slog.DebugContext(ctx, "Fetched spreadsheet range",
		"spreadsheet_id", c.spreadsheetID,
		"range", c.readRange,
		"rows", len(resp.Values))
	return tableFromValues(resp.Values), nil
}
