package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Source reads the interface sheet the project list is synced from.
type Source struct {
	service       *gsheets.Service
	spreadsheetID string
	worksheet     string
}

// NewSource builds a read-only Sheets client from a service-account
// credentials file.
func NewSource(ctx context.Context, credentialsFile, spreadsheetID, worksheet string) (*Source, error) {
	service, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to build sheets client: %w", err)
	}
	return &Source{
		service:       service,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
	}, nil
}

// Fetch returns the worksheet as a grid of strings, header row first.
// Blank cells come back as empty strings.
func (s *Source) Fetch(ctx context.Context) ([][]string, error) {
	resp, err := s.service.Spreadsheets.Values.
		Get(s.spreadsheetID, s.worksheet).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading worksheet %q failed: %w", s.worksheet, err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprintf("%v", cell))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}
