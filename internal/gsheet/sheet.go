package gsheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gsheet_records/internal/auth"
	"gsheet_records/internal/config"
	"gsheet_records/internal/sheets"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// DefaultOutputPath is where SaveSheet writes when no path is given.
const DefaultOutputPath = "data.json"

var (
	// ErrNoRanges is returned when a fetch is requested without any range.
	ErrNoRanges = errors.New("you must specify ranges to get data")

	// ErrNotAuthenticated is returned when data is requested before Authenticate.
	ErrNotAuthenticated = errors.New("sheet client is not authenticated")
)

// Option configures a Sheet
type Option func(*Sheet)

// WithAPI uses api instead of the Google client built by Authenticate.
func WithAPI(api sheets.SheetsAPI) Option {
	return func(s *Sheet) {
		s.api = api
	}
}

// WithAuthOptions passes options through to the credential manager.
func WithAuthOptions(opts ...auth.Option) Option {
	return func(s *Sheet) {
		s.authOptions = append(s.authOptions, opts...)
	}
}

// WithResilience sets the retry policy of the Google client.
func WithResilience(resilience config.ResilienceConfig) Option {
	return func(s *Sheet) {
		s.resilience = resilience
	}
}

// WithClientOptions passes options through to the Google API client.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(s *Sheet) {
		s.clientOptions = append(s.clientOptions, opts...)
	}
}

// Sheet authenticates against Google Sheets and fetches ranges either as
// plain records or as editable Ranges.
type Sheet struct {
	manager       *auth.Manager
	api           sheets.SheetsAPI
	resilience    config.ResilienceConfig
	authOptions   []auth.Option
	clientOptions []option.ClientOption
}

// New creates a Sheet client. Call Authenticate before fetching data unless
// an API was supplied with WithAPI.
func New(cfg auth.Config, opts ...Option) *Sheet {
	s := &Sheet{
		resilience: config.DefaultResilienceConfig,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.manager = auth.NewManager(cfg, s.authOptions...)

	return s
}

// Auth returns the credential manager
func (s *Sheet) Auth() *auth.Manager {
	return s.manager
}

// Authenticate resolves a token and prepares the Google Sheets client.
func (s *Sheet) Authenticate(ctx context.Context, clientID, clientSecret string) error {
	if err := s.manager.Authenticate(ctx, clientID, clientSecret); err != nil {
		return err
	}

	if s.api != nil {
		return nil
	}

	httpClient, err := s.manager.Client(ctx)
	if err != nil {
		return err
	}

	client, err := sheets.NewClient(ctx, httpClient, s.resilience, s.clientOptions...)
	if err != nil {
		return err
	}

	s.api = client

	return nil
}

// GetData fetches the ranges and formats each as header-keyed records.
func (s *Sheet) GetData(ctx context.Context, spreadsheetID string, ranges []string) (Data, error) {
	log.Info().
		Str("spreadsheet_id", spreadsheetID).
		Strs("ranges", ranges).
		Msg("Fetching spreadsheet data")

	grids, err := s.fetch(ctx, spreadsheetID, ranges)
	if err != nil {
		return nil, err
	}

	data := make(Data, 0, len(ranges))
	for i, name := range ranges {
		data = append(data, RangeData{
			Range:   name,
			Records: sheets.FormatRecords(grids[i]),
		})
	}

	return data, nil
}

// GetRanges fetches the ranges and wraps each in an editable Range.
func (s *Sheet) GetRanges(ctx context.Context, spreadsheetID string, ranges []string) (Ranges, error) {
	log.Info().
		Str("spreadsheet_id", spreadsheetID).
		Strs("ranges", ranges).
		Msg("Fetching ranges")

	grids, err := s.fetch(ctx, spreadsheetID, ranges)
	if err != nil {
		return nil, err
	}

	result := make(Ranges, 0, len(ranges))
	for i, name := range ranges {
		rng, err := sheets.NewRange(spreadsheetID, name, grids[i], s.api)
		if err != nil {
			return nil, err
		}
		result = append(result, rng)
	}

	return result, nil
}

// GetRange fetches a single editable range.
func (s *Sheet) GetRange(ctx context.Context, spreadsheetID, name string) (*sheets.Range, error) {
	ranges, err := s.GetRanges(ctx, spreadsheetID, []string{name})
	if err != nil {
		return nil, err
	}

	return ranges[0], nil
}

// SaveSheet fetches the ranges as records and writes them to outputPath
// (DefaultOutputPath when empty).
func (s *Sheet) SaveSheet(ctx context.Context, spreadsheetID string, ranges []string, outputPath string) error {
	data, err := s.GetData(ctx, spreadsheetID, ranges)
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = DefaultOutputPath
	}

	return SaveData(data, outputPath)
}

// SaveData writes data as JSON to path, replacing any existing file.
func SaveData(data Data, path string) error {
	outputPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}

	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".gsheet-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(b); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	log.Info().
		Str("path", outputPath).
		Int("ranges", len(data)).
		Msg("Data saved")

	return nil
}

func (s *Sheet) fetch(ctx context.Context, spreadsheetID string, ranges []string) ([]sheets.Grid, error) {
	if len(ranges) == 0 {
		return nil, ErrNoRanges
	}

	if s.api == nil {
		return nil, ErrNotAuthenticated
	}

	grids, err := s.api.BatchGet(ctx, spreadsheetID, ranges)
	if err != nil {
		if !errors.Is(err, sheets.ErrRemoteRead) {
			err = fmt.Errorf("%w: %w", sheets.ErrRemoteRead, err)
		}
		return nil, err
	}

	if len(grids) != len(ranges) {
		return nil, fmt.Errorf("%w: requested %d ranges, received %d", sheets.ErrRemoteRead, len(ranges), len(grids))
	}

	return grids, nil
}
