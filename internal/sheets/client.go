package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gsheet_records/internal/config"

	gax "github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ValueInputUserEntered makes the service parse written values as if a user
// typed them: formulas evaluate and numeric strings become numbers.
const ValueInputUserEntered = "USER_ENTERED"

// Client implements the SheetsAPI interface using Google Sheets API.
//
// Note: the Google Sheets API uses [][]interface{} for cell values. This is
// the only layer where interface{} appears; everything above it sees Grid.
type Client struct {
	service    *sheets.Service
	resilience config.ResilienceConfig
}

// NewClient creates a Google Sheets client that authenticates with the given
// HTTP client. Additional options (e.g. option.WithEndpoint) are passed through.
func NewClient(ctx context.Context, httpClient *http.Client, resilience config.ResilienceConfig, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:    service,
		resilience: resilience,
	}, nil
}

// BatchGet reads the given ranges in a single request.
func (c *Client) BatchGet(ctx context.Context, spreadsheetID string, ranges []string) ([]Grid, error) {
	var resp *sheets.BatchGetValuesResponse

	err := invoke(ctx, c.resilience.SheetRead, "batch_get", func(ctx context.Context) error {
		var err error
		resp, err = c.service.Spreadsheets.Values.BatchGet(spreadsheetID).
			Ranges(ranges...).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read ranges: %w", ErrRemoteRead, err)
	}

	if len(resp.ValueRanges) != len(ranges) {
		return nil, fmt.Errorf("%w: requested %d ranges, received %d", ErrRemoteRead, len(ranges), len(resp.ValueRanges))
	}

	grids := make([]Grid, 0, len(resp.ValueRanges))
	for _, vr := range resp.ValueRanges {
		grids = append(grids, toGrid(vr.Values, vr.MajorDimension))
	}

	log.Debug().
		Str("spreadsheet_id", spreadsheetID).
		Strs("ranges", ranges).
		Msg("Fetched ranges")

	return grids, nil
}

// Update overwrites the range with the grid using USER_ENTERED semantics.
func (c *Client) Update(ctx context.Context, spreadsheetID, range_ string, grid Grid) error {
	valueRange := &sheets.ValueRange{
		Range:          range_,
		MajorDimension: grid.MajorDimension,
		Values:         toValues(grid),
	}

	err := invoke(ctx, c.resilience.SheetWrite, "update", func(ctx context.Context) error {
		_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, range_, valueRange).
			ValueInputOption(ValueInputUserEntered).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: failed to update range: %w", ErrRemoteWrite, err)
	}

	return nil
}

// invoke runs call through gax.Invoke, giving each attempt its own timeout.
func invoke(ctx context.Context, cfg config.RetryConfig, op string, call func(context.Context) error) error {
	return gax.Invoke(ctx, func(ctx context.Context, _ gax.CallSettings) error {
		if cfg.Timeout <= 0 {
			return call(ctx)
		}

		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		return call(ctx)
	}, gax.WithRetry(func() gax.Retryer {
		return newRetryer(cfg, op)
	}))
}

// backoff maps a RetryConfig onto gax. Zero fields fall back to the gax
// defaults (1s initial, 30s max, multiplier 2).
func backoff(cfg config.RetryConfig) gax.Backoff {
	return gax.Backoff{
		Initial:    cfg.InitialWait,
		Max:        cfg.MaxWait,
		Multiplier: cfg.Multiplier,
	}
}

// retryer caps a gax.OnErrorFunc retryer at cfg.Attempts() calls.
type retryer struct {
	base     gax.Retryer
	op       string
	attempts int
	max      int
}

func newRetryer(cfg config.RetryConfig, op string) *retryer {
	return &retryer{
		base: gax.OnErrorFunc(backoff(cfg), isRetryable),
		op:   op,
		max:  cfg.Attempts(),
	}
}

func (r *retryer) Retry(err error) (time.Duration, bool) {
	r.attempts++
	if r.attempts >= r.max {
		return 0, false
	}

	wait, ok := r.base.Retry(err)
	if !ok {
		return 0, false
	}

	log.Warn().
		Err(err).
		Str("operation", r.op).
		Int("attempt", r.attempts).
		Dur("wait", wait).
		Msg("Sheets request failed, retrying")

	return wait, true
}

func isRetryable(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}
