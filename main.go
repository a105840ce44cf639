package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"gsheet_records/internal/app"
	"gsheet_records/internal/gsheet"
	"gsheet_records/internal/sheets"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	var ranges app.RangeList
	configFile := flag.String("config", "", "Path to a TOML configuration file")
	spreadsheet := flag.String("spreadsheet", "", "Spreadsheet ID or URL (defaults to SPREADSHEET_ID)")
	output := flag.String("out", gsheet.DefaultOutputPath, "Output file for fetched records")
	appendLine := flag.String("append", "", "Append a line to the range, e.g. 'name=Ana,age=30'")
	where := flag.String("where", "", "Select lines to update, e.g. 'name=Ana'")
	set := flag.String("set", "", "Values to write into the selected lines, e.g. 'age=31'")
	clientID := flag.String("client-id", "", "OAuth client ID (defaults to GOOGLE_CLIENT_ID)")
	clientSecret := flag.String("client-secret", "", "OAuth client secret (defaults to GOOGLE_CLIENT_SECRET)")
	flag.Var(&ranges, "range", "Range to fetch, e.g. 'Sheet1!A1:D' (repeatable)")
	flag.Parse()

	// Load configuration
	var config *app.Config
	var err error
	if *configFile != "" {
		config, err = app.LoadConfigFile(*configFile)
	} else {
		config, err = app.LoadConfig()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if *spreadsheet != "" {
		config.SpreadsheetID = *spreadsheet
	}
	if *clientID != "" {
		config.ClientID = *clientID
	}
	if *clientSecret != "" {
		config.ClientSecret = *clientSecret
	}

	spreadsheetID := gsheet.SpreadsheetID(config.SpreadsheetID)
	if spreadsheetID == "" {
		log.Fatal().Msg("A spreadsheet is required (-spreadsheet or SPREADSHEET_ID)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := gsheet.New(config.AuthConfig())
	if err := client.Authenticate(ctx, config.ClientID, config.ClientSecret); err != nil {
		log.Fatal().Err(err).Msg("Failed to authenticate")
	}

	switch {
	case *appendLine != "":
		values, err := app.ParseAssignments(*appendLine)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid -append")
		}

		err = editRange(ctx, client, spreadsheetID, ranges, func(rng *sheets.Range) int {
			line := rng.NewLine()
			for _, v := range values {
				line.SetValue(v.Key, v.Value)
			}
			return 1
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to append line")
		}

	case *set != "":
		match, err := app.ParseSelector(*where)
		if err != nil {
			log.Fatal().Err(err).Msg("-set requires a single -where key=value")
		}

		values, err := app.ParseAssignments(*set)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid -set")
		}

		err = editRange(ctx, client, spreadsheetID, ranges, func(rng *sheets.Range) int {
			lines := rng.Find(match.Key, match.Value)
			for _, line := range lines {
				for _, v := range values {
					line.SetValue(v.Key, v.Value)
				}
			}
			return len(lines)
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to update lines")
		}

	default:
		if err := client.SaveSheet(ctx, spreadsheetID, ranges, *output); err != nil {
			log.Fatal().Err(err).Msg("Failed to save sheet")
		}
	}
}

// editRange fetches the single requested range, applies edit and saves it
// when at least one line changed.
func editRange(ctx context.Context, client *gsheet.Sheet, spreadsheetID string, ranges app.RangeList, edit func(*sheets.Range) int) error {
	if len(ranges) != 1 {
		return fmt.Errorf("editing requires exactly one -range, got %d", len(ranges))
	}

	rng, err := client.GetRange(ctx, spreadsheetID, ranges[0])
	if err != nil {
		return err
	}

	changed := edit(rng)

	log.Info().
		Str("range", rng.Name()).
		Int("lines", changed).
		Msg("Edited range")

	if changed == 0 {
		return nil
	}

	return rng.Save(ctx)
}
