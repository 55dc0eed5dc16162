package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vwap/veganizer/pkg/ingest"
	"github.com/vwap/veganizer/pkg/lexicon"
	"github.com/vwap/veganizer/pkg/store"
)

func cmdIngest(args []string) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	source := fs.String("source", "", "adapter ID to ingest (e.g. curated-yaml)")
	file := fs.String("file", "", "path to the source payload")
	dbPath := fs.String("db", "ingredients.db", "path to the ingredient database")
	overlay := fs.String("lexicon-overlay", "", "optional lexicon overlay file")
	fs.Parse(args)

	// Run bookkeeping lives next to the ingredient database.
	sdb, err := ingest.OpenSourceDB(filepath.Join(filepath.Dir(*dbPath), "sources.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "open sources.db: %v\n", err)
		os.Exit(1)
	}
	defer sdb.Close()

	if err := sdb.Seed(ingest.All()); err != nil {
		fmt.Fprintf(os.Stderr, "seed sources: %v\n", err)
		os.Exit(1)
	}

	if *source == "" {
		fmt.Println("Available sources:")
		fmt.Println()
		sources, _ := sdb.ListSources()
		for _, src := range sources {
			last := "never run"
			if src.LastRun != nil {
				last = fmt.Sprintf("last run %s, %d inserted",
					time.Unix(*src.LastRun, 0).Format("2006-01-02"), src.Inserted)
			}
			fmt.Printf("  %-25s  %s  (%s)\n", src.AdapterID, src.Description, last)
		}
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  veganizer ingest --source <id> --file <path> [--db <path>]")
		return
	}

	a, err := ingest.Get(*source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\nAvailable sources:\n", err)
		for _, a := range ingest.All() {
			fmt.Fprintf(os.Stderr, "  %s\n", a.ID())
		}
		os.Exit(1)
	}
	if *file == "" {
		fmt.Fprintf(os.Stderr, "--file is required with --source\n")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open payload: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	records, err := a.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] parse: %v\n", a.ID(), err)
		os.Exit(1)
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	lex := lexicon.New()
	if *overlay != "" {
		if err := lex.Reload(*overlay); err != nil {
			fmt.Fprintf(os.Stderr, "load lexicon overlay: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	fmt.Printf("[%s] ingesting %d records...\n", a.ID(), len(records))
	res, err := ingest.NewPipeline(lex, st, slog.Default()).Run(ctx, records, a.Kind())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] ingest: %v\n", a.ID(), err)
		os.Exit(1)
	}
	if err := sdb.RecordRun(a.ID(), res); err != nil {
		fmt.Fprintf(os.Stderr, "[%s] record run: %v\n", a.ID(), err)
	}

	fmt.Printf("[%s] OK: processed %d, inserted %d, skipped %d, errors %d\n",
		a.ID(), res.Processed, res.Inserted, res.Skipped, res.Errors)
}
