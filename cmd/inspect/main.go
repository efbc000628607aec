// Command inspect queries a proposal log SQLite file written by cmd/propose
// with --log, printing recent proposals as a table or as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/corvid-labs/segforge/internal/proposallog"
)

// #region main
func main() {
	dbPath := flag.String("db", "", "path to a proposal log SQLite file (required)")
	last := flag.Int("last", 20, "show N most recent rows")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/proposals.sqlite [--last N] [--json]")
		os.Exit(2)
	}

	store, err := proposallog.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	rows, err := store.Recent(*last)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query recent: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no proposals found")
		return
	}

	if *jsonOut {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "marshal json: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}
	printTable(rows)
}

// #endregion main

// #region output
func printTable(rows []proposallog.Row) {
	fmt.Printf("%-10s  %-28s  %8s  %5s  %5s  %s\n",
		"Sentence", "Operator", "ModCount", "Start", "End", "Created")
	fmt.Printf("%-10s  %-28s  %8s  %5s  %5s  %s\n",
		"----------", "----------------------------", "--------", "-----", "-----", "--------------------")

	for _, r := range rows {
		fmt.Printf("%-10d  %-28s  %8d  %5d  %5d  %s\n",
			r.SentenceIndex, r.OperatorTag, r.ModificationCount, r.SpanStart, r.SpanEnd, r.CreatedAt)
	}
}

// #endregion output
