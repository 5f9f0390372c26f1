// Command catalogcheck validates a catalog document and prints an operator report.
// It exits 1 when any product fails structural validation.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dwikikusuma/rajah-storefront/internal/catalog/infra/jsonfile"
	"github.com/dwikikusuma/rajah-storefront/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	file := pflag.StringP("file", "f", cfg.CatalogFile, "catalog JSON (empty: bundled catalog)")
	asJSON := pflag.Bool("json", false, "print the report as JSON")
	pflag.Parse()

	repo, err := jsonfile.Open(*file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "catalogcheck:", err)
		os.Exit(2)
	}

	r := check(repo)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(r)
	} else {
		r.WriteText(os.Stdout)
	}

	if !r.OK() {
		os.Exit(1)
	}
}
