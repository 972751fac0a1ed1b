package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-wardrobe/pkg/catalog"
	"github.com/matst80/slask-wardrobe/pkg/types"
)

var productsFile = flag.String("products", "data/products.csv", "semicolon separated product export")
var bandsFile = flag.String("bands", "", "semicolon separated price bands (id;name;min_amount;max_amount;sort_order)")
var namesDir = flag.String("names", "", "directory of <dimension>.csv name tables (id;name)")
var outFile = flag.String("out", "data/catalog.json", "static catalog output")

type staticCatalog struct {
	Products   []catalog.Row            `json:"products"`
	PriceBands []catalog.Row            `json:"price_bands"`
	Names      map[string][]catalog.Row `json:"names"`
}

// converter turns csv exports into the static catalog file the service and seed command read.
func main() {
	flag.Parse()
	out := staticCatalog{
		Products:   []catalog.Row{},
		PriceBands: []catalog.Row{},
		Names:      map[string][]catalog.Row{},
	}

	records, err := readCsvFile(*productsFile)
	if err != nil {
		log.Fatalf("Could not read products: %v", err)
	}
	for _, rec := range headerRows(records) {
		out.Products = append(out.Products, productRow(rec))
	}

	if *bandsFile != "" {
		records, err = readCsvFile(*bandsFile)
		if err != nil {
			log.Fatalf("Could not read price bands: %v", err)
		}
		out.PriceBands = plainRows(records)
	}

	if *namesDir != "" {
		files, err := filepath.Glob(filepath.Join(*namesDir, "*.csv"))
		if err != nil {
			log.Fatalf("Could not list name tables: %v", err)
		}
		for _, file := range files {
			key := strings.TrimSuffix(filepath.Base(file), ".csv")
			dim, err := types.ParseDimension(key)
			if err != nil {
				log.Printf("Skipping %s: %v", file, err)
				continue
			}
			records, err := readCsvFile(file)
			if err != nil {
				log.Fatalf("Could not read %s: %v", file, err)
			}
			out.Names[string(dim)] = plainRows(records)
		}
	}

	data, err := sonic.ConfigDefault.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("Could not encode catalog: %v", err)
	}
	// Round trip through the parser so broken rows are reported here and not at startup.
	parsed, err := catalog.ParseStatic(data)
	if err != nil {
		log.Fatalf("Converted catalog does not parse: %v", err)
	}
	if skipped := len(out.Products) - len(parsed.Items); skipped > 0 {
		log.Printf("%d products without id will be skipped", skipped)
	}
	if err = os.WriteFile(*outFile, data, 0644); err != nil {
		log.Fatalf("Could not write %s: %v", *outFile, err)
	}
	log.Printf("Converted %d products, %d price bands, %d name tables to %s", len(parsed.Items), len(parsed.Bands), len(parsed.Names), *outFile)
}
