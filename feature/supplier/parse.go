package supplier

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"marketsync/core/catalog"
)

// Column headers recognized in the stock sheet. The supplier ships Russian
// headers; English aliases keep test fixtures readable.
var (
	skuHeaders      = []string{"код", "sku", "code"}
	quantityHeaders = []string{"количество", "quantity"}
	priceHeaders    = []string{"цена", "price"}
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// extractRecords unpacks the feed archive and parses the first CSV entry
// into raw records.
func extractRecords(archiveData []byte) ([]catalog.RawRecord, error) {
	reader, err := zip.NewReader(bytes.NewReader(archiveData), int64(len(archiveData)))
	if err != nil {
		return nil, fmt.Errorf("failed to open feed archive: %w", err)
	}

	for _, f := range reader.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open feed entry %s: %w", f.Name, err)
		}
		defer rc.Close()
		return parseSheet(rc)
	}

	return nil, fmt.Errorf("feed archive contains no csv stock sheet")
}

// parseSheet reads the semicolon-separated stock sheet. The header row
// locates the sku, quantity and price columns; rows short of the widest
// needed column are skipped as malformed.
func parseSheet(r io.Reader) ([]catalog.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse stock sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("stock sheet is empty")
	}

	skuCol, err := findColumn(rows[0], skuHeaders)
	if err != nil {
		return nil, err
	}
	qtyCol, err := findColumn(rows[0], quantityHeaders)
	if err != nil {
		return nil, err
	}
	priceCol, err := findColumn(rows[0], priceHeaders)
	if err != nil {
		return nil, err
	}

	maxCol := skuCol
	if qtyCol > maxCol {
		maxCol = qtyCol
	}
	if priceCol > maxCol {
		maxCol = priceCol
	}

	records := make([]catalog.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) <= maxCol {
			continue
		}
		records = append(records, catalog.RawRecord{
			SKU:      strings.TrimSpace(row[skuCol]),
			Quantity: mapQuantity(row[qtyCol]),
			Price:    mapPrice(row[priceCol]),
		})
	}
	return records, nil
}

func findColumn(header []string, names []string) (int, error) {
	for i, cell := range header {
		cell = strings.ToLower(strings.TrimSpace(cell))
		for _, name := range names {
			if cell == name {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("stock sheet is missing a %q column", names[0])
}

// mapQuantity resolves the feed's availability sentinels: ">10" means
// ample stock, "1" means the last display unit and counts as none.
func mapQuantity(raw string) string {
	switch strings.TrimSpace(raw) {
	case ">10":
		return "100"
	case "1":
		return "0"
	default:
		return strings.TrimSpace(raw)
	}
}

// mapPrice reduces a display price like "5'990.00 руб." to "5990". The
// fractional part is truncated, matching the marketplace's integer price
// unit. Strings with no digits pass through for the normalizer to reject.
func mapPrice(raw string) string {
	integer := strings.SplitN(strings.TrimSpace(raw), ".", 2)[0]
	digits := nonDigits.ReplaceAllString(integer, "")
	if digits == "" {
		return strings.TrimSpace(raw)
	}
	return digits
}
