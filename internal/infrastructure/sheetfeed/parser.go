package sheetfeed

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"fantasy-war-room/internal/domain/player"
)

// Column names expected in the roster sheet export.
const (
	colName       = "Player"
	colPosition   = "FantPos"
	colADP        = "ADP"
	colProjection = "Proj"
	colHistAvg    = "Media_4_Anos"
	colTier       = "Tier"
)

// ParseRoster reads a CSV roster export. Columns are located by header name,
// so the sheet can reorder or append columns freely. Rows without a player
// name are skipped; malformed numeric cells degrade to zero rather than
// failing the whole feed.
func ParseRoster(r io.Reader) ([]player.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read roster header")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols[colName]; !ok {
		return nil, errors.Newf("roster feed missing %q column", colName)
	}

	var records []player.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read roster row")
		}

		name := strings.TrimSpace(field(row, cols, colName))
		if name == "" {
			continue
		}

		records = append(records, player.Record{
			Name:          name,
			Position:      player.ParsePosition(field(row, cols, colPosition)),
			ADP:           player.ParseDecimal(field(row, cols, colADP)),
			Projection:    player.ParseDecimal(field(row, cols, colProjection)),
			HistoricalAvg: player.ParseDecimal(field(row, cols, colHistAvg)),
			Tier:          player.ParseTier(field(row, cols, colTier)),
		})
	}

	return records, nil
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
