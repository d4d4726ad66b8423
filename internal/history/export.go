package history

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"
)

var CSVHeader = []string{"k", "id", "variant", "inputs", "ok", "value", "kind", "message", "created_at"}

// WriteCSV выгружает записи в CSV в переданном порядке.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for i, rec := range recs {
		value := ""
		if rec.OK {
			value = fmtFloat(rec.Value)
		}
		if err := cw.Write([]string{
			strconv.Itoa(i + 1),
			rec.ID,
			string(rec.Variant),
			strings.Join(rec.Inputs, " "),
			strconv.FormatBool(rec.OK),
			value,
			rec.Kind,
			rec.Message,
			rec.CreatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 16, 64)
}
