package hsnseed

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"invonest/internal/port"
)

// DefaultBatchSize is the number of rows per INSERT statement.
const DefaultBatchSize = 500

// EffectiveFrom is the date GST came into force; every seeded rate applies from it.
const EffectiveFrom = "2017-07-01"

// WriteSQL writes entries as a transaction of batched multi-row INSERTs that
// can be re-run safely.
func WriteSQL(w io.Writer, entries []port.HSNEntry, batchSize int) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "-- HSN/SAC code seed data generated from the GST rate workbook.")
	fmt.Fprintf(bw, "-- %d entries in batches of %d.\n", len(entries), batchSize)
	fmt.Fprintln(bw, "BEGIN;")
	fmt.Fprintln(bw)

	for i := 0; i < len(entries); i += batchSize {
		end := min(i+batchSize, len(entries))
		writeBatch(bw, entries[i:end])
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "COMMIT;")
	return bw.Flush()
}

func writeBatch(w io.Writer, batch []port.HSNEntry) {
	var b strings.Builder
	b.WriteString("INSERT INTO hsn_codes (code, description, gst_rate, condition_desc, parent_code, effective_from) VALUES\n")
	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', %s, '%s', %s, '%s')",
			escapeSQL(e.Code), escapeSQL(e.Description), e.GSTRate.StringFixed(2),
			escapeSQL(e.ConditionDesc), parentCode(e.Code), EffectiveFrom)
	}
	b.WriteString("\nON CONFLICT (code, gst_rate, condition_desc, effective_from) DO NOTHING;\n")
	_, _ = io.WriteString(w, b.String())
}

// parentCode is the 4-digit heading of a longer code, or NULL.
func parentCode(code string) string {
	if len(code) > 4 {
		return "'" + code[:4] + "'"
	}
	return "NULL"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
