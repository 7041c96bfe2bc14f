// Package parser reads an exchange trade-record file in one shot and
// extracts typed Records via byte-level field slicing, spending exactly one
// allocation per Record (the symbol string).
package parser

import (
	"fmt"
	"os"
	"strconv"

	"github.com/NikhilTalatule/MarketStream-ETL/models"
)

// Record is the pipeline's trade-execution type; aliased here so parser's
// exported signatures read naturally without importing models everywhere.
type Record = models.Record

// ParseFile reads path in one I/O, discards the header line, and returns one
// Record per remaining non-empty line in file order.
func ParseFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: open/read %q: %w", path, err)
	}
	return Parse(data), nil
}

// Parse extracts Records from an in-memory buffer, discarding the first
// (header) line. It never returns an error: a malformed line yields a
// Record with zero-valued fields for whichever columns failed to parse,
// left for the validator to reject.
func Parse(data []byte) []Record {
	lines := splitLines(data)
	if len(lines) == 0 {
		return nil
	}
	lines = lines[1:] // header

	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		records = append(records, parseLine(line))
	}
	return records
}

// splitLines divides data on LF boundaries with no per-line allocation; a
// trailing CR on each slice is stripped by the caller's field cursor, not
// here, since CR may also appear as the final byte of the last field.
func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' {
			lines = append(lines, data[start:i])
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}

// cursor walks a line byte slice, yielding one comma-delimited field at a
// time with a trailing CR stripped.
type cursor struct {
	rest []byte
}

func (c *cursor) next() []byte {
	if len(c.rest) == 0 {
		return nil
	}
	idx := -1
	for i, b := range c.rest {
		if b == ',' {
			idx = i
			break
		}
	}
	var field []byte
	if idx < 0 {
		field = c.rest
		c.rest = nil
	} else {
		field = c.rest[:idx]
		c.rest = c.rest[idx+1:]
	}
	if n := len(field); n > 0 && field[n-1] == '\r' {
		field = field[:n-1]
	}
	return field
}

func parseLine(line []byte) Record {
	c := cursor{rest: line}

	var r Record
	r.TradeID, _ = strconv.ParseUint(string(c.next()), 10, 64)
	r.OrderID, _ = strconv.ParseUint(string(c.next()), 10, 64)
	r.Timestamp, _ = strconv.ParseInt(string(c.next()), 10, 64)
	r.Symbol = string(c.next())
	r.Price, _ = strconv.ParseFloat(string(c.next()), 64)

	volume, _ := strconv.ParseUint(string(c.next()), 10, 32)
	r.Volume = uint32(volume)

	if side := c.next(); len(side) > 0 {
		r.Side = side[0]
	} else {
		r.Side = 'N'
	}

	if typ := c.next(); len(typ) > 0 {
		r.Type = typ[0]
	} else {
		r.Type = 'M'
	}

	r.IsPro = string(c.next()) == "1"

	return r
}
