// Package validate applies the fixed six-rule checklist that every
// persisted Record must satisfy, in the order the rules are listed in
// §4.4: malformed symbol, price range, volume, side, type, timestamp.
package validate

import (
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/NikhilTalatule/MarketStream-ETL/models"
)

// symbolPattern is compiled once at package init rather than per call; Go's
// regexp package has no compile-time variant, so this is the closest
// equivalent to a once-initialized state machine.
var symbolPattern = regexp.MustCompile(`^[A-Z]{1,10}$`)

// Validate applies the six checks in order and returns on first failure.
func Validate(r models.Record) models.ValidationOutcome {
	if !symbolPattern.MatchString(r.Symbol) {
		return models.Rejected(fmt.Sprintf(
			"Invalid symbol: '%s' — must be 1-10 uppercase letters", r.Symbol))
	}
	if r.Price <= 0 || r.Price >= 1_000_000 {
		return models.Rejected(fmt.Sprintf(
			"Invalid price: %v — must be between 0 and 1,000,000", r.Price))
	}
	if r.Volume == 0 {
		return models.Rejected("Invalid volume: 0 — must be > 0")
	}
	if r.Side != 'B' && r.Side != 'S' && r.Side != 'N' {
		return models.Rejected(fmt.Sprintf(
			"Invalid side: '%c' — must be B, S, or N", r.Side))
	}
	if r.Type != 'M' && r.Type != 'L' && r.Type != 'I' {
		return models.Rejected(fmt.Sprintf(
			"Invalid type: '%c' — must be M, L, or I", r.Type))
	}
	if r.Timestamp <= 0 {
		return models.Rejected(fmt.Sprintf(
			"Invalid timestamp: %d — must be positive nanoseconds since epoch", r.Timestamp))
	}
	return models.Accepted()
}

// Batch runs Validate over records in order, returning the passing subset
// (a true subsequence: input order is preserved) and logging every reject
// with its trade_id and reason through log. Rejected records are not
// returned; their count is the difference between len(records) and the
// length of the returned slice.
func Batch(records []models.Record, log *logrus.Logger) []models.Record {
	clean := make([]models.Record, 0, len(records))
	rejected := 0

	for _, r := range records {
		outcome := Validate(r)
		if outcome.Ok {
			clean = append(clean, r)
			continue
		}
		rejected++
		log.WithFields(logrus.Fields{
			"trade_id": r.TradeID,
			"reason":   outcome.Reason,
		}).Warn("validator rejected trade")
	}

	log.WithFields(logrus.Fields{
		"valid":    len(clean),
		"rejected": rejected,
	}).Info("validation batch complete")

	return clean
}
