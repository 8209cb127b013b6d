// Package stocklevel classifies a quantity against its alert threshold.
package stocklevel

// Level of an item's stock relative to its minimum.
type Level string

const (
	Ok  Level = "ok"
	Low Level = "low"
	Out Level = "out"
)

// Evaluate returns Out when quantity <= 0, Low when 0 < quantity <= minimum,
// Ok otherwise. Pure function, no I/O.
func Evaluate(quantity, minimum int64) Level {
	switch {
	case quantity <= 0:
		return Out
	case quantity <= minimum:
		return Low
	default:
		return Ok
	}
}

// Alerting reports whether the level should produce a stock_alert event.
func (l Level) Alerting() bool {
	return l == Low || l == Out
}
