package calculator

import (
	"encoding/json"
	"math"

	"smart-calculator/internal/history"
)

// Number is a float64 that encodes non-finite values as JSON null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// CalcRequest is the JSON body for POST /calculator/{operation}.
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse is the JSON response for a single calculation.
type CalcResponse struct {
	Operation  Operation `json:"operation"`
	A          float64   `json:"a"`
	B          float64   `json:"b"`
	Expression string    `json:"expression"`
	Result     Number    `json:"result"`
	ResultText string    `json:"result_text"`
}

// HistoryEntry is one ledger record as returned by GET /calculator/history.
type HistoryEntry struct {
	Expression string `json:"expression"`
	Result     Number `json:"result"`
	ResultText string `json:"result_text"`
	Display    string `json:"display"`
}

// HistoryResponse lists the session ledger newest first and the last
// calculation, when one exists.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Last    *HistoryEntry  `json:"last,omitempty"`
}

func newHistoryEntry(rec history.Record) HistoryEntry {
	return HistoryEntry{
		Expression: rec.Expression,
		Result:     Number(rec.Result),
		ResultText: history.FormatNumber(rec.Result),
		Display:    rec.String(),
	}
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    Operation `json:"op"`    // any supported operation
	Value float64   `json:"value"` // the operand applied with the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial float64     `json:"initial"` // starting value
	Steps   []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial float64       `json:"initial"`
	Steps   []ChainResult `json:"steps"`
	Result  Number        `json:"result"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op         Operation `json:"op"`
	Value      float64   `json:"value"`
	Expression string    `json:"expression"`
	Result     Number    `json:"result"`
}
