// Package recon turns a raw, unordered stream of broker fills into matched
// round-trip trades with realized profit-and-loss. The whole package is a
// pure transformation: identical inputs always produce identical outputs,
// nothing here touches I/O or mutates its inputs.
package recon

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"
	"time"

	"tradelog/internal/models"
)

// Reconcile runs the full pipeline for one trade: normalize, group, split
// adjust, classify, pair, resolve, aggregate, roll up. splitsBySymbol may be
// nil when no corporate actions apply.
func Reconcile(executions []models.Execution, splitsBySymbol map[string][]models.StockSplit, opts Options) Result {
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	fills := NormalizeFills(executions)
	groups := GroupFills(fills)

	result := Result{TradeID: opts.TradeID}
	classified := make([]ClassifiedFill, 0, len(fills))
	for i := range groups {
		groups[i].Fills = adjustGroupFills(groups[i].Fills, splitsBySymbol)
		groupClassified := ClassifyFills(groups[i].Fills)
		pair, warnings := MatchLots(groups[i], groupClassified)
		result.Pairs = append(result.Pairs, pair)
		result.Warnings = append(result.Warnings, warnings...)
		result.Rows = append(result.Rows, AggregateActions(groups[i], groupClassified)...)
		classified = append(classified, groupClassified...)
	}
	SortRows(result.Rows)

	// Direction tier two wants the chronologically first opening fill of the
	// whole trade, not of whichever group happened to come first.
	sort.SliceStable(classified, func(a, b int) bool {
		return classified[a].ExecutedAt.Before(classified[b].ExecutedAt)
	})

	underlying := ""
	if len(fills) > 0 {
		underlying = fills[0].Underlying
	}
	category := ResolveCategory(fills, len(groups))
	direction := ResolveDirection(opts.StrategyName, classified)
	result.Summary = BuildSummary(opts, now, underlying, category, direction, result.Pairs, result.Rows)
	return result
}

// Fingerprint hashes the identity of a reconciliation input set: execution
// ids plus the split rows that could affect them. Two calls with the same
// fingerprint are guaranteed the same Result, which is what makes the memo
// cache safe.
func Fingerprint(executions []models.Execution, splitsBySymbol map[string][]models.StockSplit) string {
	h := sha256.New()

	ids := make([]uint64, 0, len(executions))
	for _, e := range executions {
		ids = append(ids, e.ID)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	var buf [8]byte
	for _, id := range ids {
		binary.BigEndian.PutUint64(buf[:], id)
		h.Write(buf[:])
	}

	symbols := make([]string, 0, len(splitsBySymbol))
	for symbol := range splitsBySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	for _, symbol := range symbols {
		h.Write([]byte(symbol))
		for _, s := range splitsBySymbol[symbol] {
			binary.BigEndian.PutUint64(buf[:], uint64(s.SplitDate.Unix()))
			h.Write(buf[:])
			h.Write([]byte(s.AdjustmentFactor.String()))
			h.Write([]byte(s.PriceFactor.String()))
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
