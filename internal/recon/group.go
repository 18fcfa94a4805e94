package recon

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradelog/internal/models"
)

// NoExpiration is the expiration-day sentinel for stock groups.
const NoExpiration = "none"

// GroupKey partitions a trade's fills by contract: strike, option type and
// expiration truncated to the calendar day.
type GroupKey struct {
	Strike        string `json:"strike,omitempty"`
	OptionType    string `json:"option_type,omitempty"`
	ExpirationDay string `json:"expiration_day"`
}

// ContractGroup holds the fills sharing one GroupKey, time-sorted ascending.
type ContractGroup struct {
	Key        GroupKey
	Strike     *decimal.Decimal
	OptionType string
	Expiration *time.Time
	Fills      []models.Execution
}

// KeyFor derives the grouping key for a fill.
func KeyFor(fill models.Execution) GroupKey {
	key := GroupKey{ExpirationDay: NoExpiration}
	if fill.Strike != nil {
		key.Strike = fill.Strike.String()
	}
	if fill.OptionType != nil {
		key.OptionType = strings.ToUpper(strings.TrimSpace(*fill.OptionType))
	}
	if fill.Expiration != nil {
		key.ExpirationDay = fill.Expiration.UTC().Format("2006-01-02")
	}
	return key
}

// GroupFills buckets fills by GroupKey. Groups come out in first-seen order;
// fills within a group are sorted by execution time ascending, which the
// classifier and pairer rely on.
func GroupFills(fills []models.Execution) []ContractGroup {
	index := map[GroupKey]int{}
	groups := make([]ContractGroup, 0, 4)
	for _, f := range fills {
		key := KeyFor(f)
		i, ok := index[key]
		if !ok {
			i = len(index)
			index[key] = i
			groups = append(groups, ContractGroup{
				Key:        key,
				Strike:     f.Strike,
				OptionType: key.OptionType,
				Expiration: expirationDay(f.Expiration),
			})
		}
		groups[i].Fills = append(groups[i].Fills, f)
	}
	for i := range groups {
		fills := groups[i].Fills
		sort.SliceStable(fills, func(a, b int) bool {
			return fills[a].ExecutedAt.Before(fills[b].ExecutedAt)
		})
	}
	return groups
}

func expirationDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
	return &day
}
