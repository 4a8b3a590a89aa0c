// Package markets provides the prop-market catalog and player-name
// normalization used to key projections.
package markets

import (
	"strings"
	"unicode"

	"github.com/phenomenon0/propvalue/pkg/value"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MLBMarkets is the closed set of supported MLB prop markets.
var MLBMarkets = []value.MarketType{
	value.PlayerHits,
	value.PlayerRuns,
	value.PlayerRBI,
	value.PlayerHomeRuns,
	value.PlayerStolenBases,
	value.PlayerStrikeouts,
	value.PlayerWalks,
	value.PlayerTotalBases,
	value.PlayerHitsRunsRBI,
}

// NBAMarkets is the closed set of supported NBA prop markets.
var NBAMarkets = []value.MarketType{
	value.PlayerPoints,
	value.PlayerRebounds,
	value.PlayerAssists,
}

var byCode = buildIndex()

func buildIndex() map[string]value.MarketType {
	idx := make(map[string]value.MarketType)
	for _, set := range [][]value.MarketType{MLBMarkets, NBAMarkets} {
		for _, m := range set {
			idx[string(m)] = m
		}
	}
	return idx
}

// ParseMarket resolves a stat code like "H" or "PTS" to its MarketType.
func ParseMarket(code string) (value.MarketType, bool) {
	m, ok := byCode[strings.ToUpper(strings.TrimSpace(code))]
	return m, ok
}

// NormalizePlayerName canonicalizes a player name for projection lookup:
// lowercased, accents stripped, punctuation dropped, whitespace collapsed.
//
// "Ronald Acuña Jr." → "ronald acuna jr"
func NormalizePlayerName(name string) string {
	name = strings.ToLower(name)

	// Strip combining marks (accents).
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	name, _, _ = transform.String(t, name)

	// Drop punctuation like the period in "jr."
	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' {
			return r
		}
		return -1
	}, name)

	return strings.Join(strings.Fields(name), " ")
}

// ProjectionKey builds the lookup key for a (player, market) projection.
func ProjectionKey(playerName string, market value.MarketType) string {
	return NormalizePlayerName(playerName) + "|" + string(market)
}
