package markets

import (
	"testing"

	"github.com/phenomenon0/propvalue/pkg/value"
)

func TestParseMarket(t *testing.T) {
	cases := []struct {
		in   string
		want value.MarketType
		ok   bool
	}{
		{"H", value.PlayerHits, true},
		{"h", value.PlayerHits, true},
		{" pts ", value.PlayerPoints, true},
		{"H+R+RBI", value.PlayerHitsRunsRBI, true},
		{"K", value.PlayerStrikeouts, true},
		{"XYZ", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseMarket(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("ParseMarket(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestNormalizePlayerName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Ronald Acuña Jr.", "ronald acuna jr"},
		{"  Mookie   Betts ", "mookie betts"},
		{"Jazz Chisholm Jr.", "jazz chisholm jr"},
		{"José Ramírez", "jose ramirez"},
		{"O'Neil Cruz", "oneil cruz"},
		{"Ha-Seong Kim", "ha-seong kim"},
	}
	for _, c := range cases {
		if got := NormalizePlayerName(c.in); got != c.want {
			t.Errorf("NormalizePlayerName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestProjectionKey(t *testing.T) {
	a := ProjectionKey("Ronald Acuña Jr.", value.PlayerHits)
	b := ProjectionKey("ronald acuna jr", value.PlayerHits)
	if a != b {
		t.Errorf("keys differ for equivalent names: %q vs %q", a, b)
	}
	c := ProjectionKey("Ronald Acuña Jr.", value.PlayerRuns)
	if a == c {
		t.Error("keys should differ across markets")
	}
}

func TestMarketSetsAreDisjointCatalog(t *testing.T) {
	seen := make(map[value.MarketType]bool)
	for _, set := range [][]value.MarketType{MLBMarkets, NBAMarkets} {
		for _, m := range set {
			if seen[m] {
				t.Errorf("market %s appears twice in catalog", m)
			}
			seen[m] = true
		}
	}
}
