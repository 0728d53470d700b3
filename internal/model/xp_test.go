package model

import "testing"

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{1, 1},
		{999, 1},
		{1000, 2},
		{1999, 2},
		{2000, 3},
		{2550, 3},
		{10000, 11},
		{-50, 1},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestTierForLevel(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{1, "Bronze"},
		{4, "Bronze"},
		{5, "Silver"},
		{9, "Silver"},
		{10, "Gold"},
		{19, "Gold"},
		{20, "Platinum"},
		{34, "Platinum"},
		{35, "Diamond"},
		{100, "Diamond"},
	}
	for _, c := range cases {
		if got := TierForLevel(c.level); got != c.want {
			t.Errorf("TierForLevel(%d) = %q, want %q", c.level, got, c.want)
		}
	}
}

func TestDefaultProfileLevelConsistent(t *testing.T) {
	p := DefaultProfile()
	if p.Level != LevelForXP(p.XP) {
		t.Fatalf("default profile level %d inconsistent with xp %d", p.Level, p.XP)
	}
}
