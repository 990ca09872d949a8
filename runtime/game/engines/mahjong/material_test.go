package mahjong

import (
	"errors"
	"testing"
)

func TestParseMeld_Normalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"m055=", "m505="},
		{"m505=", "m505="},
		{"p0555", "p5550"},
		{"p0555=", "p5505="},
		{"s6-45", "s456-"},
		{"s40-6", "s40-6"},
		{"m1-23", "m1-23"},
		{"m111+1", "m111+1"},
		{"z7777", "z7777"},
		{"z111=", "z111="},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			m, err := ParseMeld(c.in)
			if err != nil {
				t.Fatalf("ParseMeld(%q): %v", c.in, err)
			}
			if got := m.String(); got != c.want {
				t.Fatalf("ParseMeld(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestParseMeld_Invalid(t *testing.T) {
	for _, in := range []string{"", "m", "m12-", "m123=", "m135-", "z123-", "z888=", "z0000", "m11=1-", "x111="} {
		if _, err := ParseMeld(in); !errors.Is(err, ErrMeldFormat) {
			t.Errorf("ParseMeld(%q) err = %v, want ErrMeldFormat", in, err)
		}
	}
}

func TestMeldKinds(t *testing.T) {
	cases := []struct {
		in                                    string
		run, triplet, quad, concealed, added bool
	}{
		{"m1-23", true, false, false, false, false},
		{"p505=", false, true, false, false, false},
		{"s5550", false, false, true, true, false},
		{"z1111+", false, false, true, false, false},
		{"m111+1", false, false, true, false, true},
	}
	for _, c := range cases {
		m := MustMeld(c.in)
		if m.IsRun() != c.run || m.IsTriplet() != c.triplet || m.IsQuad() != c.quad ||
			m.IsConcealedQuad() != c.concealed || m.IsAddedQuad() != c.added {
			t.Errorf("%s: run=%v triplet=%v quad=%v concealed=%v added=%v", c.in,
				m.IsRun(), m.IsTriplet(), m.IsQuad(), m.IsConcealedQuad(), m.IsAddedQuad())
		}
	}
	if ct, ok := MustMeld("s40-6").ClaimedTile(); !ok || ct != MustTile("s0") {
		t.Errorf("claimed tile of s40-6 = %v %v", ct, ok)
	}
}

func TestParseTile(t *testing.T) {
	if tile := MustTile("p0"); !tile.IsRedFive() || tile.Rank() != 5 || tile.Normal() != MustTile("p5") {
		t.Errorf("p0 parsed as %+v", tile)
	}
	if tile, err := ParseTile("_"); err != nil || !tile.IsHidden() {
		t.Errorf("hidden tile: %v %v", tile, err)
	}
	for _, in := range []string{"z0", "z8", "m", "q1", "m10"} {
		if _, err := ParseTile(in); !errors.Is(err, ErrTileFormat) {
			t.Errorf("ParseTile(%q) err = %v", in, err)
		}
	}
}

func TestDoraFromIndicator(t *testing.T) {
	cases := map[string]string{
		"m9": "m1", "m0": "m6", "p5": "p6", "s1": "s2",
		"z4": "z1", "z1": "z2", "z7": "z5", "z5": "z6",
	}
	for in, want := range cases {
		if got := DoraFromIndicator(MustTile(in)); got != MustTile(want) {
			t.Errorf("dora of %s = %s, want %s", in, got, want)
		}
	}
}

func TestParseClaimAndDiscard(t *testing.T) {
	c, err := ParseClaim("m0=")
	if err != nil || c.Tile != MustTile("m0") || c.From != DirAcross || c.From.Offset() != 2 {
		t.Fatalf("ParseClaim(m0=) = %+v, %v", c, err)
	}
	if _, err := ParseClaim("m1"); !errors.Is(err, ErrTileFormat) {
		t.Errorf("claim without direction: %v", err)
	}
	d, err := ParseDiscard("s7_*")
	if err != nil || !d.Drawn || !d.Riichi || d.String() != "s7_*" {
		t.Fatalf("ParseDiscard(s7_*) = %+v, %v", d, err)
	}
	if _, err := ParseDiscard("s7*_"); err == nil {
		t.Errorf("markers out of order should fail")
	}
}
