package mahjong

import (
	"errors"
	"testing"
)

func TestAllowRiichi(t *testing.T) {
	cases := []struct {
		name     string
		hand     string
		wallLeft int
		points   int
		mutate   func(r *Rule)
		want     string
	}{
		{"tenpai", "m123p456s789z11223", 70, 25000, nil, "z3_*"},
		{"short wall", "m123p456s789z11223", 3, 25000, nil, ""},
		{"short wall allowed", "m123p456s789z11223", 3, 25000,
			func(r *Rule) { r.RiichiWithoutDraw = true }, "z3_*"},
		{"not enough points", "m123p456s789z11223", 70, 900, nil, ""},
		{"no bust", "m123p456s789z11223", 70, 900,
			func(r *Rule) { r.BustEnds = false }, "z3_*"},
		{"already riichi", "m123p456s789z11223*", 70, 25000, nil, ""},
		{"open hand", "m123p456z11223,s789-", 70, 25000, nil, ""},
		{"far from tenpai", "m147p258s369z12345", 70, 25000, nil, ""},
		{"no drawn tile", "m123p456s789z1122", 70, 25000, nil, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := DefaultRule()
			if c.mutate != nil {
				c.mutate(&r)
			}
			got := discardStrings(AllowRiichi(&r, MustHand(c.hand), c.wallLeft, c.points))
			if got != c.want {
				t.Fatalf("AllowRiichi = %q, want %q", got, c.want)
			}
		})
	}
}

func TestAllowWin(t *testing.T) {
	r := DefaultRule()
	sc := NewScoringContext(&r)

	ok, err := AllowWin(&r, MustHand("m345567p234s33789"), nil, sc, true)
	if err != nil || !ok {
		t.Fatalf("pinfu tsumo: %v, %v", ok, err)
	}

	open := MustHand("m123p456s78z11,m789-")
	ron := mustClaim(t, "s9-")
	if ok, _ := AllowWin(&r, open, ron, sc, true); ok {
		t.Fatal("open hand without yaku won")
	}
	last := *sc
	last.Haitei = 2
	if ok, _ := AllowWin(&r, open, ron, &last, true); !ok {
		t.Fatal("houtei should give the hand a yaku")
	}

	wait := MustHand("m345567p234s3378")
	if ok, _ := AllowWin(&r, wait, mustClaim(t, "s9="), sc, false); ok {
		t.Fatal("furiten hand won by ron")
	}
	if ok, _ := AllowWin(&r, wait, mustClaim(t, "s5="), sc, true); ok {
		t.Fatal("won on a tile that does not complete the hand")
	}
	if _, err := AllowWin(&r, wait, &Claim{Tile: MustTile("s9")}, sc, true); !errors.Is(err, ErrTileFormat) {
		t.Fatalf("claim without direction: %v", err)
	}
	if ok, _ := AllowWin(&r, MustHand("m123p456s789z11,z555=,"), nil, sc, true); ok {
		t.Fatal("won right after a call")
	}
}

func TestAllowAbortiveDraw(t *testing.T) {
	r := DefaultRule()
	nine := MustHand("m12349p19s19z12345")
	if !AllowAbortiveDraw(&r, nine, true) {
		t.Fatal("eleven terminal kinds should allow the draw")
	}
	if AllowAbortiveDraw(&r, nine, false) {
		t.Fatal("only on the first draw")
	}
	if AllowAbortiveDraw(&r, MustHand("m123p456s789z11223"), true) {
		t.Fatal("five kinds should not allow the draw")
	}
	off := DefaultRule()
	off.AbortiveDraws = false
	if AllowAbortiveDraw(&off, nine, true) {
		t.Fatal("abortive draws disabled")
	}
}

func TestAllowNoTenpaiDeclaration(t *testing.T) {
	r := DefaultRule()
	r.DeclareNoTenpai = true
	tenpai := MustHand("m123p456s789z1122")

	if !AllowNoTenpaiDeclaration(&r, tenpai, 0) {
		t.Fatal("tenpai hand at exhaustive draw")
	}
	if AllowNoTenpaiDeclaration(&r, tenpai, 1) {
		t.Fatal("wall not exhausted")
	}
	if AllowNoTenpaiDeclaration(&r, MustHand("m123p456s789z1234"), 0) {
		t.Fatal("noten hand has nothing to hide")
	}
	for _, s := range []string{"m123p456s789z1122*", "m123p456p789z1122*"} {
		if AllowNoTenpaiDeclaration(&r, MustHand(s), 0) {
			t.Fatalf("riichi hand %s allowed to hide tenpai", s)
		}
	}
	def := DefaultRule()
	if AllowNoTenpaiDeclaration(&def, tenpai, 0) {
		t.Fatal("declaration disabled by default")
	}
}
