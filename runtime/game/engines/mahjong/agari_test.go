package mahjong

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"jongcore/common/log"
)

func readingStrings(ds []Decomposition) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

func mustClaim(t *testing.T, s string) *Claim {
	t.Helper()
	c, err := ParseClaim(s)
	if err != nil {
		t.Fatalf("ParseClaim(%q): %v", s, err)
	}
	return &c
}

func TestDecompose(t *testing.T) {
	cases := []struct {
		name string
		hand string
		ron  string
		want []string
	}{
		{"honor triplet tsumo", "m123p456s789z11222", "", []string{"z11 m123 p456 s789 z222_!"}},
		{"honor triplet ron", "m123p456s789z1122", "z1=", []string{"z22 m123 p456 s789 z111=!"}},
		{"pairs and runs", "m112233p445566z11", "", []string{
			"z11_! m123 m123 p456 p456",
			"m11 m22 m33 p44 p55 p66 z11_!",
		}},
		{"thirteen orphans", "m19p19s19z12345677", "", []string{"z77_! m1 m9 p1 p9 s1 s9 z1 z2 z3 z4 z5 z6"}},
		{"open meld", "m123p456s78z11,z555=", "s9-", []string{"z11 m123 p456 s789-! z555="}},
		{"nine gates", "m11123456789991", "", []string{
			"m99 m1_!23 m111 m456 m789",
			"m99 m123 m111_! m456 m789",
			"m11123456789991_!",
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var ron *Claim
			if c.ron != "" {
				ron = mustClaim(t, c.ron)
			}
			forms, err := Decompose(MustHand(c.hand), ron)
			if err != nil {
				t.Fatalf("Decompose: %v", err)
			}
			got := readingStrings(forms)
			if len(got) != len(c.want) {
				t.Fatalf("readings = %q, want %q", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("reading %d = %q, want %q", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestDecompose_Shapes(t *testing.T) {
	forms, err := Decompose(MustHand("m112233p445566z11"), nil)
	if err != nil || len(forms) != 2 {
		t.Fatalf("Decompose = %v, %v", forms, err)
	}
	if forms[0].Shape() != ShapeStandard || forms[1].Shape() != ShapeSevenPairs {
		t.Fatalf("shapes = %s %s", forms[0].Shape(), forms[1].Shape())
	}
	std := forms[0].(StandardForm)
	if std.Pair.Win != 1 || std.Pair.WinFrom != DirSelf {
		t.Fatalf("pair = %+v", std.Pair)
	}
	if got := BlockStrings(forms[1]); len(got) != 7 || got[6] != "z11_!" {
		t.Fatalf("BlockStrings = %q", got)
	}
}

func TestDecompose_NoReading(t *testing.T) {
	cases := []struct {
		name string
		hand string
	}{
		{"waiting", "m123p456s789z1122"},
		{"just called", "m123p456s78z11,z555=,"},
		{"one short", "m123p456s789z11223"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			forms, err := Decompose(MustHand(c.hand), nil)
			if err != nil {
				t.Fatalf("Decompose: %v", err)
			}
			if forms != nil {
				t.Fatalf("Decompose = %q, want none", readingStrings(forms))
			}
		})
	}
}

func TestDecompose_BadClaim(t *testing.T) {
	h := MustHand("m123p456s789z1122")
	_, err := Decompose(h, &Claim{Tile: MustTile("z1"), From: DirSelf})
	if !errors.Is(err, ErrTileFormat) {
		t.Fatalf("Decompose err = %v, want ErrTileFormat", err)
	}
	_, err = Decompose(h, &Claim{Tile: HiddenTile, From: DirLeft})
	if !errors.Is(err, ErrTileFormat) {
		t.Fatalf("Decompose hidden err = %v, want ErrTileFormat", err)
	}
	if h.String() != "m123p456s789z1122" {
		t.Fatalf("hand modified: %s", h)
	}
}

func TestCalculateFu(t *testing.T) {
	cases := []struct {
		name      string
		hand      string
		ron       string
		seat      Wind
		fu        int
		pinfu     bool
		concealed bool
	}{
		{"pinfu tsumo", "m345567p234s33789", "", WindSouth, 20, true, true},
		{"pinfu ron", "m345567p234s3378", "s9=", WindSouth, 30, true, true},
		{"dealer wind triplet", "z111m123p456s789z22", "", WindEast, 40, false, true},
		{"seven pairs", "m1188p2288s33z1155", "", WindSouth, 25, false, true},
		{"open no fu", "m123p456s78z22,m789-", "s9-", WindSouth, 30, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var ron *Claim
			if c.ron != "" {
				ron = mustClaim(t, c.ron)
			}
			forms, err := Decompose(MustHand(c.hand), ron)
			if err != nil || len(forms) == 0 {
				t.Fatalf("Decompose = %v, %v", forms, err)
			}
			f := calculateFu(forms[0], WindEast, c.seat)
			if f.Fu != c.fu || f.Pinfu != c.pinfu || f.Concealed != c.concealed {
				t.Fatalf("fu = %d pinfu = %v concealed = %v, want %d %v %v",
					f.Fu, f.Pinfu, f.Concealed, c.fu, c.pinfu, c.concealed)
			}
		})
	}
}

func TestDecompose_DebugLog(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(os.Stdout)
		log.SetLevel("warn")
	})

	log.SetLevel("warn")
	if _, err := Decompose(MustHand("m112233p445566z11"), nil); err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("debug line written at warn level: %q", buf.String())
	}

	log.SetLevel("debug")
	if _, err := Decompose(MustHand("m112233p445566z11"), nil); err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "z11_! m123 m123 p456 p456 | m11 m22 m33 p44 p55 p66 z11_!") {
		t.Fatalf("readings missing from debug line: %q", out)
	}
}
