package mahjong

import (
	"testing"
)

func hupaiStrings(hs []Hupai) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.String()
	}
	return out
}

func newContext(seat Wind, mutate func(r *Rule)) *ScoringContext {
	r := DefaultRule()
	if mutate != nil {
		mutate(&r)
	}
	sc := NewScoringContext(&r)
	sc.SeatWind = seat
	return sc
}

func TestHule_Points(t *testing.T) {
	cases := []struct {
		name     string
		hand     string
		ron      string
		seat     Wind
		setup    func(sc *ScoringContext)
		rule     func(r *Rule)
		fu, han  int
		yakuman  int
		points   int
		payments [4]int
	}{
		{
			name: "pinfu tsumo", hand: "m345567p234s33789", seat: WindSouth,
			fu: 20, han: 2, points: 1500, payments: [4]int{-700, 1500, -400, -400},
		},
		{
			name: "pinfu ron", hand: "m345567p234s3378", ron: "s9=", seat: WindSouth,
			fu: 30, han: 1, points: 1000, payments: [4]int{0, 1000, 0, -1000},
		},
		{
			name: "riichi dora", hand: "m345567p234s33789", seat: WindSouth,
			setup: func(sc *ScoringContext) {
				sc.Riichi = 1
				sc.DoraIndicators = []Tile{MustTile("s2")}
			},
			fu: 20, han: 5, points: 8000, payments: [4]int{-4000, 8000, -2000, -2000},
		},
		{
			name: "red five", hand: "m345067p234s33789", seat: WindSouth,
			fu: 20, han: 3, points: 2700, payments: [4]int{-1300, 2700, -700, -700},
		},
		{
			name: "dealer double east", hand: "z111m123p456s789z22", seat: WindEast,
			fu: 40, han: 3, points: 7800, payments: [4]int{7800, -2600, -2600, -2600},
		},
		{
			name: "honba and sticks on tsumo", hand: "z111m123p456s789z22", seat: WindEast,
			setup: func(sc *ScoringContext) { sc.Honba, sc.RiichiSticks = 2, 1 },
			fu: 40, han: 3, points: 7800, payments: [4]int{9400, -2800, -2800, -2800},
		},
		{
			name: "honba and sticks on ron", hand: "m345567p234s3378", ron: "s9=", seat: WindSouth,
			setup: func(sc *ScoringContext) { sc.Honba, sc.RiichiSticks = 1, 1 },
			fu: 30, han: 1, points: 1000, payments: [4]int{0, 2300, 0, -1300},
		},
		{
			name: "seven pairs", hand: "m1188p2288s33z1155", seat: WindSouth,
			fu: 25, han: 3, points: 3200, payments: [4]int{-1600, 3200, -800, -800},
		},
		{
			name: "ryanpeikou over seven pairs", hand: "m112233p445566z11", seat: WindSouth,
			fu: 30, han: 4, points: 8000, payments: [4]int{-4000, 8000, -2000, -2000},
		},
		{
			name: "no rounded mangan", hand: "m112233p445566z11", seat: WindSouth,
			rule: func(r *Rule) { r.RoundedMangan = false },
			fu: 30, han: 4, points: 7900, payments: [4]int{-3900, 7900, -2000, -2000},
		},
		{
			name: "junsei chuuren", hand: "m11123456789991", seat: WindSouth,
			yakuman: 2, points: 64000, payments: [4]int{-32000, 64000, -16000, -16000},
		},
		{
			name: "single yakuman only", hand: "m11123456789991", seat: WindSouth,
			rule:    func(r *Rule) { r.DoubleYakuman = false },
			yakuman: 1, points: 32000, payments: [4]int{-16000, 32000, -8000, -8000},
		},
		{
			name: "kokushi thirteen wait", hand: "m19p19s19z12345677", seat: WindSouth,
			yakuman: 2, points: 64000, payments: [4]int{-32000, 64000, -16000, -16000},
		},
		{
			name: "kokushi", hand: "m119p19s19z1234567", seat: WindSouth,
			yakuman: 1, points: 32000, payments: [4]int{-16000, 32000, -8000, -8000},
		},
		{
			name: "daisangen liable tsumo", hand: "m11p123,z555=,z666+,z777-", seat: WindSouth,
			yakuman: 1, points: 32000, payments: [4]int{-32000, 32000, 0, 0},
		},
		{
			name: "daisangen liable ron", hand: "m11p12,z555=,z666+,z777-", ron: "p3+", seat: WindSouth,
			yakuman: 1, points: 32000, payments: [4]int{-16000, 32000, -16000, 0},
		},
		{
			name: "daisangen without liability", hand: "m11p123,z555=,z666+,z777-", seat: WindSouth,
			rule:    func(r *Rule) { r.YakumanLiability = false },
			yakuman: 1, points: 32000, payments: [4]int{-16000, 32000, -8000, -8000},
		},
		{
			name: "tenhou", hand: "m345567p234s33789", seat: WindEast,
			setup:   func(sc *ScoringContext) { sc.Tenhou = 1 },
			yakuman: 1, points: 48000, payments: [4]int{48000, -16000, -16000, -16000},
		},
		{
			name: "houtei only", hand: "m123p456s78z11,m789-", ron: "s9-", seat: WindSouth,
			setup: func(sc *ScoringContext) { sc.Haitei = 2 },
			fu: 30, han: 1, points: 1000, payments: [4]int{-1000, 1000, 0, 0},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sc := newContext(c.seat, c.rule)
			if c.setup != nil {
				c.setup(sc)
			}
			var ron *Claim
			if c.ron != "" {
				ron = mustClaim(t, c.ron)
			}
			res, err := Hule(MustHand(c.hand), ron, sc)
			if err != nil {
				t.Fatalf("Hule: %v", err)
			}
			if res == nil {
				t.Fatal("Hule returned no result")
			}
			if res.Fu != c.fu || res.Han != c.han || res.Yakuman != c.yakuman {
				t.Errorf("fu/han/yakuman = %d/%d/%d, want %d/%d/%d (%q)",
					res.Fu, res.Han, res.Yakuman, c.fu, c.han, c.yakuman, hupaiStrings(res.Yaku))
			}
			if res.Points != c.points {
				t.Errorf("points = %d, want %d", res.Points, c.points)
			}
			if res.Payments != c.payments {
				t.Errorf("payments = %v, want %v", res.Payments, c.payments)
			}
		})
	}
}

func TestHule_NoWin(t *testing.T) {
	res, err := Hule(MustHand("m123p456s789z11223"), nil, nil)
	if err != nil || res != nil {
		t.Fatalf("Hule = %+v, %v; want nil", res, err)
	}

	res, err = Hule(MustHand("m123p456s78z11,m789-"), mustClaim(t, "s9-"), nil)
	if err != nil {
		t.Fatalf("Hule: %v", err)
	}
	if res == nil || res.Points != 0 || len(res.Yaku) != 0 {
		t.Fatalf("Hule = %+v, want an empty result", res)
	}
}

func TestHule_KeepsHand(t *testing.T) {
	h := MustHand("m345567p234s3378")
	if _, err := Hule(h, mustClaim(t, "s9="), nil); err != nil {
		t.Fatalf("Hule: %v", err)
	}
	if got := h.String(); got != "m345567p234s3378" {
		t.Fatalf("hand changed to %s", got)
	}
}

func TestBasePoints(t *testing.T) {
	def := DefaultRule()
	flat := DefaultRule()
	flat.RoundedMangan = false
	flat.CountedYakuman = false
	cases := []struct {
		rule    *Rule
		han, fu int
		want    int
	}{
		{&def, 1, 30, 240},
		{&def, 2, 20, 320},
		{&def, 3, 60, 2000},
		{&flat, 3, 60, 1920},
		{&def, 4, 40, 2000},
		{&def, 6, 30, 3000},
		{&def, 8, 30, 4000},
		{&def, 11, 30, 6000},
		{&def, 13, 30, 8000},
		{&flat, 13, 30, 6000},
	}
	for _, c := range cases {
		if got := basePoints(c.rule, c.han, c.fu); got != c.want {
			t.Errorf("basePoints(%d han %d fu) = %d, want %d", c.han, c.fu, got, c.want)
		}
	}
}

func TestScoringContext_SetIndicators(t *testing.T) {
	sc := NewScoringContext(nil)
	dora := []Tile{MustTile("m1"), MustTile("m2")}
	ura := []Tile{MustTile("p1"), MustTile("p2"), MustTile("p3")}

	sc.SetIndicators(dora, ura)
	if len(sc.DoraIndicators) != 2 || sc.UraDoraIndicators != nil {
		t.Fatalf("without riichi: dora %v ura %v", sc.DoraIndicators, sc.UraDoraIndicators)
	}
	sc.Riichi = 1
	sc.SetIndicators(dora, ura)
	if len(sc.UraDoraIndicators) != 2 {
		t.Fatalf("ura = %v, want two", sc.UraDoraIndicators)
	}
}

func TestHuleResult_Better(t *testing.T) {
	base := HuleResult{Fu: 30, Han: 4, Points: 8000}
	cases := []struct {
		name  string
		other HuleResult
		want  bool
	}{
		{"more points", HuleResult{Fu: 40, Han: 4, Points: 8000 + 100}, true},
		{"yakuman on equal points", HuleResult{Yakuman: 1, Points: 8000}, true},
		{"more han", HuleResult{Fu: 20, Han: 5, Points: 8000}, true},
		{"more fu", HuleResult{Fu: 40, Han: 4, Points: 8000}, true},
		{"full tie keeps the earlier reading", base, false},
		{"fewer points", HuleResult{Fu: 30, Han: 3, Points: 3900}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := c.other
			if got := o.better(&base); got != c.want {
				t.Fatalf("better = %v, want %v", got, c.want)
			}
		})
	}
}
