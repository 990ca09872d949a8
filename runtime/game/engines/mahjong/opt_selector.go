package mahjong

import "jongcore/common/log"

// LegalDiscards 按食替规则筛选可打的牌。
// CallSwapLevel 0 禁止现物与筋食替, 1 只禁止打出与鸣牌同种的牌, 2 全部允许
func LegalDiscards(rule *Rule, h *Hand) ([]Discard, bool) {
	switch rule.CallSwapLevel {
	case 0:
		return h.Discards(true)
	case 1:
		opts, ok := h.Discards(false)
		called, isCall := h.JustCalled()
		if !ok || !isCall {
			return opts, ok
		}
		ct, _ := called.ClaimedTile()
		deny := ct.Normal()
		out := opts[:0:0]
		for _, d := range opts {
			if d.Tile.Normal() != deny {
				out = append(out, d)
			}
		}
		return out, true
	}
	return h.Discards(false)
}

// LegalChi 可以吃的组合。牌山已空时不能鸣牌;
// 食替只禁止现物时, 第四次副露后若只剩同种的一对牌也不能吃
func LegalChi(rule *Rule, h *Hand, c Claim, wallLeft int) ([]Meld, bool, error) {
	opts, ok, err := h.ChiOptions(c, rule.CallSwapLevel == 0)
	if err != nil || !ok {
		return opts, ok, err
	}
	if rule.CallSwapLevel == 1 && len(h.melds) == 3 && h.Count(c.Tile.Normal()) == 2 {
		opts = []Meld{}
	}
	if wallLeft == 0 {
		return []Meld{}, true, nil
	}
	return opts, true, nil
}

// LegalPon 可以碰的组合, 牌山已空时不能鸣牌
func LegalPon(rule *Rule, h *Hand, c Claim, wallLeft int) ([]Meld, bool, error) {
	opts, ok, err := h.PonOptions(c)
	if err != nil || !ok {
		return opts, ok, err
	}
	if wallLeft == 0 {
		return []Meld{}, true, nil
	}
	return opts, true, nil
}

// LegalKan c 非空时为大明杠, 否则为暗杠与加杠。
// 牌山已空或场上已有四杠时不能杠; 立直后按 KanAfterRiichi 判断暗杠是否改变听牌
func LegalKan(rule *Rule, h *Hand, c *Claim, wallLeft, kanCount int) ([]Meld, bool, error) {
	opts, ok, err := h.KanOptions(c)
	if err != nil || !ok || len(opts) == 0 {
		return opts, ok, err
	}
	if h.riichi && !riichiKanAllowed(rule, h, opts[0]) {
		return []Meld{}, true, nil
	}
	if wallLeft == 0 || kanCount == 4 {
		return []Meld{}, true, nil
	}
	return opts, true, nil
}

// riichiKanAllowed 立直后暗杠:
// 级别 1 要求杠前后和牌拆解数不减少, 级别 2 要求杠后仍听牌且听牌种类不减少
func riichiKanAllowed(rule *Rule, h *Hand, kan Meld) bool {
	if rule.KanAfterRiichi == 0 {
		return false
	}
	drawn, ok := h.Drawn()
	if !ok {
		return false
	}
	before := h.Clone()
	if err := before.Discard(Discard{Tile: drawn, Drawn: true}, true); err != nil {
		return false
	}
	after := h.Clone()
	if err := after.Kan(kan, true); err != nil {
		return false
	}

	if rule.KanAfterRiichi == 1 {
		n1, n2 := countReadings(before), countReadings(after)
		if n1 > n2 {
			log.Debug("riichi kan %s changes readings %d -> %d", kan, n1, n2)
			return false
		}
		return true
	}

	if Shanten(after) > 0 {
		return false
	}
	w1, err := Waits(before)
	if err != nil {
		return false
	}
	w2, err := Waits(after)
	if err != nil {
		return false
	}
	return len(w1) <= len(w2)
}

// countReadings 听牌时所有和了牌的拆解总数
func countReadings(h *Hand) int {
	waits, err := Waits(h)
	if err != nil || Shanten(h) != 0 {
		return 0
	}
	total := 0
	for _, w := range waits {
		trial := h.Clone()
		if err := trial.Draw(w, false); err != nil {
			continue
		}
		forms, err := Decompose(trial, nil)
		if err != nil {
			continue
		}
		total += len(forms)
	}
	return total
}
