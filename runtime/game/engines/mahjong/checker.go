package mahjong

// AllowRiichi 返回打出后可以立直听牌的牌; 不能立直时为空。
// 需要门清、未立直、有摸到的牌, 牌山至少四张(RiichiWithoutDraw 除外), 击飞规则下持点至少 1000
func AllowRiichi(rule *Rule, h *Hand, wallLeft, points int) []Discard {
	if _, ok := h.Drawn(); !ok {
		return nil
	}
	if h.riichi || !h.Concealed() {
		return nil
	}
	if !rule.RiichiWithoutDraw && wallLeft < 4 {
		return nil
	}
	if rule.BustEnds && points < 1000 {
		return nil
	}
	if Shanten(h) > 0 {
		return nil
	}
	discards, _ := LegalDiscards(rule, h)
	var out []Discard
	for _, d := range discards {
		trial := h.Clone()
		if err := trial.Discard(d, true); err != nil {
			continue
		}
		if Shanten(trial) != 0 {
			continue
		}
		if waits, err := Waits(trial); err != nil || len(waits) == 0 {
			continue
		}
		d.Riichi = true
		out = append(out, d)
	}
	return out
}

// AllowWin 能否和牌。ron 非空时为荣和, canRon 为 false(振听)时不能荣和。
// 有状况役时只要成形即可, 否则需要有役
func AllowWin(rule *Rule, h *Hand, ron *Claim, sc *ScoringContext, canRon bool) (bool, error) {
	if ron != nil && !canRon {
		return false, nil
	}
	if _, called := h.JustCalled(); called {
		return false, nil
	}
	trial := h
	if ron != nil {
		if err := validateClaim(*ron); err != nil {
			return false, err
		}
		trial = h.Clone()
		if err := trial.Draw(ron.Tile, true); err != nil {
			return false, err
		}
	}
	if Shanten(trial) != -1 {
		return false, nil
	}
	if sc == nil {
		sc = NewScoringContext(rule)
	}
	c := *sc
	c.Rule = rule
	c.DoraIndicators, c.UraDoraIndicators = nil, nil
	if len(situationalHupai(&c)) > 0 {
		return true, nil
	}
	res, err := Hule(h, ron, &c)
	if err != nil || res == nil {
		return false, err
	}
	return len(res.Yaku) > 0, nil
}

// AllowAbortiveDraw 九种九牌: 第一巡未被鸣牌打断时, 手中幺九牌九种以上可以流局
func AllowAbortiveDraw(rule *Rule, h *Hand, firstDraw bool) bool {
	if _, ok := h.Drawn(); !ok || !firstDraw {
		return false
	}
	if !rule.AbortiveDraws {
		return false
	}
	kinds := 0
	for si, s := range suits {
		ns := []int{1, 9}
		if s == SuitHonor {
			ns = []int{1, 2, 3, 4, 5, 6, 7}
		}
		for _, n := range ns {
			if h.bingpai[si][n] > 0 {
				kinds++
			}
		}
	}
	return kinds >= 9
}

// AllowNoTenpaiDeclaration 荒牌流局时可以不公开听牌的手牌; 立直者必须公开
func AllowNoTenpaiDeclaration(rule *Rule, h *Hand, wallLeft int) bool {
	if _, ok := h.Drawn(); ok || wallLeft > 0 {
		return false
	}
	if !rule.DeclareNoTenpai {
		return false
	}
	if h.riichi {
		return false
	}
	if Shanten(h) != 0 {
		return false
	}
	waits, err := Waits(h)
	return err == nil && len(waits) > 0
}
