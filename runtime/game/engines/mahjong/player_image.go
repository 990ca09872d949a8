package mahjong

// PlayerImage 一个座位的手牌视图: 手牌、点数、弃过的牌种(振听判断)和当前各听牌的状态
type PlayerImage struct {
	SeatWind       Wind
	Hand           *Hand
	Points         int
	DiscardedTiles map[Tile]struct{} // 已弃的牌种, 被鸣走的也算
	TenpaiWaits    map[Tile]TenpaiWaitState
}

// TenpaiWaitState 某张和了牌的状态
type TenpaiWaitState struct {
	Furiten      bool
	RonHasYaku   bool
	TsumoHasYaku bool
}

// NewPlayerImage 创建座位视图
func NewPlayerImage(seat Wind, hand *Hand, initialPoints int) *PlayerImage {
	return &PlayerImage{
		SeatWind:       seat,
		Hand:           hand,
		Points:         initialPoints,
		DiscardedTiles: make(map[Tile]struct{}),
		TenpaiWaits:    make(map[Tile]TenpaiWaitState),
	}
}

// HasDiscardedTile 检查是否弃过某种牌（用于振听判断）
func (p *PlayerImage) HasDiscardedTile(t Tile) bool {
	_, exists := p.DiscardedTiles[t.Normal()]
	return exists
}

// DiscardTile 打牌并记录弃过的牌种
func (p *PlayerImage) DiscardTile(d Discard) error {
	if err := p.Hand.Discard(d, true); err != nil {
		return err
	}
	p.DiscardedTiles[d.Tile.Normal()] = struct{}{}
	return nil
}

// Furiten 听牌中有任意一张自己弃过
func (p *PlayerImage) Furiten() bool {
	for _, st := range p.TenpaiWaits {
		if st.Furiten {
			return true
		}
	}
	return false
}

// RefreshTenpai 重新计算听牌及每张和了牌能否荣和、自摸。
// 手里有待处理的牌或未听牌时清空
func (p *PlayerImage) RefreshTenpai(s *Searcher, rule *Rule) {
	p.TenpaiWaits = make(map[Tile]TenpaiWaitState)
	if p.Hand.Pending() || s.Shanten(p.Hand) != 0 {
		return
	}
	waits, err := s.Waits(p.Hand)
	if err != nil {
		return
	}
	sc := NewScoringContext(rule)
	sc.SeatWind = p.SeatWind
	if p.Hand.riichi {
		sc.Riichi = 1
	}
	furiten := false
	for _, w := range waits {
		if p.HasDiscardedTile(w) {
			furiten = true
		}
	}
	for _, w := range waits {
		st := TenpaiWaitState{Furiten: furiten}
		// 荣和的来源不影响役, 统一按上家计算
		st.RonHasYaku, _ = AllowWin(rule, p.Hand, &Claim{Tile: w, From: DirLeft}, sc, true)
		trial := p.Hand.Clone()
		if trial.Draw(w, true) == nil {
			st.TsumoHasYaku, _ = AllowWin(rule, trial, nil, sc, true)
		}
		p.TenpaiWaits[w] = st
	}
}
