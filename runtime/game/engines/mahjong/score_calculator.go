package mahjong

import (
	"jongcore/common/log"
)

// ScoringContext 和牌时的场况
type ScoringContext struct {
	Rule *Rule

	RoundWind Wind // 场风
	SeatWind  Wind // 自风, 东为庄家

	Riichi  int  // 0 无, 1 立直, 2 两立直
	Ippatsu bool // 一发
	Chankan bool // 抢杠
	Rinshan bool // 岭上开花
	Haitei  int  // 0 无, 1 海底摸月, 2 河底捞鱼
	Tenhou  int  // 0 无, 1 天和, 2 地和

	DoraIndicators    []Tile
	UraDoraIndicators []Tile // 为空时不计里宝牌

	Honba        int // 本场数
	RiichiSticks int // 场上的立直棒
}

// NewScoringContext 东场南家, rule 为空时使用默认规则
func NewScoringContext(rule *Rule) *ScoringContext {
	if rule == nil {
		r := DefaultRule()
		rule = &r
	}
	return &ScoringContext{Rule: rule, RoundWind: WindEast, SeatWind: WindSouth}
}

// SetIndicators 按规则设置宝牌与里宝牌指示牌, 需先设置 Riichi
func (sc *ScoringContext) SetIndicators(dora, ura []Tile) {
	sc.DoraIndicators, sc.UraDoraIndicators = sc.Rule.Indicators(dora, ura, sc.Riichi > 0)
}

// HuleResult 和了结算结果。役满时 Fu 与 Han 为 0;
// Payments 按自风下标(东 南 西 北)记录点数增减
type HuleResult struct {
	Hand     Decomposition
	Yaku     []Hupai
	Fu       int
	Han      int
	Yakuman  int
	Points   int
	Payments [4]int
}

// Hule 计算和了结果, 在所有拆解中取点数最高者, 完全相同时取先出现的拆解。ron 为空时为自摸。
// 不能和牌时返回 nil; 和牌形成立但无役时返回 Points 为 0 的空结果。
func Hule(h *Hand, ron *Claim, sc *ScoringContext) (*HuleResult, error) {
	if sc == nil {
		sc = NewScoringContext(nil)
	}
	if sc.Rule == nil {
		r := DefaultRule()
		c := *sc
		c.Rule = &r
		sc = &c
	}
	forms, err := Decompose(h, ron)
	if err != nil {
		return nil, err
	}
	if len(forms) == 0 {
		return nil, nil
	}

	pre := situationalHupai(sc)
	post := bonusHupai(h, ron, sc)

	var best *HuleResult
	for _, d := range forms {
		facts := calculateFu(d, sc.RoundWind, sc.SeatWind)
		ctx := &YakuContext{Hand: d, Blocks: d.Blocks(), Facts: facts, Score: sc}
		hupai := evalHupai(ctx, pre, post)
		if len(hupai) == 0 {
			if log.Enabled("debug") {
				log.Debug("hule %s: no yaku", d.String())
			}
			continue
		}
		r := settle(d, facts.Fu, hupai, ron, sc)
		if best == nil || r.better(best) {
			best = r
		}
	}
	if best == nil {
		return &HuleResult{}, nil
	}
	return best, nil
}

// better 点数、役满倍数、番数、符数依次比较, 完全相同时保留先出现的拆解
func (r *HuleResult) better(o *HuleResult) bool {
	if r.Points != o.Points {
		return r.Points > o.Points
	}
	if r.Yakuman != o.Yakuman {
		return r.Yakuman > o.Yakuman
	}
	if r.Han != o.Han {
		return r.Han > o.Han
	}
	return r.Fu > o.Fu
}

func roundUpTo100(x int) int {
	return (x + 99) / 100 * 100
}

// basePoints 基本点: 符 × 2^(番+2), 满贯以上为固定值
func basePoints(rule *Rule, han, fu int) int {
	switch {
	case han >= 13 && rule.CountedYakuman:
		return 8000
	case han >= 11:
		return 6000
	case han >= 8:
		return 4000
	case han >= 6:
		return 3000
	}
	base := fu << (2 + han)
	if rule.RoundedMangan && base == 1920 {
		return 2000
	}
	return min(base, 2000)
}

// settle 结算点数。包牌部分先由包牌者单独支付(荣和时与放铳者各半),
// 剩余部分正常支付; 剩余为 0 时本场由包牌者支付。
func settle(d Decomposition, fu int, hupai []Hupai, ron *Claim, sc *ScoringContext) *HuleResult {
	rule := sc.Rule
	seat := int(sc.SeatWind)
	r := &HuleResult{Hand: d, Yaku: hupai, Fu: fu}

	var base, base2 int
	liable := -1
	if hupai[0].Yakuman > 0 {
		r.Fu = 0
		for _, h := range hupai {
			r.Yakuman += h.Yakuman
		}
		if !rule.CompoundYakuman {
			r.Yakuman = 1
		}
		base = 8000 * r.Yakuman
		for _, h := range hupai {
			if h.Liable == DirNone {
				continue
			}
			liable = (seat + h.Liable.Offset()) % 4
			base2 = 8000 * min(h.Yakuman, r.Yakuman)
			break
		}
	} else {
		for _, h := range hupai {
			r.Han += h.Han
		}
		base = basePoints(rule, r.Han, fu)
	}

	mult := 4
	if seat == int(WindEast) {
		mult = 6
	}
	honba, sticks := sc.Honba, sc.RiichiSticks

	var defen2 int
	if liable >= 0 {
		if ron != nil {
			base2 /= 2
		}
		base -= base2
		defen2 = base2 * mult
		r.Payments[seat] += defen2
		r.Payments[liable] -= defen2
	}

	var defen int
	if ron != nil || base == 0 {
		payer := liable
		if base != 0 {
			payer = (seat + ron.From.Offset()) % 4
		}
		defen = roundUpTo100(base * mult)
		r.Payments[seat] += defen + honba*300 + sticks*1000
		r.Payments[payer] -= defen + honba*300
	} else {
		dealer := roundUpTo100(base * 2)
		other := roundUpTo100(base)
		if seat == int(WindEast) {
			defen = dealer * 3
		} else {
			defen = dealer + other*2
		}
		for l := 0; l < 4; l++ {
			switch {
			case l == seat:
				r.Payments[l] += defen + honba*300 + sticks*1000
			case l == int(WindEast):
				r.Payments[l] -= dealer + honba*100
			default:
				r.Payments[l] -= other + honba*100
			}
		}
	}
	r.Points = defen + defen2
	return r
}
