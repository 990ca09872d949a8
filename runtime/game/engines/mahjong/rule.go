package mahjong

import "fmt"

// Rule 对局规则选项, 由配置文件加载
type Rule struct {
	OriginPoints int    `mapstructure:"originPoints"` // 配给原点
	RankBonus    [4]int `mapstructure:"rankBonus"`    // 顺位马(千点)
	RedFives     [3]int `mapstructure:"redFives"`     // 各花色赤五的张数, 万 筒 索

	OpenTanyao    bool `mapstructure:"openTanyao"`    // 食断
	CallSwapLevel int  `mapstructure:"callSwapLevel"` // 食替: 0 全部禁止, 1 只禁止现物, 2 允许

	Rounds              int  `mapstructure:"rounds"`              // 场数, 2 为半庄
	AbortiveDraws       bool `mapstructure:"abortiveDraws"`       // 途中流局
	NagashiMangan       bool `mapstructure:"nagashiMangan"`       // 流局满贯
	DeclareNoTenpai     bool `mapstructure:"declareNoTenpai"`     // 允许宣言不听
	NoTenpaiPenalty     bool `mapstructure:"noTenpaiPenalty"`     // 不听罚符
	MaxSimultaneousWins int  `mapstructure:"maxSimultaneousWins"` // 一炮多响上限, 0 为头跳
	DealerContinuation  int  `mapstructure:"dealerContinuation"`  // 连庄: 0 无, 1 和了连庄, 2 听牌连庄, 3 不听也连庄
	BustEnds            bool `mapstructure:"bustEnds"`            // 击飞
	StopLastGame        bool `mapstructure:"stopLastGame"`        // 终局庄家一位时止
	ExtraGameMethod     int  `mapstructure:"extraGameMethod"`     // 西入: 0 无, 1 突然死亡, 2 延长战
	Ippatsu             bool `mapstructure:"ippatsu"`             // 一发
	UraDora             bool `mapstructure:"uraDora"`             // 里宝牌
	KanDora             bool `mapstructure:"kanDora"`             // 杠宝牌
	KanUraDora          bool `mapstructure:"kanUraDora"`          // 杠里宝牌
	KanDoraDelayed      bool `mapstructure:"kanDoraDelayed"`      // 明杠后打牌才翻杠宝牌
	RiichiWithoutDraw   bool `mapstructure:"riichiWithoutDraw"`   // 牌山不足四张也可立直
	KanAfterRiichi      int  `mapstructure:"kanAfterRiichi"`      // 立直后暗杠: 0 不可, 1 不改变拆解, 2 不改变听牌
	CompoundYakuman     bool `mapstructure:"compoundYakuman"`     // 役满复合
	DoubleYakuman       bool `mapstructure:"doubleYakuman"`       // 双倍役满
	CountedYakuman      bool `mapstructure:"countedYakuman"`      // 累计役满
	YakumanLiability    bool `mapstructure:"yakumanLiability"`    // 役满包牌
	RoundedMangan       bool `mapstructure:"roundedMangan"`       // 切上满贯
}

// DefaultRule 默认规则
func DefaultRule() Rule {
	return Rule{
		OriginPoints:        25000,
		RankBonus:           [4]int{20, 10, -10, -20},
		RedFives:            [3]int{1, 1, 1},
		OpenTanyao:          true,
		CallSwapLevel:       0,
		Rounds:              2,
		AbortiveDraws:       true,
		NagashiMangan:       true,
		DeclareNoTenpai:     false,
		NoTenpaiPenalty:     true,
		MaxSimultaneousWins: 2,
		DealerContinuation:  2,
		BustEnds:            true,
		StopLastGame:        true,
		ExtraGameMethod:     1,
		Ippatsu:             true,
		UraDora:             true,
		KanDora:             true,
		KanUraDora:          true,
		KanDoraDelayed:      true,
		RiichiWithoutDraw:   false,
		KanAfterRiichi:      2,
		CompoundYakuman:     true,
		DoubleYakuman:       true,
		CountedYakuman:      true,
		YakumanLiability:    true,
		RoundedMangan:       true,
	}
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s=%d not in [%d,%d]", ErrInvalidRule, name, v, lo, hi)
	}
	return nil
}

// Validate 检查各选项的取值范围
func (r *Rule) Validate() error {
	if r.OriginPoints < 0 {
		return fmt.Errorf("%w: originPoints=%d", ErrInvalidRule, r.OriginPoints)
	}
	for i, n := range r.RedFives {
		if err := checkRange(fmt.Sprintf("redFives[%d]", i), n, 0, 4); err != nil {
			return err
		}
	}
	checks := []struct {
		name       string
		v, lo, hi int
	}{
		{"callSwapLevel", r.CallSwapLevel, 0, 2},
		{"rounds", r.Rounds, 0, 4},
		{"maxSimultaneousWins", r.MaxSimultaneousWins, 0, 3},
		{"dealerContinuation", r.DealerContinuation, 0, 3},
		{"extraGameMethod", r.ExtraGameMethod, 0, 2},
		{"kanAfterRiichi", r.KanAfterRiichi, 0, 2},
	}
	for _, c := range checks {
		if err := checkRange(c.name, c.v, c.lo, c.hi); err != nil {
			return err
		}
	}
	return nil
}

// Indicators 按规则筛选宝牌指示牌: 第一张之后为杠宝牌; 里宝牌只在立直和了时有效
func (r *Rule) Indicators(dora, ura []Tile, riichi bool) ([]Tile, []Tile) {
	d := append([]Tile(nil), dora...)
	if !r.KanDora && len(d) > 1 {
		d = d[:1]
	}
	if !riichi || !r.UraDora {
		return d, nil
	}
	u := append([]Tile(nil), ura...)
	if !r.KanUraDora && len(u) > 1 {
		u = u[:1]
	}
	if len(u) > len(d) {
		u = u[:len(d)]
	}
	return d, u
}
