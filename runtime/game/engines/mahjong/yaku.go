package mahjong

// Yaku 役种（和牌方式）
type Yaku int

// 役种常量定义, 顺序即结算时的列出顺序
const (
	// 状况役
	YakuRiichi       Yaku = iota // 立直：门清状态下宣布立直，并放置1000点棒
	YakuDoubleRiichi             // 两立直：第一巡立直
	YakuIppatsu                  // 一发：立直后一巡内和牌
	YakuHaitei                   // 海底摸月：摸最后一张牌自摸
	YakuHoutei                   // 河底捞鱼：荣和最后一张打出的牌
	YakuRinshan                  // 岭上开花：杠后补牌自摸
	YakuChankan                  // 抢杠：荣和他家加杠的牌
	YakuTenhou                   // 天和（役满）
	YakuChiihou                  // 地和（役满）

	// 一番
	YakuTsumo     // 门前清自摸和：门清状态下自摸和牌
	YakuRoundWind // 场风
	YakuSeatWind  // 自风
	YakuHaku      // 役牌 白
	YakuHatsu     // 役牌 发
	YakuChun      // 役牌 中
	YakuPinfu     // 平和：4顺子+非役牌雀头，两面听牌
	YakuTanyao    // 断幺九：手牌全部由数牌2-8组成
	YakuIppeiko   // 一杯口：同种花色、同种顺子有两组

	// 二番(鸣牌减一番)
	YakuSanshoku       // 三色同顺：相同顺子在三种花色中都出现
	YakuIttsu          // 一气通贯：同种花色有123、456、789三个顺子
	YakuChanta         // 混全带幺九：所有面子都包含幺九牌
	YakuChiitoi        // 七对子：7个不同的对子
	YakuToitoi         // 对对和：4个刻子(杠子)+1个对子
	YakuSananko        // 三暗刻：手牌中有3个暗刻
	YakuSankantsu      // 三杠子：手牌中有3个杠子
	YakuSanshokuDoukou // 三色同刻
	YakuHonroto        // 混老头：全部由幺九牌组成
	YakuShousangen     // 小三元

	// 三番以上
	YakuHonitsu   // 混一色：一种花色+字牌
	YakuJunchan   // 纯全带幺九：所有面子都包含数牌幺九(1、9)
	YakuRyanpeiko // 二杯口：手牌中有两个不同的一杯口
	YakuChinitsu  // 清一色：同一种花色(无字牌)

	// 役满役种
	YakuKokushi       // 国士无双(十三幺)：13种幺九牌各1张+其中任意1张
	YakuKokushi13     // 国士十三面（双倍）
	YakuSuuankou      // 四暗刻：手牌中有四个暗刻
	YakuSuuankouTanki // 四暗刻单骑（双倍）
	YakuDaisangen     // 大三元
	YakuDaisushi      // 大四喜（双倍）
	YakuShousushi     // 小四喜
	YakuTsuuiisou     // 字一色
	YakuRyuuiisou     // 绿一色
	YakuChinroto      // 清老头：全部由数牌幺九(1、9)组成的对对和
	YakuSuukantsu     // 四杠子
	YakuChuuren       // 九莲宝灯：同一种花色的1112345678999，加上任意一张同花色的牌
	YakuJunseiChuuren // 纯正九莲宝灯：九莲宝灯听所有的9种牌（双倍）

	// 宝牌, 只在有役时计入
	YakuDora
	YakuAkaDora
	YakuUraDora
)

var yakuNames = [...]string{
	YakuRiichi:         "Riichi",
	YakuDoubleRiichi:   "Double Riichi",
	YakuIppatsu:        "Ippatsu",
	YakuHaitei:         "Haitei Raoyue",
	YakuHoutei:         "Houtei Raoyui",
	YakuRinshan:        "Rinshan Kaihou",
	YakuChankan:        "Chankan",
	YakuTenhou:         "Tenhou",
	YakuChiihou:        "Chiihou",
	YakuTsumo:          "Menzen Tsumo",
	YakuRoundWind:      "Round Wind",
	YakuSeatWind:       "Seat Wind",
	YakuHaku:           "Haku",
	YakuHatsu:          "Hatsu",
	YakuChun:           "Chun",
	YakuPinfu:          "Pinfu",
	YakuTanyao:         "Tanyao",
	YakuIppeiko:        "Iipeikou",
	YakuSanshoku:       "Sanshoku Doujun",
	YakuIttsu:          "Ittsu",
	YakuChanta:         "Chanta",
	YakuChiitoi:        "Chiitoitsu",
	YakuToitoi:         "Toitoi",
	YakuSananko:        "Sanankou",
	YakuSankantsu:      "Sankantsu",
	YakuSanshokuDoukou: "Sanshoku Doukou",
	YakuHonroto:        "Honroutou",
	YakuShousangen:     "Shousangen",
	YakuHonitsu:        "Honitsu",
	YakuJunchan:        "Junchan",
	YakuRyanpeiko:      "Ryanpeikou",
	YakuChinitsu:       "Chinitsu",
	YakuKokushi:        "Kokushi Musou",
	YakuKokushi13:      "Kokushi Musou Juusanmen",
	YakuSuuankou:       "Suuankou",
	YakuSuuankouTanki:  "Suuankou Tanki",
	YakuDaisangen:      "Daisangen",
	YakuDaisushi:       "Daisuushii",
	YakuShousushi:      "Shousuushii",
	YakuTsuuiisou:      "Tsuuiisou",
	YakuRyuuiisou:      "Ryuuiisou",
	YakuChinroto:       "Chinroutou",
	YakuSuukantsu:      "Suukantsu",
	YakuChuuren:        "Chuuren Poutou",
	YakuJunseiChuuren:  "Junsei Chuuren Poutou",
	YakuDora:           "Dora",
	YakuAkaDora:        "Aka Dora",
	YakuUraDora:        "Ura Dora",
}

func (y Yaku) String() string {
	if y < 0 || int(y) >= len(yakuNames) {
		return "Unknown"
	}
	return yakuNames[y]
}

// Hupai 一个成立的役。役满时 Han 为 0, Yakuman 为倍数;
// Liable 为包牌者相对和了者的方向, 没有包牌时为 DirNone
type Hupai struct {
	Yaku    Yaku
	Han     int
	Yakuman int
	Liable  Direction
}

func (h Hupai) String() string {
	if h.Yakuman > 0 {
		s := h.Yaku.String()
		for i := 0; i < h.Yakuman; i++ {
			s += "*"
		}
		if h.Liable != DirNone {
			s += h.Liable.String()
		}
		return s
	}
	return h.Yaku.String() + " " + digit(h.Han)
}

type YakuContext struct {
	Hand   Decomposition
	Blocks []Block
	Facts  *WinFacts
	Score  *ScoringContext
}

type YakuChecker interface {
	ID() Yaku
	Check(ctx *YakuContext) (Hupai, bool)
}

type yakuCheckerFunc struct {
	id    Yaku
	check func(ctx *YakuContext) (Hupai, bool)
}

func (f yakuCheckerFunc) ID() Yaku { return f.id }

func (f yakuCheckerFunc) Check(ctx *YakuContext) (Hupai, bool) { return f.check(ctx) }

func han(y Yaku, n int) (Hupai, bool) { return Hupai{Yaku: y, Han: n}, true }

func yakuman(y Yaku, mult int) (Hupai, bool) { return Hupai{Yaku: y, Yakuman: mult}, true }

// menzenHan 门前清时的番数, 鸣牌后减一番
func menzenHan(ctx *YakuContext, y Yaku, closed, open int) (Hupai, bool) {
	if ctx.Facts.Concealed {
		return han(y, closed)
	}
	return han(y, open)
}

var noHupai = Hupai{}

// SituationalYakuRegistry 由和牌状况决定的役, 与拆解无关
var SituationalYakuRegistry = []YakuChecker{
	yakuCheckerFunc{id: YakuRiichi, check: func(ctx *YakuContext) (Hupai, bool) {
		switch ctx.Score.Riichi {
		case 1:
			return han(YakuRiichi, 1)
		case 2:
			return han(YakuDoubleRiichi, 2)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuIppatsu, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Score.Ippatsu && ctx.Score.Rule.Ippatsu {
			return han(YakuIppatsu, 1)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuHaitei, check: func(ctx *YakuContext) (Hupai, bool) {
		switch ctx.Score.Haitei {
		case 1:
			return han(YakuHaitei, 1)
		case 2:
			return han(YakuHoutei, 1)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuRinshan, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Score.Rinshan {
			return han(YakuRinshan, 1)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuChankan, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Score.Chankan {
			return han(YakuChankan, 1)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuTenhou, check: func(ctx *YakuContext) (Hupai, bool) {
		switch ctx.Score.Tenhou {
		case 1:
			return yakuman(YakuTenhou, 1)
		case 2:
			return yakuman(YakuChiihou, 1)
		}
		return noHupai, false
	}},
}

// RiichiMahjong4pYakuRegistry 普通役, 按结算顺序排列
var RiichiMahjong4pYakuRegistry = []YakuChecker{
	yakuCheckerFunc{id: YakuTsumo, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.Concealed && ctx.Facts.Tsumo {
			return han(YakuTsumo, 1)
		}
		return noHupai, false
	}},

	// 役牌系
	yakuCheckerFunc{id: YakuRoundWind, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.triplets[3][int(ctx.Score.RoundWind)+1] > 0 {
			return han(YakuRoundWind, 1)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuSeatWind, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.triplets[3][int(ctx.Score.SeatWind)+1] > 0 {
			return han(YakuSeatWind, 1)
		}
		return noHupai, false
	}},
	dragonChecker(YakuHaku, 5),
	dragonChecker(YakuHatsu, 6),
	dragonChecker(YakuChun, 7),

	yakuCheckerFunc{id: YakuPinfu, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.Pinfu {
			return han(YakuPinfu, 1)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuTanyao, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.nYaochu > 0 {
			return noHupai, false
		}
		if ctx.Score.Rule.OpenTanyao || ctx.Facts.Concealed {
			return han(YakuTanyao, 1)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuIppeiko, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.Concealed && ctx.Facts.beikou() == 1 {
			return han(YakuIppeiko, 1)
		}
		return noHupai, false
	}},

	// 顺子系
	yakuCheckerFunc{id: YakuSanshoku, check: func(ctx *YakuContext) (Hupai, bool) {
		r := &ctx.Facts.runs
		for n := 1; n <= 7; n++ {
			if r[0][n] > 0 && r[1][n] > 0 && r[2][n] > 0 {
				return menzenHan(ctx, YakuSanshoku, 2, 1)
			}
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuIttsu, check: func(ctx *YakuContext) (Hupai, bool) {
		for _, r := range ctx.Facts.runs {
			if r[1] > 0 && r[4] > 0 && r[7] > 0 {
				return menzenHan(ctx, YakuIttsu, 2, 1)
			}
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuChanta, check: func(ctx *YakuContext) (Hupai, bool) {
		f := ctx.Facts
		if f.nYaochu == 5 && f.nRuns > 0 && f.nHonor > 0 {
			return menzenHan(ctx, YakuChanta, 2, 1)
		}
		return noHupai, false
	}},

	yakuCheckerFunc{id: YakuChiitoi, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Hand.Shape() == ShapeSevenPairs {
			return han(YakuChiitoi, 2)
		}
		return noHupai, false
	}},

	// 刻子系
	yakuCheckerFunc{id: YakuToitoi, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.nTriplets == 4 {
			return han(YakuToitoi, 2)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuSananko, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.nConcealedTriplets == 3 {
			return han(YakuSananko, 2)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuSankantsu, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.nQuads == 3 {
			return han(YakuSankantsu, 2)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuSanshokuDoukou, check: func(ctx *YakuContext) (Hupai, bool) {
		t := &ctx.Facts.triplets
		for n := 1; n <= 9; n++ {
			if t[0][n] > 0 && t[1][n] > 0 && t[2][n] > 0 {
				return han(YakuSanshokuDoukou, 2)
			}
		}
		return noHupai, false
	}},

	// 老头系
	yakuCheckerFunc{id: YakuHonroto, check: func(ctx *YakuContext) (Hupai, bool) {
		f := ctx.Facts
		if f.nYaochu == len(ctx.Blocks) && f.nRuns == 0 && f.nHonor > 0 {
			return han(YakuHonroto, 2)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuShousangen, check: func(ctx *YakuContext) (Hupai, bool) {
		if dragonTriplets(ctx.Facts) == 2 && isDragonPair(ctx.Blocks[0]) {
			return han(YakuShousangen, 2)
		}
		return noHupai, false
	}},

	// 清一色系
	yakuCheckerFunc{id: YakuHonitsu, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.nHonor > 0 && singleSuit(ctx.Blocks, true) {
			return menzenHan(ctx, YakuHonitsu, 3, 2)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuJunchan, check: func(ctx *YakuContext) (Hupai, bool) {
		f := ctx.Facts
		if f.nYaochu == 5 && f.nRuns > 0 && f.nHonor == 0 {
			return menzenHan(ctx, YakuJunchan, 3, 2)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuRyanpeiko, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.Concealed && ctx.Facts.beikou() == 2 {
			return han(YakuRyanpeiko, 3)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuChinitsu, check: func(ctx *YakuContext) (Hupai, bool) {
		if singleSuit(ctx.Blocks, false) {
			return menzenHan(ctx, YakuChinitsu, 6, 5)
		}
		return noHupai, false
	}},
}

// RiichiMahjong4pYakumanRegistry 役满, 任意一个成立时普通役与宝牌全部作废
var RiichiMahjong4pYakumanRegistry = []YakuChecker{
	yakuCheckerFunc{id: YakuKokushi, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Hand.Shape() != ShapeThirteenOrphans {
			return noHupai, false
		}
		if ctx.Facts.Tanki {
			return yakuman(YakuKokushi13, 2)
		}
		return yakuman(YakuKokushi, 1)
	}},
	yakuCheckerFunc{id: YakuSuuankou, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.nConcealedTriplets != 4 {
			return noHupai, false
		}
		if ctx.Facts.Tanki {
			return yakuman(YakuSuuankouTanki, 2)
		}
		return yakuman(YakuSuuankou, 1)
	}},
	yakuCheckerFunc{id: YakuDaisangen, check: func(ctx *YakuContext) (Hupai, bool) {
		if dragonTriplets(ctx.Facts) != 3 {
			return noHupai, false
		}
		h, _ := yakuman(YakuDaisangen, 1)
		h.Liable = liableSeat(ctx.Blocks, func(n int) bool { return n >= 5 }, 3)
		return h, true
	}},
	yakuCheckerFunc{id: YakuDaisushi, check: func(ctx *YakuContext) (Hupai, bool) {
		switch windTriplets(ctx.Facts) {
		case 4:
			h, _ := yakuman(YakuDaisushi, 2)
			h.Liable = liableSeat(ctx.Blocks, func(n int) bool { return n <= 4 }, 4)
			return h, true
		case 3:
			pair := ctx.Blocks[0]
			if pair.Suit == SuitHonor && pair.Digits[0] <= 4 {
				return yakuman(YakuShousushi, 1)
			}
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuTsuuiisou, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.nHonor == len(ctx.Blocks) {
			return yakuman(YakuTsuuiisou, 1)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuRyuuiisou, check: func(ctx *YakuContext) (Hupai, bool) {
		for _, b := range ctx.Blocks {
			switch b.Suit {
			case SuitMan, SuitPin:
				return noHupai, false
			case SuitHonor:
				if b.Digits[0] != 6 {
					return noHupai, false
				}
			case SuitSou:
				for _, n := range b.Digits {
					if n == 1 || n == 5 || n == 7 || n == 9 {
						return noHupai, false
					}
				}
			}
		}
		return yakuman(YakuRyuuiisou, 1)
	}},
	yakuCheckerFunc{id: YakuChinroto, check: func(ctx *YakuContext) (Hupai, bool) {
		f := ctx.Facts
		if f.nYaochu == 5 && f.nTriplets == 4 && f.nHonor == 0 {
			return yakuman(YakuChinroto, 1)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuSuukantsu, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.nQuads == 4 {
			return yakuman(YakuSuukantsu, 1)
		}
		return noHupai, false
	}},
	yakuCheckerFunc{id: YakuChuuren, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Hand.Shape() != ShapeNineGates {
			return noHupai, false
		}
		if isPureNineGates(ctx.Blocks[0]) {
			return yakuman(YakuJunseiChuuren, 2)
		}
		return yakuman(YakuChuuren, 1)
	}},
}

func dragonChecker(y Yaku, n int) YakuChecker {
	return yakuCheckerFunc{id: y, check: func(ctx *YakuContext) (Hupai, bool) {
		if ctx.Facts.triplets[3][n] > 0 {
			return han(y, 1)
		}
		return noHupai, false
	}}
}

func dragonTriplets(f *WinFacts) int {
	return f.triplets[3][5] + f.triplets[3][6] + f.triplets[3][7]
}

func windTriplets(f *WinFacts) int {
	return f.triplets[3][1] + f.triplets[3][2] + f.triplets[3][3] + f.triplets[3][4]
}

func isDragonPair(b Block) bool {
	return b.Suit == SuitHonor && b.isPair() && b.Digits[0] >= 5
}

// singleSuit 只有一种数牌花色; withHonors 为 false 时不允许字牌
func singleSuit(blocks []Block, withHonors bool) bool {
	for _, s := range suits[:3] {
		ok := true
		for _, b := range blocks {
			if b.Suit == s || (withHonors && b.Suit == SuitHonor) {
				continue
			}
			ok = false
			break
		}
		if ok {
			return true
		}
	}
	return false
}

// liableSeat 第 nth 个鸣出的相关刻子的来源即为包牌者, 暗杠没有来源
func liableSeat(blocks []Block, match func(n int) bool, nth int) Direction {
	k := 0
	for _, b := range blocks {
		if !b.Declared || b.Suit != SuitHonor || !b.isTriplet() || !match(b.Digits[0]) {
			continue
		}
		k++
		if k == nth {
			if b.isOpen() {
				return b.From
			}
			return DirNone
		}
	}
	return DirNone
}

// isPureNineGates 和了前的 13 张正好是 1112345678999。
// 1112345678999 再和 1 也算纯正九莲, 多出的是和了牌而不是手里的牌
func isPureNineGates(b Block) bool {
	pure := [13]int{1, 1, 1, 2, 3, 4, 5, 6, 7, 8, 9, 9, 9}
	if len(b.Digits) != 14 {
		return false
	}
	for i, n := range pure {
		if b.Digits[i] != n {
			return false
		}
	}
	return true
}

// situationalHupai 状况役; 天和、地和成立时取代其他状况役
func situationalHupai(sc *ScoringContext) []Hupai {
	ctx := &YakuContext{Score: sc}
	var out []Hupai
	for _, checker := range SituationalYakuRegistry {
		h, ok := checker.Check(ctx)
		if !ok {
			continue
		}
		if h.Yakuman > 0 {
			return []Hupai{h}
		}
		out = append(out, h)
	}
	return out
}

// bonusHupai 宝牌、赤宝牌、里宝牌, 计入暗牌、副露和荣和的牌
func bonusHupai(h *Hand, ron *Claim, sc *ScoringContext) []Hupai {
	var counts [4]suitCounts
	red := 0
	hand := h
	if ron != nil {
		hand = h.Clone()
		if err := hand.Draw(ron.Tile, false); err != nil {
			return nil
		}
	}
	counts = hand.bingpai
	for si := range suits[:3] {
		red += counts[si][0]
	}
	for _, m := range hand.melds {
		si := m.Suit.index()
		for i, n := range m.Digits {
			counts[si][m.rank(i)]++
			if n == 0 && m.Suit.IsNumbered() {
				red++
			}
		}
	}
	countOf := func(indicators []Tile) int {
		total := 0
		for _, ind := range indicators {
			if ind.IsHidden() {
				continue
			}
			d := DoraFromIndicator(ind)
			total += counts[d.Suit.index()][d.Number]
		}
		return total
	}

	var out []Hupai
	if n := countOf(sc.DoraIndicators); n > 0 {
		out = append(out, Hupai{Yaku: YakuDora, Han: n})
	}
	if red > 0 {
		out = append(out, Hupai{Yaku: YakuAkaDora, Han: red})
	}
	if n := countOf(sc.UraDoraIndicators); n > 0 {
		out = append(out, Hupai{Yaku: YakuUraDora, Han: n})
	}
	return out
}

// evalHupai 一种拆解成立的全部役。pre 为状况役, post 为宝牌。
// 有役满时只返回役满; 没有任何役时返回空, 宝牌不单独成立。
func evalHupai(ctx *YakuContext, pre, post []Hupai) []Hupai {
	rule := ctx.Score.Rule

	var limits []Hupai
	if len(pre) > 0 && pre[0].Yakuman > 0 {
		limits = append(limits, pre...)
	}
	for _, checker := range RiichiMahjong4pYakumanRegistry {
		if h, ok := checker.Check(ctx); ok {
			limits = append(limits, h)
		}
	}
	if len(limits) > 0 {
		for i := range limits {
			if !rule.DoubleYakuman {
				limits[i].Yakuman = 1
			}
			if !rule.YakumanLiability {
				limits[i].Liable = DirNone
			}
		}
		return limits
	}

	results := append([]Hupai(nil), pre...)
	for _, checker := range RiichiMahjong4pYakuRegistry {
		if h, ok := checker.Check(ctx); ok {
			results = append(results, h)
		}
	}
	if len(results) > 0 {
		results = append(results, post...)
	}
	return results
}
