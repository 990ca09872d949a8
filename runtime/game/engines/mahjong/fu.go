package mahjong

// WinFacts 从一种和牌拆解中统计出的符数与役种判断所需的特征
type WinFacts struct {
	Fu        int
	Concealed bool // 门前清
	Tsumo     bool // 自摸
	Pinfu     bool
	Tanki     bool // 单骑, 国士中表示十三面

	runs     [3][10]int // 顺子, 按花色与起始点数
	triplets [4][10]int // 刻子(含杠子), 按花色与点数

	nRuns, nTriplets, nConcealedTriplets, nQuads int
	nYaochu, nHonor                              int // 含幺九牌的块数、字牌块数

	roundWind, seatWind Wind
}

// calculateFu 统计一种拆解的符数, 七对子固定 25 符, 国士与九莲不计符
func calculateFu(d Decomposition, roundWind, seatWind Wind) *WinFacts {
	f := &WinFacts{Fu: 20, Concealed: true, Tsumo: true, roundWind: roundWind, seatWind: seatWind}
	blocks := d.Blocks()
	shape := d.Shape()

	for i, b := range blocks {
		if b.isOpen() {
			f.Concealed = false
		}
		if b.isRon() {
			f.Tsumo = false
		}
		if shape == ShapeNineGates {
			continue
		}
		if b.isPair() && b.Win >= 0 {
			f.Tanki = true
		}
		if shape == ShapeThirteenOrphans {
			continue
		}
		if b.hasYaochu() {
			f.nYaochu++
		}
		if b.Suit == SuitHonor {
			f.nHonor++
		}
		if shape != ShapeStandard {
			continue
		}

		switch {
		case i == 0:
			fu := 0
			if b.Suit == SuitHonor {
				n := b.Digits[0]
				if n == int(roundWind)+1 {
					fu += 2
				}
				if n == int(seatWind)+1 {
					fu += 2
				}
				if n >= 5 {
					fu += 2
				}
			}
			f.Fu += fu
			if f.Tanki {
				f.Fu += 2
			}
		case b.isTriplet():
			f.nTriplets++
			fu := 2
			if b.hasYaochu() {
				fu *= 2
			}
			if b.isConcealedTriplet() {
				fu *= 2
				f.nConcealedTriplets++
			}
			if b.isQuad() {
				fu *= 4
				f.nQuads++
			}
			f.Fu += fu
			f.triplets[b.Suit.index()][b.Digits[0]]++
		default:
			f.nRuns++
			// 嵌张, 边张
			if !b.Declared && b.Win == 1 {
				f.Fu += 2
			}
			if !b.Declared && isEdgeWait(b) {
				f.Fu += 2
			}
			f.runs[b.Suit.index()][b.Digits[0]]++
		}
	}

	switch shape {
	case ShapeSevenPairs:
		f.Fu = 25
	case ShapeStandard:
		f.Pinfu = f.Concealed && f.Fu == 20
		if f.Tsumo {
			if !f.Pinfu {
				f.Fu += 2
			}
		} else {
			if f.Concealed {
				f.Fu += 10
			} else if f.Fu == 20 {
				f.Fu = 30
			}
		}
		f.Fu = (f.Fu + 9) / 10 * 10
	}
	return f
}

// isEdgeWait 12 听 3, 89 听 7
func isEdgeWait(b Block) bool {
	if len(b.Digits) != 3 {
		return false
	}
	return (b.Digits[0] == 1 && b.Win == 2) || (b.Digits[0] == 7 && b.Win == 0)
}

// beikou 相同顺子的组数, 一杯口为 1, 二杯口为 2
func (f *WinFacts) beikou() int {
	total := 0
	for s := range f.runs {
		for _, c := range f.runs[s] {
			total += c >> 1
		}
	}
	return total
}
