package mahjong

import (
	"strings"

	"jongcore/common/log"
)

// Block 和牌拆解中的一块: 雀头、面子、国士的单张, 或九莲宝灯的整组牌。
// Digits 中赤五记为 5。Win 为和了牌所在的下标, 不含和了牌时为 -1。
type Block struct {
	Suit     Suit
	Digits   []int
	Declared bool      // 副露或暗杠
	Claimed  int       // 副露的鸣牌下标, 暗杠与手中的块为 -1
	From     Direction // 副露来源
	Win      int
	WinFrom  Direction // DirSelf 表示自摸
}

func (b Block) String() string {
	var sb strings.Builder
	sb.WriteByte(byte(b.Suit))
	for i, n := range b.Digits {
		sb.WriteByte(byte('0' + n))
		if b.Declared && i == b.Claimed {
			sb.WriteByte(byte(b.From))
		}
		if i == b.Win {
			sb.WriteByte(byte(b.WinFrom))
			sb.WriteByte('!')
		}
	}
	return sb.String()
}

func newBlock(s Suit, digits ...int) Block {
	return Block{Suit: s, Digits: digits, Claimed: -1, Win: -1}
}

func blockFromMeld(m Meld) Block {
	b := newBlock(m.Suit)
	for i := range m.Digits {
		b.Digits = append(b.Digits, m.rank(i))
	}
	b.Declared = true
	b.Claimed, b.From = m.Claimed, m.From
	return b
}

func (b Block) sameAs(o Block) bool {
	if b.Suit != o.Suit || b.Declared != o.Declared || len(b.Digits) != len(o.Digits) {
		return false
	}
	for i := range b.Digits {
		if b.Digits[i] != o.Digits[i] {
			return false
		}
	}
	return true
}

// isOpen 带来源的副露(暗杠不算)
func (b Block) isOpen() bool {
	return b.Declared && b.Claimed >= 0
}

func (b Block) isRon() bool {
	return b.Win >= 0 && b.WinFrom != DirSelf
}

func (b Block) isPair() bool {
	return len(b.Digits) == 2 && b.Digits[0] == b.Digits[1]
}

// isTriplet 刻子或杠子
func (b Block) isTriplet() bool {
	return len(b.Digits) >= 3 && b.Digits[0] == b.Digits[1] && b.Digits[1] == b.Digits[2]
}

func (b Block) isQuad() bool {
	return len(b.Digits) == 4
}

// isConcealedTriplet 暗刻: 手中的刻子(荣和完成的除外)或暗杠
func (b Block) isConcealedTriplet() bool {
	if b.Declared {
		return b.isQuad() && b.Claimed < 0
	}
	return !b.isRon()
}

// hasYaochu 含幺九牌
func (b Block) hasYaochu() bool {
	if b.Suit == SuitHonor {
		return true
	}
	for _, n := range b.Digits {
		if n == 1 || n == 9 {
			return true
		}
	}
	return false
}

func (b Block) contains(n int) bool {
	for _, d := range b.Digits {
		if d == n {
			return true
		}
	}
	return false
}

// markWin 在最后一张 n 的位置标记和了牌
func (b Block) markWin(n int, from Direction) Block {
	b.Digits = append([]int(nil), b.Digits...)
	for i := len(b.Digits) - 1; i >= 0; i-- {
		if b.Digits[i] == n {
			b.Win, b.WinFrom = i, from
			break
		}
	}
	return b
}

// Shape 和牌形
type Shape int

const (
	ShapeStandard        Shape = iota // 四面子一雀头
	ShapeSevenPairs                   // 七对子
	ShapeThirteenOrphans              // 国士无双
	ShapeNineGates                    // 九莲宝灯
)

func (s Shape) String() string {
	switch s {
	case ShapeStandard:
		return "standard"
	case ShapeSevenPairs:
		return "seven-pairs"
	case ShapeThirteenOrphans:
		return "thirteen-orphans"
	case ShapeNineGates:
		return "nine-gates"
	}
	return "unknown"
}

// Decomposition 一种和牌拆解, 只有下面四种实现
type Decomposition interface {
	Shape() Shape
	// Blocks 按固定顺序返回所有块, 雀头在最前
	Blocks() []Block
	String() string
	decomposition()
}

type StandardForm struct {
	Pair  Block
	Melds [4]Block
}

type SevenPairsForm struct {
	Pairs [7]Block
}

type ThirteenOrphansForm struct {
	Pair    Block
	Singles [12]Block
}

// NineGatesForm 整组 14 张作为一块, 和了牌在最后
type NineGatesForm struct {
	Tiles Block
}

func (StandardForm) Shape() Shape        { return ShapeStandard }
func (SevenPairsForm) Shape() Shape      { return ShapeSevenPairs }
func (ThirteenOrphansForm) Shape() Shape { return ShapeThirteenOrphans }
func (NineGatesForm) Shape() Shape       { return ShapeNineGates }

func (f StandardForm) Blocks() []Block {
	return append([]Block{f.Pair}, f.Melds[:]...)
}

func (f SevenPairsForm) Blocks() []Block { return append([]Block(nil), f.Pairs[:]...) }

func (f ThirteenOrphansForm) Blocks() []Block {
	return append([]Block{f.Pair}, f.Singles[:]...)
}

func (f NineGatesForm) Blocks() []Block { return []Block{f.Tiles} }

func (f StandardForm) String() string        { return joinBlocks(f.Blocks()) }
func (f SevenPairsForm) String() string      { return joinBlocks(f.Blocks()) }
func (f ThirteenOrphansForm) String() string { return joinBlocks(f.Blocks()) }
func (f NineGatesForm) String() string       { return joinBlocks(f.Blocks()) }

func (StandardForm) decomposition()        {}
func (SevenPairsForm) decomposition()      {}
func (ThirteenOrphansForm) decomposition() {}
func (NineGatesForm) decomposition()       {}

func joinBlocks(bs []Block) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}

// BlockStrings 牌谱形式的各块, 主要用于日志与测试
func BlockStrings(d Decomposition) []string {
	bs := d.Blocks()
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.String()
	}
	return out
}

// Decompose 枚举全部和牌拆解。ron 为空时以摸到的牌自摸和了。
// 手里没有摸到的牌、或刚鸣牌时没有拆解。
func Decompose(h *Hand, ron *Claim) ([]Decomposition, error) {
	hand := h
	from := DirSelf
	if ron != nil {
		if err := validateClaim(*ron); err != nil {
			return nil, err
		}
		hand = h.Clone()
		if err := hand.Draw(ron.Tile, true); err != nil {
			return nil, err
		}
		from = ron.From
	}
	if hand.drawn == nil || hand.drawn.IsHidden() {
		return nil, nil
	}
	win := hand.drawn.Normal()

	var out []Decomposition
	out = append(out, standardForms(hand, win, from)...)
	if f, ok := sevenPairsForm(hand, win, from); ok {
		out = append(out, f)
	}
	if f, ok := thirteenOrphansForm(hand, win, from); ok {
		out = append(out, f)
	}
	if f, ok := nineGatesForm(hand, win, from); ok {
		out = append(out, f)
	}
	if log.Enabled("debug") {
		readings := make([]string, len(out))
		for i, d := range out {
			readings[i] = d.String()
		}
		log.Debug("decompose %s win %s%s: [%s]", hand, win, from, strings.Join(readings, " | "))
	}
	return out, nil
}

// mianziAll 一种数牌花色的所有完全拆解(顺子优先, 然后刻子)
func mianziAll(s Suit, c suitCounts, n int) [][]Block {
	if n > 9 {
		return [][]Block{{}}
	}
	if c[n] == 0 {
		return mianziAll(s, c, n+1)
	}
	var out [][]Block
	if n <= 7 && c[n+1] > 0 && c[n+2] > 0 {
		next := c
		next[n]--
		next[n+1]--
		next[n+2]--
		for _, rest := range mianziAll(s, next, n) {
			out = append(out, append([]Block{newBlock(s, n, n+1, n+2)}, rest...))
		}
	}
	if c[n] == 3 {
		next := c
		next[n] -= 3
		for _, rest := range mianziAll(s, next, n+1) {
			out = append(out, append([]Block{newBlock(s, n, n, n)}, rest...))
		}
	}
	return out
}

// meldCombinations 暗牌拆成面子的所有组合, 字牌必须正好是刻子, 副露接在最后
func meldCombinations(bingpai [4]suitCounts, melds []Meld) [][]Block {
	combos := [][]Block{{}}
	for si, s := range suits[:3] {
		var next [][]Block
		for _, head := range combos {
			for _, part := range mianziAll(s, bingpai[si], 1) {
				next = append(next, append(append([]Block(nil), head...), part...))
			}
		}
		combos = next
	}
	var honors []Block
	for n := 1; n <= 7; n++ {
		switch bingpai[3][n] {
		case 0:
		case 3:
			honors = append(honors, newBlock(SuitHonor, n, n, n))
		default:
			return nil
		}
	}
	for i := range combos {
		combos[i] = append(combos[i], honors...)
		for _, m := range melds {
			combos[i] = append(combos[i], blockFromMeld(m))
		}
	}
	return combos
}

func standardForms(h *Hand, win Tile, from Direction) []Decomposition {
	var out []Decomposition
	for si, s := range suits {
		for n := 1; n <= s.maxNumber(); n++ {
			if h.bingpai[si][n] < 2 {
				continue
			}
			work := h.bingpai
			work[si][n] -= 2
			pair := newBlock(s, n, n)
			for _, melds := range meldCombinations(work, h.melds) {
				if len(melds) != 4 {
					continue
				}
				blocks := append([]Block{pair}, melds...)
				for _, marked := range markWinning(blocks, win, from) {
					f := StandardForm{Pair: marked[0]}
					copy(f.Melds[:], marked[1:])
					out = append(out, f)
				}
			}
		}
	}
	return out
}

// markWinning 每个可能含有和了牌的暗块各产生一种读法, 与前一块相同的跳过
func markWinning(blocks []Block, win Tile, from Direction) [][]Block {
	var out [][]Block
	for i, b := range blocks {
		if b.Declared {
			continue
		}
		if i > 0 && b.sameAs(blocks[i-1]) {
			continue
		}
		if b.Suit != win.Suit || !b.contains(win.Number) {
			continue
		}
		reading := append([]Block(nil), blocks...)
		reading[i] = b.markWin(win.Number, from)
		out = append(out, reading)
	}
	return out
}

func sevenPairsForm(h *Hand, win Tile, from Direction) (SevenPairsForm, bool) {
	var f SevenPairsForm
	if len(h.melds) > 0 {
		return f, false
	}
	k := 0
	for si, s := range suits {
		for n := 1; n <= s.maxNumber(); n++ {
			switch h.bingpai[si][n] {
			case 0:
				continue
			case 2:
				if k == 7 {
					return f, false
				}
				b := newBlock(s, n, n)
				if win == (Tile{Suit: s, Number: n}) {
					b = b.markWin(n, from)
				}
				f.Pairs[k] = b
				k++
			default:
				return f, false
			}
		}
	}
	return f, k == 7
}

func thirteenOrphansForm(h *Hand, win Tile, from Direction) (ThirteenOrphansForm, bool) {
	var f ThirteenOrphansForm
	if len(h.melds) > 0 {
		return f, false
	}
	pairs, k := 0, 0
	for si, s := range suits {
		ns := []int{1, 9}
		if s == SuitHonor {
			ns = []int{1, 2, 3, 4, 5, 6, 7}
		}
		for _, n := range ns {
			var b Block
			switch h.bingpai[si][n] {
			case 1:
				b = newBlock(s, n)
			case 2:
				b = newBlock(s, n, n)
			default:
				return f, false
			}
			if win == (Tile{Suit: s, Number: n}) {
				b = b.markWin(n, from)
			}
			if len(b.Digits) == 2 {
				pairs++
				if pairs > 1 {
					return f, false
				}
				f.Pair = b
				continue
			}
			if k == len(f.Singles) {
				return f, false
			}
			f.Singles[k] = b
			k++
		}
	}
	return f, pairs == 1 && k == len(f.Singles)
}

func nineGatesForm(h *Hand, win Tile, from Direction) (NineGatesForm, bool) {
	var f NineGatesForm
	if win.Suit == SuitHonor {
		return f, false
	}
	c := h.counts(win.Suit)
	b := newBlock(win.Suit)
	for n := 1; n <= 9; n++ {
		if c[n] == 0 {
			return f, false
		}
		if (n == 1 || n == 9) && c[n] < 3 {
			return f, false
		}
		k := c[n]
		if n == win.Number {
			k--
		}
		for i := 0; i < k; i++ {
			b.Digits = append(b.Digits, n)
		}
	}
	if len(b.Digits) != 13 {
		return f, false
	}
	b.Digits = append(b.Digits, win.Number)
	b.Win, b.WinFrom = 13, from
	f.Tiles = b
	return f, true
}
