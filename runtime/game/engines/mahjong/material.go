package mahjong

import (
	"fmt"
	"sort"
	"strings"
)

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "East"
	case WindSouth:
		return "South"
	case WindWest:
		return "West"
	case WindNorth:
		return "North"
	default:
		return "Unknown"
	}
}

func (w Wind) Next() Wind {
	return (w + 1) % 4
}

// Tile 返回该风对应的字牌 z1-z4
func (w Wind) Tile() Tile {
	return Tile{Suit: SuitHonor, Number: int(w) + 1}
}

// Suit 花色, 直接使用牌谱中的字母
type Suit byte

const (
	SuitMan   Suit = 'm' // 万子
	SuitPin   Suit = 'p' // 筒子
	SuitSou   Suit = 's' // 索子
	SuitHonor Suit = 'z' // 字牌
)

var suits = [4]Suit{SuitMan, SuitPin, SuitSou, SuitHonor}

func (s Suit) IsNumbered() bool {
	return s == SuitMan || s == SuitPin || s == SuitSou
}

func (s Suit) index() int {
	switch s {
	case SuitMan:
		return 0
	case SuitPin:
		return 1
	case SuitSou:
		return 2
	case SuitHonor:
		return 3
	}
	return -1
}

// maxNumber 数牌 1-9, 字牌 1-7
func (s Suit) maxNumber() int {
	if s == SuitHonor {
		return 7
	}
	return 9
}

func parseSuit(c byte) (Suit, bool) {
	s := Suit(c)
	return s, s.index() >= 0
}

// Tile 一张牌。Number 为 0 表示赤五; 零值 Tile{} 表示看不见的牌, 写作 "_"
type Tile struct {
	Suit   Suit
	Number int
}

// HiddenTile 未公开的牌
var HiddenTile = Tile{}

func (t Tile) IsHidden() bool {
	return t.Suit == 0
}

// IsRedFive 判断是否为赤宝牌
func (t Tile) IsRedFive() bool {
	return t.Suit.IsNumbered() && t.Number == 0
}

// Rank 点数, 赤五视为 5
func (t Tile) Rank() int {
	if t.Number == 0 && t.Suit.IsNumbered() {
		return 5
	}
	return t.Number
}

// Normal 去掉赤宝牌标记
func (t Tile) Normal() Tile {
	return Tile{Suit: t.Suit, Number: t.Rank()}
}

// Kind 0-33 的牌种编号, 顺序为 万 筒 索 字
func (t Tile) Kind() int {
	return t.Suit.index()*9 + t.Rank() - 1
}

func (t Tile) IsHonor() bool {
	return t.Suit == SuitHonor
}

// IsYaochu 幺九牌: 1、9 和字牌
func (t Tile) IsYaochu() bool {
	r := t.Rank()
	return t.Suit == SuitHonor || r == 1 || r == 9
}

func (t Tile) valid() bool {
	if !t.Suit.IsNumbered() && t.Suit != SuitHonor {
		return false
	}
	if t.Suit == SuitHonor {
		return t.Number >= 1 && t.Number <= 7
	}
	return t.Number >= 0 && t.Number <= 9
}

func (t Tile) String() string {
	if t.IsHidden() {
		return "_"
	}
	return fmt.Sprintf("%c%d", t.Suit, t.Number)
}

// ParseTile 解析单张牌: m0-m9, p0-p9, s0-s9, z1-z7 或 "_"
func ParseTile(s string) (Tile, error) {
	if s == "_" {
		return HiddenTile, nil
	}
	if len(s) != 2 || s[1] < '0' || s[1] > '9' {
		return Tile{}, fmt.Errorf("%w: %q", ErrTileFormat, s)
	}
	suit, ok := parseSuit(s[0])
	t := Tile{Suit: suit, Number: int(s[1] - '0')}
	if !ok || !t.valid() {
		return Tile{}, fmt.Errorf("%w: %q", ErrTileFormat, s)
	}
	return t, nil
}

// MustTile 用于常量与测试, 格式错误直接 panic
func MustTile(s string) Tile {
	t, err := ParseTile(s)
	if err != nil {
		panic(err)
	}
	return t
}

// DoraFromIndicator 由宝牌指示牌得到宝牌
func DoraFromIndicator(t Tile) Tile {
	n := t.Rank()
	if t.Suit == SuitHonor {
		if n < 5 {
			return Tile{Suit: SuitHonor, Number: n%4 + 1}
		}
		return Tile{Suit: SuitHonor, Number: (n-4)%3 + 5}
	}
	return Tile{Suit: t.Suit, Number: n%9 + 1}
}

// Direction 副露来源, 相对于自己的座位
type Direction byte

const (
	DirNone   Direction = 0
	DirRight  Direction = '+' // 下家
	DirAcross Direction = '=' // 对家
	DirLeft   Direction = '-' // 上家
	DirSelf   Direction = '_' // 自摸
)

func parseDirection(c byte) (Direction, bool) {
	switch d := Direction(c); d {
	case DirRight, DirAcross, DirLeft:
		return d, true
	}
	return DirNone, false
}

// Offset 来源座位相对自己的偏移: 下家 1, 对家 2, 上家 3
func (d Direction) Offset() int {
	switch d {
	case DirRight:
		return 1
	case DirAcross:
		return 2
	case DirLeft:
		return 3
	}
	return 0
}

func (d Direction) String() string {
	if d == DirNone {
		return ""
	}
	return string(rune(d))
}

// Claim 被鸣的一张牌(吃碰杠或荣和), 写作 "m3-"
type Claim struct {
	Tile Tile
	From Direction
}

func ParseClaim(s string) (Claim, error) {
	if len(s) != 3 {
		return Claim{}, fmt.Errorf("%w: claim %q", ErrTileFormat, s)
	}
	t, err := ParseTile(s[:2])
	if err != nil || t.IsHidden() {
		return Claim{}, fmt.Errorf("%w: claim %q", ErrTileFormat, s)
	}
	d, ok := parseDirection(s[2])
	if !ok {
		return Claim{}, fmt.Errorf("%w: claim %q needs a direction", ErrTileFormat, s)
	}
	return Claim{Tile: t, From: d}, nil
}

func (c Claim) String() string {
	return c.Tile.String() + c.From.String()
}

// Discard 打出的牌。Drawn 表示摸切, Riichi 表示立直宣言牌: m1, m1_, m1*, m1_*
type Discard struct {
	Tile   Tile
	Drawn  bool
	Riichi bool
}

func ParseDiscard(s string) (Discard, error) {
	if len(s) < 2 {
		return Discard{}, fmt.Errorf("%w: discard %q", ErrTileFormat, s)
	}
	t, err := ParseTile(s[:2])
	if err != nil || t.IsHidden() {
		return Discard{}, fmt.Errorf("%w: discard %q", ErrTileFormat, s)
	}
	d := Discard{Tile: t}
	rest := s[2:]
	if strings.HasPrefix(rest, "_") {
		d.Drawn = true
		rest = rest[1:]
	}
	if strings.HasPrefix(rest, "*") {
		d.Riichi = true
		rest = rest[1:]
	}
	if rest != "" {
		return Discard{}, fmt.Errorf("%w: discard %q", ErrTileFormat, s)
	}
	return d, nil
}

func (d Discard) String() string {
	s := d.Tile.String()
	if d.Drawn {
		s += "_"
	}
	if d.Riichi {
		s += "*"
	}
	return s
}

// Meld 副露或暗杠。Digits 按牌谱顺序保存, 0 为赤五;
// Claimed 为鸣牌标记紧跟的那一位下标, 暗杠为 -1。加杠的标记在第三位之后。
type Meld struct {
	Suit    Suit
	Digits  []int
	Claimed int
	From    Direction
}

func (m Meld) String() string {
	var b strings.Builder
	b.WriteByte(byte(m.Suit))
	for i, n := range m.Digits {
		b.WriteByte(byte('0' + n))
		if i == m.Claimed {
			b.WriteByte(byte(m.From))
		}
	}
	return b.String()
}

func (m Meld) rank(i int) int {
	if m.Digits[i] == 0 && m.Suit.IsNumbered() {
		return 5
	}
	return m.Digits[i]
}

func (m Meld) sameRanks() bool {
	for i := 1; i < len(m.Digits); i++ {
		if m.rank(i) != m.rank(0) {
			return false
		}
	}
	return true
}

// IsRun 顺子(吃)
func (m Meld) IsRun() bool { return len(m.Digits) == 3 && !m.sameRanks() }

// IsTriplet 碰
func (m Meld) IsTriplet() bool { return len(m.Digits) == 3 && m.sameRanks() }

// IsQuad 任意杠子
func (m Meld) IsQuad() bool { return len(m.Digits) == 4 }

// IsConcealedQuad 暗杠
func (m Meld) IsConcealedQuad() bool { return m.IsQuad() && m.Claimed < 0 }

// IsAddedQuad 加杠
func (m Meld) IsAddedQuad() bool { return m.IsQuad() && m.Claimed == 2 }

// IsOpen 是否有鸣牌
func (m Meld) IsOpen() bool { return m.Claimed >= 0 }

// ClaimedTile 被鸣的那张牌
func (m Meld) ClaimedTile() (Tile, bool) {
	if m.Claimed < 0 {
		return Tile{}, false
	}
	return Tile{Suit: m.Suit, Number: m.Digits[m.Claimed]}, true
}

// Tiles 副露包含的所有牌
func (m Meld) Tiles() []Tile {
	out := make([]Tile, len(m.Digits))
	for i, n := range m.Digits {
		out[i] = Tile{Suit: m.Suit, Number: n}
	}
	return out
}

// basePon 加杠之前的碰
func (m Meld) basePon() Meld {
	return Meld{Suit: m.Suit, Digits: append([]int(nil), m.Digits[:3]...), Claimed: m.Claimed, From: m.From}
}

func (m Meld) clone() Meld {
	m.Digits = append([]int(nil), m.Digits...)
	return m
}

// ParseMeld 解析并规范化副露:
// m055= → m505=, p0555 → p5550, p0555= → p5505=, s6-45 → s456-
func ParseMeld(s string) (Meld, error) {
	m, ok := normalizeMeld(s)
	if !ok {
		return Meld{}, fmt.Errorf("%w: %q", ErrMeldFormat, s)
	}
	return m, nil
}

func MustMeld(s string) Meld {
	m, err := ParseMeld(s)
	if err != nil {
		panic(err)
	}
	return m
}

type meldToken struct {
	n      int
	marked bool
}

func normalizeMeld(s string) (Meld, bool) {
	if len(s) < 2 {
		return Meld{}, false
	}
	suit, ok := parseSuit(s[0])
	if !ok {
		return Meld{}, false
	}
	var (
		toks  []meldToken
		from  = DirNone
		marks int
	)
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			n := int(c - '0')
			if suit == SuitHonor && (n == 0 || n > 7) {
				return Meld{}, false
			}
			toks = append(toks, meldToken{n: n})
			continue
		}
		d, ok := parseDirection(c)
		if !ok || len(toks) == 0 || toks[len(toks)-1].marked {
			return Meld{}, false
		}
		toks[len(toks)-1].marked = true
		from = d
		marks++
	}
	if marks > 1 {
		return Meld{}, false
	}
	rank := func(n int) int {
		if n == 0 {
			return 5
		}
		return n
	}
	allSame := true
	for _, t := range toks {
		if rank(t.n) != rank(toks[0].n) {
			allSame = false
		}
	}
	markedAt := -1
	for i, t := range toks {
		if t.marked {
			markedAt = i
		}
	}
	digits := func(ts []meldToken) []int {
		out := make([]int, len(ts))
		for i, t := range ts {
			out[i] = t.n
		}
		return out
	}

	switch {
	// 碰与加杠: 三张相同, 第三张后带来源, 加杠再跟一张
	case allSame && markedAt == 2 && (len(toks) == 3 || len(toks) == 4):
		d := digits(toks)
		if suit.IsNumbered() && d[0] == 0 && d[1] == 5 {
			d[0], d[1] = 5, 0
		}
		return Meld{Suit: suit, Digits: d, Claimed: 2, From: from}, true

	// 明杠与暗杠: 四张相同, 来源只能在最后; 未鸣的牌降序排列使赤五在后
	case allSame && len(toks) == 4 && (markedAt == 3 || markedAt == -1):
		free := toks
		if markedAt == 3 {
			free = toks[:3]
		}
		d := digits(free)
		sort.Sort(sort.Reverse(sort.IntSlice(d)))
		m := Meld{Suit: suit, Digits: d, Claimed: -1}
		if markedAt == 3 {
			m.Digits = append(m.Digits, toks[3].n)
			m.Claimed, m.From = 3, from
		}
		return m, true

	// 吃: 只能从上家, 三张连续
	case suit.IsNumbered() && len(toks) == 3 && from == DirLeft:
		ts := append([]meldToken(nil), toks...)
		sort.SliceStable(ts, func(i, j int) bool { return rank(ts[i].n) < rank(ts[j].n) })
		for i := 1; i < 3; i++ {
			if rank(ts[i].n) != rank(ts[i-1].n)+1 {
				return Meld{}, false
			}
		}
		m := Meld{Suit: suit, Digits: digits(ts), From: from}
		for i, t := range ts {
			if t.marked {
				m.Claimed = i
			}
		}
		return m, true
	}
	return Meld{}, false
}
