package mahjong

import (
	"fmt"
	"strconv"
	"strings"
)

// suitCounts 一种花色的手牌计数。下标 1-9 为各点数的张数(赤五同时计入 5),
// 下标 0 为赤五的张数; 字牌只用 1-7。按值传递, 递归搜索时天然隔离。
type suitCounts [10]int

// Hand 一名玩家的手牌: 暗牌计数、副露、至多一张待处理的牌(摸到的牌或刚鸣的副露)和立直标记
type Hand struct {
	bingpai [4]suitCounts
	hidden  int // 看不见的牌 "_"
	melds   []Meld
	drawn   *Tile // 摸到但尚未打出的牌
	called  *Meld // 刚鸣牌, 尚未打牌
	riichi  bool
}

// NewHand 由配牌创建手牌
func NewHand(tiles []Tile) (*Hand, error) {
	h := &Hand{}
	for _, t := range tiles {
		if err := h.add(t); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// ParseHand 解析牌谱格式的手牌, 例如 "m123p0456s789z11*,z555=,"
// 格式错误的副露会被静默丢弃, 超出张数的暗牌被截断
func ParseHand(text string) (*Hand, error) {
	parts := strings.Split(text, ",")
	concealed, fields := parts[0], parts[1:]

	tiles := make([]Tile, 0, 14)
	for i := 0; i < strings.Count(concealed, "_"); i++ {
		tiles = append(tiles, HiddenTile)
	}
	for i := 0; i < len(concealed); i++ {
		suit, ok := parseSuit(concealed[i])
		if !ok {
			continue
		}
		for i+1 < len(concealed) && concealed[i+1] >= '0' && concealed[i+1] <= '9' {
			i++
			t := Tile{Suit: suit, Number: int(concealed[i] - '0')}
			if t.valid() {
				tiles = append(tiles, t)
			}
		}
	}

	declared := 0
	for _, f := range fields {
		if f != "" {
			declared++
		}
	}
	limit := max(14-declared*3, 0)
	if len(tiles) > limit {
		tiles = tiles[:limit]
	}
	var drawn *Tile
	if len(tiles) > 0 && (len(tiles)-2)%3 == 0 {
		t := tiles[len(tiles)-1]
		drawn = &t
	}

	h, err := NewHand(tiles)
	if err != nil {
		return nil, err
	}
	last := -1
	for _, f := range fields {
		if f == "" {
			if last >= 0 {
				c := h.melds[last].clone()
				h.called = &c
			}
			break
		}
		m, ok := normalizeMeld(f)
		if !ok {
			continue
		}
		h.melds = append(h.melds, m)
		last = len(h.melds) - 1
	}
	if h.called == nil {
		h.drawn = drawn
	}
	h.riichi = strings.HasSuffix(concealed, "*")
	return h, nil
}

// MustHand 用于测试与常量
func MustHand(text string) *Hand {
	h, err := ParseHand(text)
	if err != nil {
		panic(err)
	}
	return h
}

func (h *Hand) String() string {
	var b strings.Builder
	hidden := h.hidden
	if h.drawn != nil && h.drawn.IsHidden() {
		hidden--
	}
	b.WriteString(strings.Repeat("_", hidden))

	for _, s := range suits {
		c := h.bingpai[s.index()]
		red := 0
		if s.IsNumbered() {
			red = c[0]
		}
		var group strings.Builder
		for n := 1; n <= s.maxNumber(); n++ {
			k := c[n]
			if h.drawn != nil && h.drawn.Suit == s {
				if h.drawn.Number == n {
					k--
				}
				if n == 5 && h.drawn.Number == 0 {
					k--
					red--
				}
			}
			for i := 0; i < k; i++ {
				if n == 5 && red > 0 {
					group.WriteByte('0')
					red--
				} else {
					group.WriteByte(byte('0' + n))
				}
			}
		}
		if group.Len() > 0 {
			b.WriteByte(byte(s))
			b.WriteString(group.String())
		}
	}
	if h.drawn != nil {
		b.WriteString(h.drawn.String())
	}
	if h.riichi {
		b.WriteByte('*')
	}
	for _, m := range h.melds {
		b.WriteByte(',')
		b.WriteString(m.String())
	}
	if h.called != nil {
		b.WriteByte(',')
	}
	return b.String()
}

func (h *Hand) Clone() *Hand {
	c := *h
	c.melds = make([]Meld, len(h.melds))
	for i, m := range h.melds {
		c.melds[i] = m.clone()
	}
	if h.drawn != nil {
		t := *h.drawn
		c.drawn = &t
	}
	if h.called != nil {
		m := h.called.clone()
		c.called = &m
	}
	return &c
}

// Masked 把暗牌全部替换成 "_", 用于在日志中记录他家手牌
func (h *Hand) Masked() *Hand {
	c := h.Clone()
	total := c.hidden
	for i := range c.bingpai {
		for n := 1; n <= 9; n++ {
			total += c.bingpai[i][n]
		}
	}
	c.bingpai = [4]suitCounts{}
	c.hidden = total
	if c.drawn != nil {
		c.drawn = &Tile{}
	}
	return c
}

func (h *Hand) add(t Tile) error {
	if t.IsHidden() {
		h.hidden++
		return nil
	}
	if !t.valid() {
		return fmt.Errorf("%w: %q", ErrTileFormat, t.String())
	}
	c := &h.bingpai[t.Suit.index()]
	if c[t.Rank()] >= 4 {
		return fmt.Errorf("%w: %s", ErrTileOverflow, t)
	}
	c[t.Number]++
	if t.IsRedFive() {
		c[5]++
	}
	return nil
}

// remove 找不到实牌时消耗一张 "_"
func (h *Hand) remove(t Tile) error {
	c := &h.bingpai[t.Suit.index()]
	n := t.Number
	if c[n] == 0 || (n == 5 && c[0] == c[5]) {
		if h.hidden == 0 {
			return fmt.Errorf("%w: %s", ErrTileNotExist, t)
		}
		h.hidden--
		return nil
	}
	c[n]--
	if t.IsRedFive() {
		c[5]--
	}
	return nil
}

// removeAll 要么全部移除, 要么保持原样
func (h *Hand) removeAll(ts []Tile) error {
	saved, savedHidden := h.bingpai, h.hidden
	for _, t := range ts {
		if err := h.remove(t); err != nil {
			h.bingpai, h.hidden = saved, savedHidden
			return err
		}
	}
	return nil
}

// Pending 有摸到的牌或刚鸣的副露等待打出
func (h *Hand) Pending() bool {
	return h.drawn != nil || h.called != nil
}

// Draw 摸牌(自摸、岭上)
func (h *Hand) Draw(t Tile, strict bool) error {
	if strict && h.Pending() {
		return fmt.Errorf("%w: draw %s into %s", ErrHandOverflow, t, h)
	}
	if err := h.add(t); err != nil {
		return err
	}
	h.drawn = &t
	h.called = nil
	return nil
}

// Discard 打牌, 带立直标记时进入立直状态
func (h *Hand) Discard(d Discard, strict bool) error {
	if strict && !h.Pending() {
		return fmt.Errorf("%w: discard %s from %s", ErrHandUnderflow, d, h)
	}
	if d.Tile.IsHidden() || !d.Tile.valid() {
		return fmt.Errorf("%w: discard %q", ErrTileFormat, d.String())
	}
	if err := h.remove(d.Tile); err != nil {
		return err
	}
	h.drawn, h.called = nil, nil
	if d.Riichi {
		h.riichi = true
	}
	return nil
}

func checkCanonical(m Meld) error {
	c, ok := normalizeMeld(m.String())
	if !ok || c.String() != m.String() {
		return fmt.Errorf("%w: %q", ErrMeldFormat, m.String())
	}
	return nil
}

// Call 吃、碰、大明杠。杠之外的副露会占用待处理位, 表示刚鸣牌
func (h *Hand) Call(m Meld, strict bool) error {
	if strict && h.Pending() {
		return fmt.Errorf("%w: call %s on %s", ErrHandOverflow, m, h)
	}
	if err := checkCanonical(m); err != nil {
		return err
	}
	if m.IsConcealedQuad() || m.IsAddedQuad() {
		return fmt.Errorf("%w: call with %s", ErrInvalidOperation, m)
	}
	var used []Tile
	for i, t := range m.Tiles() {
		if i != m.Claimed {
			used = append(used, t)
		}
	}
	if err := h.removeAll(used); err != nil {
		return err
	}
	m = m.clone()
	h.melds = append(h.melds, m)
	if !m.IsQuad() {
		called := m.clone()
		h.called = &called
		h.drawn = nil
	}
	return nil
}

// Kan 暗杠或加杠, 需要手里有摸到的牌
func (h *Hand) Kan(m Meld, strict bool) error {
	if strict && h.drawn == nil {
		return fmt.Errorf("%w: kan %s on %s", ErrHandUnderflow, m, h)
	}
	if err := checkCanonical(m); err != nil {
		return err
	}
	switch {
	case m.IsConcealedQuad():
		if err := h.removeAll(m.Tiles()); err != nil {
			return err
		}
		h.melds = append(h.melds, m.clone())
	case m.IsAddedQuad():
		pon := m.basePon().String()
		idx := -1
		for i, f := range h.melds {
			if f.String() == pon {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: no %s to extend", ErrInvalidOperation, pon)
		}
		if err := h.remove(Tile{Suit: m.Suit, Number: m.Digits[3]}); err != nil {
			return err
		}
		h.melds[idx] = m.clone()
	default:
		return fmt.Errorf("%w: kan with %s", ErrInvalidOperation, m)
	}
	h.drawn, h.called = nil, nil
	return nil
}

// Riichi 是否已立直
func (h *Hand) Riichi() bool { return h.riichi }

// Concealed 门前清: 没有带来源标记的副露
func (h *Hand) Concealed() bool {
	for _, m := range h.melds {
		if m.IsOpen() {
			return false
		}
	}
	return true
}

func (h *Hand) Melds() []Meld {
	out := make([]Meld, len(h.melds))
	for i, m := range h.melds {
		out[i] = m.clone()
	}
	return out
}

// Drawn 摸到尚未打出的牌
func (h *Hand) Drawn() (Tile, bool) {
	if h.drawn == nil {
		return Tile{}, false
	}
	return *h.drawn, true
}

// JustCalled 刚鸣的副露, 尚未打牌
func (h *Hand) JustCalled() (Meld, bool) {
	if h.called == nil {
		return Meld{}, false
	}
	return h.called.clone(), true
}

// Count 暗牌中某种牌的张数; 对赤五返回赤五的张数
func (h *Hand) Count(t Tile) int {
	if t.IsHidden() {
		return h.hidden
	}
	return h.bingpai[t.Suit.index()][t.Number]
}

// Tiles 暗牌张数(含看不见的牌)
func (h *Hand) Tiles() int {
	total := h.hidden
	for i := range h.bingpai {
		for n := 1; n <= 9; n++ {
			total += h.bingpai[i][n]
		}
	}
	return total
}

func (h *Hand) counts(s Suit) suitCounts {
	return h.bingpai[s.index()]
}

// Discards 可以打出的牌。strict 时禁止打出刚吃碰的牌以及吃的另一侧筋牌(食替);
// 立直后只能摸切。没有待处理的牌时 ok 为 false。
func (h *Hand) Discards(strict bool) (opts []Discard, ok bool) {
	if !h.Pending() {
		return nil, false
	}
	deny := map[Tile]bool{}
	if strict && h.called != nil {
		m := *h.called
		ct, _ := m.ClaimedTile()
		n := ct.Rank()
		deny[Tile{Suit: m.Suit, Number: n}] = true
		if m.IsRun() {
			if n < 7 && m.Claimed == 0 {
				deny[Tile{Suit: m.Suit, Number: n + 3}] = true
			}
			if n > 3 && m.Claimed == 2 {
				deny[Tile{Suit: m.Suit, Number: n - 3}] = true
			}
		}
	}

	opts = []Discard{}
	if !h.riichi {
		for _, s := range suits {
			c := h.counts(s)
			for n := 1; n <= s.maxNumber(); n++ {
				if c[n] == 0 {
					continue
				}
				t := Tile{Suit: s, Number: n}
				if deny[t] {
					continue
				}
				if h.drawn != nil && *h.drawn == t && c[n] == 1 {
					continue
				}
				if s == SuitHonor || n != 5 {
					opts = append(opts, Discard{Tile: t})
					continue
				}
				red := Tile{Suit: s, Number: 0}
				if (c[0] > 0 && (h.drawn == nil || *h.drawn != red)) || c[0] > 1 {
					opts = append(opts, Discard{Tile: red})
				}
				if c[0] < c[5] {
					opts = append(opts, Discard{Tile: t})
				}
			}
		}
	}
	if h.drawn != nil && !h.drawn.IsHidden() {
		opts = append(opts, Discard{Tile: *h.drawn, Drawn: true})
	}
	return opts, true
}

func validateClaim(c Claim) error {
	if c.Tile.IsHidden() || !c.Tile.valid() || c.From.Offset() == 0 {
		return fmt.Errorf("%w: claim %q", ErrTileFormat, c.String())
	}
	return nil
}

func meldOf(text string) Meld {
	m, ok := normalizeMeld(text)
	if !ok {
		panic("mahjong: generated invalid meld " + text)
	}
	return m
}

func digit(n int) string { return strconv.Itoa(n) }

// ChiOptions 用上家打出的牌可以组成的所有顺子(含赤五的不同组合)。
// strict 时排除吃后只剩食替牌可打的组合。待处理位非空时 ok 为 false。
func (h *Hand) ChiOptions(c Claim, strict bool) ([]Meld, bool, error) {
	if err := validateClaim(c); err != nil {
		return nil, false, err
	}
	if h.Pending() {
		return nil, false, nil
	}
	opts := []Meld{}
	s := c.Tile.Suit
	if !s.IsNumbered() || c.From != DirLeft || h.riichi {
		return opts, true, nil
	}
	cnt := h.counts(s)
	n, red := c.Tile.Rank(), cnt[0]
	p, d, suit := digit(c.Tile.Number), c.From.String(), string(s)
	limit := 14 - (len(h.melds)+1)*3
	at := func(i int) int {
		if i < 1 || i > 9 {
			return 0
		}
		return cnt[i]
	}

	// 鸣牌在右
	if n >= 3 && cnt[n-2] > 0 && cnt[n-1] > 0 {
		if !strict || at(n-3)+cnt[n] < limit {
			if n-2 == 5 && red > 0 {
				opts = append(opts, meldOf(suit+"067-"))
			}
			if n-1 == 5 && red > 0 {
				opts = append(opts, meldOf(suit+"406-"))
			}
			if (n-2 != 5 && n-1 != 5) || red < cnt[5] {
				opts = append(opts, meldOf(suit+digit(n-2)+digit(n-1)+p+d))
			}
		}
	}
	// 嵌张
	if n >= 2 && n <= 8 && cnt[n-1] > 0 && cnt[n+1] > 0 {
		if !strict || cnt[n] < limit {
			if n-1 == 5 && red > 0 {
				opts = append(opts, meldOf(suit+"06-7"))
			}
			if n+1 == 5 && red > 0 {
				opts = append(opts, meldOf(suit+"34-0"))
			}
			if (n-1 != 5 && n+1 != 5) || red < cnt[5] {
				opts = append(opts, meldOf(suit+digit(n-1)+p+d+digit(n+1)))
			}
		}
	}
	// 鸣牌在左
	if n <= 7 && cnt[n+1] > 0 && cnt[n+2] > 0 {
		if !strict || cnt[n]+at(n+3) < limit {
			if n+1 == 5 && red > 0 {
				opts = append(opts, meldOf(suit+"4-06"))
			}
			if n+2 == 5 && red > 0 {
				opts = append(opts, meldOf(suit+"3-40"))
			}
			if (n+1 != 5 && n+2 != 5) || red < cnt[5] {
				opts = append(opts, meldOf(suit+p+d+digit(n+1)+digit(n+2)))
			}
		}
	}
	return opts, true, nil
}

// PonOptions 可以组成的碰, 赤五组合在前
func (h *Hand) PonOptions(c Claim) ([]Meld, bool, error) {
	if err := validateClaim(c); err != nil {
		return nil, false, err
	}
	if h.Pending() {
		return nil, false, nil
	}
	opts := []Meld{}
	if h.riichi {
		return opts, true, nil
	}
	s := c.Tile.Suit
	cnt := h.counts(s)
	n, red := c.Tile.Rank(), cnt[0]
	p, d, suit := digit(c.Tile.Number), c.From.String(), string(s)
	if cnt[n] >= 2 {
		if n == 5 && red >= 2 {
			opts = append(opts, meldOf(suit+"00"+p+d))
		}
		if n == 5 && red >= 1 {
			opts = append(opts, meldOf(suit+"50"+p+d))
		}
		if n != 5 || cnt[5]-red >= 2 {
			opts = append(opts, meldOf(suit+digit(n)+digit(n)+p+d))
		}
	}
	return opts, true, nil
}

// KanOptions c 非空时为大明杠; 为空时列出暗杠与加杠。立直后只允许摸到的那种牌暗杠。
func (h *Hand) KanOptions(c *Claim) ([]Meld, bool, error) {
	if c != nil {
		if err := validateClaim(*c); err != nil {
			return nil, false, err
		}
		if h.Pending() {
			return nil, false, nil
		}
		opts := []Meld{}
		if h.riichi {
			return opts, true, nil
		}
		s := c.Tile.Suit
		cnt := h.counts(s)
		n, red := c.Tile.Rank(), cnt[0]
		if cnt[n] == 3 {
			var text string
			if n == 5 {
				text = string(s) + strings.Repeat("5", 3-red) + strings.Repeat("0", red) + digit(c.Tile.Number) + c.From.String()
			} else {
				text = string(s) + strings.Repeat(digit(n), 4) + c.From.String()
			}
			opts = append(opts, meldOf(text))
		}
		return opts, true, nil
	}

	if h.drawn == nil {
		return nil, false, nil
	}
	opts := []Meld{}
	for _, s := range suits {
		cnt := h.counts(s)
		for n := 1; n <= s.maxNumber(); n++ {
			if cnt[n] == 0 {
				continue
			}
			if cnt[n] == 4 {
				if h.riichi && h.drawn.Normal() != (Tile{Suit: s, Number: n}) {
					continue
				}
				var text string
				if n == 5 && s.IsNumbered() {
					text = string(s) + strings.Repeat("5", 4-cnt[0]) + strings.Repeat("0", cnt[0])
				} else {
					text = string(s) + strings.Repeat(digit(n), 4)
				}
				opts = append(opts, meldOf(text))
				continue
			}
			if h.riichi {
				continue
			}
			prefix := string(s) + strings.Repeat(digit(n), 3)
			for _, m := range h.melds {
				ms := strings.ReplaceAll(m.String(), "0", "5")
				if len(ms) < 4 || ms[:4] != prefix || m.IsQuad() {
					continue
				}
				add := digit(n)
				if n == 5 && cnt[0] > 0 {
					add = "0"
				}
				opts = append(opts, meldOf(m.String()+add))
			}
		}
	}
	return opts, true, nil
}
