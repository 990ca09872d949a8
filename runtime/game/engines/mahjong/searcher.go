package mahjong

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"jongcore/common/cache"
	"jongcore/common/log"
)

// ShantenInfinity 该和牌形不可能成立(有副露时的七对子、国士)
const ShantenInfinity = 999

// blockCount 面子、搭子(对子与两张的顺子雏形)、孤张
type blockCount struct {
	mianzi, dazi, guli int
}

// suitPattern 同一花色的两种拆法:
// a 孤张最少(其次搭子最少), b 面子最多(其次搭子最多)
type suitPattern struct {
	a, b blockCount
}

// dazi 面子拆完后, 按连续牌段数搭子和孤张
func dazi(c suitCounts) suitPattern {
	var pai, d, g int
	for n := 1; n <= 9; n++ {
		pai += c[n]
		if n <= 7 && c[n+1] == 0 && c[n+2] == 0 {
			d += pai >> 1
			g += pai % 2
			pai = 0
		}
	}
	d += pai >> 1
	g += pai % 2
	r := blockCount{dazi: d, guli: g}
	return suitPattern{a: r, b: r}
}

func searchMianzi(c suitCounts, n int) suitPattern {
	if n > 9 {
		return dazi(c)
	}
	best := searchMianzi(c, n+1)
	consider := func(r suitPattern) {
		r.a.mianzi++
		r.b.mianzi++
		if r.a.guli < best.a.guli || (r.a.guli == best.a.guli && r.a.dazi < best.a.dazi) {
			best.a = r.a
		}
		if r.b.mianzi > best.b.mianzi || (r.b.mianzi == best.b.mianzi && r.b.dazi > best.b.dazi) {
			best.b = r.b
		}
	}
	if n <= 7 && c[n] > 0 && c[n+1] > 0 && c[n+2] > 0 {
		next := c
		next[n]--
		next[n+1]--
		next[n+2]--
		consider(searchMianzi(next, n))
	}
	if c[n] >= 3 {
		next := c
		next[n] -= 3
		consider(searchMianzi(next, n))
	}
	return best
}

// shantenFormula 13 - 3m - 2d - g, 面子超过 4 个转为搭子, 面子+搭子超过 4 个转为孤张
func shantenFormula(m, d, g int, jiangpai bool) int {
	n := 5
	if jiangpai {
		n = 4
	}
	if m > 4 {
		d += m - 4
		m = 4
	}
	if m+d > 4 {
		g += m + d - 4
		d = 4 - m
	}
	if m+d+g > n {
		g = n - m - d
	}
	if jiangpai {
		d++
	}
	return 13 - m*3 - d*2 - g
}

func honorBlocks(c suitCounts) blockCount {
	var r blockCount
	for n := 1; n <= 7; n++ {
		switch {
		case c[n] >= 3:
			r.mianzi++
		case c[n] == 2:
			r.dazi++
		case c[n] == 1:
			r.guli++
		}
	}
	return r
}

func standardShanten(bingpai [4]suitCounts, fulou int, jiangpai bool) int {
	m := searchMianzi(bingpai[0], 1)
	p := searchMianzi(bingpai[1], 1)
	s := searchMianzi(bingpai[2], 1)
	z := honorBlocks(bingpai[3])

	best := 13
	for _, bm := range [2]blockCount{m.a, m.b} {
		for _, bp := range [2]blockCount{p.a, p.b} {
			for _, bs := range [2]blockCount{s.a, s.b} {
				x := shantenFormula(
					fulou+bm.mianzi+bp.mianzi+bs.mianzi+z.mianzi,
					bm.dazi+bp.dazi+bs.dazi+z.dazi,
					bm.guli+bp.guli+bs.guli+z.guli,
					jiangpai,
				)
				best = min(best, x)
			}
		}
	}
	return best
}

// ShantenStandard 四面子一雀头的向听数, 副露计为完成的面子。
// 刚鸣牌后已经成形的手牌同样报告 -1。
func ShantenStandard(h *Hand) int {
	best := standardShanten(h.bingpai, len(h.melds), false)
	for si, suit := range suits {
		for n := 1; n <= suit.maxNumber(); n++ {
			if h.bingpai[si][n] < 2 {
				continue
			}
			work := h.bingpai
			work[si][n] -= 2
			best = min(best, standardShanten(work, len(h.melds), true))
		}
	}
	return best
}

// ShantenSevenPairs 七对子向听数, 有副露时不成立
func ShantenSevenPairs(h *Hand) int {
	if len(h.melds) > 0 {
		return ShantenInfinity
	}
	var pairs, singles int
	for si, suit := range suits {
		for n := 1; n <= suit.maxNumber(); n++ {
			switch c := h.bingpai[si][n]; {
			case c >= 2:
				pairs++
			case c == 1:
				singles++
			}
		}
	}
	pairs = min(pairs, 7)
	singles = min(singles, 7-pairs)
	return 13 - pairs*2 - singles
}

// ShantenOrphans 国士无双向听数, 有副露时不成立
func ShantenOrphans(h *Hand) int {
	if len(h.melds) > 0 {
		return ShantenInfinity
	}
	var kinds int
	pair := false
	for si, suit := range suits {
		ns := []int{1, 9}
		if suit == SuitHonor {
			ns = []int{1, 2, 3, 4, 5, 6, 7}
		}
		for _, n := range ns {
			c := h.bingpai[si][n]
			if c >= 1 {
				kinds++
			}
			if c >= 2 {
				pair = true
			}
		}
	}
	if pair {
		return 12 - kinds
	}
	return 13 - kinds
}

// Shanten 三种和牌形中最小的向听数, -1 表示已和牌
func Shanten(h *Hand) int {
	return min(ShantenStandard(h), ShantenSevenPairs(h), ShantenOrphans(h))
}

// Waits 逐一加入每种牌(手里已有 4 张的除外)重新计算向听数, 收集使向听数减少的牌。
// 听牌时即为和牌张; 未听牌时为有效进张。手里有待处理的牌时返回错误。
func Waits(h *Hand) ([]Tile, error) {
	return waitsWith(h, Shanten)
}

func waitsWith(h *Hand, shanten func(*Hand) int) ([]Tile, error) {
	if h.Pending() {
		return nil, fmt.Errorf("%w: waits of %s", ErrHandOverflow, h)
	}
	base := shanten(h)
	var out []Tile
	for si, suit := range suits {
		for n := 1; n <= suit.maxNumber(); n++ {
			if h.bingpai[si][n] >= 4 {
				continue
			}
			trial := *h
			trial.bingpai[si][n]++
			if shanten(&trial) < base {
				out = append(out, Tile{Suit: suit, Number: n})
			}
		}
	}
	return out, nil
}

// Searcher 带缓存的向听/听牌查询, 结果与 Shanten、Waits 完全一致
type Searcher struct {
	shantenCache *cache.Cache[int]    // 向听数缓存
	waitsCache   *cache.Cache[[]Tile] // 听牌缓存
}

// NewSearcher size 为每种缓存的条目上限
func NewSearcher(size int64, ttl time.Duration) (*Searcher, error) {
	sc, err := cache.New[int](size, ttl)
	if err != nil {
		return nil, err
	}
	wc, err := cache.New[[]Tile](size, ttl)
	if err != nil {
		sc.Close()
		return nil, err
	}
	return &Searcher{shantenCache: sc, waitsCache: wc}, nil
}

func (s *Searcher) Close() {
	s.shantenCache.Close()
	s.waitsCache.Close()
}

// searchKey 向听只取决于各牌张数与副露数
func searchKey(h *Hand) string {
	var b strings.Builder
	for si := range suits {
		for n := 1; n <= 9; n++ {
			b.WriteByte(byte('0' + h.bingpai[si][n]))
		}
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(len(h.melds)))
	return b.String()
}

func (s *Searcher) Shanten(h *Hand) int {
	key := searchKey(h)
	if v, ok := s.shantenCache.Get(key); ok {
		return v
	}
	v := Shanten(h)
	s.shantenCache.Set(key, v)
	return v
}

func (s *Searcher) Waits(h *Hand) ([]Tile, error) {
	if h.Pending() {
		return nil, fmt.Errorf("%w: waits of %s", ErrHandOverflow, h)
	}
	key := searchKey(h)
	if v, ok := s.waitsCache.Get(key); ok {
		log.Debug("waits cache hit %s", key)
		return append([]Tile(nil), v...), nil
	}
	waits, err := waitsWith(h, s.Shanten)
	if err != nil {
		return nil, err
	}
	s.waitsCache.Set(key, append([]Tile(nil), waits...))
	return waits, nil
}

// Candidate 打出某张牌后的听牌
type Candidate struct {
	Discard Discard
	Waits   []Tile
}

// SeekCandidates 打出后能听牌的所有选择, 打牌范围由 discards 给出
func (s *Searcher) SeekCandidates(h *Hand, discards []Discard) []Candidate {
	var out []Candidate
	for _, d := range discards {
		trial := h.Clone()
		if err := trial.Discard(d, true); err != nil {
			continue
		}
		if s.Shanten(trial) != 0 {
			continue
		}
		waits, err := s.Waits(trial)
		if err != nil || len(waits) == 0 {
			continue
		}
		out = append(out, Candidate{Discard: d, Waits: waits})
	}
	return out
}
