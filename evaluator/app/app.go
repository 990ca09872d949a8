package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"jongcore/common/config"
	"jongcore/common/log"
	"jongcore/runtime/game/engines/mahjong"

	"github.com/fatih/color"
)

var (
	title   = color.New(color.FgHiCyan, color.Bold)
	good    = color.New(color.FgHiGreen)
	bad     = color.New(color.FgHiRed)
	neutral = color.New(color.FgHiYellow)
)

// App 命令行各子命令共用的规则与查询缓存
type App struct {
	Conf     *config.Config
	Searcher *mahjong.Searcher
	Out      io.Writer

	mu sync.RWMutex
}

func New(conf *config.Config, out io.Writer) (*App, error) {
	s, err := mahjong.NewSearcher(conf.Cache.Size, conf.Cache.TTL)
	if err != nil {
		return nil, err
	}
	return &App{Conf: conf, Searcher: s, Out: out}, nil
}

func (a *App) Close() {
	a.Searcher.Close()
}

// Reload 替换规则, 配置文件热更新时回调。缓存只与手牌有关, 不需要清空
func (a *App) Reload(conf *config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Conf = conf
}

func (a *App) rule() *mahjong.Rule {
	a.mu.RLock()
	defer a.mu.RUnlock()
	r := a.Conf.Rule
	return &r
}

func tilesString(ts []mahjong.Tile) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// Shanten 三种和牌形的向听数与听牌(或有效进张)
func (a *App) Shanten(text string) error {
	h, err := mahjong.ParseHand(text)
	if err != nil {
		return err
	}
	title.Fprintf(a.Out, "%s\n", h)
	fmt.Fprintf(a.Out, "standard: %d  seven-pairs: %d  orphans: %d\n",
		mahjong.ShantenStandard(h), mahjong.ShantenSevenPairs(h), mahjong.ShantenOrphans(h))
	n := a.Searcher.Shanten(h)
	switch {
	case n < 0:
		good.Fprintf(a.Out, "shanten: %d (complete)\n", n)
	case n == 0:
		good.Fprintf(a.Out, "shanten: %d (tenpai)\n", n)
	default:
		neutral.Fprintf(a.Out, "shanten: %d\n", n)
	}
	if h.Pending() {
		return nil
	}
	waits, err := a.Searcher.Waits(h)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "waits: %s\n", tilesString(waits))
	return nil
}

// Waits 有待打的牌时列出打出后听牌的选择, 否则列出听牌
func (a *App) Waits(text string) error {
	h, err := mahjong.ParseHand(text)
	if err != nil {
		return err
	}
	title.Fprintf(a.Out, "%s\n", h)
	discards, ok := mahjong.LegalDiscards(a.rule(), h)
	if !ok {
		waits, err := a.Searcher.Waits(h)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "waits: %s\n", tilesString(waits))
		return nil
	}
	cands := a.Searcher.SeekCandidates(h, discards)
	if len(cands) == 0 {
		bad.Fprintln(a.Out, "no tenpai discard")
		return nil
	}
	for _, c := range cands {
		fmt.Fprintf(a.Out, "%-5s -> %s\n", c.Discard, tilesString(c.Waits))
	}
	return nil
}

// HuleOptions hule 子命令的场况参数
type HuleOptions struct {
	Ron          string
	RoundWind    int
	SeatWind     int
	Riichi       int
	Ippatsu      bool
	Dora         []string
	UraDora      []string
	Honba        int
	RiichiSticks int
}

func parseTiles(ss []string) ([]mahjong.Tile, error) {
	out := make([]mahjong.Tile, 0, len(ss))
	for _, s := range ss {
		t, err := mahjong.ParseTile(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Hule 和了结算
func (a *App) Hule(text string, opt HuleOptions) (*mahjong.HuleResult, error) {
	h, err := mahjong.ParseHand(text)
	if err != nil {
		return nil, err
	}
	var ron *mahjong.Claim
	if opt.Ron != "" {
		c, err := mahjong.ParseClaim(opt.Ron)
		if err != nil {
			return nil, err
		}
		ron = &c
	}
	sc := mahjong.NewScoringContext(a.rule())
	sc.RoundWind = mahjong.Wind(opt.RoundWind % 4)
	sc.SeatWind = mahjong.Wind(opt.SeatWind % 4)
	sc.Riichi = opt.Riichi
	sc.Ippatsu = opt.Ippatsu
	sc.Honba, sc.RiichiSticks = opt.Honba, opt.RiichiSticks
	dora, err := parseTiles(opt.Dora)
	if err != nil {
		return nil, err
	}
	ura, err := parseTiles(opt.UraDora)
	if err != nil {
		return nil, err
	}
	sc.SetIndicators(dora, ura)

	res, err := mahjong.Hule(h, ron, sc)
	if err != nil {
		return nil, err
	}
	title.Fprintf(a.Out, "%s\n", h)
	switch {
	case res == nil:
		bad.Fprintln(a.Out, "not a winning hand")
	case len(res.Yaku) == 0:
		bad.Fprintln(a.Out, "no yaku")
	default:
		fmt.Fprintf(a.Out, "%s\n", res.Hand)
		for _, y := range res.Yaku {
			fmt.Fprintf(a.Out, "  %s\n", y)
		}
		if res.Yakuman > 0 {
			good.Fprintf(a.Out, "yakuman x%d  %d points\n", res.Yakuman, res.Points)
		} else {
			good.Fprintf(a.Out, "%d fu %d han  %d points\n", res.Fu, res.Han, res.Points)
		}
		fmt.Fprintf(a.Out, "payments: %v\n", res.Payments)
	}
	log.Info("hule %s ron=%q", text, opt.Ron)
	return res, nil
}

// Legal 对一张鸣牌可以进行的吃、碰、杠
func (a *App) Legal(text, claim string, wallLeft int) error {
	h, err := mahjong.ParseHand(text)
	if err != nil {
		return err
	}
	c, err := mahjong.ParseClaim(claim)
	if err != nil {
		return err
	}
	rule := a.rule()
	title.Fprintf(a.Out, "%s <- %s\n", h, c)
	chi, _, err := mahjong.LegalChi(rule, h, c, wallLeft)
	if err != nil {
		return err
	}
	pon, _, err := mahjong.LegalPon(rule, h, c, wallLeft)
	if err != nil {
		return err
	}
	kan, _, err := mahjong.LegalKan(rule, h, &c, wallLeft, 0)
	if err != nil {
		return err
	}
	for _, row := range []struct {
		name  string
		melds []mahjong.Meld
	}{{"chi", chi}, {"pon", pon}, {"kan", kan}} {
		parts := make([]string, len(row.melds))
		for i, m := range row.melds {
			parts[i] = m.String()
		}
		fmt.Fprintf(a.Out, "%s: %s\n", row.name, strings.Join(parts, " "))
	}
	return nil
}

// Repl 逐行读取命令直到输入结束或 quit:
//
//	shanten <hand>
//	waits <hand>
//	hule <hand> [ron]
//	legal <hand> <claim> [wall]
//
// 单行出错只打印, 不中断
func (a *App) Repl(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" {
			return nil
		}
		if err := a.exec(fields); err != nil {
			bad.Fprintf(a.Out, "%s: %v\n", fields[0], err)
		}
	}
	return sc.Err()
}

func (a *App) exec(fields []string) error {
	if len(fields) < 2 {
		return fmt.Errorf("缺少手牌")
	}
	cmd, hand, rest := fields[0], fields[1], fields[2:]
	switch cmd {
	case "shanten":
		return a.Shanten(hand)
	case "waits":
		return a.Waits(hand)
	case "hule":
		opt := HuleOptions{SeatWind: 1}
		if len(rest) > 0 {
			opt.Ron = rest[0]
		}
		_, err := a.Hule(hand, opt)
		return err
	case "legal":
		if len(rest) == 0 {
			return fmt.Errorf("缺少鸣牌")
		}
		wall := 70
		if len(rest) > 1 {
			n, err := strconv.Atoi(rest[1])
			if err != nil {
				return fmt.Errorf("wall: %w", err)
			}
			wall = n
		}
		return a.Legal(hand, rest[0], wall)
	}
	return fmt.Errorf("未知命令")
}
