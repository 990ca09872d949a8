package app

import (
	"bytes"
	"strings"
	"testing"

	"jongcore/common/config"

	"github.com/fatih/color"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	var buf bytes.Buffer
	a, err := New(config.Default(), &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	return a, &buf
}

func TestShanten(t *testing.T) {
	a, buf := newTestApp(t)
	if err := a.Shanten("m123p456s789z1122"); err != nil {
		t.Fatalf("Shanten: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "shanten: 0 (tenpai)") {
		t.Errorf("missing tenpai line:\n%s", out)
	}
	if !strings.Contains(out, "waits: z1 z2") {
		t.Errorf("missing waits line:\n%s", out)
	}
}

func TestWaitsListsDiscards(t *testing.T) {
	a, buf := newTestApp(t)
	if err := a.Waits("m123p456s789z11223"); err != nil {
		t.Fatalf("Waits: %v", err)
	}
	if !strings.Contains(buf.String(), "z3_   -> z1 z2") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestHule(t *testing.T) {
	a, buf := newTestApp(t)
	res, err := a.Hule("z33m123p456s789m234", HuleOptions{SeatWind: 1})
	if err != nil {
		t.Fatalf("Hule: %v", err)
	}
	if res == nil || res.Points != 1500 {
		t.Fatalf("result = %+v", res)
	}
	if !strings.Contains(buf.String(), "payments: [-700 1500 -400 -400]") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestHuleBadRon(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.Hule("m123p456s789z1122", HuleOptions{Ron: "z1"}); err == nil {
		t.Fatal("expected an error for a ron tile without direction")
	}
}

func TestLegal(t *testing.T) {
	a, buf := newTestApp(t)
	if err := a.Legal("m123p345067s789z1", "p4-", 70); err != nil {
		t.Fatalf("Legal: %v", err)
	}
	if !strings.Contains(buf.String(), "chi: p34-0 p34-5 p4-06 p4-56") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestRepl(t *testing.T) {
	a, buf := newTestApp(t)
	in := strings.NewReader(strings.Join([]string{
		"shanten m123p456s789z1122",
		"",
		"bogus m123",
		"legal m123p345067s789z1 p4- 70",
		"quit",
		"shanten m123p456s789z1234",
	}, "\n"))
	if err := a.Repl(in); err != nil {
		t.Fatalf("Repl: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"shanten: 0 (tenpai)", "bogus: 未知命令", "chi: p34-0 p34-5 p4-06 p4-56"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "z1234") {
		t.Errorf("lines after quit were run:\n%s", out)
	}
}

func TestReloadChangesRule(t *testing.T) {
	a, _ := newTestApp(t)
	conf := config.Default()
	conf.Rule.OpenTanyao = false
	a.Reload(conf)

	res, err := a.Hule("m234p567s22,s456-,p888=", HuleOptions{SeatWind: 1})
	if err != nil {
		t.Fatalf("Hule: %v", err)
	}
	if res == nil || res.Points != 0 {
		t.Fatalf("open tanyao scored after reload: %+v", res)
	}
}
