package main

import (
	"os"

	"jongcore/common/config"
	"jongcore/common/log"
	"jongcore/evaluator/app"

	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	hule       app.HuleOptions
	claim      string
	wallLeft   int
)

var rootCmd = &cobra.Command{
	Use:   "evaluator",
	Short: "立直麻将牌理与点数计算",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.InitConfig(configFile)
		level := config.Conf.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		log.InitLog(config.Conf.AppName, level)
	},
}

func run(fn func(a *app.App, args []string) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := app.New(config.Conf, cmd.OutOrStdout())
		if err != nil {
			log.Fatal("init: %v", err)
		}
		defer a.Close()
		if err := fn(a, args); err != nil {
			log.Error("发生异常: %v", err)
			os.Exit(1)
		}
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "configFile", "", "rule file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "logLevel", "", "log level: debug, info, warn, error")

	shantenCmd := &cobra.Command{
		Use:   "shanten <hand>",
		Short: "向听数与听牌",
		Args:  cobra.ExactArgs(1),
		Run: run(func(a *app.App, args []string) error {
			return a.Shanten(args[0])
		}),
	}
	waitsCmd := &cobra.Command{
		Use:   "waits <hand>",
		Short: "打出后听牌的选择",
		Args:  cobra.ExactArgs(1),
		Run: run(func(a *app.App, args []string) error {
			return a.Waits(args[0])
		}),
	}
	huleCmd := &cobra.Command{
		Use:   "hule <hand>",
		Short: "和了结算",
		Args:  cobra.ExactArgs(1),
		Run: run(func(a *app.App, args []string) error {
			_, err := a.Hule(args[0], hule)
			return err
		}),
	}
	f := huleCmd.Flags()
	f.StringVar(&hule.Ron, "ron", "", "ron tile with direction, e.g. m3=")
	f.IntVar(&hule.RoundWind, "round", 0, "round wind 0-3")
	f.IntVar(&hule.SeatWind, "seat", 1, "seat wind 0-3, 0 is the dealer")
	f.IntVar(&hule.Riichi, "riichi", 0, "0 none, 1 riichi, 2 double riichi")
	f.BoolVar(&hule.Ippatsu, "ippatsu", false, "ippatsu")
	f.StringSliceVar(&hule.Dora, "dora", nil, "dora indicators")
	f.StringSliceVar(&hule.UraDora, "ura", nil, "ura dora indicators")
	f.IntVar(&hule.Honba, "honba", 0, "honba count")
	f.IntVar(&hule.RiichiSticks, "sticks", 0, "riichi sticks on the table")

	legalCmd := &cobra.Command{
		Use:   "legal <hand>",
		Short: "吃碰杠的选择",
		Args:  cobra.ExactArgs(1),
		Run: run(func(a *app.App, args []string) error {
			return a.Legal(args[0], claim, wallLeft)
		}),
	}
	legalCmd.Flags().StringVar(&claim, "claim", "", "claimed tile with direction, e.g. p4-")
	legalCmd.Flags().IntVar(&wallLeft, "wall", 70, "tiles left in the wall")
	legalCmd.MarkFlagRequired("claim")

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "从标准输入逐行查询, 规则文件修改后自动生效",
		Args:  cobra.NoArgs,
		Run: run(func(a *app.App, args []string) error {
			if configFile != "" {
				if err := config.Watch(configFile, a.Reload); err != nil {
					return err
				}
			}
			return a.Repl(os.Stdin)
		}),
	}

	rootCmd.AddCommand(shantenCmd, waitsCmd, huleCmd, legalCmd, replCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %#v", err)
		os.Exit(1)
	}
}
