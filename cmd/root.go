package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/moyu-x/forganize/app"
	"github.com/moyu-x/forganize/pkg/organizer"
	"github.com/moyu-x/forganize/tui"
)

type rootOptions struct {
	dir        string
	configPath string
	clear      bool
	stats      bool
	preview    bool
	search     string
	verbose    bool
	sniff      bool
	workers    int
	progress   bool
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "forganize [pattern::folder ...]",
		Short: "按规则或扩展名将当前目录中的文件整理到分类目录",
		Long: `forganize 将源目录（默认当前目录）中的文件移动到 organzied/<分类>/ 下。

分类规则:
- 命令行参数 pattern::folder 按顺序匹配，文件名包含 pattern 或以其结尾即归入 folder
- 没有规则匹配时按扩展名归入 images、documents、audio、video、archives、codes 或 others
- 目标文件已存在时不会覆盖：内容相同则跳过，不同则追加 _N 序号`,
		Example: `  forganize
  forganize --preview "invoice::Finance" "screenshot::Screens"
  forganize --clear --stats
  forganize --search report`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.clear, "clear", false, "整理前清空目标分类目录")
	flags.BoolVar(&opts.stats, "stats", false, "整理后显示分类统计")
	flags.BoolVar(&opts.preview, "preview", false, "预览模式，只显示分类结果，不移动文件")
	flags.StringVar(&opts.search, "search", "", "在已整理的文件中按名称搜索（不执行整理）")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "显示详细日志")
	flags.StringVarP(&opts.dir, "dir", "d", "", "源目录（默认: 当前目录）")
	flags.StringVar(&opts.configPath, "config", "", "配置文件路径（默认: ~/.forganize/config.yaml）")
	flags.BoolVar(&opts.sniff, "sniff", false, "无法按文件名归类时按文件内容识别类型")
	flags.IntVar(&opts.workers, "workers", 0, "并发移动数（默认使用配置文件，1 为串行）")
	flags.BoolVar(&opts.progress, "progress", false, "在终端中显示进度条")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	out := cmd.OutOrStdout()

	if cmd.Flags().Changed("search") {
		results, err := app.RunSearch(&app.SearchOptions{
			SourceDir:  opts.dir,
			Term:       opts.search,
			ConfigPath: opts.configPath,
			Verbose:    opts.verbose,
			LogOutput:  out,
		})
		if err != nil {
			return err
		}
		return printSearch(out, results)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	orgOpts := &app.OrganizeOptions{
		SourceDir:  opts.dir,
		Rules:      args,
		ConfigPath: opts.configPath,
		Clear:      opts.clear,
		Stats:      opts.stats,
		Preview:    opts.preview,
		Verbose:    opts.verbose,
		Sniff:      opts.sniff,
		Workers:    opts.workers,
		LogOutput:  out,
	}

	var (
		outcome *organizer.Outcome
		err     error
	)
	if opts.progress && !opts.preview && isTerminal(out) {
		// 进度界面占用终端时日志只写入日志文件
		orgOpts.LogOutput = io.Discard
		outcome, err = tui.RunOrganize(cancel, func(onProgress func(organizer.Progress)) (*organizer.Outcome, error) {
			orgOpts.OnProgress = onProgress
			return app.RunOrganize(ctx, orgOpts)
		})
	} else {
		outcome, err = app.RunOrganize(ctx, orgOpts)
	}

	if outcome != nil {
		printOutcome(out, outcome)
	}
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
