package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/moyu-x/forganize/pkg/config"
	"github.com/moyu-x/forganize/pkg/hasher"
	"github.com/moyu-x/forganize/pkg/logger"
	"github.com/moyu-x/forganize/pkg/organizer"
	"github.com/moyu-x/forganize/pkg/rules"
	"github.com/moyu-x/forganize/pkg/search"
)

type OrganizeOptions struct {
	SourceDir  string
	Rules      []string
	ConfigPath string
	Clear      bool
	Stats      bool
	Preview    bool
	Verbose    bool
	Sniff      bool
	// 0 表示使用配置文件中的值
	Workers int
	// 控制台日志输出，nil 时为标准输出
	LogOutput  io.Writer
	OnProgress func(organizer.Progress)
	Fs         afero.Fs
}

type SearchOptions struct {
	SourceDir  string
	Term       string
	ConfigPath string
	Verbose    bool
	LogOutput  io.Writer
	Fs         afero.Fs
}

// RunOrganize 解析规则、加载配置并执行一次整理。规则格式错误时在访问文件系统之前返回。
func RunOrganize(ctx context.Context, opts *OrganizeOptions) (*organizer.Outcome, error) {
	cliRules, err := rules.Parse(opts.Rules)
	if err != nil {
		return nil, err
	}

	cfg, err := setup(opts.ConfigPath, opts.Verbose, opts.LogOutput)
	if err != nil {
		return nil, err
	}

	cfgRules, err := rules.Parse(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("配置文件中的规则无效: %w", err)
	}
	allRules := append(cliRules, cfgRules...)

	sourceDir, err := absDir(opts.SourceDir)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = cfg.Performance.Workers
	}

	log := logger.Get()
	log.Debug().Msgf("源目录: %s", sourceDir)
	log.Debug().Msgf("目标目录: %s", organizer.DestRoot(sourceDir))
	log.Debug().Msgf("规则数: %d", len(allRules))
	for i, r := range allRules {
		log.Debug().Msgf("  [%d] %s -> %s", i+1, r.Pattern, r.Folder)
	}
	log.Debug().Msgf("并发数: %d", workers)
	if opts.Preview {
		log.Debug().Msg("=== 预览模式，不会实际移动文件 ===")
	}

	if !opts.Preview {
		lock, err := acquireLock(sourceDir)
		if err != nil {
			return nil, err
		}
		defer lock.Unlock()
	}

	org := organizer.New(organizer.Options{
		Fs:         opts.Fs,
		SourceDir:  sourceDir,
		Rules:      allRules,
		Clear:      opts.Clear,
		Stats:      opts.Stats,
		Preview:    opts.Preview,
		Sniff:      opts.Sniff || cfg.Classify.Sniff,
		Workers:    workers,
		OnProgress: opts.OnProgress,
	})

	return org.Run(ctx)
}

// RunSearch 在目标目录中搜索文件名，不执行整理
func RunSearch(opts *SearchOptions) (*search.Results, error) {
	if _, err := setup(opts.ConfigPath, opts.Verbose, opts.LogOutput); err != nil {
		return nil, err
	}

	sourceDir, err := absDir(opts.SourceDir)
	if err != nil {
		return nil, err
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	logger.Get().Debug().Msgf("搜索: %q", opts.Term)
	return search.NewIndex(fs, organizer.DestRoot(sourceDir)).Search(opts.Term), nil
}

func setup(configPath string, verbose bool, out io.Writer) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	if out == nil {
		out = os.Stdout
	}
	if err := logger.InitWriter(logLevel, cfg.Logging.File, out); err != nil {
		return nil, err
	}
	logger.WithRun(uuid.NewString())

	return cfg, nil
}

func absDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("获取当前目录失败: %w", err)
		}
		return wd, nil
	}
	return filepath.Abs(dir)
}

// acquireLock 同一源目录同时只允许一次整理
// lockPath 每个源目录对应一个锁文件
func lockPath(sourceDir string) string {
	return filepath.Join(os.TempDir(), "forganize-"+hasher.KeyString(sourceDir)+".lock")
}

func acquireLock(sourceDir string) (*flock.Flock, error) {
	lock := flock.New(lockPath(sourceDir))

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("获取运行锁失败: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("目录 %s 正在被另一个进程整理", sourceDir)
	}
	return lock, nil
}
