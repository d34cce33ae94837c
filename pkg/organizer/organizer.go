// Package organizer 串联扫描、分类、移动和统计。
package organizer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/forganize/internal"
	"github.com/moyu-x/forganize/pkg/classifier"
	"github.com/moyu-x/forganize/pkg/cleaner"
	"github.com/moyu-x/forganize/pkg/logger"
	"github.com/moyu-x/forganize/pkg/mover"
	"github.com/moyu-x/forganize/pkg/rules"
	"github.com/moyu-x/forganize/pkg/scanner"
	"github.com/moyu-x/forganize/pkg/stats"
)

type Options struct {
	Fs        afero.Fs
	SourceDir string
	Rules     []rules.Rule
	Clear     bool
	Stats     bool
	Preview   bool
	// 文件名无法归类时按内容识别
	Sniff bool
	// 并发移动数，<= 1 时串行
	Workers int
	// 每移动一个文件回调一次，可能来自多个 goroutine，但调用是串行的
	OnProgress func(Progress)
}

// Progress 移动进度
type Progress struct {
	Done    int
	Total   int
	Current string
}

// Assignment 文件与目标目录的对应关系
type Assignment struct {
	Entry  internal.FileEntry
	Target classifier.Target
}

// Outcome 一次整理的结果
type Outcome struct {
	State         State
	SourceMissing bool
	Plan          []Assignment
	Moves         []internal.MoveResult
	Report        *internal.Report
	Stats         *internal.Report
	Cleared       []cleaner.ClearResult
	Failures      []internal.FileFailure
}

type Organizer struct {
	opts     Options
	destRoot string

	scanner    *scanner.Scanner
	classifier *classifier.Classifier
	mover      *mover.Mover
	cleaner    *cleaner.Cleaner
	stats      *stats.Collector
}

func New(opts Options) *Organizer {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	destRoot := DestRoot(opts.SourceDir)

	var sniffer *classifier.Sniffer
	if opts.Sniff {
		sniffer = classifier.NewSniffer(opts.Fs)
	}

	return &Organizer{
		opts:       opts,
		destRoot:   destRoot,
		scanner:    scanner.NewScanner(opts.Fs),
		classifier: classifier.New(opts.Rules, sniffer),
		mover:      mover.New(opts.Fs, destRoot),
		cleaner:    cleaner.New(opts.Fs, destRoot),
		stats:      stats.NewCollector(opts.Fs, destRoot),
	}
}

// DestRoot 源目录对应的目标根目录
func DestRoot(sourceDir string) string {
	return filepath.Join(sourceDir, internal.DestDirName)
}

// Folders 内置分类加上规则目录，去重后保持顺序
func Folders(rs []rules.Rule) []string {
	folders := classifier.Names()
	seen := make(map[string]bool, len(folders))
	for _, f := range folders {
		seen[f] = true
	}
	for _, f := range rules.Folders(rs) {
		if !seen[f] {
			seen[f] = true
			folders = append(folders, f)
		}
	}
	return folders
}

// Run 执行一次整理。致命错误直接返回；单个文件的失败记录在 Outcome.Failures 中。
func (o *Organizer) Run(ctx context.Context) (*Outcome, error) {
	out := &Outcome{State: StateInit}
	log := logger.Get()
	log.Debug().Str("source", o.opts.SourceDir).Msg("开始整理文件")

	o.enter(out, StateEnsuringDirectories)
	exists, err := afero.Exists(o.opts.Fs, o.opts.SourceDir)
	if err != nil {
		return out, fmt.Errorf("%w: %s: %w", internal.ErrScanIO, o.opts.SourceDir, err)
	}
	if !exists {
		return o.sourceMissing(out), nil
	}
	// 预览模式不修改文件系统：不创建目录，也不清空分类
	if !o.opts.Preview {
		if err := o.ensureDirectories(); err != nil {
			return out, err
		}
	}

	if o.opts.Clear && o.opts.Preview {
		log.Info().Msg("预览模式下跳过清空分类目录")
	} else if o.opts.Clear {
		log.Debug().Msg("清空目标分类目录...")
		out.Cleared = o.cleaner.ClearAll(Folders(o.opts.Rules))
		for _, c := range out.Cleared {
			out.Failures = append(out.Failures, c.Failures...)
		}
	}

	o.enter(out, StateScanning)
	entries, err := o.scanner.Scan(o.opts.SourceDir)
	if err != nil {
		if errors.Is(err, internal.ErrSourceNotFound) {
			return o.sourceMissing(out), nil
		}
		return out, err
	}
	if len(entries) == 0 {
		log.Info().Msg("没有找到需要整理的文件")
		o.enter(out, StateEmptySource)
		return out, nil
	}

	o.enter(out, StateClassifying)
	out.Plan = make([]Assignment, 0, len(entries))
	for _, entry := range entries {
		target := o.classifier.Resolve(entry)
		log.Debug().Msgf("'%s' -> '%s'", entry.Name, target.Name())
		out.Plan = append(out.Plan, Assignment{Entry: entry, Target: target})
	}

	if o.opts.Preview {
		o.enter(out, StatePreview)
		return out, nil
	}

	o.enter(out, StateMoving)
	runErr := o.moveAll(ctx, out)

	if runErr != nil {
		return out, runErr
	}

	if o.opts.Stats {
		out.Stats = o.stats.Collect(Folders(o.opts.Rules))
		o.enter(out, StateStats)
		return out, nil
	}

	o.enter(out, StateDone)
	return out, nil
}

func (o *Organizer) sourceMissing(out *Outcome) *Outcome {
	logger.Get().Warn().Str("source", o.opts.SourceDir).Msg("源目录不存在，无需整理")
	out.SourceMissing = true
	o.enter(out, StateEmptySource)
	return out
}

func (o *Organizer) enter(out *Outcome, s State) {
	logger.Get().Debug().Str("from", out.State.String()).Str("to", s.String()).Msg("状态切换")
	out.State = s
}

func (o *Organizer) ensureDirectories() error {
	dirs := []string{o.destRoot}
	for _, c := range classifier.Names() {
		dirs = append(dirs, filepath.Join(o.destRoot, c))
	}
	for _, dir := range dirs {
		if err := o.mover.EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

type moveSlot struct {
	ran bool
	res internal.MoveResult
	err error
}

// moveAll 移动计划中的全部文件，结果按扫描顺序汇总
func (o *Organizer) moveAll(ctx context.Context, out *Outcome) error {
	slots := make([]moveSlot, len(out.Plan))
	tracker := &progressTracker{total: len(out.Plan), fn: o.opts.OnProgress}

	var err error
	if o.opts.Workers > 1 {
		err = o.moveParallel(ctx, out.Plan, slots, tracker)
	} else {
		err = o.moveSequential(ctx, out.Plan, slots, tracker)
	}

	out.Report = internal.NewReport()
	for i, slot := range slots {
		if !slot.ran {
			continue
		}
		name := out.Plan[i].Entry.Name
		if slot.err != nil {
			logger.Get().Error().Err(slot.err).Str("file", name).Msg("移动文件失败")
			out.Failures = append(out.Failures, internal.FileFailure{Name: name, Err: slot.err})
			continue
		}
		out.Moves = append(out.Moves, slot.res)
		if slot.res.Relocated() {
			out.Report.Add(slot.res.Folder, slot.res.Entry.Size)
		}
		logger.Get().Debug().
			Str("file", name).
			Str("status", slot.res.Status.String()).
			Str("destination", slot.res.Destination).
			Msg("文件处理完成")
	}

	if err != nil {
		return fmt.Errorf("整理中断: %w", err)
	}
	return nil
}

func (o *Organizer) moveSequential(ctx context.Context, plan []Assignment, slots []moveSlot, tracker *progressTracker) error {
	for i, a := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := o.mover.Move(a.Entry, a.Target.Name())
		slots[i] = moveSlot{ran: true, res: res, err: err}
		tracker.step(a.Entry.Name)
	}
	return nil
}

func (o *Organizer) moveParallel(ctx context.Context, plan []Assignment, slots []moveSlot, tracker *progressTracker) error {
	pool, err := ants.NewPool(o.opts.Workers)
	if err != nil {
		return fmt.Errorf("创建 goroutine 池失败: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, a := range plan {
		i, a := i, a
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			res, err := o.mover.Move(a.Entry, a.Target.Name())
			slots[i] = moveSlot{ran: true, res: res, err: err}
			tracker.step(a.Entry.Name)
		})
		if submitErr != nil {
			wg.Done()
			slots[i] = moveSlot{ran: true, err: fmt.Errorf("%w: %w", internal.ErrMove, submitErr)}
		}
	}
	wg.Wait()
	return ctx.Err()
}

type progressTracker struct {
	mu    sync.Mutex
	done  int
	total int
	fn    func(Progress)
}

func (p *progressTracker) step(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.fn != nil {
		p.fn(Progress{Done: p.done, Total: p.total, Current: name})
	}
}
