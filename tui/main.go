package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/forganize/pkg/logger"
	"github.com/moyu-x/forganize/pkg/organizer"
)

// Work 执行整理，并通过 onProgress 报告进度
type Work func(onProgress func(organizer.Progress)) (*organizer.Outcome, error)

// RunOrganize 在终端中显示进度条并执行 work。按 ctrl+c 时调用 cancel 并等待 work 结束。
func RunOrganize(cancel context.CancelFunc, work Work) (*organizer.Outcome, error) {
	logger.Get().Debug().Msg("启动进度界面")

	p := tea.NewProgram(newModel(cancel))

	go func() {
		out, err := work(func(pr organizer.Progress) {
			p.Send(progressMsg(pr))
		})
		p.Send(doneMsg{outcome: out, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("进度界面运行错误")
		return nil, fmt.Errorf("进度界面运行错误: %w", err)
	}

	m, ok := final.(model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return m.outcome, m.err
}
