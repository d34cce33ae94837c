package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/moyu-x/forganize/internal"
	"github.com/moyu-x/forganize/pkg/organizer"
	"github.com/moyu-x/forganize/pkg/search"
)

var (
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	arrowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func printSearch(w io.Writer, results *search.Results) error {
	count := 0
	for results.Next() {
		r := results.Result()
		if count == 0 {
			fmt.Fprintln(w, "\n--- Search Results ---")
		}
		count++
		fmt.Fprintf(w, " %s %s %s\n",
			categoryStyle.Render("["+r.Category+"]"),
			arrowStyle.Render("->"),
			r.Filename)
	}
	if err := results.Err(); err != nil {
		return err
	}

	if count == 0 {
		fmt.Fprintln(w, "No files found")
		return nil
	}
	fmt.Fprintln(w, "--------------------")
	return nil
}

func printOutcome(w io.Writer, out *organizer.Outcome) {
	for _, c := range out.Cleared {
		if c.Removed > 0 {
			fmt.Fprintf(w, "已清空 %s: %d 个文件\n", c.Folder, c.Removed)
		}
	}

	switch out.State {
	case organizer.StateEmptySource:
		if out.SourceMissing {
			fmt.Fprintln(w, "源目录不存在，无需整理")
		} else {
			fmt.Fprintln(w, "No files found")
		}
	case organizer.StatePreview:
		printPreview(w, out.Plan)
	default:
		printMoves(w, out)
	}

	printFailures(w, out.Failures)

	if out.Stats != nil {
		printStats(w, out.Stats)
	}
}

func printPreview(w io.Writer, plan []organizer.Assignment) {
	fmt.Fprintln(w, "\n--- Preview ---")
	for _, a := range plan {
		fmt.Fprintf(w, " %s %s %s\n", a.Entry.Name, arrowStyle.Render("->"), categoryStyle.Render(a.Target.Name()))
	}
	fmt.Fprintf(w, "---------------\n共 %d 个文件，未移动任何文件\n", len(plan))
}

func printMoves(w io.Writer, out *organizer.Outcome) {
	if out.Report == nil {
		return
	}

	renamed, duplicates := 0, 0
	for _, m := range out.Moves {
		switch m.Status {
		case internal.Renamed:
			renamed++
		case internal.SkippedDuplicate:
			duplicates++
		}
	}

	fmt.Fprintf(w, "已整理 %s 个文件（%s）\n",
		humanize.Comma(int64(out.Report.TotalFiles)),
		humanize.Bytes(out.Report.TotalBytes))
	if renamed > 0 {
		fmt.Fprintf(w, "  - 重名后自动重命名: %d 个\n", renamed)
	}
	if duplicates > 0 {
		fmt.Fprintf(w, "  - 目标已存在相同文件，已跳过: %d 个\n", duplicates)
	}
}

func printFailures(w io.Writer, failures []internal.FileFailure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("失败 %d 个:", len(failures))))
	for _, f := range failures {
		fmt.Fprintf(w, "  %s: %v\n", f.Name, f.Err)
	}
}

func printStats(w io.Writer, report *internal.Report) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("分类统计")
	tw.AppendHeader(table.Row{"分类", "文件数", "大小"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	for _, folder := range report.Folders() {
		t := report.PerFolder[folder]
		tw.AppendRow(table.Row{folder, humanize.Comma(int64(t.Count)), humanize.Bytes(t.Bytes)})
	}
	tw.AppendFooter(table.Row{"合计", humanize.Comma(int64(report.TotalFiles)), humanize.Bytes(report.TotalBytes)})

	fmt.Fprintln(w)
	tw.Render()
}
