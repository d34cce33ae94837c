// Package rules 解析 pattern::folder 形式的分类规则。
package rules

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/moyu-x/forganize/internal"
)

// Rule 一条分类规则。Pattern 已转为小写，Folder 原样保留作为目录名，只允许单层目录。
type Rule struct {
	Pattern string
	Folder  string
}

// Parse 按输入顺序解析规则，任意一条格式错误即返回 ErrInvalidRuleFormat
func Parse(raw []string) ([]Rule, error) {
	parsed := make([]Rule, 0, len(raw))
	for _, r := range raw {
		parts := strings.Split(r, internal.RuleSeparator)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("%w: %q", internal.ErrInvalidRuleFormat, r)
		}
		if err := internal.ValidFolder(parts[1]); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", internal.ErrInvalidRuleFormat, r, err)
		}
		parsed = append(parsed, Rule{
			Pattern: Lower(parts[0]),
			Folder:  parts[1],
		})
	}
	return parsed, nil
}

// Matches 文件名（已小写）包含或以 Pattern 结尾即匹配
func (r Rule) Matches(lowerName string) bool {
	return strings.Contains(lowerName, r.Pattern) || strings.HasSuffix(lowerName, r.Pattern)
}

// Folders 返回规则中出现的目录名，去重并保持首次出现顺序
func Folders(rs []Rule) []string {
	seen := make(map[string]bool, len(rs))
	folders := make([]string, 0, len(rs))
	for _, r := range rs {
		if seen[r.Folder] {
			continue
		}
		seen[r.Folder] = true
		folders = append(folders, r.Folder)
	}
	return folders
}

// Lower 与语言无关的 Unicode 小写转换
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
