package classifier

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
	"github.com/spf13/afero"

	"github.com/moyu-x/forganize/internal"
	"github.com/moyu-x/forganize/pkg/logger"
	"github.com/moyu-x/forganize/pkg/rules"
)

// Classify 解析文件名的目标目录。按顺序匹配规则，第一条匹配的规则生效；
// 没有规则匹配时按扩展名归入内置分类。
func Classify(name string, rs []rules.Rule) Target {
	lower := rules.Lower(name)
	for _, r := range rs {
		if r.Matches(lower) {
			return Target{Folder: r.Folder}
		}
	}
	return Target{Category: CategoryForExt(strings.TrimPrefix(filepath.Ext(name), "."))}
}

// Classifier 在 Classify 之上可选地按文件内容识别类型
type Classifier struct {
	rules   []rules.Rule
	sniffer *Sniffer
}

// New 创建分类器，sniffer 为 nil 时只按文件名分类
func New(rs []rules.Rule, sniffer *Sniffer) *Classifier {
	return &Classifier{rules: rs, sniffer: sniffer}
}

// Resolve 解析文件条目的目标目录
func (c *Classifier) Resolve(entry internal.FileEntry) Target {
	target := Classify(entry.Name, c.rules)
	if c.sniffer == nil || target.FromRule() || target.Category != Others {
		return target
	}

	sniffed, err := c.sniffer.Sniff(entry.SourcePath)
	if err != nil {
		logger.Get().Debug().Err(err).Str("file", entry.Name).Msg("检测文件类型失败，归入 others")
		return target
	}
	if sniffed != Others {
		logger.Get().Debug().
			Str("file", entry.Name).
			Str("category", sniffed.String()).
			Msg("按文件内容识别分类")
	}
	return Target{Category: sniffed}
}

// Sniffer 读取文件头部并使用 filetype 库识别分类
type Sniffer struct {
	Fs afero.Fs
}

func NewSniffer(fs afero.Fs) *Sniffer {
	return &Sniffer{Fs: fs}
}

// Sniff 返回文件内容对应的分类，无法识别时为 Others
func (s *Sniffer) Sniff(path string) (Category, error) {
	head, err := s.readFileHeader(path, internal.FileHeaderSize)
	if err != nil {
		return Others, err
	}

	kind, err := filetype.Match(head)
	if err != nil {
		return Others, fmt.Errorf("检测文件类型失败: %w", err)
	}
	if kind == types.Unknown {
		return Others, nil
	}
	return categoryForType(kind), nil
}

func categoryForType(kind types.Type) Category {
	switch kind.MIME.Type {
	case "image":
		return Images
	case "video":
		return Video
	case "audio":
		return Audio
	}

	switch kind.Extension {
	case "pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "rtf":
		return Documents
	}

	if _, ok := matchers.Archive[kind]; ok {
		return Archives
	}
	return Others
}

func (s *Sniffer) readFileHeader(path string, size int) ([]byte, error) {
	file, err := s.Fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	head := make([]byte, size)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("读取文件头部失败: %w", err)
	}
	return head[:n], nil
}
