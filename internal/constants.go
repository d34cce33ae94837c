package internal

const (
	// 目标根目录名称，位于源目录之下
	DestDirName = "organzied"

	// 配置文件默认目录
	DefaultConfigDir = "~/.forganize"

	// 默认并发移动数，1 表示严格按扫描顺序串行执行
	DefaultWorkers = 1

	// 文件类型检测所需的文件头部大小（字节）
	FileHeaderSize = 261

	// 规则分隔符
	RuleSeparator = "::"
)
