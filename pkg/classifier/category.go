package classifier

import "github.com/moyu-x/forganize/pkg/rules"

// Category 内置分类
type Category int

const (
	Images Category = iota
	Documents
	Audio
	Video
	Archives
	Codes
	Others
)

var categoryNames = [...]string{
	Images:    "images",
	Documents: "documents",
	Audio:     "audio",
	Video:     "video",
	Archives:  "archives",
	Codes:     "codes",
	Others:    "others",
}

func (c Category) String() string {
	if c < Images || c > Others {
		return categoryNames[Others]
	}
	return categoryNames[c]
}

// All 按固定顺序返回全部内置分类
func All() []Category {
	return []Category{Images, Documents, Audio, Video, Archives, Codes, Others}
}

// Names 返回全部内置分类的目录名
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.String()
	}
	return names
}

// Target 分类结果：内置分类，或规则指定的目录名（Folder 非空）
type Target struct {
	Category Category
	Folder   string
}

// Name 目标目录名
func (t Target) Name() string {
	if t.Folder != "" {
		return t.Folder
	}
	return t.Category.String()
}

// FromRule 判断目标是否来自规则
func (t Target) FromRule() bool {
	return t.Folder != ""
}

var extensions = map[string]Category{
	"jpg": Images, "jpeg": Images, "png": Images, "gif": Images, "bmp": Images, "webp": Images,
	"mp4": Video, "mkv": Video, "avi": Video, "mov": Video,
	"mp3": Audio, "wav": Audio, "aac": Audio, "flac": Audio,
	"pdf": Documents, "doc": Documents, "docx": Documents, "txt": Documents,
	"xlsx": Documents, "xls": Documents, "ppt": Documents,
	"zip": Archives, "rar": Archives, "7z": Archives, "tar": Archives, "gz": Archives,
	"cpp": Codes, "c": Codes, "js": Codes, "py": Codes, "java": Codes,
	"css": Codes, "html": Codes, "json": Codes, "go": Codes, "ts": Codes,
}

// CategoryForExt 根据扩展名（不含点，大小写不敏感）返回分类，未知为 Others
func CategoryForExt(ext string) Category {
	if c, ok := extensions[rules.Lower(ext)]; ok {
		return c
	}
	return Others
}
