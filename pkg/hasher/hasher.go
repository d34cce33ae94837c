package hasher

import (
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/forganize/pkg/logger"
)

// CalculateHash 计算文件内容的 xxHash64
func CalculateHash(fs afero.Fs, filePath string) (uint64, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		logger.Get().Error().Err(err).Msgf("无法打开文件: %s", filePath)
		return 0, err
	}
	defer file.Close()

	hash := xxhash.New()
	if _, err := io.Copy(hash, file); err != nil {
		logger.Get().Error().Err(err).Msgf("计算哈希失败: %s", filePath)
		return 0, err
	}

	result := hash.Sum64()
	logger.Get().Trace().Msgf("文件哈希计算完成: %s -> %x", filePath, result)
	return result, nil
}

// SameContent 比较两个文件的大小和哈希值
func SameContent(fs afero.Fs, a, b string) (bool, error) {
	infoA, err := fs.Stat(a)
	if err != nil {
		return false, err
	}
	infoB, err := fs.Stat(b)
	if err != nil {
		return false, err
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	hashA, err := CalculateHash(fs, a)
	if err != nil {
		return false, err
	}
	hashB, err := CalculateHash(fs, b)
	if err != nil {
		return false, err
	}
	return hashA == hashB, nil
}

// KeyString 字符串的短哈希，用于派生文件名
func KeyString(s string) string {
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}
