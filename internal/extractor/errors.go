package extractor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrUnsupportedFormat = errors.New("不支持的文件格式")
	ErrExtractionFailed  = errors.New("文本提取失败")
)

// ExtractError 包含详细上下文的提取错误
type ExtractError struct {
	FileName string
	Format   string
	BaseErr  error
	Detail   string
}

func (e *ExtractError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (文件:%s, 格式:%s): %s", e.BaseErr, e.FileName, e.Format, e.Detail)
	}
	return fmt.Sprintf("%s (文件:%s, 格式:%s)", e.BaseErr, e.FileName, e.Format)
}

func (e *ExtractError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ExtractError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// NewUnsupportedFormatError 未知扩展名/MIME类型，错误信息中带上具体类型
func NewUnsupportedFormatError(fileName, format string) error {
	return &ExtractError{
		FileName: fileName,
		Format:   format,
		BaseErr:  ErrUnsupportedFormat,
		Detail:   fmt.Sprintf("收到的类型为 %q", format),
	}
}

// NewExtractionError 文件存在但无法读取/已损坏
func NewExtractionError(fileName, format, detail string) error {
	return &ExtractError{
		FileName: fileName,
		Format:   format,
		BaseErr:  ErrExtractionFailed,
		Detail:   detail,
	}
}
