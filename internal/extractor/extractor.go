package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"github.com/rs/zerolog"
)

// 支持的文档格式
const (
	formatPDF  = "pdf"
	formatDOCX = "docx"
	formatTXT  = "txt"
)

// TextExtractor 文档文本提取接口，按文件类型分发
type TextExtractor interface {
	// ExtractFile 从文件路径提取纯文本
	ExtractFile(ctx context.Context, filePath string) (string, error)

	// ExtractBytes 从字节内容提取纯文本，fileName用于类型识别与日志
	ExtractBytes(ctx context.Context, data []byte, fileName string) (string, error)
}

// Extractor 默认实现：PDF走eino解析器（失败后用宽松策略重试一次），
// DOCX按段落提取，TXT按UTF-8原样读取
type Extractor struct {
	pdf    *EinoPDFExtractor
	sniff  bool // 按内容magic bytes识别类型，而非信任扩展名
	logger zerolog.Logger
}

// 编译期检查接口实现
var _ TextExtractor = (*Extractor)(nil)

// Option 提取器配置选项
type Option func(*Extractor)

// WithContentSniffing 开启内容嗅探模式
func WithContentSniffing(enable bool) Option {
	return func(e *Extractor) {
		e.sniff = enable
	}
}

// WithLogger 配置自定义日志记录器
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New 初始化文本提取器，eino PDF解析器在此一次性构建
func New(ctx context.Context, options ...Option) (*Extractor, error) {
	e := &Extractor{
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(e)
	}

	pdfExtractor, err := NewEinoPDFExtractor(ctx, e.logger)
	if err != nil {
		return nil, fmt.Errorf("初始化PDF解析器失败: %w", err)
	}
	e.pdf = pdfExtractor
	return e, nil
}

// ExtractFile 实现TextExtractor接口
func (e *Extractor) ExtractFile(ctx context.Context, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", NewExtractionError(filepath.Base(filePath), "", fmt.Sprintf("读取文件失败: %v", err))
	}
	return e.ExtractBytes(ctx, data, filepath.Base(filePath))
}

// ExtractBytes 实现TextExtractor接口
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte, fileName string) (string, error) {
	format, err := e.detectFormat(data, fileName)
	if err != nil {
		return "", err
	}

	e.logger.Debug().
		Str("file", fileName).
		Str("format", format).
		Int("size", len(data)).
		Msg("开始提取文本")

	switch format {
	case formatPDF:
		return e.extractPDF(ctx, data, fileName)
	case formatDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return "", NewExtractionError(fileName, formatDOCX, err.Error())
		}
		return text, nil
	case formatTXT:
		// 按UTF-8原样读取，非法编码视为提取失败
		if !utf8.Valid(data) {
			return "", NewExtractionError(fileName, formatTXT, "文件不是合法的UTF-8文本")
		}
		return string(data), nil
	default:
		return "", NewUnsupportedFormatError(fileName, format)
	}
}

// detectFormat 识别文档格式。默认按扩展名；嗅探模式下按magic bytes，
// 识别不出但内容是合法UTF-8时按纯文本处理
func (e *Extractor) detectFormat(data []byte, fileName string) (string, error) {
	if !e.sniff {
		ext := strings.ToLower(filepath.Ext(fileName))
		switch ext {
		case ".pdf":
			return formatPDF, nil
		case ".docx":
			return formatDOCX, nil
		case ".txt":
			return formatTXT, nil
		default:
			return "", NewUnsupportedFormatError(fileName, ext)
		}
	}

	kind, err := filetype.Match(data)
	if err == nil && kind != filetype.Unknown {
		switch kind.Extension {
		case "pdf":
			return formatPDF, nil
		case "docx":
			return formatDOCX, nil
		}
	}
	if utf8.Valid(data) {
		return formatTXT, nil
	}
	mime := "unknown"
	if err == nil && kind != filetype.Unknown {
		mime = kind.MIME.Value
	}
	return "", NewUnsupportedFormatError(fileName, mime)
}

// extractPDF PDF双策略提取：先走eino解析器，失败后用宽松的逐页策略重试一次
func (e *Extractor) extractPDF(ctx context.Context, data []byte, fileName string) (string, error) {
	text, err := e.pdf.ExtractTextFromBytes(ctx, data, fileName)
	if err == nil {
		return text, nil
	}

	e.logger.Warn().
		Err(err).
		Str("file", fileName).
		Msg("eino PDF解析失败，改用宽松策略重试")

	text, retryErr := extractPDFPermissive(data, e.logger)
	if retryErr != nil {
		return "", NewExtractionError(fileName, formatPDF,
			fmt.Sprintf("两种策略均失败: %v; 重试: %v", err, retryErr))
	}
	return text, nil
}
