package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T, options ...Option) *Extractor {
	t.Helper()
	e, err := New(context.Background(), options...)
	require.NoError(t, err)
	return e
}

func TestExtractBytesTXT(t *testing.T) {
	e := newTestExtractor(t)
	content := "Jane Doe\nPython developer with 5 years of experience.\n"

	text, err := e.ExtractBytes(context.Background(), []byte(content), "resume.txt")
	require.NoError(t, err)
	// TXT按UTF-8原样返回
	assert.Equal(t, content, text)
}

func TestExtractFileTXT(t *testing.T) {
	e := newTestExtractor(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	content := "Go developer, Kubernetes experience."
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	text, err := e.ExtractFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

// TestExtractDeterministic 同一文件重复提取结果逐字节一致
func TestExtractDeterministic(t *testing.T) {
	e := newTestExtractor(t)
	data := []byte("Backend engineer.\nSQL, Docker, Redis.")

	first, err := e.ExtractBytes(context.Background(), data, "a.txt")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.ExtractBytes(context.Background(), data, "a.txt")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.ExtractBytes(context.Background(), []byte("data"), "resume.odt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	// 错误信息要指明拒绝的扩展名
	assert.Contains(t, err.Error(), ".odt")
}

func TestExtractInvalidUTF8TXT(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.ExtractBytes(context.Background(), []byte{0xff, 0xfe, 0x00}, "broken.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractionFailed))
}

func TestExtractFileMissing(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.ExtractFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractionFailed))
}

// TestSniffingPlainText 嗅探模式下按内容识别：合法UTF-8且非已知
// 二进制格式的内容按纯文本处理，不看扩展名
func TestSniffingPlainText(t *testing.T) {
	e := newTestExtractor(t, WithContentSniffing(true))
	content := "plain resume text without extension hints"

	text, err := e.ExtractBytes(context.Background(), []byte(content), "resume.dat")
	require.NoError(t, err)
	assert.Equal(t, content, text)
}

func TestSniffingUnknownBinary(t *testing.T) {
	e := newTestExtractor(t, WithContentSniffing(true))

	// 非法UTF-8且不是已知格式
	_, err := e.ExtractBytes(context.Background(), []byte{0x00, 0xff, 0xd8, 0x01, 0x80}, "blob.bin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestExtractCorruptPDF(t *testing.T) {
	e := newTestExtractor(t)

	// 扩展名是pdf但内容不是，两种策略都会失败
	_, err := e.ExtractBytes(context.Background(), []byte("not a pdf at all"), "fake.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractionFailed))
}

func TestExtractCorruptDOCX(t *testing.T) {
	e := newTestExtractor(t)

	_, err := e.ExtractBytes(context.Background(), []byte("not a zip archive"), "fake.docx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractionFailed))
}
