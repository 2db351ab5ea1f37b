package router

import (
	"fmt"
	"testing"

	"resume-match-go/internal/embedding"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/processor"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
)

// TestStatusForError 流水线错误到HTTP状态码的映射：
// 底层错误类型要能穿透阶段包装被正确分类
func TestStatusForError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "不支持的格式映射415",
			err: processor.NewStageError("extract", processor.ErrExtractTextFailed, "",
				extractor.NewUnsupportedFormatError("resume.odt", ".odt")),
			expected: consts.StatusUnsupportedMediaType,
		},
		{
			name: "损坏文件映射422",
			err: processor.NewStageError("extract", processor.ErrExtractTextFailed, "",
				extractor.NewExtractionError("broken.pdf", "pdf", "两种策略均失败")),
			expected: consts.StatusUnprocessableEntity,
		},
		{
			name: "模型不可用映射503",
			err: processor.NewStageError("embed", processor.ErrEmbeddingFailed, "",
				fmt.Errorf("%w: 模型文件缺失", embedding.ErrModelUnavailable)),
			expected: consts.StatusServiceUnavailable,
		},
		{
			name:     "未知错误映射500",
			err:      fmt.Errorf("boom"),
			expected: consts.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, statusForError(tc.err))
		})
	}
}
