package processor

import (
	"context"

	"resume-match-go/internal/types"
)

// 组件接口集中在本包声明，便于测试时逐个替换

// TextExtractor 文档文本提取接口
type TextExtractor interface {
	// ExtractBytes 从字节内容提取纯文本
	ExtractBytes(ctx context.Context, data []byte, fileName string) (string, error)
}

// ProfileParser 简历结构化解析接口。解析从不失败，字段缺失为空值
type ProfileParser interface {
	Parse(ctx context.Context, rawText string) *types.ParsedProfile
}

// TextEmbedder 文本向量化接口
type TextEmbedder interface {
	// Embed 批量将文本转换为固定维度向量；空白文本得到零向量
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions 返回嵌入向量的维度
	Dimensions() int
}

// KeywordSuggester JD关键词与技能差距接口
type KeywordSuggester interface {
	// Keywords 统计排序+实体识别的关键词列表
	Keywords(ctx context.Context, jdText string, maxPhrases int) []types.Keyword

	// SuggestGaps 简历技能与JD技能的差距报告
	SuggestGaps(currentSkills []string, jdText string) *types.SkillGapReport
}
