package processor

import (
	"context"
	"errors"
	"math"
	"strings"

	"resume-match-go/internal/embedding"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/textproc"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var pipelineTracer = otel.Tracer("resume-match-go/processor")

// Pipeline 简历×JD 分析流水线：
// 提取 -> 清洗 -> 结构化解析 -> 相似度打分 -> 关键词与技能差距
type Pipeline struct {
	extractor TextExtractor
	parser    ProfileParser
	embedder  TextEmbedder
	suggester KeywordSuggester
	storage   *storage.Storage // 可为nil，仅用于向量缓存和解析文本存档

	similarityMode  types.SimilarityMode
	lexicalFallback bool
	maxKeywords     int
	modelID         string // 向量缓存键的模型标识
	logger          zerolog.Logger
}

// Option 流水线配置选项
type Option func(*Pipeline)

// WithExtractor 设置文本提取组件
func WithExtractor(e TextExtractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// WithParser 设置简历结构化解析组件
func WithParser(pp ProfileParser) Option {
	return func(p *Pipeline) { p.parser = pp }
}

// WithEmbedder 设置向量化组件
func WithEmbedder(e TextEmbedder) Option {
	return func(p *Pipeline) { p.embedder = e }
}

// WithSuggester 设置关键词组件
func WithSuggester(s KeywordSuggester) Option {
	return func(p *Pipeline) { p.suggester = s }
}

// WithStorage 设置存储管理器（可选）
func WithStorage(s *storage.Storage) Option {
	return func(p *Pipeline) { p.storage = s }
}

// WithSimilarityMode 设置相似度计算模式
func WithSimilarityMode(mode types.SimilarityMode) Option {
	return func(p *Pipeline) { p.similarityMode = mode }
}

// WithLexicalFallback 嵌入模型不可用时是否回退到词法模式
func WithLexicalFallback(enabled bool) Option {
	return func(p *Pipeline) { p.lexicalFallback = enabled }
}

// WithMaxKeywords 设置关键词数量上限
func WithMaxKeywords(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxKeywords = n
		}
	}
}

// WithModelID 设置向量缓存键里的模型标识
func WithModelID(id string) Option {
	return func(p *Pipeline) { p.modelID = id }
}

// WithLogger 设置日志记录器
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// NewPipeline 创建分析流水线。提取/解析/关键词组件为必填，
// 词法模式下可以不配置向量化组件
func NewPipeline(options ...Option) (*Pipeline, error) {
	p := &Pipeline{
		similarityMode: types.SimilarityModeEmbedding,
		maxKeywords:    20,
		logger:         zerolog.Nop(),
	}
	for _, opt := range options {
		opt(p)
	}

	if p.extractor == nil {
		return nil, errors.New("文本提取组件不能为空")
	}
	if p.parser == nil {
		return nil, errors.New("简历解析组件不能为空")
	}
	if p.suggester == nil {
		return nil, errors.New("关键词组件不能为空")
	}
	if p.similarityMode == types.SimilarityModeEmbedding && p.embedder == nil {
		return nil, errors.New("嵌入模式下向量化组件不能为空")
	}
	return p, nil
}

// Analyze 对一份简历文件和一段JD文本执行完整分析。
// submissionUUID在异步路径由上传时生成，同步路径传空即可
func (p *Pipeline) Analyze(ctx context.Context, submissionUUID string, fileData []byte, fileName, jdText string) (*types.MatchResult, error) {
	ctx, span := pipelineTracer.Start(ctx, "pipeline.Analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("file.name", fileName),
		attribute.Int("file.size", len(fileData)),
	)

	// 1. 文本提取
	rawText, err := p.extractor.ExtractBytes(ctx, fileData, fileName)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeExtraction)
		return nil, NewStageError("extract", ErrExtractTextFailed, submissionUUID, err)
	}
	p.logger.Debug().Str("file_name", fileName).Int("raw_len", len(rawText)).Msg("文本提取完成")

	// 2. 清洗。清洗只服务于相似度计算，结构化解析用原始文本
	cleanedResume := textproc.Clean(rawText)
	cleanedJD := textproc.Clean(jdText)

	// 3. 结构化解析（从不失败，缺失字段为空）
	profile := p.parser.Parse(ctx, rawText)

	// 4. 相似度打分
	score, mode, err := p.similarity(ctx, submissionUUID, cleanedResume, cleanedJD)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeModel)
		return nil, err
	}
	span.SetAttributes(
		attribute.Float64("match.score", score),
		attribute.String("match.mode", string(mode)),
	)

	// 5. JD关键词与技能差距报告
	keywords := p.suggester.Keywords(ctx, jdText, p.maxKeywords)
	gap := p.suggester.SuggestGaps(profile.Skills, jdText)

	// 异步路径顺带存档提取文本，失败不影响分析结果
	if submissionUUID != "" && p.storage != nil && p.storage.MinIO != nil {
		if _, err := p.storage.MinIO.UploadParsedText(ctx, submissionUUID, rawText); err != nil {
			p.logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("存档解析文本失败")
		}
	}

	return &types.MatchResult{
		SubmissionUUID: submissionUUID,
		Profile:        profile,
		Score:          score,
		ScorePercent:   math.Round(score*10000) / 100,
		SimilarityMode: mode,
		Keywords:       keywords,
		GapReport:      gap,
	}, nil
}

// similarity 按配置模式计算 [0,1] 匹配分数，返回实际使用的模式。
// 失败时返回带阶段信息的流水线错误，底层错误链保留给调用方分类
func (p *Pipeline) similarity(ctx context.Context, submissionUUID, cleanedResume, cleanedJD string) (float64, types.SimilarityMode, error) {
	if p.similarityMode == types.SimilarityModeLexical {
		return matcher.LexicalSimilarity(cleanedResume, cleanedJD) / 100, types.SimilarityModeLexical, nil
	}

	vectors, err := p.embedTexts(ctx, []string{cleanedResume, cleanedJD})
	if err != nil {
		if p.lexicalFallback && errors.Is(err, embedding.ErrModelUnavailable) {
			p.logger.Warn().Err(err).Msg("嵌入模型不可用，回退到词法相似度")
			return matcher.LexicalSimilarity(cleanedResume, cleanedJD) / 100, types.SimilarityModeLexical, nil
		}
		return 0, "", NewStageError("embed", ErrEmbeddingFailed, submissionUUID, err)
	}

	score, err := matcher.Cosine(vectors[0], vectors[1])
	if err != nil {
		return 0, "", NewStageError("score", ErrScoreFailed, submissionUUID, err)
	}
	return score, types.SimilarityModeEmbedding, nil
}

// embedTexts 批量向量化，Redis可用时按 模型+文本 做缓存。
// 缓存读写失败只记日志，不中断分析
func (p *Pipeline) embedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	pending := make([]string, 0, len(texts))
	pendingIdx := make([]int, 0, len(texts))

	cache := p.embeddingCache()
	for i, text := range texts {
		if cache != nil && strings.TrimSpace(text) != "" {
			vec, err := cache.GetCachedEmbedding(ctx, p.modelID, text)
			if err == nil {
				out[i] = vec
				continue
			}
			if !errors.Is(err, storage.ErrNotFound) {
				p.logger.Warn().Err(err).Msg("读取向量缓存失败")
			}
		}
		pending = append(pending, text)
		pendingIdx = append(pendingIdx, i)
	}

	if len(pending) == 0 {
		return out, nil
	}

	vectors, err := p.embedder.Embed(ctx, pending)
	if err != nil {
		return nil, err
	}
	for j, vec := range vectors {
		out[pendingIdx[j]] = vec
		if cache != nil && strings.TrimSpace(pending[j]) != "" {
			if err := cache.CacheEmbedding(ctx, p.modelID, pending[j], vec); err != nil {
				p.logger.Warn().Err(err).Msg("写入向量缓存失败")
			}
		}
	}
	return out, nil
}

func (p *Pipeline) embeddingCache() *storage.Redis {
	if p.storage == nil {
		return nil
	}
	return p.storage.Redis
}
