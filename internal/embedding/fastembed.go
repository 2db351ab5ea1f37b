package embedding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"resume-match-go/internal/config"

	fastembed "github.com/anush008/fastembed-go"
	"github.com/rs/zerolog"
)

// modelMapping 常用HuggingFace模型名到fastembed标识的映射
var modelMapping = map[string]fastembed.EmbeddingModel{
	"sentence-transformers/all-MiniLM-L6-v2": fastembed.AllMiniLML6V2,
	"BAAI/bge-small-en-v1.5":                 fastembed.BGESmallENV15,
	"BAAI/bge-small-en":                      fastembed.BGESmallEN,
	"BAAI/bge-base-en-v1.5":                  fastembed.BGEBaseENV15,
}

// modelDimensions 各模型的固定输出维度
var modelDimensions = map[fastembed.EmbeddingModel]int{
	fastembed.AllMiniLML6V2: 384,
	fastembed.BGESmallENV15: 384,
	fastembed.BGESmallEN:    384,
	fastembed.BGEBaseENV15:  768,
}

// FastEmbedProvider 基于fastembed(ONNX)的本地嵌入提供者。
// 模型在进程内只加载一次（首次使用时，缺失则触发一次性下载），
// 之后所有调用复用同一个句柄
type FastEmbedProvider struct {
	cfg     *config.EmbedderConfig
	modelID fastembed.EmbeddingModel
	dims    int
	logger  zerolog.Logger

	initOnce sync.Once
	initErr  error
	model    *fastembed.FlagEmbedding
}

// 编译期检查接口实现
var _ Provider = (*FastEmbedProvider)(nil)

// NewFastEmbedProvider 创建嵌入提供者。只做配置校验，模型延迟到
// 首次非空输入时加载
func NewFastEmbedProvider(cfg *config.EmbedderConfig, logger zerolog.Logger) (*FastEmbedProvider, error) {
	modelID, ok := modelMapping[cfg.Model]
	if !ok {
		// 允许直接给fastembed自己的模型标识
		modelID = fastembed.EmbeddingModel(cfg.Model)
		if _, known := modelDimensions[modelID]; !known {
			return nil, fmt.Errorf("不支持的嵌入模型 %q", cfg.Model)
		}
	}

	// 配置维度与模型输出维度不一致属于配置错误，尽早失败
	if cfg.Dimensions != 0 && cfg.Dimensions != modelDimensions[modelID] {
		return nil, fmt.Errorf("配置维度 %d 与模型 %s 的输出维度 %d 不一致",
			cfg.Dimensions, modelID, modelDimensions[modelID])
	}

	return &FastEmbedProvider{
		cfg:     cfg,
		modelID: modelID,
		dims:    modelDimensions[modelID],
		logger:  logger,
	}, nil
}

// ensureModel 一次性初始化模型，失败结果锁存。并发首次调用只会
// 触发一次加载
func (p *FastEmbedProvider) ensureModel() error {
	p.initOnce.Do(func() {
		showProgress := false
		model, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
			Model:                p.modelID,
			CacheDir:             p.cfg.CacheDir,
			MaxLength:            p.cfg.MaxLength,
			ShowDownloadProgress: &showProgress,
		})
		if err != nil {
			p.initErr = fmt.Errorf("%w: 初始化fastembed模型 %s 失败: %v",
				ErrModelUnavailable, p.modelID, err)
			p.logger.Error().Err(err).Str("model", string(p.modelID)).Msg("嵌入模型加载失败")
			return
		}
		p.model = model
		p.logger.Info().
			Str("model", string(p.modelID)).
			Int("dimensions", p.dims).
			Msg("嵌入模型加载完成")
	})
	return p.initErr
}

// Embed 实现Provider接口
func (p *FastEmbedProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))

	// 空白输入直接给零向量，不触发模型加载
	var pending []string
	var pendingIdx []int
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			out[i] = make([]float32, p.dims)
			continue
		}
		pending = append(pending, text)
		pendingIdx = append(pendingIdx, i)
	}
	if len(pending) == 0 {
		return out, nil
	}

	if err := p.ensureModel(); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	vectors, err := p.model.Embed(pending, 32)
	if err != nil {
		return nil, fmt.Errorf("文本向量化失败: %w", err)
	}
	if len(vectors) != len(pending) {
		return nil, fmt.Errorf("向量数量不匹配: 期望%d, 实际%d", len(pending), len(vectors))
	}

	for j, vec := range vectors {
		out[pendingIdx[j]] = vec
	}
	return out, nil
}

// Dimensions 实现Provider接口
func (p *FastEmbedProvider) Dimensions() int {
	return p.dims
}

// Close 释放ONNX运行时资源
func (p *FastEmbedProvider) Close() {
	if p.model != nil {
		p.model.Destroy()
	}
}
