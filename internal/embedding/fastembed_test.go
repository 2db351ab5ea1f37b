package embedding

import (
	"context"
	"testing"

	"resume-match-go/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.EmbedderConfig {
	return &config.EmbedderConfig{
		Model:      "sentence-transformers/all-MiniLM-L6-v2",
		Dimensions: 384,
		CacheDir:   "testdata/model_cache",
		MaxLength:  512,
	}
}

func TestNewFastEmbedProvider(t *testing.T) {
	p, err := NewFastEmbedProvider(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 384, p.Dimensions())
}

func TestNewFastEmbedProviderUnknownModel(t *testing.T) {
	cfg := testConfig()
	cfg.Model = "no-such/model"
	_, err := NewFastEmbedProvider(cfg, zerolog.Nop())
	assert.Error(t, err)
}

// 配置维度与模型固定输出维度冲突时构造失败
func TestNewFastEmbedProviderDimensionMismatch(t *testing.T) {
	cfg := testConfig()
	cfg.Dimensions = 768
	_, err := NewFastEmbedProvider(cfg, zerolog.Nop())
	assert.Error(t, err)

	// 维度留空（0）表示沿用模型默认
	cfg.Dimensions = 0
	p, err := NewFastEmbedProvider(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 384, p.Dimensions())
}

// TestEmbedBlankInputs 空白输入直接得到零向量，不触发模型加载。
// 构造时不存在模型缓存目录也必须能通过
func TestEmbedBlankInputs(t *testing.T) {
	p, err := NewFastEmbedProvider(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer p.Close()

	vectors, err := p.Embed(context.Background(), []string{"", "   ", "\t\n"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	for _, vec := range vectors {
		require.Len(t, vec, 384)
		for _, v := range vec {
			assert.Equal(t, float32(0), v)
		}
	}
	// 模型不应被加载
	assert.Nil(t, p.model)
}

func TestEmbedEmptySlice(t *testing.T) {
	p, err := NewFastEmbedProvider(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer p.Close()

	vectors, err := p.Embed(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}
