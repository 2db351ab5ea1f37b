package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineIdentical(t *testing.T) {
	v := []float32{0.3, -0.5, 0.8, 0.1}
	score, err := Cosine(v, v)
	require.NoError(t, err)
	// 自身相似度为1（浮点误差内）
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestCosineSymmetry(t *testing.T) {
	a := []float32{0.1, 0.9, 0.2}
	b := []float32{0.7, 0.3, 0.5}
	ab, err := Cosine(a, b)
	require.NoError(t, err)
	ba, err := Cosine(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestCosineZeroVector(t *testing.T) {
	zero := []float32{0, 0, 0}
	v := []float32{1, 2, 3}

	// 任一向量全零时约定返回0，不产生NaN
	score, err := Cosine(zero, v)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	score, err = Cosine(zero, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestCosineNegativeClamped(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{-1, 0}
	score, err := Cosine(a, b)
	require.NoError(t, err)
	// 反向向量的余弦是-1，截断到0
	assert.Equal(t, 0.0, score)
}

func TestCosineDimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	assert.Error(t, err)
}

func TestLexicalSimilarityIdentical(t *testing.T) {
	text := "experienced python developer with sql skills"
	score := LexicalSimilarity(text, text)
	assert.InDelta(t, 100.0, score, 1e-9)
}

func TestLexicalSimilarityDisjoint(t *testing.T) {
	score := LexicalSimilarity("python sql docker", "pastry baking sourdough")
	assert.Equal(t, 0.0, score)
}

func TestLexicalSimilarityEmpty(t *testing.T) {
	assert.Equal(t, 0.0, LexicalSimilarity("", "python developer"))
	assert.Equal(t, 0.0, LexicalSimilarity("python developer", ""))
	// 纯停用词清洗后为空，同样得0
	assert.Equal(t, 0.0, LexicalSimilarity("the and or", "python developer"))
}

// TestLexicalSimilarityMonotonic 词法重合增加时分数不下降
func TestLexicalSimilarityMonotonic(t *testing.T) {
	jd := "python developer with sql and docker experience"
	lowOverlap := "java engineer"
	highOverlap := "python developer with sql experience"

	low := LexicalSimilarity(lowOverlap, jd)
	high := LexicalSimilarity(highOverlap, jd)
	assert.Greater(t, high, low)
}

func TestLexicalSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"go developer", "go developer kubernetes"},
		{"machine learning engineer", "deep learning researcher"},
		{"a b c", "c d e"},
	}
	for _, pair := range pairs {
		score := LexicalSimilarity(pair[0], pair[1])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}
