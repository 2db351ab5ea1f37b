package matcher

import (
	"fmt"
	"math"
)

// Cosine 计算两个向量的余弦相似度，结果截断到[0,1]。
// 零向量上的余弦没有定义，必须特判：任一向量全零时约定返回0
// （两个全零向量也精确返回0，不产生NaN）。维度不一致是调用方错误
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("向量维度不一致: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01(score), nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
