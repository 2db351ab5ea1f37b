package matcher

import (
	"math"

	"resume-match-go/internal/textproc"
)

// LexicalSimilarity 词法回退模式：没有嵌入模型可用时，
// 只在这两篇文本上构建TF-IDF表示（词表=二者非停用词词元的并集），
// 对这一对向量算余弦，按0-100返回。
// 词法重合增加时分数不会下降（与嵌入模式同样的单调性约定）
func LexicalSimilarity(textA, textB string) float64 {
	tokensA := textproc.Tokenize(textA)
	tokensB := textproc.Tokenize(textB)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	tfA := termCounts(tokensA)
	tfB := termCounts(tokensB)

	// 词表=两篇的并集
	vocab := make([]string, 0, len(tfA)+len(tfB))
	seen := make(map[string]struct{}, len(tfA)+len(tfB))
	for _, t := range tokensA {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			vocab = append(vocab, t)
		}
	}
	for _, t := range tokensB {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			vocab = append(vocab, t)
		}
	}

	// 平滑IDF: ln((1+n)/(1+df))+1，语料就是这两篇，n=2
	vecA := make([]float64, len(vocab))
	vecB := make([]float64, len(vocab))
	for i, term := range vocab {
		df := 0
		if tfA[term] > 0 {
			df++
		}
		if tfB[term] > 0 {
			df++
		}
		idf := math.Log(float64(1+2)/float64(1+df)) + 1
		vecA[i] = float64(tfA[term]) * idf
		vecB[i] = float64(tfB[term]) * idf
	}

	dot := 0.0
	normA := 0.0
	normB := 0.0
	for i := range vocab {
		dot += vecA[i] * vecB[i]
		normA += vecA[i] * vecA[i]
		normB += vecB[i] * vecB[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp01(dot/(math.Sqrt(normA)*math.Sqrt(normB))) * 100
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}
