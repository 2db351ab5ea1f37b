package keywords

import (
	"regexp"
	"sort"
	"strings"

	"resume-match-go/internal/textproc"
)

// DefaultMaxPhrases RAKE短语数量的默认上限
const DefaultMaxPhrases = 20

// 短语边界：句末标点、括号、引号等。停用词是另一类边界，在切分时处理
var phraseBoundaryRe = regexp.MustCompile(`[.!?,;:\t\n\r\f()\[\]{}"'` + "`" + `’“”—–/\\|<>]+`)

// 词元里去不掉的残余符号（如末尾逗号已被边界切掉，这里处理*号等）
var tokenTrimCutset = "*&^%$@~_=+"

// RankPhrases RAKE式统计关键词排序：
// 按停用词/标点边界切出候选短语，在候选短语共现图上对每个词计算
// degree(word)/frequency(word)，短语得分为成员词得分之和，
// 按得分降序返回（同分按首次出现顺序），截断到maxPhrases。
// 无需任何训练模型
func RankPhrases(text string, maxPhrases int) []string {
	if maxPhrases <= 0 {
		maxPhrases = DefaultMaxPhrases
	}

	phrases := candidatePhrases(text)
	if len(phrases) == 0 {
		return nil
	}

	// 词频与共现度
	freq := make(map[string]int)
	degree := make(map[string]int)
	for _, words := range phrases {
		for _, w := range words {
			freq[w]++
			degree[w] += len(words) - 1
		}
	}
	for w := range degree {
		degree[w] += freq[w]
	}

	type scored struct {
		phrase string
		score  float64
	}
	var ranked []scored
	seen := make(map[string]struct{})
	for _, words := range phrases {
		phrase := strings.Join(words, " ")
		if _, dup := seen[phrase]; dup {
			continue
		}
		seen[phrase] = struct{}{}

		score := 0.0
		for _, w := range words {
			score += float64(degree[w]) / float64(freq[w])
		}
		ranked = append(ranked, scored{phrase: phrase, score: score})
	}

	// 稳定排序保证同分短语维持首次出现顺序
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > maxPhrases {
		ranked = ranked[:maxPhrases]
	}
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.phrase
	}
	return out
}

// candidatePhrases 把文本切成候选短语：先按标点分片，再在片内
// 以停用词为界，连续的非停用词序列构成一个短语（全部小写）
func candidatePhrases(text string) [][]string {
	var phrases [][]string
	for _, fragment := range phraseBoundaryRe.Split(strings.ToLower(text), -1) {
		var current []string
		flush := func() {
			if len(current) > 0 {
				phrases = append(phrases, current)
				current = nil
			}
		}
		for _, raw := range strings.Fields(fragment) {
			word := strings.Trim(raw, tokenTrimCutset)
			if word == "" || textproc.IsStopword(word) {
				flush()
				continue
			}
			current = append(current, word)
		}
		flush()
	}
	return phrases
}
