package textproc

import (
	"regexp"
	"strings"
)

// 非小写字母/数字/空白的字符全部替换为空格
var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

// Clean 对原始文本做确定性清洗：
// 小写 -> 特殊字符替换为空格 -> 按空白切分 -> 去停用词 -> 单空格重连。
// 纯函数，空输入得到空输出。对同一配置，同一输入恒得同一输出，且满足幂等。
func Clean(text string) string {
	lowered := strings.ToLower(text)
	lowered = nonAlnumRe.ReplaceAllString(lowered, " ")

	tokens := strings.Fields(lowered)
	kept := tokens[:0]
	for _, tok := range tokens {
		if IsStopword(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// Tokenize 清洗后的词元序列，供词法相似度等下游复用
func Tokenize(text string) []string {
	cleaned := Clean(text)
	if cleaned == "" {
		return nil
	}
	return strings.Fields(cleaned)
}
