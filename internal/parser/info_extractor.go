package parser

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"resume-match-go/internal/types"

	"github.com/rs/zerolog"
)

// 邮箱/电话在原始文本上匹配（清洗会洗掉@和.等符号）
var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	phoneRe = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?(\(?\d{2,4}\)?[-.\s]?)?\d{3,4}[-.\s]?\d{3,4}`)
)

// 句级启发式的触发词。按子串包含判断，一个句子可以同时命中两类
// （语料本身含糊时两类都记，这是有意保留的行为）
var (
	educationTriggers  = []string{"university", "college", "institute"}
	experienceTriggers = []string{"inc", "llc", "corp", "company", "startup"}
)

// DefaultSkillDictionary 内置技能字典，可通过配置替换
var DefaultSkillDictionary = []string{
	"python", "java", "c++", "go", "javascript",
	"machine learning", "deep learning", "nlp", "data analysis",
	"sql", "docker", "kubernetes",
}

// EntityRecognizer NER后端契约：文本到带类别实体，外加句子切分。
// 标签取值限定在types.EntityLabel枚举内
type EntityRecognizer interface {
	Entities(ctx context.Context, text string) ([]types.Entity, error)
	Sentences(ctx context.Context, text string) ([]string, error)
}

// entityBucket 实体类别到下游归类的映射值
type entityBucket int

const (
	bucketNone entityBucket = iota
	bucketOrganization // 组织/地点类实体，进教育/经历的触发词判定
)

// entityBuckets 分类规则做成数据表，而不是散落的条件判断
var entityBuckets = map[types.EntityLabel]entityBucket{
	types.EntityOrg: bucketOrganization,
	types.EntityGPE: bucketOrganization,
	types.EntityLoc: bucketOrganization,
}

// InfoExtractor 从简历原始文本解析结构化信息
// 解析从不失败：最坏情况所有字段为空
type InfoExtractor struct {
	ner       EntityRecognizer
	skillDict []string
	logger    zerolog.Logger
}

// InfoOption 解析器配置选项
type InfoOption func(*InfoExtractor)

// WithSkillDictionary 替换技能字典
func WithSkillDictionary(dict []string) InfoOption {
	return func(x *InfoExtractor) {
		if len(dict) > 0 {
			x.skillDict = dict
		}
	}
}

// WithInfoLogger 配置自定义日志记录器
func WithInfoLogger(logger zerolog.Logger) InfoOption {
	return func(x *InfoExtractor) {
		x.logger = logger
	}
}

// NewInfoExtractor 创建解析器。ner可以为nil，此时姓名留空、
// 句子切分退化为标点切分
func NewInfoExtractor(ner EntityRecognizer, options ...InfoOption) *InfoExtractor {
	x := &InfoExtractor{
		ner:       ner,
		skillDict: DefaultSkillDictionary,
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(x)
	}
	return x
}

// Parse 解析简历文本，返回结构化信息。字段缺失不是错误，留空即可
func (x *InfoExtractor) Parse(ctx context.Context, rawText string) *types.ParsedProfile {
	profile := &types.ParsedProfile{
		Skills:     []string{},
		Education:  []string{},
		Experience: []string{},
	}

	profile.Email = emailRe.FindString(rawText)
	profile.Phone = strings.TrimSpace(phoneRe.FindString(rawText))

	eduSet := make(map[string]struct{})
	expSet := make(map[string]struct{})

	// NER部分失败不致命，降级为只用正则/触发词
	if x.ner != nil {
		entities, err := x.ner.Entities(ctx, rawText)
		if err != nil {
			x.logger.Warn().Err(err).Msg("NER识别失败，跳过实体相关字段")
		} else {
			for _, ent := range entities {
				if ent.Label == types.EntityPerson && profile.Name == "" {
					// 取第一个人名实体作为姓名，找不到就留空
					profile.Name = ent.Text
					continue
				}
				if entityBuckets[ent.Label] == bucketOrganization {
					classifyByTriggers(ent.Text, eduSet, expSet)
				}
			}
		}
	}

	for _, sentence := range x.sentences(ctx, rawText) {
		classifyByTriggers(sentence, eduSet, expSet)
	}

	profile.Skills = MatchSkills(rawText, x.skillDict)
	profile.Education = sortedSet(eduSet)
	profile.Experience = sortedSet(expSet)
	return profile
}

// sentences 优先用NER后端切句，不可用时退化为标点切分
func (x *InfoExtractor) sentences(ctx context.Context, text string) []string {
	if x.ner != nil {
		sents, err := x.ner.Sentences(ctx, text)
		if err == nil {
			return sents
		}
		x.logger.Warn().Err(err).Msg("切句失败，退化为标点切分")
	}
	return splitSentences(text)
}

// classifyByTriggers 触发词判定，教育与经历两套触发词各自独立命中
func classifyByTriggers(text string, eduSet, expSet map[string]struct{}) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}
	lower := strings.ToLower(trimmed)
	for _, trigger := range educationTriggers {
		if strings.Contains(lower, trigger) {
			eduSet[trimmed] = struct{}{}
			break
		}
	}
	for _, trigger := range experienceTriggers {
		if strings.Contains(lower, trigger) {
			expSet[trimmed] = struct{}{}
			break
		}
	}
}

var sentenceSplitRe = regexp.MustCompile(`[.!?\n]+`)

// splitSentences 无NER后端时的简易切句
func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// MatchSkills 技能字典匹配：词条在文本中整词出现（大小写不敏感），
// 返回去重后按字典序排列的小写词条。简历侧和JD侧共用
func MatchSkills(text string, dict []string) []string {
	if len(dict) == 0 {
		dict = DefaultSkillDictionary
	}
	lowerText := strings.ToLower(text)
	set := make(map[string]struct{})
	for _, term := range dict {
		t := strings.ToLower(term)
		if containsTerm(lowerText, t) {
			set[t] = struct{}{}
		}
	}
	return sortedSet(set)
}

// containsTerm 整词匹配：term在text中出现，且字母数字侧存在词边界。
// term本身以非字母数字开头/结尾的一侧（如"c++"的结尾）不要求边界
func containsTerm(text, term string) bool {
	if term == "" {
		return false
	}
	for idx := 0; idx <= len(text)-len(term); {
		i := strings.Index(text[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		startOK := !isWordChar(term[0]) || start == 0 || !isWordChar(text[start-1])
		endOK := !isWordChar(term[len(term)-1]) || end == len(text) || !isWordChar(text[end])
		if startOK && endOK {
			return true
		}
		idx = start + 1
	}
	return false
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// sortedSet 集合转有序切片，保证输出稳定
func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
