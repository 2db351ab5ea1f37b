package keywords

import (
	"context"
	"sort"

	"resume-match-go/internal/parser"
	"resume-match-go/internal/types"

	"github.com/rs/zerolog"
)

// keywordLabels NER关键词允许的实体类别（组织/地点/产品/人名/团体）
var keywordLabels = map[types.EntityLabel]struct{}{
	types.EntityOrg:     {},
	types.EntityGPE:     {},
	types.EntityLoc:     {},
	types.EntityProduct: {},
	types.EntityPerson:  {},
	types.EntityNorp:    {},
}

// Suggester 针对JD文本的关键词建议器：统计排序(RAKE) + 实体识别，
// 以及和简历技能做差集的技能差距报告
type Suggester struct {
	ner        parser.EntityRecognizer
	skillDict  []string
	maxPhrases int
	logger     zerolog.Logger
}

// SuggesterOption 建议器配置选项
type SuggesterOption func(*Suggester)

// WithSuggesterSkillDictionary 替换技能字典（与简历解析侧保持一致）
func WithSuggesterSkillDictionary(dict []string) SuggesterOption {
	return func(s *Suggester) {
		if len(dict) > 0 {
			s.skillDict = dict
		}
	}
}

// WithMaxPhrases 设置RAKE短语数量上限
func WithMaxPhrases(max int) SuggesterOption {
	return func(s *Suggester) {
		if max > 0 {
			s.maxPhrases = max
		}
	}
}

// WithSuggesterLogger 配置自定义日志记录器
func WithSuggesterLogger(logger zerolog.Logger) SuggesterOption {
	return func(s *Suggester) {
		s.logger = logger
	}
}

// NewSuggester 创建关键词建议器，ner为nil时只有统计排序可用
func NewSuggester(ner parser.EntityRecognizer, options ...SuggesterOption) *Suggester {
	s := &Suggester{
		ner:        ner,
		skillDict:  parser.DefaultSkillDictionary,
		maxPhrases: DefaultMaxPhrases,
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// RankPhrases JD统计关键词，降序截断
func (s *Suggester) RankPhrases(text string, maxPhrases int) []string {
	if maxPhrases <= 0 {
		maxPhrases = s.maxPhrases
	}
	return RankPhrases(text, maxPhrases)
}

// ExtractEntities JD中的命名实体关键词，限定在keywordLabels类别内，
// 去重后按字典序返回（集合语义，顺序无含义）
func (s *Suggester) ExtractEntities(ctx context.Context, text string) []string {
	if s.ner == nil {
		return []string{}
	}
	entities, err := s.ner.Entities(ctx, text)
	if err != nil {
		s.logger.Warn().Err(err).Msg("JD实体识别失败，实体关键词为空")
		return []string{}
	}

	set := make(map[string]struct{})
	for _, ent := range entities {
		if _, ok := keywordLabels[ent.Label]; !ok {
			continue
		}
		set[ent.Text] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Keywords 两种方式合并的关键词列表，每条带提取方式标记
func (s *Suggester) Keywords(ctx context.Context, jdText string, maxPhrases int) []types.Keyword {
	var out []types.Keyword
	for _, phrase := range s.RankPhrases(jdText, maxPhrases) {
		out = append(out, types.Keyword{Phrase: phrase, Method: types.KeywordMethodRAKE})
	}
	for _, phrase := range s.ExtractEntities(ctx, jdText) {
		out = append(out, types.Keyword{Phrase: phrase, Method: types.KeywordMethodNER})
	}
	return out
}

// SuggestGaps 技能差距报告：JD技能（字典匹配）与简历技能做差集，
// 缺失技能逐个查静态分类表给出同类推荐
func (s *Suggester) SuggestGaps(currentSkills []string, jdText string) *types.SkillGapReport {
	jdSkills := parser.MatchSkills(jdText, s.skillDict)

	current := make(map[string]struct{}, len(currentSkills))
	for _, skill := range currentSkills {
		current[skill] = struct{}{}
	}

	missing := make([]string, 0)
	recommendations := make(map[string][]string)
	for _, skill := range jdSkills {
		if _, has := current[skill]; has {
			continue
		}
		missing = append(missing, skill)
		recommendations[skill] = SiblingSkills(skill)
	}

	report := &types.SkillGapReport{
		CurrentSkills:   append([]string{}, currentSkills...),
		JDSkills:        jdSkills,
		MissingSkills:   missing,
		Recommendations: recommendations,
	}
	sort.Strings(report.CurrentSkills)
	return report
}
