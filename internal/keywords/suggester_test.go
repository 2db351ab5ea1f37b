package keywords

import (
	"context"
	"fmt"
	"testing"

	"resume-match-go/internal/types"

	"github.com/stretchr/testify/assert"
)

// MockRecognizer 测试用NER后端，返回预置实体
type MockRecognizer struct {
	entities []types.Entity
	err      error
}

func (m *MockRecognizer) Entities(_ context.Context, _ string) ([]types.Entity, error) {
	return m.entities, m.err
}

func (m *MockRecognizer) Sentences(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func TestExtractEntities(t *testing.T) {
	ner := &MockRecognizer{entities: []types.Entity{
		{Text: "Google", Label: types.EntityOrg},
		{Text: "London", Label: types.EntityGPE},
		{Text: "Google", Label: types.EntityOrg}, // 重复实体
	}}
	s := NewSuggester(ner)

	got := s.ExtractEntities(context.Background(), "jd text")
	assert.Equal(t, []string{"Google", "London"}, got)
}

func TestExtractEntitiesNERFailure(t *testing.T) {
	ner := &MockRecognizer{err: fmt.Errorf("模型未就绪")}
	s := NewSuggester(ner)

	// NER失败降级为空实体列表，不上抛错误
	assert.Empty(t, s.ExtractEntities(context.Background(), "jd text"))
}

func TestExtractEntitiesNilBackend(t *testing.T) {
	s := NewSuggester(nil)
	assert.Empty(t, s.ExtractEntities(context.Background(), "jd text"))
}

func TestKeywordsCombinesMethods(t *testing.T) {
	ner := &MockRecognizer{entities: []types.Entity{
		{Text: "Kubernetes", Label: types.EntityProduct},
	}}
	s := NewSuggester(ner)

	got := s.Keywords(context.Background(), "deep learning engineer wanted", 10)

	var rake, nerCount int
	for _, kw := range got {
		switch kw.Method {
		case types.KeywordMethodRAKE:
			rake++
		case types.KeywordMethodNER:
			nerCount++
		}
	}
	assert.Greater(t, rake, 0)
	assert.Equal(t, 1, nerCount)
}

func TestSuggestGaps(t *testing.T) {
	s := NewSuggester(nil)

	report := s.SuggestGaps([]string{"python"},
		"We need Python and SQL experience with Docker deployments")

	assert.Equal(t, []string{"python"}, report.CurrentSkills)
	assert.Equal(t, []string{"docker", "python", "sql"}, report.JDSkills)
	assert.Equal(t, []string{"docker", "sql"}, report.MissingSkills)

	// 每个缺失技能都有推荐键，即使推荐列表为空
	assert.Contains(t, report.Recommendations, "sql")
	assert.Contains(t, report.Recommendations, "docker")
	assert.NotContains(t, report.Recommendations, "python")
	assert.Contains(t, report.Recommendations["sql"], "mysql")
}

func TestSuggestGapsNoMissing(t *testing.T) {
	s := NewSuggester(nil)
	report := s.SuggestGaps([]string{"python", "sql"}, "Python and SQL required")

	assert.Empty(t, report.MissingSkills)
	assert.Empty(t, report.Recommendations)
	assert.NotNil(t, report.MissingSkills, "差集为空时返回空切片而非nil")
}

func TestSuggestGapsCustomDictionary(t *testing.T) {
	s := NewSuggester(nil, WithSuggesterSkillDictionary([]string{"rust", "python"}))
	report := s.SuggestGaps(nil, "Rust developer wanted")

	assert.Equal(t, []string{"rust"}, report.JDSkills)
	assert.Equal(t, []string{"rust"}, report.MissingSkills)
}

func TestSiblingSkills(t *testing.T) {
	siblings := SiblingSkills("sql")
	assert.Contains(t, siblings, "mysql")
	assert.NotContains(t, siblings, "sql", "推荐不包含技能自身")

	// 分类表外的技能得到空推荐
	assert.Empty(t, SiblingSkills("basket weaving"))
	assert.NotNil(t, SiblingSkills("basket weaving"))
}
