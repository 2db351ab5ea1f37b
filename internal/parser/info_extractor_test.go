package parser

import (
	"context"
	"fmt"
	"testing"

	"resume-match-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockNER 测试用NER后端，返回预置实体与句子
type MockNER struct {
	entities  []types.Entity
	sentences []string
	err       error
}

func (m *MockNER) Entities(_ context.Context, _ string) ([]types.Entity, error) {
	return m.entities, m.err
}

func (m *MockNER) Sentences(_ context.Context, text string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.sentences != nil {
		return m.sentences, nil
	}
	return splitSentences(text), nil
}

func TestParseContactInfo(t *testing.T) {
	resume := `Jane Doe
Email: jane.doe@example.com
Phone: +1 (415) 555-0132
Skills: Python, SQL, Machine Learning`

	x := NewInfoExtractor(nil)
	profile := x.Parse(context.Background(), resume)

	assert.Equal(t, "jane.doe@example.com", profile.Email)
	assert.NotEmpty(t, profile.Phone)
	assert.Equal(t, []string{"machine learning", "python", "sql"}, profile.Skills)
}

func TestParseNameFromFirstPersonEntity(t *testing.T) {
	ner := &MockNER{entities: []types.Entity{
		{Text: "Jane Doe", Label: types.EntityPerson},
		{Text: "John Smith", Label: types.EntityPerson},
	}}
	x := NewInfoExtractor(ner)

	profile := x.Parse(context.Background(), "Jane Doe worked with John Smith")
	// 取第一个人名实体
	assert.Equal(t, "Jane Doe", profile.Name)
}

func TestParseNoNameFound(t *testing.T) {
	x := NewInfoExtractor(&MockNER{})
	profile := x.Parse(context.Background(), "anonymous resume text")
	// 找不到人名时留空，不使用占位符
	assert.Equal(t, "", profile.Name)
}

func TestParseEducationExperienceClassification(t *testing.T) {
	resume := "Studied at Stanford University. Worked at Acme Inc for three years."
	x := NewInfoExtractor(nil)
	profile := x.Parse(context.Background(), resume)

	require.Len(t, profile.Education, 1)
	assert.Contains(t, profile.Education[0], "University")
	require.Len(t, profile.Experience, 1)
	assert.Contains(t, profile.Experience[0], "Inc")
}

// TestParseDualClassification 同时命中两类触发词的句子进两个类别
func TestParseDualClassification(t *testing.T) {
	resume := "Research assistant at MIT University spinoff company."
	x := NewInfoExtractor(nil)
	profile := x.Parse(context.Background(), resume)

	assert.Len(t, profile.Education, 1)
	assert.Len(t, profile.Experience, 1)
	assert.Equal(t, profile.Education[0], profile.Experience[0])
}

func TestParseOrgEntityClassified(t *testing.T) {
	ner := &MockNER{entities: []types.Entity{
		{Text: "Oxford University", Label: types.EntityOrg},
		{Text: "Globex Corp", Label: types.EntityOrg},
	}}
	x := NewInfoExtractor(ner)
	profile := x.Parse(context.Background(), "plain text without trigger sentences")

	assert.Equal(t, []string{"Oxford University"}, profile.Education)
	assert.Equal(t, []string{"Globex Corp"}, profile.Experience)
}

// TestParseNERFailureDegrades NER失败时解析降级而不报错
func TestParseNERFailureDegrades(t *testing.T) {
	ner := &MockNER{err: fmt.Errorf("模型加载失败")}
	x := NewInfoExtractor(ner)

	profile := x.Parse(context.Background(),
		"Contact: dev@example.com. Studied at a state university.")

	assert.Equal(t, "dev@example.com", profile.Email)
	assert.Equal(t, "", profile.Name)
	assert.Len(t, profile.Education, 1)
}

// TestParseGarbageInput 任意乱码输入都不崩溃，字段为空值
func TestParseGarbageInput(t *testing.T) {
	inputs := []string{
		"",
		"!@#$%^&*()",
		"\x00\x01\x02",
		"                    ",
	}
	x := NewInfoExtractor(nil)
	for _, input := range inputs {
		profile := x.Parse(context.Background(), input)
		require.NotNil(t, profile)
		assert.NotNil(t, profile.Skills)
		assert.NotNil(t, profile.Education)
		assert.NotNil(t, profile.Experience)
	}
}

func TestMatchSkills(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "大小写不敏感",
			text:     "Expert in PYTHON and Sql",
			expected: []string{"python", "sql"},
		},
		{
			name:     "整词匹配不误报",
			text:     "golang gopher", // "go"不应命中
			expected: []string{},
		},
		{
			name:     "多词技能",
			text:     "background in machine learning and data analysis",
			expected: []string{"data analysis", "machine learning"},
		},
		{
			name:     "特殊字符技能",
			text:     "10 years of C++ development",
			expected: []string{"c++"},
		},
		{
			name:     "无命中",
			text:     "professional pastry chef",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MatchSkills(tc.text, nil))
		})
	}
}

func TestMatchSkillsCustomDictionary(t *testing.T) {
	got := MatchSkills("Rust and Erlang services", []string{"rust", "erlang", "haskell"})
	assert.Equal(t, []string{"erlang", "rust"}, got)
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First sentence. Second one!\nThird line")
	assert.Equal(t, []string{"First sentence", "Second one", "Third line"}, got)
}
