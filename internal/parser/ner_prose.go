package parser

import (
	"context"

	"resume-match-go/internal/types"

	prose "github.com/jdkato/prose/v2"
)

// proseLabels prose输出标签到封闭枚举的映射，未列出的标签直接丢弃。
// prose内置模型目前只产出PERSON/GPE，其余项为更强后端预留
var proseLabels = map[string]types.EntityLabel{
	"PERSON":  types.EntityPerson,
	"ORG":     types.EntityOrg,
	"GPE":     types.EntityGPE,
	"LOC":     types.EntityLoc,
	"PRODUCT": types.EntityProduct,
	"NORP":    types.EntityNorp,
}

// ProseRecognizer 基于jdkato/prose的NER后端，模型数据内嵌在库中，
// 无需额外下载，对固定版本是确定性的
type ProseRecognizer struct{}

// 编译期检查接口实现
var _ EntityRecognizer = (*ProseRecognizer)(nil)

// NewProseRecognizer 创建prose NER后端
func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

// Entities 实现EntityRecognizer接口
func (r *ProseRecognizer) Entities(_ context.Context, text string) ([]types.Entity, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}

	var out []types.Entity
	for _, ent := range doc.Entities() {
		label, ok := proseLabels[ent.Label]
		if !ok {
			continue
		}
		out = append(out, types.Entity{Text: ent.Text, Label: label})
	}
	return out, nil
}

// Sentences 实现EntityRecognizer接口，只做切句，跳过词性标注和NER
func (r *ProseRecognizer) Sentences(_ context.Context, text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, err
	}

	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, s.Text)
	}
	return out, nil
}
