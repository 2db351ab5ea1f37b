package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocxParagraphText(t *testing.T) {
	content := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Python</w:t><w:tab/><w:t>developer</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t>line one</w:t><w:br/><w:t>line two</w:t></w:r></w:p>
</w:body>
</w:document>`

	text, err := docxParagraphText(content)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nPython\tdeveloper\n\nline one\nline two", text)
}

// 分段run的同段文本拼接在一起
func TestDocxParagraphTextSplitRuns(t *testing.T) {
	content := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>Hel</w:t></w:r><w:r><w:t>lo</w:t></w:r></w:p></w:body>
</w:document>`

	text, err := docxParagraphText(content)
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
}

func TestDocxParagraphTextIgnoresNonText(t *testing.T) {
	// <w:t>之外的字符数据（如属性噪声节点）不进入结果
	content := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Title</w:t></w:r></w:p></w:body>
</w:document>`

	text, err := docxParagraphText(content)
	require.NoError(t, err)
	assert.Equal(t, "Title", text)
}

func TestDocxParagraphTextMalformed(t *testing.T) {
	_, err := docxParagraphText("<w:document><unclosed")
	assert.Error(t, err)
}
