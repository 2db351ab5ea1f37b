package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/rs/zerolog"
)

// extractPDFPermissive 宽松的PDF提取策略：逐页提取并按页序拼接，
// 提取不出文本的页贡献空串而不报错；只有文件本身无法打开才算失败。
// 这是eino解析器失败后的二次尝试。
func extractPDFPermissive(data []byte, logger zerolog.Logger) (text string, err error) {
	// dslipak/pdf 在个别畸形内容流上会panic，这里兜底转为错误
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("PDF解析panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("打开PDF失败: %w", err)
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			logger.Debug().
				Int("page", i).
				Err(pageErr).
				Msg("该页提取失败，跳过")
			continue
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}
