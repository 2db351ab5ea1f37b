package types

// EntityLabel 命名实体类别（封闭枚举）
// 下游分类规则以该枚举为键做表驱动映射，而不是散落的条件判断
type EntityLabel string

const (
	// EntityPerson 人名
	EntityPerson EntityLabel = "PERSON"
	// EntityOrg 组织机构
	EntityOrg EntityLabel = "ORG"
	// EntityGPE 地缘政治实体（国家/城市等）
	EntityGPE EntityLabel = "GPE"
	// EntityLoc 非GPE地理位置
	EntityLoc EntityLabel = "LOC"
	// EntityProduct 产品
	EntityProduct EntityLabel = "PRODUCT"
	// EntityNorp 民族/宗教/政治团体
	EntityNorp EntityLabel = "NORP"
)

// Entity NER识别出的带类别文本片段
type Entity struct {
	Text  string      `json:"text"`
	Label EntityLabel `json:"label"`
}

// ParsedProfile 从简历原始文本解析出的结构化信息
// 所有字段缺省为空值，字段缺失不是错误
type ParsedProfile struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`     // 去重后按字典序排列
	Education  []string `json:"education"`  // 去重后按字典序排列
	Experience []string `json:"experience"` // 去重后按字典序排列
}

// KeywordMethod 关键词的提取方式
type KeywordMethod string

const (
	// KeywordMethodRAKE 基于共现图的统计排序
	KeywordMethodRAKE KeywordMethod = "rake"
	// KeywordMethodNER 基于命名实体识别
	KeywordMethodNER KeywordMethod = "ner"
)

// Keyword 从JD中提取出的候选关键词
type Keyword struct {
	Phrase string        `json:"phrase"`
	Method KeywordMethod `json:"method"`
}

// SkillGapReport 技能差距报告
// missing_skills = jd_skills − current_skills，recommendations只对缺失技能给出
type SkillGapReport struct {
	CurrentSkills   []string            `json:"current_skills"`
	JDSkills        []string            `json:"jd_skills"`
	MissingSkills   []string            `json:"missing_skills"`
	Recommendations map[string][]string `json:"recommendations"`
}

// SimilarityMode 相似度计算模式
type SimilarityMode string

const (
	// SimilarityModeEmbedding 语义向量余弦相似度
	SimilarityModeEmbedding SimilarityMode = "embedding"
	// SimilarityModeLexical TF-IDF词法回退模式
	SimilarityModeLexical SimilarityMode = "lexical"
)

// MatchResult 一次 简历×JD 分析的完整结果
type MatchResult struct {
	SubmissionUUID string          `json:"submission_uuid,omitempty"`
	Profile        *ParsedProfile  `json:"profile"`
	Score          float64         `json:"score"`         // [0,1]
	ScorePercent   float64         `json:"score_percent"` // [0,100]
	SimilarityMode SimilarityMode  `json:"similarity_mode"`
	Keywords       []Keyword       `json:"keywords"`
	GapReport      *SkillGapReport `json:"gap_report"`
}

// 分析任务状态流转：pending -> processing -> completed / failed
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// ResumeUploadMessage 简历上传后发布到分析队列的消息体
type ResumeUploadMessage struct {
	SubmissionUUID string `json:"submission_uuid"`
	ObjectKey      string `json:"object_key"`
	FileName       string `json:"file_name"`
	JobDescription string `json:"job_description"`
}
