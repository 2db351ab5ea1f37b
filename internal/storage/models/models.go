package models

import (
	"time"

	"gorm.io/datatypes"
)

// MatchAnalysis 一次 简历×JD 分析的持久化记录。
// 状态流转: pending -> processing -> completed / failed
type MatchAnalysis struct {
	ID             uint           `gorm:"primaryKey;autoIncrement"`
	SubmissionUUID string         `gorm:"type:varchar(36);uniqueIndex;not null"`
	FileName       string         `gorm:"type:varchar(255)"`
	ObjectKey      string         `gorm:"type:varchar(512)"` // MinIO中原始文件的对象键
	JobDescription string         `gorm:"type:text"`         // 上传时附带的JD原文
	Status         string         `gorm:"type:varchar(20);index;not null;default:'pending'"`
	SimilarityMode string         `gorm:"type:varchar(20)"`
	Score          float64        // [0,1]
	Profile        datatypes.JSON `gorm:"type:json"` // types.ParsedProfile
	Keywords       datatypes.JSON `gorm:"type:json"` // []types.Keyword
	GapReport      datatypes.JSON `gorm:"type:json"` // types.SkillGapReport
	ErrorDetail    string         `gorm:"type:text"` // 失败原因，成功时为空
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定表名
func (MatchAnalysis) TableName() string {
	return "match_analyses"
}
