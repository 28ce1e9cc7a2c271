package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScoreRecord 评分记录表。
// 完整的简历原文不落库，只保留可配置长度的截断摘录。
type ScoreRecord struct {
	RecordUUID          string         `gorm:"type:char(36);primaryKey"`
	Identity            string         `gorm:"type:varchar(128);index:idx_score_records_identity"`
	Score               int            `gorm:"not null"`
	Filename            string         `gorm:"type:varchar(255)"`
	Sector              string         `gorm:"type:varchar(100)"`
	Email               string         `gorm:"type:varchar(255)"`
	Phone               string         `gorm:"type:varchar(50)"`
	BreakdownJSON       datatypes.JSON `gorm:"type:json"`
	MatchedKeywordsJSON datatypes.JSON `gorm:"type:json"`
	MissingKeywordsJSON datatypes.JSON `gorm:"type:json"`
	ResumeExcerpt       string         `gorm:"type:text"` // 截断后的简历文本摘录
	ScoringVersion      string         `gorm:"type:varchar(50)"`
	CreatedAt           time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_score_records_created_at"`
	UpdatedAt           time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (ScoreRecord) TableName() string {
	return "score_records"
}
