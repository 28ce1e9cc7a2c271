package storage

import "time"

// ScoreEventMessage 评分完成事件，发布到评分事件交换机
type ScoreEventMessage struct {
	RecordUUID string    `json:"record_uuid"`
	Identity   string    `json:"identity"`
	Score      int       `json:"score"`
	Filename   string    `json:"filename"`
	Sector     string    `json:"sector"`
	JDProvided bool      `json:"jd_provided"` // 本次评分是否带JD
	Timestamp  time.Time `json:"timestamp"`
}
