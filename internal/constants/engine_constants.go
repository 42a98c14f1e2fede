package constants

import "time"

const (
	// DefaultMaxInputLength NER模型单次调用的最大输入长度（字符）
	DefaultMaxInputLength = 450

	// DefaultContextWindow 实体周围上下文窗口（前后各N个字符）
	DefaultContextWindow = 50

	// DefaultMaxSkillLength 技能字符串最大长度
	DefaultMaxSkillLength = 20

	// DefaultModelID ModelScope 简历NER模型ID
	DefaultModelID = "damo/nlp_raner_named-entity-recognition_chinese-base-resume"

	// DefaultResultCacheTTL 识别结果缓存时间
	DefaultResultCacheTTL = 24 * time.Hour

	// ServiceName 服务名，用于tracing和日志
	ServiceName = "resume-ner"
)
