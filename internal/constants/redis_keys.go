package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// ResumeModulePrefix 简历分析模块
	ResumeModulePrefix = "resume"

	// EntityNERResult 结构化识别结果实体
	EntityNERResult = "ner_result"

	// KeyNERResult 结构化识别结果缓存 (STRING, JSON)
	// 格式: app:resume:ner_result:{modelSource}:{textMD5}
	KeyNERResult = AppPrefix + ":" + ResumeModulePrefix + ":" + EntityNERResult + ":%s:%s"
)
