package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldCollection 集合名称字段
	FieldCollection = "collection"

	// FieldRecordID 记录 ID 字段
	FieldRecordID = "recordId"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldPath 远程路径字段
	FieldPath = "path"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldSize 内容大小字段
	FieldSize = "size"

	// FieldProgress 同步进度字段
	FieldProgress = "progress"

	// FieldUpstream 代理上游地址字段
	FieldUpstream = "upstream"

	// FieldBucket 存储桶名称字段
	FieldBucket = "bucket"

	// FieldFileKey 文件键字段
	FieldFileKey = "fileKey"
)
