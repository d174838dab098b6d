package code

var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})

	ErrorServerInternal     = NewError(500, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorNotFoundAPI        = NewError(404, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorInvalidParams      = NewError(400, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorInvalidAuthToken   = NewError(401, lang{en: "Invalid authorization token", zh_cn: "授权令牌无效"})
	ErrorTooManyRequests    = NewError(429, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorInvalidStorageType = NewError(405, lang{en: "Invalid storage type", zh_cn: "存储类型无效"})

	// Local record store
	// 本地记录存储
	ErrorStoreUnavailable   = NewError(1001, lang{en: "Local store is unavailable", zh_cn: "本地存储不可用"})
	ErrorCollectionNotFound = NewError(1002, lang{en: "Collection not found", zh_cn: "集合不存在"})
	ErrorRecordNotFound     = NewError(1003, lang{en: "Record not found", zh_cn: "记录不存在"})
	ErrorWriteConflict      = NewError(1004, lang{en: "Write transaction failed to commit", zh_cn: "写事务提交失败"})
	ErrorRecordTypeMismatch = NewError(1005, lang{en: "Record does not belong to the collection", zh_cn: "记录类型与集合不匹配"})

	// Remote sync
	// 远程同步
	ErrorSyncAborted         = NewError(2001, lang{en: "Sync aborted by a failed upload", zh_cn: "上传失败，同步中止"})
	ErrorSyncInProgress      = NewError(2002, lang{en: "A sync is already running", zh_cn: "已有同步任务正在运行"})
	ErrorSyncEmptySelection  = NewError(2003, lang{en: "Nothing selected to sync", zh_cn: "未选择任何同步内容"})
	ErrorSelectionDisabled   = NewError(2004, lang{en: "Per-item selection is disabled while syncing all collections", zh_cn: "全量同步模式下不可单独选择"})
	ErrorRemoteNotConfigured = NewError(2005, lang{en: "Remote store is not configured", zh_cn: "远程存储未配置"})
	ErrorRemoteOperation     = NewError(2006, lang{en: "Remote store operation failed", zh_cn: "远程存储操作失败"})

	// Proxy
	// 代理
	ErrorProxyUpstreamUnreachable = NewError(3001, lang{en: "WebDAV proxy failed", zh_cn: "WebDAV 代理失败"})
)
