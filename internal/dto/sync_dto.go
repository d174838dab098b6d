package dto

// SyncRequest 同步请求参数
// Collection "all" takes the full snapshot path and ignores IDs
// Collection 为 "all" 时走整库快照路径并忽略 IDs
type SyncRequest struct {
	Collection string  `json:"collection" form:"collection" binding:"required"`
	IDs        []int64 `json:"ids" form:"ids"`
}

// SyncResultDTO 同步结果
type SyncResultDTO struct {
	Collection string   `json:"collection"`
	Uploaded   int      `json:"uploaded"`
	Total      int      `json:"total"`
	Paths      []string `json:"paths"`
}

// SyncStatusDTO 同步状态
type SyncStatusDTO struct {
	State    string `json:"state"`    // idle, syncing, success, error
	Progress int    `json:"progress"` // 0-100
	Message  string `json:"message"`
}

// SelectionRequest 同步选择请求参数
type SelectionRequest struct {
	Collection string  `json:"collection" form:"collection"`
	IDs        []int64 `json:"ids" form:"ids"`
	All        *bool   `json:"all" form:"all"`
}

// SelectionDTO 当前同步选择
type SelectionDTO struct {
	AllCollections bool               `json:"allCollections"`
	Selected       map[string][]int64 `json:"selected"`
}
