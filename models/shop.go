package models

// OverrideMode 人工开关：open / closed / 空(跟随排班)
type OverrideMode string

const (
	OverrideOpen   OverrideMode = "open"
	OverrideClosed OverrideMode = "closed"
	OverrideNone   OverrideMode = ""
)

func (m OverrideMode) Valid() bool {
	return m == OverrideOpen || m == OverrideClosed || m == OverrideNone
}

// ShopState 营业状态
// IsOpenEffective / CanOrder 是派生值，每次 TICK 或输入变更都从
// (forceClosed, override, 排班) 重新算，持久化快照只当缓存，加载后必须重算
type ShopState struct {
	IsOpenBySchedule bool         `json:"isOpenBySchedule"`
	Override         OverrideMode `json:"override"`
	ForceClosed      bool         `json:"forceClosed"`
	IsOpenEffective  bool         `json:"isOpenEffective"`
	CanOrder         bool         `json:"canOrder"` // 目前与 IsOpenEffective 同值，单独留名以备策略分叉
	NoticeWhenClosed string       `json:"noticeWhenClosed,omitempty"`
	UpdatedAt        int64        `json:"updatedAt"` // Unix 毫秒
}

type SetOverrideReq struct {
	Mode OverrideMode `json:"mode"`
}

type SetForceClosedReq struct {
	ForceClosed *bool `json:"force_closed" binding:"required"`
}

type SetNoticeReq struct {
	Notice string `json:"notice"`
}
