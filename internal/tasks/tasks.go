package tasks

import (
	"encoding/json"
	"time"
)

// 定义任务类型常量
const (
	TypeReconcileSweep = "reconcile:sweep" // 房间状态对账任务类型
)

// ReconcileSweepPayload 定义了对账任务的数据结构
type ReconcileSweepPayload struct {
	RequestedAt time.Time `json:"requested_at"`
}

// NewReconcileSweepTask 创建一个新的对账任务payload
func NewReconcileSweepTask() ([]byte, error) {
	payload := ReconcileSweepPayload{
		RequestedAt: time.Now(),
	}
	return json.Marshal(payload)
}
