package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"roomease-http-service/internal/domain/services"
	"roomease-http-service/internal/tasks"
	"roomease-http-service/pkg/logger"
)

// ReconcileSweepHandler 处理房间状态对账任务
type ReconcileSweepHandler struct {
	reconcile services.InterfaceReconcileService
}

// NewReconcileSweepHandler 创建Handler实例
func NewReconcileSweepHandler(reconcile services.InterfaceReconcileService) *ReconcileSweepHandler {
	return &ReconcileSweepHandler{reconcile: reconcile}
}

// ProcessTask 实现asynq.Handler接口。
// 对账本身是幂等的，任务重复投递不会造成多余写入。
func (h *ReconcileSweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.ReconcileSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("对账任务payload解析失败: %v", err)
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	repaired, err := h.reconcile.ReconcileAll()
	if err != nil {
		logger.Error("对账任务执行失败: %v", err)
		return fmt.Errorf("reconcile sweep: %w", err)
	}

	if repaired > 0 {
		logger.Info("对账任务完成，修正了%d个房间的状态", repaired)
	}
	return nil
}
