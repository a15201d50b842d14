package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"

	"roomease-http-service/internal/domain/services"
	"roomease-http-service/internal/tasks"
	"roomease-http-service/pkg/logger"
)

// WorkerServer 封装了Asynq Worker Server的启动和关闭逻辑
type WorkerServer struct {
	server    *asynq.Server
	reconcile services.InterfaceReconcileService
}

// NewWorkerServer 创建一个新的WorkerServer实例
func NewWorkerServer(redisOpt asynq.RedisClientOpt, reconcile services.InterfaceReconcileService) *WorkerServer {
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retryCount, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logger.Error("任务执行失败 type=%s retry=%d/%d: %v", task.Type(), retryCount, maxRetry, err)
			}),
		},
	)

	return &WorkerServer{
		server:    server,
		reconcile: reconcile,
	}
}

// Start 运行Worker Server，应该在单独的goroutine中调用
func (ws *WorkerServer) Start() {
	mux := asynq.NewServeMux()

	// 注册任务处理器
	handler := NewReconcileSweepHandler(ws.reconcile)
	mux.HandleFunc(tasks.TypeReconcileSweep, handler.ProcessTask)

	logger.Info("Worker server启动中...")
	if err := ws.server.Run(mux); err != nil {
		if !errors.Is(err, asynq.ErrServerClosed) {
			logger.Error("Worker server运行失败: %v", err)
		} else {
			logger.Info("Worker server已停止")
		}
	}
}

// Shutdown 优雅地关闭Worker Server
func (ws *WorkerServer) Shutdown() {
	logger.Info("正在关闭Worker server...")
	ws.server.Shutdown()
	logger.Info("Worker server关闭完成")
}
