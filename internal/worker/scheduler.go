package worker

import (
	"errors"

	"github.com/hibiken/asynq"

	"roomease-http-service/internal/tasks"
	"roomease-http-service/pkg/logger"
)

// StartScheduler 注册周期性对账任务并启动调度器。
// schedule使用cron或"@every"语法，例如"@every 5m"。
// 返回的Scheduler由调用方在关闭时Shutdown。
func StartScheduler(redisOpt asynq.RedisClientOpt, schedule string) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})

	payload, err := tasks.NewReconcileSweepTask()
	if err != nil {
		return nil, err
	}

	task := asynq.NewTask(tasks.TypeReconcileSweep, payload)
	entryID, err := scheduler.Register(schedule, task, asynq.Queue("default"))
	if err != nil {
		return nil, err
	}
	logger.Info("周期性对账任务已注册 schedule=%s entry=%s", schedule, entryID)

	go func() {
		logger.Info("Asynq scheduler启动中...")
		if err := scheduler.Run(); err != nil {
			if !errors.Is(err, asynq.ErrServerClosed) {
				logger.Error("Asynq scheduler运行失败: %v", err)
			} else {
				logger.Info("Asynq scheduler已停止")
			}
		}
	}()

	return scheduler, nil
}
