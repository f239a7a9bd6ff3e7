package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"dispatch/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Task периодическая фоновая задача.
type Task interface {
	// TTL интервал между запусками.
	TTL() time.Duration

	Do(context.Context) error

	// Info имя задачи для логов.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Worker struct {
	log   handlerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New прогревает задачи и запускает их по тикеру.
//
//  1. Каждая задача сначала выполняется один раз синхронно (параллельно с остальными).
//     Ошибка или паника на прогреве возвращается из New, воркер не создается.
//  2. Дальше задачи крутятся в фоне, пока не отменен ctx.
//  3. Wait дожидается завершения текущих запусков после отмены ctx.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}
	if len(tasks) == 0 {
		return worker, nil
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() error {
			log.Info("Initializing", logger.NewField("task", task.Info()))
			return worker.safeDo(initCtx, task)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go worker.run(ctx, task)
	}

	return worker, nil
}

// Wait блокируется, пока все задачи не остановятся.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context, task Task) {
	defer w.wg.Done()

	ttl := task.TTL()
	taskLog := w.log.With(
		logger.NewField("task", task.Info()),
		logger.Duration("ttl", ttl),
	)
	if ttl <= 0 {
		taskLog.Warn("invalid TTL, skipping periodic execution")
		return
	}
	taskLog.Info("Starting periodic execution")

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			taskLog.Info("Stopping task (context cancelled)")
			return
		case <-ticker.C:
			if err := w.safeDo(ctx, task); err != nil {
				taskLog.Error("Background task failed", logger.Err(err))
			}
		}
	}
}

func (w *Worker) safeDo(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			err = fmt.Errorf("task %s panic: %v", task.Info(), r)
			w.log.Error("Background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(stack)),
			)
		}
	}()

	return task.Do(ctx)
}
