package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	eventqueue "github.com/mergington/activities/internal/adapters/mq/queue"
	"github.com/mergington/activities/internal/adapters/mq/worker"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

// recordingSink collects appended registrations for assertions.
type recordingSink struct {
	mu      sync.Mutex
	records []model.Registration
}

func (s *recordingSink) Append(ctx context.Context, reg model.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, reg)
	return nil
}

func (s *recordingSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func TestWorkerDrainsQueue(t *testing.T) {
	convey.Convey("Given a worker attached to a queue and sink", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(16))
		sink := &recordingSink{}
		w := worker.NewWorker(q, sink, worker.WithName("audit-test"))

		go w.Run(ctx)

		convey.Convey("When registrations are enqueued", func() {
			for i := 0; i < 5; i++ {
				reg := model.Registration{
					ID:       "reg",
					Activity: "Chess Club",
					Email:    "s@mergington.edu",
					Action:   model.ActionSignup,
					At:       time.Now(),
				}
				convey.So(q.Enqueue(ctx, reg), convey.ShouldBeTrue)
			}

			convey.Convey("Then the sink should eventually receive them all", func() {
				deadline := time.Now().Add(2 * time.Second)
				for sink.len() < 5 && time.Now().Before(deadline) {
					time.Sleep(10 * time.Millisecond)
				}
				convey.So(sink.len(), convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the worker is shut down", func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
			defer shutdownCancel()

			convey.Convey("Then Shutdown should complete in time", func() {
				convey.So(w.Shutdown(shutdownCtx), convey.ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool of workers", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(64))
		sink := &recordingSink{}
		pool := worker.NewPool(3, q, sink)
		pool.Start(ctx)

		convey.Convey("When many registrations are enqueued", func() {
			for i := 0; i < 30; i++ {
				reg := model.Registration{ID: "reg", Action: model.ActionUnregister, At: time.Now()}
				convey.So(q.Enqueue(ctx, reg), convey.ShouldBeTrue)
			}

			convey.Convey("Then all of them should land in the sink", func() {
				deadline := time.Now().Add(2 * time.Second)
				for sink.len() < 30 && time.Now().Before(deadline) {
					time.Sleep(10 * time.Millisecond)
				}
				convey.So(sink.len(), convey.ShouldEqual, 30)
				pool.Stop()
			})
		})
	})
}
