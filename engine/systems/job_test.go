package systems

import (
	"context"
	"errors"
	"testing"
	"time"
)

// drain calls Update until want callbacks ran or the deadline passes.
func drain(t *testing.T, js *JobSystem, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	got := 0
	for got < want {
		if time.Now().After(deadline) {
			t.Fatalf("only %d of %d jobs completed", got, want)
		}
		got += js.Update()
		time.Sleep(time.Millisecond)
	}
}

func TestNewJobSystemValidates(t *testing.T) {
	if _, err := NewJobSystem(0, 1); !errors.Is(err, ErrNoWorkers) {
		t.Errorf("zero workers: %v", err)
	}
	if _, err := NewJobSystem(1, -1); !errors.Is(err, ErrNegativeChannelSize) {
		t.Errorf("negative channel: %v", err)
	}
}

func TestCallbacksRunOnUpdate(t *testing.T) {
	js, err := NewJobSystem(2, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer js.Shutdown()

	var completed []interface{}
	var failed []error
	boom := errors.New("boom")

	if err := js.Submit(JobTask{
		Name:       "ok",
		OnStart:    func(ctx context.Context) (interface{}, error) { return 42, nil },
		OnComplete: func(r interface{}) { completed = append(completed, r) },
		OnFailure:  func(err error) { failed = append(failed, err) },
	}); err != nil {
		t.Fatal(err)
	}
	if err := js.Submit(JobTask{
		Name:       "fail",
		OnStart:    func(ctx context.Context) (interface{}, error) { return nil, boom },
		OnComplete: func(r interface{}) { completed = append(completed, r) },
		OnFailure:  func(err error) { failed = append(failed, err) },
	}); err != nil {
		t.Fatal(err)
	}

	drain(t, js, 2)
	if len(completed) != 1 || completed[0] != 42 {
		t.Errorf("completed = %v", completed)
	}
	if len(failed) != 1 || !errors.Is(failed[0], boom) {
		t.Errorf("failed = %v", failed)
	}
}

func TestSubmitAfterShutdown(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := js.Shutdown(); err != nil {
		t.Fatal(err)
	}
	err = js.Submit(JobTask{OnStart: func(ctx context.Context) (interface{}, error) { return nil, nil }})
	if !errors.Is(err, ErrJobSystemClosed) {
		t.Errorf("Submit after Shutdown: %v", err)
	}
	if err := js.Shutdown(); err != nil {
		t.Errorf("second Shutdown: %v", err)
	}
}

func TestShutdownCancelsRunningJobs(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	started := make(chan struct{})
	if err := js.Submit(JobTask{
		Name: "slow",
		OnStart: func(ctx context.Context) (interface{}, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}); err != nil {
		t.Fatal(err)
	}
	<-started

	done := make(chan struct{})
	go func() {
		js.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown did not return")
	}
}

func TestSubmitRequiresEntryPoint(t *testing.T) {
	js, err := NewJobSystem(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer js.Shutdown()
	if err := js.Submit(JobTask{Name: "empty"}); err == nil {
		t.Error("job without entry point accepted")
	}
}
