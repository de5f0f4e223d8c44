package dialog

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestFuturePollBeforeResolve(t *testing.T) {
	f := NewFuture()
	if _, ok := f.Poll(); ok {
		t.Fatal("empty future reported a result")
	}
}

func TestFutureReadOnce(t *testing.T) {
	f := NewFuture()
	f.Resolve(Result{Paths: []string{"a.mp3"}})
	f.Resolve(Result{Err: errors.New("late")})

	r, ok := f.Poll()
	if !ok || len(r.Paths) != 1 || r.Paths[0] != "a.mp3" || r.Err != nil {
		t.Fatalf("Poll = %+v, %v", r, ok)
	}
	if _, ok := f.Poll(); ok {
		t.Fatal("result delivered twice")
	}
}

func TestFutureConcurrentResolve(t *testing.T) {
	f := NewFuture()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Resolve(Result{Paths: []string{"x"}})
		}()
	}

	deadline := time.After(time.Second)
	for {
		if _, ok := f.Poll(); ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("result never arrived")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	wg.Wait()
	if _, ok := f.Poll(); ok {
		t.Fatal("second result slipped through")
	}
}
