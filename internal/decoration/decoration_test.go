package decoration

import (
	"errors"
	"testing"

	"go.uber.org/multierr"
)

type fakeHandle struct {
	id   int
	opts Options
}

func (h *fakeHandle) Options() Options { return h.opts }

type fakeHost struct {
	created  int
	disposed map[Handle]int
	failOn   map[int]error
}

func newFakeHost() *fakeHost {
	return &fakeHost{disposed: make(map[Handle]int), failOn: make(map[int]error)}
}

func (f *fakeHost) CreateDecorationType(o Options) (Handle, error) {
	f.created++
	return &fakeHandle{id: f.created, opts: o}, nil
}

func (f *fakeHost) Dispose(h Handle) error {
	f.disposed[h]++
	return f.failOn[h.(*fakeHandle).id]
}

func TestKeys(t *testing.T) {
	cases := map[string]string{
		TextKey("TODO", "abc"):   "text:TODO:abc",
		GlassKey("TODO"):         "glass:TODO",
		MetaKey("TODO"):          "meta:TODO",
		SubTagKey("alice", "ff"): "subtag:alice:ff",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("key=%q want %q", got, want)
		}
	}
}

func TestGetReusesHandle(t *testing.T) {
	host := newFakeHost()
	c := NewCache(host)
	builds := 0
	build := func() Options {
		builds++
		return Options{IsWholeLine: true}
	}
	first, err := c.Get(GlassKey("TODO"), build)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	second, _ := c.Get(GlassKey("TODO"), build)
	if first != second {
		t.Fatal("same key must return the same handle")
	}
	if builds != 1 || host.created != 1 {
		t.Fatalf("builds=%d created=%d want 1/1", builds, host.created)
	}
	if !first.Options().IsWholeLine {
		t.Fatal("options not passed to host")
	}
	other, _ := c.Get(MetaKey("TODO"), build)
	if other == first || c.Len() != 2 {
		t.Fatalf("distinct keys must get distinct handles (len=%d)", c.Len())
	}
}

func TestClearDisposesOnce(t *testing.T) {
	host := newFakeHost()
	c := NewCache(host)
	a, _ := c.Get("text:A:1", func() Options { return Options{} })
	b, _ := c.Get("text:B:1", func() Options { return Options{} })

	if err := c.Clear([]Handle{a, b}, []Handle{a, nil}); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	for _, h := range []Handle{a, b} {
		if host.disposed[h] != 1 {
			t.Fatalf("handle disposed %d times, want 1", host.disposed[h])
		}
	}
	if c.Len() != 0 {
		t.Fatalf("cache not emptied: %d", c.Len())
	}
	again, _ := c.Get("text:A:1", func() Options { return Options{} })
	if again == a {
		t.Fatal("cleared key must create a new handle")
	}
}

func TestClearCollectsErrors(t *testing.T) {
	host := newFakeHost()
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	host.failOn[1] = errA
	host.failOn[2] = errB
	c := NewCache(host)
	a, _ := c.Get("a", func() Options { return Options{} })
	b, _ := c.Get("b", func() Options { return Options{} })

	err := c.Clear()
	if len(multierr.Errors(err)) != 2 || !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("Clear error=%v", err)
	}
	if host.disposed[a] != 1 || host.disposed[b] != 1 {
		t.Fatal("disposal must continue past failures")
	}
}

type failingHost struct{ fakeHost }

func (f *failingHost) CreateDecorationType(Options) (Handle, error) {
	return nil, errors.New("no surface")
}

func TestGetCreateError(t *testing.T) {
	c := NewCache(&failingHost{})
	if _, err := c.Get("x", func() Options { return Options{} }); err == nil {
		t.Fatal("expected create error")
	}
	if c.Len() != 0 {
		t.Fatal("failed creations must not be cached")
	}
}
