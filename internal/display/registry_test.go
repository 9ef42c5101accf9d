package display

import (
	"errors"
	"testing"
)

func TestCreateMainOnce(t *testing.T) {
	reg := NewRegistry(func(w, h int, title string, isMain bool) (Window, error) {
		win := newFakeWindow()
		win.title = title
		return win, nil
	})

	h, err := reg.CreateMain(640, 480, "main")
	if err != nil {
		t.Fatalf("CreateMain() failed: %v", err)
	}
	if !h.Main() {
		t.Error("handle should be marked main")
	}
	if reg.Main() != h {
		t.Error("Main() should return the created handle")
	}

	if _, err := reg.CreateMain(640, 480, "again"); !errors.Is(err, ErrMainExists) {
		t.Errorf("second CreateMain() = %v, want ErrMainExists", err)
	}
}

func TestCreateMainPlatformFailure(t *testing.T) {
	fail := errors.New("no display server")
	reg := NewRegistry(func(w, h int, title string, isMain bool) (Window, error) {
		return nil, fail
	})

	if _, err := reg.CreateMain(640, 480, "main"); !errors.Is(err, fail) {
		t.Errorf("CreateMain() = %v, want wrapped platform error", err)
	}
	if reg.Main() != nil {
		t.Error("Main() should be nil after a failed create")
	}
}

func TestMainNilWhenInactive(t *testing.T) {
	win := newFakeWindow()
	reg := NewRegistry(func(w, h int, title string, isMain bool) (Window, error) {
		return win, nil
	})
	if _, err := reg.CreateMain(640, 480, "main"); err != nil {
		t.Fatalf("CreateMain() failed: %v", err)
	}

	win.active = false
	if reg.Main() != nil {
		t.Error("Main() must be nil once the native window is gone")
	}
}

func TestCascadingTeardown(t *testing.T) {
	var order []string
	mk := func(name string) *fakeWindow {
		win := newFakeWindow()
		win.name = name
		win.destroyed = &order
		return win
	}

	mainWin := mk("main")
	reg := NewRegistry(func(w, h int, title string, isMain bool) (Window, error) {
		return mainWin, nil
	})
	h, err := reg.CreateMain(640, 480, "main")
	if err != nil {
		t.Fatalf("CreateMain() failed: %v", err)
	}
	reg.Attach(mk("second"))
	reg.Attach(mk("third"))

	if reg.Len() != 3 {
		t.Fatalf("expected 3 windows, got %d", reg.Len())
	}

	if err := reg.Destroy(h); err != nil {
		t.Fatalf("Destroy(main) failed: %v", err)
	}

	if reg.Len() != 0 {
		t.Errorf("registry should be empty, has %d", reg.Len())
	}
	if len(order) != 3 {
		t.Fatalf("expected 3 destructions, got %d (%v)", len(order), order)
	}
	// secondaries go first, main last
	if order[len(order)-1] != "main" {
		t.Errorf("main must be destroyed last, order was %v", order)
	}
}

func TestDestroyMainDrainsSecondariesWhenMainDied(t *testing.T) {
	var order []string
	mk := func(name string) *fakeWindow {
		win := newFakeWindow()
		win.name = name
		win.destroyed = &order
		return win
	}

	mainWin := mk("main")
	reg := NewRegistry(func(w, h int, title string, isMain bool) (Window, error) {
		return mainWin, nil
	})
	if _, err := reg.CreateMain(640, 480, "main"); err != nil {
		t.Fatalf("CreateMain() failed: %v", err)
	}
	reg.Attach(mk("second"))
	reg.Attach(mk("third"))

	// the native main window dies behind the registry's back
	mainWin.active = false

	if err := reg.DestroyMain(); err != nil {
		t.Fatalf("DestroyMain() failed: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("registry should be empty, has %d", reg.Len())
	}
	if len(order) != 2 || order[0] != "second" || order[1] != "third" {
		t.Errorf("secondaries must still be destroyed, order was %v", order)
	}
}

func TestDestroyInactiveIsNoOp(t *testing.T) {
	win := newFakeWindow()
	reg := NewRegistry(func(w, h int, title string, isMain bool) (Window, error) {
		return win, nil
	})
	h, _ := reg.CreateMain(640, 480, "main")
	win.active = false

	if err := reg.Destroy(h); err != nil {
		t.Errorf("Destroy() on inactive window should be a no-op, got %v", err)
	}
}
