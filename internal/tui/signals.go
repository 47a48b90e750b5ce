package tui

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// Mailbox holds the latest signal that has not been handled yet. A newer
// signal replaces an older one.
type Mailbox struct {
	mu  sync.Mutex
	sig os.Signal
}

func (b *Mailbox) Post(sig os.Signal) {
	b.mu.Lock()
	b.sig = sig
	b.mu.Unlock()
}

// Take returns the pending signal and empties the box.
func (b *Mailbox) Take() os.Signal {
	b.mu.Lock()
	defer b.mu.Unlock()
	sig := b.sig
	b.sig = nil
	return sig
}

func (b *Mailbox) Peek() os.Signal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sig
}

// Listen forwards resize, hangup, interrupt and terminate signals into the
// box until stop is called.
func (b *Mailbox) Listen() (stop func()) {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, unix.SIGWINCH, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-ch:
				b.Post(sig)
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}

// exitCode is the conventional status for a process ended by sig.
func exitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
