//go:build unix

package workerpool

import "golang.org/x/sys/unix"

// raiseAlarm sends SIGALRM to the whole process, waking any worker
// currently blocked in an idle sleep (spec.md §4.6: "Sleeps are
// interruptible by a benign SIGALRM sent by worker 0 when a state
// transition occurs"). Grounded on eventloop's wakeup_linux.go/
// wakeup_darwin.go pattern of using golang.org/x/sys/unix directly for
// OS-level wakeup rather than a channel, generalized from an eventfd
// write to a real signal since multiple OS threads (not one event loop)
// need waking.
func raiseAlarm() {
	_ = unix.Kill(unix.Getpid(), unix.SIGALRM)
}
