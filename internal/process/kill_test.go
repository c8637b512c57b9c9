package process

// Notes:
// - KillProcessGroup: we only test with PIDs that cannot match a live process
//   group. Real kill behavior is exercised by browser teardown, since we cannot
//   safely terminate real processes in unit tests.
// - PID 0 must be a no-op: syscall.Kill(-0, SIGKILL) would kill our own group.

import "testing"

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

func TestKillProcessGroup_NonPositivePID(t *testing.T) {
	t.Parallel()

	// Reaching the end of the test proves the current group survived.
	KillProcessGroup(0)
	KillProcessGroup(-1)
}
