// Package exec runs external commands with captured output, a working
// directory, extra environment and an optional timeout.
//
//	executor := exec.NewExecutor(&exec.Options{Dir: root, Timeout: 5 * time.Minute})
//	result, err := executor.Run(ctx, "npm", "install")
//
// Run never goes through a shell. Failures come back as typed errors:
//
//   - *NotFoundError: the executable does not exist or is not on PATH
//   - *ExitError: the process ran and exited non-zero (stderr attached)
//   - *TimeoutError: the per-command timeout elapsed and the process was killed
//
// Tests swap the process factory with WithCommandFunc and the helper-process
// pattern, so no real tools are needed.
package exec
