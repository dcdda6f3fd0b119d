// Package fsutil provides filesystem helpers shared by the generator and the CLI:
// directory traversal with ignore rules, and platform probes for free disk space
// and write permission.
package fsutil
