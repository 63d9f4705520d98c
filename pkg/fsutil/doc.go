// Package fsutil provides utilities for filesystem operations.
//
// Key functionality:
//   - Path operations: ExpandHomePath, DataPath
//   - Directory creation: EnsureDir
//   - File writing: TryWriteFile
package fsutil
