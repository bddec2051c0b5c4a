// Package fsutil provides utilities for filesystem operations.
//
// Key functionality:
//   - File writing: TryWriteFile
//   - Path operations: ExpandHomePath, JoinInBase
package fsutil
