// Package locator finds the newest loadable file in a data directory.
//
// The locator is responsible for:
//   - Listing files directly inside the data directory (no recursion)
//   - Filtering them by the scope's extension allow-list (case-insensitive)
//   - Selecting the candidate with the newest modification time
//
// Every call stats the filesystem again; nothing is cached between calls, so
// the selected file always reflects the directory as it is now.
package locator
