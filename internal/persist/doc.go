// Package persist writes edited tables back to the file they came from.
//
// Delimited text (.csv, .txt) is written as UTF-8 using the table's
// delimiter. Workbooks (.xlsx) are rewritten with a single sheet. Legacy
// .xls files cannot be written.
//
// All writes go through filesystem.WritableFileSystem, whose OS
// implementation replaces the target atomically.
package persist
