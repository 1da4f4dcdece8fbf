// Package loader turns a validated data file into a tabwatch.Table.
//
// Loading dispatches on the file extension:
//   - .csv and .txt: detect the encoding from a leading byte sample, detect the
//     delimiter from the first lines, then parse the whole file strictly with
//     the first record as header.
//   - .xlsx and .xls: read the first sheet; its first non-empty row is the header.
//
// Every failure after dispatch is returned as *tabwatch.LoadError, which keeps
// the underlying cause. The loader never writes to disk.
package loader
