// Package detect infers how a delimited text file is encoded and separated.
//
// Encoding detection runs a statistical charset detector over a leading byte
// sample and falls back to UTF-8 when the detector has no answer. Decoding
// comes in two strengths:
//   - NewLenientReader drops undecodable input; it is used for the emptiness
//     check and for delimiter sampling.
//   - DecodeStrict rejects undecodable input; it is used for the full parse.
//
// Delimiter detection counts the fixed candidates ",", "\t", ";" and "|" over
// the first few lines; the highest count wins and ties go to the candidate
// listed first.
package detect
