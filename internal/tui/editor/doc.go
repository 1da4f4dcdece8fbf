// Package editor implements the interactive table editor.
//
// The editor works on a private copy of a loaded table. Edits only reach
// disk when the user saves; a failed save or refresh is shown in the status
// line and the current table stays on screen.
package editor
