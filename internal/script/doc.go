// Package script parses and runs sequences of helper operations.
//
// A script is a list of steps. On the command line the steps follow each
// other as plain arguments; in a file each non-blank line is one step and
// lines starting with # are comments.
//
//	value new-item-input "  buy milk  "
//	submit new-item list
//	remove itemA
//	add list "written by hand"
//	create list li "with attributes" data-id=7 title=x
//
// Steps run in order against one Helper. A failed step does not stop the run;
// its error is recorded in the step's Result, just as a browser keeps
// handling events after showing an error.
package script
