// Package transformer rewrites a property-file template line by line.
//
// A Table is an ordered list of rules. Each template line is offered to the
// rules in order and the first rule whose Match accepts it produces the
// output line; lines that no rule accepts are copied byte for byte. Rules
// never see more than one line, so a Table can be exercised with Apply
// without touching the filesystem.
//
// Transform drives a Table over a template file and stages the result in a
// temporary file next to the output, renaming it into place once complete.
package transformer
