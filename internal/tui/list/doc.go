// Package listview provides the filterable, virtually scrolled list the
// console uses to pick a selection's option.
//
// Only the rows inside the viewport are rendered. The list handles the
// navigation keys (up/down, pgup/pgdn, home/end); the owner feeds typed
// text to SetFilter.
package listview
