// Package seed supplies the text the rain draws its glyphs from
//
// A Holder carries the current seed between goroutines. The Switcher chooses
// between embedded code samples and a user scratch file, which a Watcher
// reloads whenever it changes on disk.
package seed
