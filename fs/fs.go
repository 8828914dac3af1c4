// Package fs locates prompt files and stores file outputs on the local
// filesystem.
package fs

// Extensions lists the file extensions recognised as prompt files.
var Extensions = []string{"txt", "md", "mdown", "markdown", "yml", "yaml"}
