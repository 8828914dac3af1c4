package passage

// FileStore reads and replaces whole files addressed by name relative to an
// output folder.
//
// Read returns exists=false with a nil error when the file is absent.
// Write must replace the content atomically: readers never observe a
// partially written file.
type FileStore interface {
	Read(name string) (content string, exists bool, err error)
	Write(name, content string) error
}
