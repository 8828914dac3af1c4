// Package mock provides test doubles for passage interfaces using function fields.
package mock

import (
	"context"

	"github.com/passagecli/passage"
)

// Interface compliance checks.
var (
	_ passage.Completer = (*Completer)(nil)
	_ passage.FileStore = (*FileStore)(nil)
)

// Completer is a test double for passage.Completer.
// Set CompleteFn before calling Complete.
type Completer struct {
	CompleteFn func(ctx context.Context, req passage.CompletionRequest) (string, error)
}

// Complete delegates to CompleteFn.
func (c *Completer) Complete(ctx context.Context, req passage.CompletionRequest) (string, error) {
	return c.CompleteFn(ctx, req)
}

// FileStore is a test double for passage.FileStore.
// Set the function fields for the methods you need.
type FileStore struct {
	ReadFn  func(name string) (string, bool, error)
	WriteFn func(name, content string) error
}

// Read delegates to ReadFn.
func (f *FileStore) Read(name string) (string, bool, error) {
	return f.ReadFn(name)
}

// Write delegates to WriteFn.
func (f *FileStore) Write(name, content string) error {
	return f.WriteFn(name, content)
}

// MemFileStore is an in-memory passage.FileStore. The zero value is ready
// to use.
type MemFileStore struct {
	Files  map[string]string
	Writes []string // names in write order
}

// Read returns the stored content of name.
func (m *MemFileStore) Read(name string) (string, bool, error) {
	v, ok := m.Files[name]
	return v, ok, nil
}

// Write stores content under name.
func (m *MemFileStore) Write(name, content string) error {
	if m.Files == nil {
		m.Files = make(map[string]string)
	}
	m.Files[name] = content
	m.Writes = append(m.Writes, name)
	return nil
}
