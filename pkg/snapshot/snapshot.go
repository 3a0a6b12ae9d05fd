// Package snapshot reads the previous run's documents and writes the new
// ones. Every write replaces the whole file through a temp file and rename.
package snapshot

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/blimu-dev/docs-gen/pkg/document"
	"github.com/blimu-dev/docs-gen/pkg/errors"
)

const (
	sourceDir   = "source"
	targetName  = "index.md"
	shadowName  = ".compare.md"
	prependName = "prepend.md"
	appendName  = "append.md"
)

// Paths locates the files of one output directory.
type Paths struct {
	Root    string
	Source  string
	Target  string
	Shadow  string
	Prepend string
	Append  string
	Logo    string
}

// NewPaths returns the layout under output.
func NewPaths(output string) Paths {
	source := filepath.Join(output, sourceDir)
	return Paths{
		Root:    output,
		Source:  source,
		Target:  filepath.Join(source, targetName),
		Shadow:  filepath.Join(source, shadowName),
		Prepend: filepath.Join(source, prependName),
		Append:  filepath.Join(source, appendName),
		Logo:    filepath.Join(output, "images", "logo.png"),
	}
}

// Load reads the target and shadow documents. A missing file means there
// is no prior state for it.
func Load(paths Paths) (document.Prior, error) {
	var prior document.Prior
	var err error
	if prior.Target, prior.HasTarget, err = ReadOptional(paths.Target); err != nil {
		return prior, err
	}
	if prior.Shadow, prior.HasShadow, err = ReadOptional(paths.Shadow); err != nil {
		return prior, err
	}
	return prior, nil
}

// ReadOptional returns the file content and whether the file exists.
func ReadOptional(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errors.WrapIO("read", path, err)
	}
	return string(data), true, nil
}

// Surroundings returns the prepend and append text. Prepend gets a trailing
// newline and append a leading one; missing files yield empty strings.
func Surroundings(paths Paths) (prepend, appendText string, err error) {
	content, ok, err := ReadOptional(paths.Prepend)
	if err != nil {
		return "", "", err
	}
	if ok {
		prepend = content + "\n"
	}
	content, ok, err = ReadOptional(paths.Append)
	if err != nil {
		return "", "", err
	}
	if ok {
		appendText = "\n" + content
	}
	return prepend, appendText, nil
}

// WriteFile replaces path with data. Readers see either the old or the new
// content, never a partial file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("sync", path, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("close", path, err)
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("chmod", path, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// CopyFile copies src to dst with the same replace semantics as WriteFile.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapIO("open", src, err)
	}
	defer func() { _ = in.Close() }()

	data, err := io.ReadAll(in)
	if err != nil {
		return errors.WrapIO("read", src, err)
	}
	return WriteFile(dst, data)
}

// Writer persists the published document and its shadow.
type Writer struct {
	Paths Paths
}

// NewWriter creates a writer for paths
func NewWriter(paths Paths) *Writer {
	return &Writer{Paths: paths}
}

// Write stores target as the published document and shadow as the baseline
// for the next run. The two files are replaced independently.
func (w *Writer) Write(target, shadow string) error {
	if err := WriteFile(w.Paths.Target, []byte(target)); err != nil {
		return err
	}
	return WriteFile(w.Paths.Shadow, []byte(shadow))
}
