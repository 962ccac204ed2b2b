// SPDX-License-Identifier: MPL-2.0

// Package zipapp assembles self-executing Python archives.
//
// A produced archive is dual-valid: the file starts with a shebang line so
// the OS hands it to a Python interpreter, and the zip payload that follows
// is written with its entry offsets adjusted so strict zip readers accept
// the file unmodified. The archive root carries a generated __main__.py
// bootstrap and, when the target vendored dependencies, a vendor/ tree.
//
// Assembly is atomic with respect to the destination path: the archive is
// staged in a temp file next to the destination and renamed into place only
// after every entry has been written.
package zipapp

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// BootstrapName is the archive entry name of the generated bootstrap
	// module. The Python runtime looks this name up at the archive root.
	BootstrapName = "__main__.py"

	// VendorEntryDir is the archive-internal directory holding vendored
	// dependencies. The bootstrap pushes it onto sys.path.
	VendorEntryDir = "vendor"

	// DefaultShebang is the interpreter directive used when none is
	// configured.
	DefaultShebang = "#!/usr/bin/env python"

	// archiveMode is the permission set of a finished archive.
	archiveMode = 0o755
)

// ErrArchiveWrite is the sentinel error wrapped by ArchiveError.
var ErrArchiveWrite = errors.New("archive write failed")

type (
	// Options describes a single archive assembly.
	Options struct {
		// SrcDir is the project root whose files populate the archive.
		SrcDir string
		// Dest is the final archive path. Its parent directory is created
		// when missing.
		Dest string
		// Shebang is the interpreter directive written before the zip
		// payload. Empty means DefaultShebang; a trailing newline is added
		// when absent.
		Shebang string
		// Bootstrap is the rendered __main__.py source. It replaces any
		// project-provided root __main__.py.
		Bootstrap string
		// VendorDir is an on-disk directory whose contents are placed under
		// VendorEntryDir inside the archive. Empty means no vendored deps.
		VendorDir string
		// Exclude reports whether the slash-relative project path is left
		// out of the archive. Nil includes everything.
		Exclude func(rel string) bool
	}

	// ArchiveError is returned when an archive cannot be produced. It wraps
	// ErrArchiveWrite for errors.Is() compatibility, plus the underlying
	// cause.
	ArchiveError struct {
		Dest  string
		Cause error
	}
)

// Error implements the error interface for ArchiveError.
func (e *ArchiveError) Error() string {
	return fmt.Sprintf("failed to write archive %q: %v", e.Dest, e.Cause)
}

// Unwrap returns the wrapped errors for errors.Is() compatibility.
func (e *ArchiveError) Unwrap() []error {
	return []error{ErrArchiveWrite, e.Cause}
}

// shebangLine returns the interpreter directive with a trailing newline.
func (o Options) shebangLine() string {
	line := o.Shebang
	if line == "" {
		line = DefaultShebang
	}
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	return line
}

// Assemble produces the archive described by opts and returns its absolute
// destination path. On failure nothing is left at the destination; a staged
// temp file is removed.
func Assemble(opts Options) (string, error) {
	dest, err := filepath.Abs(opts.Dest)
	if err != nil {
		return "", &ArchiveError{Dest: opts.Dest, Cause: err}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", &ArchiveError{Dest: dest, Cause: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".partial-"+filepath.Base(dest)+"-*")
	if err != nil {
		return "", &ArchiveError{Dest: dest, Cause: err}
	}
	tmpPath := tmp.Name()

	if err := writeArchive(tmp, dest, opts); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", &ArchiveError{Dest: dest, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", &ArchiveError{Dest: dest, Cause: err}
	}

	if err := os.Chmod(tmpPath, archiveMode); err != nil {
		os.Remove(tmpPath)
		return "", &ArchiveError{Dest: dest, Cause: err}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return "", &ArchiveError{Dest: dest, Cause: err}
	}

	return dest, nil
}

// writeArchive writes the shebang line and zip payload into w.
func writeArchive(w io.Writer, dest string, opts Options) error {
	shebang := opts.shebangLine()
	if _, err := io.WriteString(w, shebang); err != nil {
		return fmt.Errorf("failed to write interpreter directive: %w", err)
	}

	zw := zip.NewWriter(w)
	// Entry offsets must account for the shebang prefix so the central
	// directory stays valid for readers that do not rescan for it.
	zw.SetOffset(int64(len(shebang)))

	if err := addProjectTree(zw, dest, opts); err != nil {
		zw.Close()
		return err
	}
	if err := addBootstrap(zw, opts.Bootstrap); err != nil {
		zw.Close()
		return err
	}
	if opts.VendorDir != "" {
		if err := addTree(zw, opts.VendorDir, VendorEntryDir, nil); err != nil {
			zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize zip payload: %w", err)
	}
	return nil
}

// addProjectTree adds every non-excluded project file. The destination
// archive itself and any project-provided root __main__.py are always
// skipped; the bootstrap entry replaces the latter.
func addProjectTree(zw *zip.Writer, dest string, opts Options) error {
	skip := func(rel string) bool {
		if rel == BootstrapName {
			return true
		}
		if abs, err := filepath.Abs(filepath.Join(opts.SrcDir, filepath.FromSlash(rel))); err == nil && abs == dest {
			return true
		}
		return opts.Exclude != nil && opts.Exclude(rel)
	}
	return addTree(zw, opts.SrcDir, "", skip)
}

// addTree walks root and writes each regular file at prefix-joined
// slash-relative entry names. filepath.WalkDir visits entries in lexical
// order, so identical inputs always produce identical entry order.
func addTree(zw *zip.Writer, root, prefix string, skip func(rel string) bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		rel = filepath.ToSlash(rel)

		if skip != nil && skip(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			// Sockets, devices and symlinks have no zip representation the
			// target runtime could use.
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to get file info for %s: %w", path, err)
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("failed to create entry header for %s: %w", path, err)
		}
		header.Name = rel
		if prefix != "" {
			header.Name = prefix + "/" + rel
		}
		header.Method = zip.Deflate

		writer, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create zip entry %s: %w", header.Name, err)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		_, err = io.Copy(writer, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to write entry %s: %w", header.Name, err)
		}
		return nil
	})
}

// addBootstrap writes the generated __main__.py entry.
func addBootstrap(zw *zip.Writer, source string) error {
	header := &zip.FileHeader{Name: BootstrapName, Method: zip.Deflate}
	header.SetMode(0o644)
	writer, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create bootstrap entry: %w", err)
	}
	if _, err := io.WriteString(writer, source); err != nil {
		return fmt.Errorf("failed to write bootstrap entry: %w", err)
	}
	return nil
}
