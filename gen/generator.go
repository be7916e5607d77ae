// Package gen implements the rglue export-generation pipeline: the family of
// cooperating generators that each own one glue artifact, the shared
// idempotent-commit lifecycle, and the composite set that drives them.
package gen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rglue/rglue/attr"
	"github.com/rglue/rglue/errors"
)

// Suffix of the generated C++ re-export header, e.g. mypkg_RglueExports.h.
const exportsHeaderSuffix = "_RglueExports.h"

// CommitAction reports what Commit did to a generator's target file.
type CommitAction int

const (
	// CommitNone: the target already held exactly the generated content,
	// or there was nothing to write and no file to replace.
	CommitNone CommitAction = iota

	// CommitWritten: the target file was created or overwritten.
	CommitWritten

	// CommitRemoved: the generator's enabling condition went away and its
	// previously generated file was deleted.
	CommitRemoved
)

// Generator is one single-artifact code generator. Each implementation owns
// exactly one output path for the lifetime of a generation run and is driven
// through WriteBegin, one WriteFunctions per scanned source file in scan
// order, WriteEnd, and finally exactly one Commit (or Remove).
type Generator interface {
	// TargetFile is the path this generator owns.
	TargetFile() string

	// WriteBegin emits any per-run preamble into the buffer.
	WriteBegin()

	// WriteFunctions appends output for one scanned source file.
	WriteFunctions(attributes *attr.SourceFileAttributes, verbose bool)

	// WriteEnd emits any per-run epilogue into the buffer.
	WriteEnd()

	// Commit writes the accumulated content to the target file if it
	// differs from what is already there. includes are preamble lines
	// supplied by the caller.
	Commit(includes []string) (CommitAction, error)

	// Remove deletes the target file if present.
	Remove() (bool, error)
}

// base carries the state shared by every generator variant: the target
// path, the snapshot of any previously committed content, and the
// append-only output buffer. The buffer is never reordered or rewritten, so
// output ordering always equals source-file scan order.
type base struct {
	targetFile      string
	pkg             string
	commentPrefix   string
	token           string
	existingCode    string
	buf             strings.Builder
	hasCppInterface bool
}

// newBase snapshots the current target file content and refuses to adopt a
// path whose existing content was not produced by rglue.
func newBase(targetFile, pkg, commentPrefix, token string) (base, error) {
	b := base{
		targetFile:    targetFile,
		pkg:           pkg,
		commentPrefix: commentPrefix,
		token:         token,
	}

	if data, err := os.ReadFile(targetFile); err == nil {
		b.existingCode = string(data)
	} else if !os.IsNotExist(err) {
		return base{}, errors.WrapFileIO(err, targetFile)
	}

	if !b.isSafeToOverwrite() {
		return base{}, errors.NewOverwriteUnsafe(targetFile)
	}

	return b, nil
}

// isSafeToOverwrite: an empty or absent target is fine; otherwise the
// existing content must carry this generator's token, proving it was
// machine-generated by a previous run rather than written by hand.
func (b *base) isSafeToOverwrite() bool {
	return b.existingCode == "" || strings.Contains(b.existingCode, b.token)
}

func (b *base) TargetFile() string { return b.targetFile }

// noteInterfaces records (sticky across the whole run) whether any scanned
// file declared the C++ export surface. Every variant calls this first in
// its WriteFunctions.
func (b *base) noteInterfaces(attributes *attr.SourceFileAttributes) {
	if attributes.HasInterface(attr.InterfaceCpp) {
		b.hasCppInterface = true
	}
}

// commit writes header + preamble + buffer to the target file, but only when
// that differs byte-for-byte from the previous run's content. The equality
// check is the idempotence guarantee: re-running on unchanged inputs
// performs zero filesystem writes.
func (b *base) commit(preamble string) (CommitAction, error) {
	code := b.buf.String()

	// no generated content and no pre-existing file: stay a no-op rather
	// than creating an empty artifact
	if code == "" {
		if _, err := os.Stat(b.targetFile); os.IsNotExist(err) {
			return CommitNone, nil
		}
	}

	var header strings.Builder
	header.WriteString(b.commentPrefix)
	header.WriteString(" This file was generated by rglue compile\n")
	header.WriteString(b.commentPrefix)
	header.WriteString(" Generator token: ")
	header.WriteString(b.token)
	header.WriteString("\n\n")
	header.WriteString(preamble)

	generated := header.String() + code
	if generated == b.existingCode {
		return CommitNone, nil
	}

	if err := os.MkdirAll(filepath.Dir(b.targetFile), 0755); err != nil {
		return CommitNone, errors.WrapFileIO(err, b.targetFile)
	}
	if err := os.WriteFile(b.targetFile, []byte(generated), 0644); err != nil {
		return CommitNone, errors.WrapFileIO(err, b.targetFile)
	}
	return CommitWritten, nil
}

// removeTarget deletes the target file if it exists.
func (b *base) removeTarget() (bool, error) {
	err := os.Remove(b.targetFile)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.WrapFileIO(err, b.targetFile)
}

// removeOnCommit is the commit path for generators whose enabling condition
// (the C++ interface) went away: any previously generated file is deleted.
func (b *base) removeOnCommit() (CommitAction, error) {
	removed, err := b.removeTarget()
	if err != nil {
		return CommitNone, err
	}
	if removed {
		return CommitRemoved, nil
	}
	return CommitNone, nil
}
