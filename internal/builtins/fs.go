package builtins

import (
	"sort"

	"github.com/cursive-lang/corec/internal/corelib"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

var (
	fsErrorType     = &semtype.PathType{Name: "FSError"}
	fileSystemType  = &semtype.PathType{Name: "FileSystem"}
	fileType        = &semtype.PathType{Name: "File"}
	fsEntryKindType = &semtype.PathType{Name: "FSEntryKind"}
	dirEntryType    = &semtype.PathType{Name: "DirEntry"}
	dirIterType     = &semtype.PathType{Name: "DirIter"}
)

func fsErr(variant string) sigma.Value {
	return sigma.UnionVal{Member: fsErrorType, Value: sigma.EnumVal{Type: *fsErrorType, Variant: variant}}
}

func fsOk(successType semtype.Type, v sigma.Value) sigma.Value {
	return sigma.UnionVal{Member: successType, Value: v}
}

func str(s string) sigma.StringVal {
	return sigma.StringVal{State: semtype.StateManaged, Bytes: []byte(s)}
}

// NewFileSystem constructs the root `FileSystem` capability value rooted
// at base (empty string for the whole virtual filesystem).
func NewFileSystem(base string) sigma.Value {
	return sigma.RecordVal{Type: *fileSystemType, Fields: map[string]sigma.Value{"base": str(base)}}
}

func fsBase(fsys sigma.RecordVal) string {
	if v, ok := fsys.Fields["base"].(sigma.StringVal); ok {
		return string(v.Bytes)
	}
	return ""
}

func canonicalize(base, path string) string {
	if base == "" {
		return path
	}
	if path == "" {
		return base
	}
	return base + "/" + path
}

// FileSystemRestrict implements `FileSystem::restrict(base)`: every
// operation on the returned capability canonicalises beneath the
// combined prefix.
func FileSystemRestrict(fsys sigma.RecordVal, sub string) sigma.Value {
	return NewFileSystem(canonicalize(fsBase(fsys), sub))
}

func newFile(state, path string, pos int64) sigma.ModalVal {
	return sigma.ModalVal{Type: *fileType, State: state, Payload: sigma.RecordVal{Fields: map[string]sigma.Value{
		"path": str(path),
		"pos":  sigma.IntVal{Kind: semtype.USize, Magnitude: corelib.FromUint64(uint64(pos))},
	}}}
}

func fileField(f sigma.ModalVal, name string) sigma.Value {
	return f.Payload.(sigma.RecordVal).Fields[name]
}

func filePath(f sigma.ModalVal) string {
	return string(fileField(f, "path").(sigma.StringVal).Bytes)
}

func filePos(f sigma.ModalVal) int64 {
	return int64(fileField(f, "pos").(sigma.IntVal).Magnitude.Lo)
}

func modalStateType(state string) semtype.Type {
	return &semtype.ModalState{Modal: *fileType, State: state}
}

// FileSystemOpenRead implements `FileSystem::open_read(path)`.
func FileSystemOpenRead(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	if s.FS.Kind(full) != sigma.KindFile {
		return fsErr("NotFound")
	}
	return fsOk(modalStateType("Read"), newFile("Read", full, 0))
}

// FileSystemOpenWrite implements `FileSystem::open_write(path)`: the
// file must already exist, and the cursor starts at 0 (subsequent
// writes overwrite from the start, matching the original's open-for-
// write-without-truncate semantics).
func FileSystemOpenWrite(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	if s.FS.Kind(full) != sigma.KindFile {
		return fsErr("NotFound")
	}
	return fsOk(modalStateType("Write"), newFile("Write", full, 0))
}

// FileSystemOpenAppend implements `FileSystem::open_append(path)`: the
// cursor starts at the file's current length.
func FileSystemOpenAppend(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	n, ok := s.FS.Lookup(full)
	if !ok || n.Kind != sigma.KindFile {
		return fsErr("NotFound")
	}
	return fsOk(modalStateType("Append"), newFile("Append", full, int64(len(n.Contents))))
}

// FileSystemCreateWrite implements `FileSystem::create_write(path)`:
// creates (or truncates) the file and returns it open for writing.
func FileSystemCreateWrite(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	if !s.FS.WriteFile(full, nil) {
		return fsErr("WrongState")
	}
	return fsOk(modalStateType("Write"), newFile("Write", full, 0))
}

// FileSystemReadFile implements the single-shot `FileSystem::read_file`.
func FileSystemReadFile(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	n, ok := s.FS.Lookup(full)
	if !ok || n.Kind != sigma.KindFile {
		return fsErr("NotFound")
	}
	return fsOk(managedStringType, managedString(append([]byte{}, n.Contents...)))
}

// FileSystemReadBytes implements the single-shot `FileSystem::read_bytes`.
func FileSystemReadBytes(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	n, ok := s.FS.Lookup(full)
	if !ok || n.Kind != sigma.KindFile {
		return fsErr("NotFound")
	}
	return fsOk(managedBytesType, managedBytes(append([]byte{}, n.Contents...)))
}

// FileSystemWriteFile implements the single-shot `FileSystem::write_file`.
func FileSystemWriteFile(s *sigma.Sigma, fsys sigma.RecordVal, path string, data []byte) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	if !s.FS.WriteFile(full, data) {
		return fsErr("WrongState")
	}
	return fsOk(unitType, sigma.UnitVal{})
}

// FileSystemOpenDir implements `FileSystem::open_dir(path)`, returning a
// `DirIter` snapshot of the directory's entries in name order.
func FileSystemOpenDir(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	n, ok := s.FS.Lookup(full)
	if !ok || n.Kind != sigma.KindDir {
		return fsErr("NotFound")
	}
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]sigma.Value, len(names))
	for i, name := range names {
		entries[i] = str(name)
	}
	return fsOk(dirIterType, sigma.RecordVal{Type: *dirIterType, Fields: map[string]sigma.Value{
		"base":    str(full),
		"entries": sigma.ArrayVal{Elems: entries},
		"idx":     sigma.IntVal{Kind: semtype.USize, Magnitude: corelib.Uint128{}},
	}})
}

// FileSystemCreateDir implements `FileSystem::create_dir(path)`.
func FileSystemCreateDir(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	if s.FS.Kind(full) != sigma.KindMissing {
		return fsErr("AlreadyExists")
	}
	if !s.FS.EnsureDir(full) {
		return fsErr("WrongState")
	}
	return fsOk(unitType, sigma.UnitVal{})
}

// FileSystemEnsureDir implements `FileSystem::ensure_dir(path)`.
func FileSystemEnsureDir(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	if !s.FS.EnsureDir(full) {
		return fsErr("WrongState")
	}
	return fsOk(unitType, sigma.UnitVal{})
}

// FileSystemRemove implements `FileSystem::remove(path)`.
func FileSystemRemove(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	if !s.FS.Remove(full) {
		return fsErr("NotFound")
	}
	return fsOk(unitType, sigma.UnitVal{})
}

// FileSystemExists implements `FileSystem::exists(path)`.
func FileSystemExists(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	return sigma.BoolVal{V: s.FS.Kind(full) != sigma.KindMissing}
}

// FileSystemKindOf implements the tri-state `FileSystem::kind(path)`.
func FileSystemKindOf(s *sigma.Sigma, fsys sigma.RecordVal, path string) sigma.Value {
	full := canonicalize(fsBase(fsys), path)
	return sigma.EnumVal{Type: *fsEntryKindType, Variant: entryKindName(s.FS.Kind(full))}
}

func entryKindName(k sigma.EntryKind) string {
	switch k {
	case sigma.KindFile:
		return "File"
	case sigma.KindDir:
		return "Dir"
	default:
		return "Missing"
	}
}

// WriteStdout implements `FileSystem::write_stdout`, appending directly
// to σ's stdout buffer.
func WriteStdout(s *sigma.Sigma, data []byte) { s.Stdout.Write(data) }

// WriteStderr implements `FileSystem::write_stderr`.
func WriteStderr(s *sigma.Sigma, data []byte) { s.Stderr.Write(data) }

// FileReadAll implements `File::read_all` on a `File@Read`: the content
// from the cursor to end-of-file, and the file with its cursor advanced
// to end-of-file.
func FileReadAll(s *sigma.Sigma, f sigma.ModalVal) (sigma.ModalVal, sigma.Value) {
	n, ok := s.FS.Lookup(filePath(f))
	if !ok {
		return f, fsErr("NotFound")
	}
	pos := filePos(f)
	if pos > int64(len(n.Contents)) {
		pos = int64(len(n.Contents))
	}
	content := append([]byte{}, n.Contents[pos:]...)
	return newFile("Read", filePath(f), int64(len(n.Contents))), fsOk(managedStringType, managedString(content))
}

// FileReadAllBytes mirrors FileReadAll for `bytes`.
func FileReadAllBytes(s *sigma.Sigma, f sigma.ModalVal) (sigma.ModalVal, sigma.Value) {
	n, ok := s.FS.Lookup(filePath(f))
	if !ok {
		return f, fsErr("NotFound")
	}
	pos := filePos(f)
	if pos > int64(len(n.Contents)) {
		pos = int64(len(n.Contents))
	}
	content := append([]byte{}, n.Contents[pos:]...)
	return newFile("Read", filePath(f), int64(len(n.Contents))), fsOk(managedBytesType, managedBytes(content))
}

// FileWrite implements `File::write` on a `File@Write|Append`, writing
// data at the cursor and advancing it.
func FileWrite(s *sigma.Sigma, f sigma.ModalVal, data []byte) (sigma.ModalVal, sigma.Value) {
	n, ok := s.FS.Lookup(filePath(f))
	if !ok {
		return f, fsErr("NotFound")
	}
	pos := filePos(f)
	content := append([]byte{}, n.Contents...)
	if f.State == "Append" || pos >= int64(len(content)) {
		content = append(content, data...)
	} else {
		end := pos + int64(len(data))
		if end > int64(len(content)) {
			content = append(content, make([]byte, end-int64(len(content)))...)
		}
		copy(content[pos:end], data)
		pos = end
	}
	if !s.FS.WriteFile(filePath(f), content) {
		return f, fsErr("WrongState")
	}
	if f.State == "Append" {
		pos = int64(len(content))
	}
	return newFile(f.State, filePath(f), pos), fsOk(unitType, sigma.UnitVal{})
}

// FileFlush implements `File::flush`: a no-op in this in-memory
// filesystem, since every write already lands in σ.FS synchronously.
func FileFlush(f sigma.ModalVal) (sigma.ModalVal, sigma.Value) {
	return f, fsOk(unitType, sigma.UnitVal{})
}

// FileClose implements `File::close`.
func FileClose(f sigma.ModalVal) sigma.Value {
	return fsOk(unitType, sigma.UnitVal{})
}

// DirIterNext implements `DirIter::next`, returning the advanced
// iterator and an `Option<DirEntry>`-shaped union: `Some(DirEntry)` as
// Member=dirEntryType, or `None` as Member=Unit.
func DirIterNext(it sigma.RecordVal) (sigma.RecordVal, sigma.Value) {
	entries := it.Fields["entries"].(sigma.ArrayVal).Elems
	idx := int(it.Fields["idx"].(sigma.IntVal).Magnitude.Lo)
	if idx >= len(entries) {
		return it, sigma.UnionVal{Member: unitType, Value: sigma.UnitVal{}}
	}
	name := string(entries[idx].(sigma.StringVal).Bytes)
	base := string(it.Fields["base"].(sigma.StringVal).Bytes)
	full := canonicalize(base, name)
	next := sigma.RecordVal{Type: it.Type, Fields: map[string]sigma.Value{
		"base":    it.Fields["base"],
		"entries": it.Fields["entries"],
		"idx":     sigma.IntVal{Kind: semtype.USize, Magnitude: corelib.FromUint64(uint64(idx + 1))},
	}}
	entry := sigma.RecordVal{Type: *dirEntryType, Fields: map[string]sigma.Value{
		"name": str(name),
		"path": str(full),
	}}
	return next, sigma.UnionVal{Member: dirEntryType, Value: entry}
}
