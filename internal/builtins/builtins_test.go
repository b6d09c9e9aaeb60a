package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursive-lang/corec/internal/sigma"
)

func newSigma() *sigma.Sigma {
	return sigma.New(sigma.Config{})
}

func quotaSigma(quota uint64) *sigma.Sigma {
	return sigma.New(sigma.Config{HeapQuota: quota})
}

func TestStringFromAllocatesManagedCopy(t *testing.T) {
	s := newSigma()
	v := viewString([]byte("hi"))
	result := StringFrom(s, v)
	u, ok := result.(sigma.UnionVal)
	require.True(t, ok)
	got, ok := u.Value.(sigma.StringVal)
	require.True(t, ok)
	assert.Equal(t, "hi", string(got.Bytes))
}

func TestStringFromFailsWhenQuotaExhausted(t *testing.T) {
	s := quotaSigma(1)
	v := viewString([]byte("hi"))
	result := StringFrom(s, v).(sigma.UnionVal)
	assert.Equal(t, allocationErrorType, result.Member)
	enum, ok := result.Value.(sigma.EnumVal)
	require.True(t, ok)
	assert.Equal(t, "OutOfMemory", enum.Variant)
}

func TestStringAppendWriteBackConvention(t *testing.T) {
	s := newSigma()
	self := managedString([]byte("ab"))
	view := viewString([]byte("cd"))
	grown, result := StringAppend(s, self, view)
	assert.Equal(t, "abcd", string(grown.Bytes))
	u := result.(sigma.UnionVal)
	assert.Equal(t, unitType, u.Member)
}

func TestStringAppendFailureLeavesSelfUnchanged(t *testing.T) {
	s := quotaSigma(1)
	self := managedString([]byte("ab"))
	view := viewString([]byte("cd"))
	grown, result := StringAppend(s, self, view)
	assert.Equal(t, "ab", string(grown.Bytes))
	u := result.(sigma.UnionVal)
	assert.Equal(t, allocationErrorType, u.Member)
}

func TestStringLengthCountsRunesNotBytes(t *testing.T) {
	v := StringLength(managedString([]byte("héllo")))
	iv := v.(sigma.IntVal)
	assert.Equal(t, uint64(5), iv.Magnitude.Lo)
}

func TestStringSliceByRuneRange(t *testing.T) {
	s := newSigma()
	result := StringSlice(s, managedString([]byte("héllo")), 1, 3)
	u := result.(sigma.UnionVal)
	got := u.Value.(sigma.StringVal)
	assert.Equal(t, "él", string(got.Bytes))
}

func TestStringFindReturnsRuneIndex(t *testing.T) {
	idx, ok := StringFind(managedString([]byte("héllo")), managedString([]byte("llo")))
	require.True(t, ok)
	assert.Equal(t, uint64(2), idx.(sigma.IntVal).Magnitude.Lo)
}

func TestStringFindMissingReportsNotFound(t *testing.T) {
	_, ok := StringFind(managedString([]byte("hello")), managedString([]byte("xyz")))
	assert.False(t, ok)
}

func TestBytesConcatAllocates(t *testing.T) {
	s := newSigma()
	result := BytesConcat(s, managedBytes([]byte{1, 2}), managedBytes([]byte{3, 4}))
	u := result.(sigma.UnionVal)
	got := u.Value.(sigma.BytesVal)
	assert.Equal(t, []byte{1, 2, 3, 4}, got.Bytes)
}

func TestStringFromBytesRejectsInvalidUTF8(t *testing.T) {
	s := newSigma()
	_, ctrl := StringFromBytes(s, managedBytes([]byte{0xff, 0xfe}))
	require.NotNil(t, ctrl.Panic)
	assert.Equal(t, sigma.Cast, ctrl.Panic.Reason)
}

func TestStringFromBytesAcceptsValidUTF8(t *testing.T) {
	s := newSigma()
	v, ctrl := StringFromBytes(s, managedBytes([]byte("ok")))
	assert.Nil(t, ctrl.Panic)
	u := v.(sigma.UnionVal)
	assert.Equal(t, "ok", string(u.Value.(sigma.StringVal).Bytes))
}

func TestRegionAllocAndFreeze(t *testing.T) {
	s := newSigma()
	rv := RegionNewScoped(s).(sigma.RegionVal)
	_, ok := RegionAlloc(s, rv, sigma.IntVal{})
	require.True(t, ok)
	RegionFreeze(rv)
	_, ok = RegionAlloc(s, rv, sigma.IntVal{})
	assert.False(t, ok)
	RegionThaw(rv)
	_, ok = RegionAlloc(s, rv, sigma.IntVal{})
	assert.True(t, ok)
}

func TestHeapAllocRawAndDealloc(t *testing.T) {
	s := quotaSigma(16)
	ptr, ok := HeapAllocRaw(s, 8)
	require.True(t, ok)
	raw := ptr.(sigma.RawPtrVal)
	_, ok = HeapAllocRaw(s, 16)
	assert.False(t, ok, "should exceed remaining quota")
	ok = HeapDeallocRaw(s, raw, 8)
	assert.True(t, ok)
	_, ok = HeapAllocRaw(s, 8)
	assert.True(t, ok, "quota credited back after dealloc")
}

func TestFileSystemWriteAndReadFile(t *testing.T) {
	s := newSigma()
	fsys := NewFileSystem("").(sigma.RecordVal)
	result := FileSystemWriteFile(s, fsys, "a.txt", []byte("hello"))
	_, ok := result.(sigma.UnionVal)
	require.True(t, ok)

	read := FileSystemReadFile(s, fsys, "a.txt").(sigma.UnionVal)
	assert.Equal(t, "hello", string(read.Value.(sigma.StringVal).Bytes))
}

func TestFileSystemReadFileMissingReportsNotFound(t *testing.T) {
	s := newSigma()
	fsys := NewFileSystem("").(sigma.RecordVal)
	result := FileSystemReadFile(s, fsys, "missing.txt").(sigma.UnionVal)
	assert.Equal(t, fsErrorType, result.Member)
	assert.Equal(t, "NotFound", result.Value.(sigma.EnumVal).Variant)
}

func TestFileSystemRestrictSandboxesPaths(t *testing.T) {
	s := newSigma()
	root := NewFileSystem("").(sigma.RecordVal)
	FileSystemWriteFile(s, root, "sandbox/a.txt", []byte("x"))
	child := FileSystemRestrict(root, "sandbox").(sigma.RecordVal)
	got := FileSystemReadFile(s, child, "a.txt").(sigma.UnionVal)
	assert.Equal(t, "x", string(got.Value.(sigma.StringVal).Bytes))
}

func TestFileOpenReadWriteAppendCycle(t *testing.T) {
	s := newSigma()
	fsys := NewFileSystem("").(sigma.RecordVal)
	FileSystemWriteFile(s, fsys, "log.txt", []byte("a"))

	opened := FileSystemOpenAppend(s, fsys, "log.txt").(sigma.UnionVal)
	f := opened.Value.(sigma.ModalVal)
	assert.Equal(t, "Append", f.State)

	f2, res := FileWrite(s, f, []byte("b"))
	_ = res
	f3, readRes := FileReadAll(s, FileSystemOpenRead(s, fsys, "log.txt").(sigma.UnionVal).Value.(sigma.ModalVal))
	_ = f2
	_ = f3
	u := readRes.(sigma.UnionVal)
	assert.Equal(t, "ab", string(u.Value.(sigma.StringVal).Bytes))
}

func TestFileSystemOpenWriteMissingFails(t *testing.T) {
	s := newSigma()
	fsys := NewFileSystem("").(sigma.RecordVal)
	result := FileSystemOpenWrite(s, fsys, "nope.txt").(sigma.UnionVal)
	assert.Equal(t, fsErrorType, result.Member)
}

func TestFileSystemCreateDirAndEnsureDir(t *testing.T) {
	s := newSigma()
	fsys := NewFileSystem("").(sigma.RecordVal)
	r1 := FileSystemCreateDir(s, fsys, "dir").(sigma.UnionVal)
	assert.NotEqual(t, fsErrorType, r1.Member)

	r2 := FileSystemCreateDir(s, fsys, "dir").(sigma.UnionVal)
	assert.Equal(t, fsErrorType, r2.Member)
	assert.Equal(t, "AlreadyExists", r2.Value.(sigma.EnumVal).Variant)

	r3 := FileSystemEnsureDir(s, fsys, "dir").(sigma.UnionVal)
	assert.NotEqual(t, fsErrorType, r3.Member)
}

func TestFileSystemKindOfAndExists(t *testing.T) {
	s := newSigma()
	fsys := NewFileSystem("").(sigma.RecordVal)
	FileSystemWriteFile(s, fsys, "f.txt", []byte("x"))
	FileSystemCreateDir(s, fsys, "d")

	assert.True(t, FileSystemExists(s, fsys, "f.txt").(sigma.BoolVal).V)
	assert.False(t, FileSystemExists(s, fsys, "missing").(sigma.BoolVal).V)
	assert.Equal(t, "File", FileSystemKindOf(s, fsys, "f.txt").(sigma.EnumVal).Variant)
	assert.Equal(t, "Dir", FileSystemKindOf(s, fsys, "d").(sigma.EnumVal).Variant)
	assert.Equal(t, "Missing", FileSystemKindOf(s, fsys, "nope").(sigma.EnumVal).Variant)
}

func TestDirIterNextWalksEntriesInOrder(t *testing.T) {
	s := newSigma()
	fsys := NewFileSystem("").(sigma.RecordVal)
	FileSystemWriteFile(s, fsys, "dir/b.txt", []byte("1"))
	FileSystemWriteFile(s, fsys, "dir/a.txt", []byte("2"))

	opened := FileSystemOpenDir(s, fsys, "dir").(sigma.UnionVal)
	it := opened.Value.(sigma.RecordVal)

	it, first := DirIterNext(it)
	entry := first.(sigma.UnionVal)
	assert.Equal(t, dirEntryType, entry.Member)
	assert.Equal(t, "a.txt", string(entry.Value.(sigma.RecordVal).Fields["name"].(sigma.StringVal).Bytes))

	it, second := DirIterNext(it)
	entry2 := second.(sigma.UnionVal)
	assert.Equal(t, "b.txt", string(entry2.Value.(sigma.RecordVal).Fields["name"].(sigma.StringVal).Bytes))

	_, third := DirIterNext(it)
	none := third.(sigma.UnionVal)
	assert.Equal(t, unitType, none.Member)
}

func TestWriteStdoutAppendsToBuffer(t *testing.T) {
	s := newSigma()
	WriteStdout(s, []byte("hi"))
	WriteStdout(s, []byte("!"))
	assert.Equal(t, "hi!", s.Stdout.String())
}

func TestSystemExitProducesAbort(t *testing.T) {
	ctrl := SystemExit(1)
	assert.Equal(t, sigma.CtrlAbort, ctrl.Kind)
}
