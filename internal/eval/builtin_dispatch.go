package eval

import (
	"github.com/cursive-lang/corec/internal/builtins"
	"github.com/cursive-lang/corec/internal/semtype"
	"github.com/cursive-lang/corec/internal/sigma"
)

// unitType and optionSome/optionNone build this package's own Option-shaped
// UnionVal encodings for the supplemental query builtins that report
// "found"/"not found" as (Value, bool), mirroring the DirIter::next
// Option convention internal/builtins already uses (Member=payload type
// for Some, Member=unitType for None), kept as eval's own instances
// since builtins' identical-looking unitType is unexported.
var unitType = &semtype.Prim{Kind: semtype.Unit}

func optionSome(ty semtype.Type, v sigma.Value) sigma.Value {
	return sigma.UnionVal{Member: ty, Value: v}
}

func optionNone() sigma.Value {
	return sigma.UnionVal{Member: unitType, Value: sigma.UnitVal{}}
}

func asRawBytes(v sigma.Value) []byte {
	switch b := v.(type) {
	case sigma.StringVal:
		return b.Bytes
	case sigma.BytesVal:
		return b.Bytes
	default:
		return nil
	}
}

func asInt(v sigma.Value) int {
	iv, ok := v.(sigma.IntVal)
	if !ok {
		return 0
	}
	n := int(iv.Magnitude.Lo)
	if iv.Negative {
		return -n
	}
	return n
}

// recvPlace bundles a callable method target with where to write back a
// mutated result, when the receiver expression denotes an addressable
// place. hasPlace is false for a method called on a transient value
// (e.g. the result of another call), in which case mutating methods
// still run but their write-back is simply discarded.
type recvPlace struct {
	Addr     sigma.Addr
	HasPlace bool
}

func (p recvPlace) writeBack(s *sigma.Sigma, v sigma.Value) {
	if p.HasPlace {
		s.WriteAddr(p.Addr, v)
	}
}

// dispatchBuiltinMethod handles a MethodCallExpr whose receiver is one of
// the capability-stdlib runtime shapes (string/bytes/Region/FileSystem/
// File/DirIter/HeapAllocator). It returns handled=false
// for any other receiver, so the caller falls through to user-declared
// record/enum/modal method dispatch.
func dispatchBuiltinMethod(s *sigma.Sigma, recv sigma.Value, place recvPlace, method string, args []sigma.Value) (sigma.Value, sigma.Control, bool) {
	switch rv := recv.(type) {
	case sigma.StringVal:
		return dispatchStringMethod(s, rv, place, method, args)
	case sigma.BytesVal:
		return dispatchBytesMethod(s, rv, place, method, args)
	case sigma.RegionVal:
		return dispatchRegionMethod(s, rv, method, args)
	case sigma.RecordVal:
		switch rv.Type.Name {
		case "FileSystem":
			return dispatchFileSystemMethod(s, rv, method, args)
		case "DirIter":
			return dispatchDirIterMethod(s, rv, place, method, args)
		}
	case sigma.ModalVal:
		if rv.Type.Name == "File" {
			return dispatchFileMethod(s, rv, place, method, args)
		}
	case sigma.IntVal:
		// HeapAllocator::with_quota returns its quota as a bare usize, sigma keeps one σ-wide heap counter rather than a per-allocator
		// one, so alloc_raw/dealloc_raw ignore the receiver value itself.
		if method == "alloc_raw" || method == "dealloc_raw" {
			return dispatchHeapMethod(s, method, args)
		}
	}
	return nil, sigma.Control{}, false
}

func dispatchStringMethod(s *sigma.Sigma, sv sigma.StringVal, place recvPlace, method string, args []sigma.Value) (sigma.Value, sigma.Control, bool) {
	switch method {
	case "as_view":
		return builtins.StringAsView(sv), sigma.Control{}, true
	case "to_managed":
		return builtins.StringToManaged(s, sv), sigma.Control{}, true
	case "length":
		return builtins.StringLength(sv), sigma.Control{}, true
	case "is_empty":
		return builtins.StringIsEmpty(sv), sigma.Control{}, true
	case "starts_with":
		return builtins.StringStartsWith(sv, args[0].(sigma.StringVal)), sigma.Control{}, true
	case "ends_with":
		return builtins.StringEndsWith(sv, args[0].(sigma.StringVal)), sigma.Control{}, true
	case "char_at":
		v, ok := builtins.StringCharAt(sv, asInt(args[0]))
		if !ok {
			return optionNone(), sigma.Control{}, true
		}
		return optionSome(&semtype.Prim{Kind: semtype.Char}, v), sigma.Control{}, true
	case "find":
		v, ok := builtins.StringFind(sv, args[0].(sigma.StringVal))
		if !ok {
			return optionNone(), sigma.Control{}, true
		}
		return optionSome(&semtype.Prim{Kind: semtype.USize}, v), sigma.Control{}, true
	case "slice":
		return builtins.StringSlice(s, sv, asInt(args[0]), asInt(args[1])), sigma.Control{}, true
	case "append":
		grown, result := builtins.StringAppend(s, sv, args[0].(sigma.StringVal))
		place.writeBack(s, grown)
		return result, sigma.Control{}, true
	}
	return nil, sigma.Control{}, false
}

func dispatchBytesMethod(s *sigma.Sigma, bv sigma.BytesVal, place recvPlace, method string, args []sigma.Value) (sigma.Value, sigma.Control, bool) {
	switch method {
	case "as_view":
		return builtins.BytesAsView(bv), sigma.Control{}, true
	case "to_managed":
		return builtins.BytesToManaged(s, bv), sigma.Control{}, true
	case "length":
		return builtins.BytesLength(bv), sigma.Control{}, true
	case "is_empty":
		return builtins.BytesIsEmpty(bv), sigma.Control{}, true
	case "starts_with":
		return builtins.BytesStartsWith(bv, args[0].(sigma.BytesVal)), sigma.Control{}, true
	case "ends_with":
		return builtins.BytesEndsWith(bv, args[0].(sigma.BytesVal)), sigma.Control{}, true
	case "find":
		v, ok := builtins.BytesFind(bv, args[0].(sigma.BytesVal))
		if !ok {
			return optionNone(), sigma.Control{}, true
		}
		return optionSome(&semtype.Prim{Kind: semtype.USize}, v), sigma.Control{}, true
	case "slice":
		return builtins.BytesSlice(s, bv, asInt(args[0]), asInt(args[1])), sigma.Control{}, true
	case "append":
		grown, result := builtins.BytesAppend(s, bv, args[0].(sigma.BytesVal))
		place.writeBack(s, grown)
		return result, sigma.Control{}, true
	}
	return nil, sigma.Control{}, false
}

func dispatchRegionMethod(s *sigma.Sigma, rv sigma.RegionVal, method string, args []sigma.Value) (sigma.Value, sigma.Control, bool) {
	switch method {
	case "alloc":
		v, ok := builtins.RegionAlloc(s, rv, args[0])
		if !ok {
			return optionNone(), sigma.Control{}, true
		}
		return optionSome(&semtype.RawPtr{Elem: &semtype.Prim{Kind: semtype.Never}, Qual: semtype.RawMut}, v), sigma.Control{}, true
	case "reset_unchecked":
		builtins.RegionResetUnchecked(s, rv)
		return sigma.UnitVal{}, sigma.Control{}, true
	case "freeze":
		builtins.RegionFreeze(rv)
		return sigma.UnitVal{}, sigma.Control{}, true
	case "thaw":
		builtins.RegionThaw(rv)
		return sigma.UnitVal{}, sigma.Control{}, true
	case "free_unchecked":
		builtins.RegionFreeUnchecked(s, rv)
		return sigma.UnitVal{}, sigma.Control{}, true
	case "high_water_mark":
		return builtins.RegionHighWaterMark(rv), sigma.Control{}, true
	}
	return nil, sigma.Control{}, false
}

func dispatchFileSystemMethod(s *sigma.Sigma, fsys sigma.RecordVal, method string, args []sigma.Value) (sigma.Value, sigma.Control, bool) {
	switch method {
	case "restrict":
		return builtins.FileSystemRestrict(fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "open_read":
		return builtins.FileSystemOpenRead(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "open_write":
		return builtins.FileSystemOpenWrite(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "open_append":
		return builtins.FileSystemOpenAppend(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "create_write":
		return builtins.FileSystemCreateWrite(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "read_file":
		return builtins.FileSystemReadFile(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "read_bytes":
		return builtins.FileSystemReadBytes(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "write_file":
		return builtins.FileSystemWriteFile(s, fsys, string(asRawBytes(args[0])), asRawBytes(args[1])), sigma.Control{}, true
	case "open_dir":
		return builtins.FileSystemOpenDir(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "create_dir":
		return builtins.FileSystemCreateDir(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "ensure_dir":
		return builtins.FileSystemEnsureDir(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "remove":
		return builtins.FileSystemRemove(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "exists":
		return builtins.FileSystemExists(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "kind_of":
		return builtins.FileSystemKindOf(s, fsys, string(asRawBytes(args[0]))), sigma.Control{}, true
	case "write_stdout":
		builtins.WriteStdout(s, asRawBytes(args[0]))
		return sigma.UnitVal{}, sigma.Control{}, true
	case "write_stderr":
		builtins.WriteStderr(s, asRawBytes(args[0]))
		return sigma.UnitVal{}, sigma.Control{}, true
	}
	return nil, sigma.Control{}, false
}

func dispatchFileMethod(s *sigma.Sigma, f sigma.ModalVal, place recvPlace, method string, args []sigma.Value) (sigma.Value, sigma.Control, bool) {
	switch method {
	case "read_all":
		grown, result := builtins.FileReadAll(s, f)
		place.writeBack(s, grown)
		return result, sigma.Control{}, true
	case "read_all_bytes":
		grown, result := builtins.FileReadAllBytes(s, f)
		place.writeBack(s, grown)
		return result, sigma.Control{}, true
	case "write":
		grown, result := builtins.FileWrite(s, f, asRawBytes(args[0]))
		place.writeBack(s, grown)
		return result, sigma.Control{}, true
	case "flush":
		grown, result := builtins.FileFlush(f)
		place.writeBack(s, grown)
		return result, sigma.Control{}, true
	case "close":
		return builtins.FileClose(f), sigma.Control{}, true
	}
	return nil, sigma.Control{}, false
}

func dispatchDirIterMethod(s *sigma.Sigma, it sigma.RecordVal, place recvPlace, method string, args []sigma.Value) (sigma.Value, sigma.Control, bool) {
	if method != "next" {
		return nil, sigma.Control{}, false
	}
	advanced, result := builtins.DirIterNext(it)
	place.writeBack(s, advanced)
	return result, sigma.Control{}, true
}

func dispatchHeapMethod(s *sigma.Sigma, method string, args []sigma.Value) (sigma.Value, sigma.Control, bool) {
	switch method {
	case "alloc_raw":
		v, ok := builtins.HeapAllocRaw(s, uint64(asInt(args[0])))
		if !ok {
			return optionNone(), sigma.Control{}, true
		}
		return optionSome(&semtype.RawPtr{Elem: &semtype.Prim{Kind: semtype.Never}, Qual: semtype.RawMut}, v), sigma.Control{}, true
	case "dealloc_raw":
		ok := builtins.HeapDeallocRaw(s, args[0].(sigma.RawPtrVal), uint64(asInt(args[1])))
		return sigma.BoolVal{V: ok}, sigma.Control{}, true
	}
	return nil, sigma.Control{}, false
}

// dispatchNamespaceCall handles a CallExpr whose callee is a qualified
// builtin namespace name (string::from, Region::new_scoped, System::exit,
// ...), the capability-stdlib operations that construct a fresh value
// rather than mutate an existing receiver place.
func dispatchNamespaceCall(s *sigma.Sigma, ns, name string, args []sigma.Value) (sigma.Value, sigma.Control, bool) {
	switch ns {
	case "string":
		switch name {
		case "from":
			return builtins.StringFrom(s, args[0].(sigma.StringVal)), sigma.Control{}, true
		case "concat":
			return builtins.StringConcat(s, args[0].(sigma.StringVal), args[1].(sigma.StringVal)), sigma.Control{}, true
		case "from_bytes":
			v, ctrl := builtins.StringFromBytes(s, args[0].(sigma.BytesVal))
			return v, ctrl, true
		}
	case "bytes":
		switch name {
		case "from":
			return builtins.BytesFrom(s, args[0].(sigma.BytesVal)), sigma.Control{}, true
		case "concat":
			return builtins.BytesConcat(s, args[0].(sigma.BytesVal), args[1].(sigma.BytesVal)), sigma.Control{}, true
		case "from_string":
			return builtins.BytesFromString(s, args[0].(sigma.StringVal)), sigma.Control{}, true
		}
	case "Region":
		if name == "new_scoped" {
			return builtins.RegionNewScoped(s), sigma.Control{}, true
		}
	case "HeapAllocator":
		if name == "with_quota" {
			return builtins.HeapAllocatorWithQuota(uint64(asInt(args[0]))), sigma.Control{}, true
		}
	case "FileSystem":
		if name == "new" {
			base := ""
			if len(args) > 0 {
				base = string(asRawBytes(args[0]))
			}
			return builtins.NewFileSystem(base), sigma.Control{}, true
		}
	case "System":
		if name == "exit" {
			return sigma.UnitVal{}, builtins.SystemExit(int32(asInt(args[0]))), true
		}
	}
	return nil, sigma.Control{}, false
}
