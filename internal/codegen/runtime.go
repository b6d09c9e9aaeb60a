package codegen

// RuntimeCatalogue is the set of mangled names the interface exports to
// the linker: panic, context initialisation, region intrinsics, every
// FileSystem/HeapAllocator operation, and the drop helpers for the two
// managed-storage kinds. Each call rebuilds the same map: the names depend
// only on PathSig/Mangle and never on a particular program's declarations.
func RuntimeCatalogue() map[string]string {
	cat := map[string]string{
		"panic":         BuiltinSym("panic"),
		"context_init":  BuiltinSym("context_init"),
		"region_push":   BuiltinSym("region", "push"),
		"region_pop":    BuiltinSym("region", "pop"),
		"region_alloc":  BuiltinSym("region", "alloc"),
		"region_freeze": BuiltinSym("region", "freeze"),
		"region_thaw":   BuiltinSym("region", "thaw"),

		"fs_open_read":   BuiltinSym("fs", "open_read"),
		"fs_open_write":  BuiltinSym("fs", "open_write"),
		"fs_open_append": BuiltinSym("fs", "open_append"),
		"fs_create_write": BuiltinSym("fs", "create_write"),
		"fs_read_file":   BuiltinSym("fs", "read_file"),
		"fs_read_bytes":  BuiltinSym("fs", "read_bytes"),
		"fs_write_file":  BuiltinSym("fs", "write_file"),
		"fs_open_dir":    BuiltinSym("fs", "open_dir"),
		"fs_create_dir":  BuiltinSym("fs", "create_dir"),
		"fs_ensure_dir":  BuiltinSym("fs", "ensure_dir"),
		"fs_remove":      BuiltinSym("fs", "remove"),
		"fs_exists":      BuiltinSym("fs", "exists"),
		"fs_kind_of":     BuiltinSym("fs", "kind_of"),
		"fs_restrict":    BuiltinSym("fs", "restrict"),
		"fs_write_stdout": BuiltinSym("fs", "write_stdout"),
		"fs_write_stderr": BuiltinSym("fs", "write_stderr"),
		"file_read_all":      BuiltinSym("file", "read_all"),
		"file_read_all_bytes": BuiltinSym("file", "read_all_bytes"),
		"file_write":         BuiltinSym("file", "write"),
		"file_flush":         BuiltinSym("file", "flush"),
		"file_close":         BuiltinSym("file", "close"),
		"dir_iter_next":      BuiltinSym("dir_iter", "next"),

		"heap_with_quota":  BuiltinSym("heap", "with_quota"),
		"heap_alloc_raw":   BuiltinSym("heap", "alloc_raw"),
		"heap_dealloc_raw": BuiltinSym("heap", "dealloc_raw"),

		"drop_string_managed": BuiltinSym("drop", "string_managed"),
		"drop_bytes_managed":  BuiltinSym("drop", "bytes_managed"),
	}
	return cat
}
