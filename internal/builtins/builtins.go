// Package builtins implements the isBuiltin(name) external collaborator
// from spec.md §6/§4.7 step 1, grounded on the teacher's NativeModuleMarkers
// static-table idiom (internal/resolver/package_json.go) -- a small fixed
// set queried by value, not computed.
package builtins

import "strings"

var names = map[string]bool{
	"assert": true, "assert/strict": true, "async_hooks": true, "buffer": true,
	"child_process": true, "cluster": true, "console": true, "constants": true,
	"crypto": true, "dgram": true, "diagnostics_channel": true, "dns": true,
	"dns/promises": true, "domain": true, "events": true, "fs": true,
	"fs/promises": true, "http": true, "http2": true, "https": true,
	"inspector": true, "inspector/promises": true, "module": true, "net": true,
	"os": true, "path": true, "path/posix": true, "path/win32": true,
	"perf_hooks": true, "process": true, "punycode": true, "querystring": true,
	"readline": true, "readline/promises": true, "repl": true, "stream": true,
	"stream/consumers": true, "stream/promises": true, "stream/web": true,
	"string_decoder": true, "sys": true, "timers": true, "timers/promises": true,
	"tls": true, "trace_events": true, "tty": true, "url": true, "util": true,
	"util/types": true, "v8": true, "vm": true, "wasi": true,
	"worker_threads": true, "zlib": true,
}

// IsBuiltin reports whether name (with or without the "node:" prefix) names
// a Node.js built-in module, per spec.md §4.7 step 1.
func IsBuiltin(name string) bool {
	name = strings.TrimPrefix(name, "node:")
	return names[name]
}
