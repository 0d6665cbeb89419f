package controller

import (
	"net/http"
	"net/http/pprof"
	"strings"
)

// PprofPrefix is where the server mounts PprofMux.
const PprofPrefix = "/debug/pprof/"

// PprofMux returns a mux serving net/http/pprof under prefix. The index also
// serves the named runtime profiles, e.g. prefix + "heap".
func PprofMux(prefix string) *http.ServeMux {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	mux := http.NewServeMux()

	mux.HandleFunc(prefix, pprof.Index)
	mux.HandleFunc(prefix+"cmdline", pprof.Cmdline)
	mux.HandleFunc(prefix+"profile", pprof.Profile)
	mux.HandleFunc(prefix+"symbol", pprof.Symbol)
	mux.HandleFunc(prefix+"trace", pprof.Trace)

	return mux
}
