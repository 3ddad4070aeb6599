// Package httpapi exposes the retrieval pipeline and ranked search
// over HTTP. Handlers depend on small interfaces so tests can swap in
// fakes; the routing layer holds no logic beyond decode, call, encode.
package httpapi
