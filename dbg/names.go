// Package dbg holds debugging helpers: readable names for pointers, PNG
// renderings of meshes, and DXF exports of meshes and spatial partitions.
package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// Name turns an arbitrary pointer into a readable name like "HappyOtter",
// which is much easier to follow in a tree dump than a hex address. Names are
// memoized for the life of the process and never freed, so only use this
// while debugging.

var (
	memoMu sync.Mutex
	memo   = map[interface{}]string{}
)

func init() {
	// Names are generated in order of demand; keep them nondeterministic so
	// nobody expects the same name to mean the same node across runs.
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Ptr && v.IsNil() {
		return "Ø"
	}

	memoMu.Lock()
	defer memoMu.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}
