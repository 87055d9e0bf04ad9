// Package fmtt prints error chains for --debug output.
package fmtt

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// PrintErrChain writes each layer of an error chain with its type.
func PrintErrChain(w io.Writer, err error) {
	if err == nil {
		fmt.Fprintln(w, "<nil>")
		return
	}
	for i, e := 0, err; e != nil; i, e = i+1, errors.Unwrap(e) {
		fmt.Fprintf(w, "[%d] %T: %v\n", i, e, e)
	}
}

// PrintErrChainDebug is PrintErrChain plus a spew dump and the exported
// struct fields of every layer.
func PrintErrChainDebug(w io.Writer, err error) {
	for i := 0; err != nil; err = errors.Unwrap(err) {
		fmt.Fprintf(w, "[%d] %T\n", i, err)
		fmt.Fprintf(w, "   Error(): %v\n", err)

		spew.Fdump(w, err)

		rv := reflect.ValueOf(err)
		rt := reflect.TypeOf(err)
		if rt.Kind() == reflect.Ptr {
			rv = rv.Elem()
			rt = rt.Elem()
		}
		if rt.Kind() == reflect.Struct {
			for j := 0; j < rt.NumField(); j++ {
				f := rt.Field(j)
				v := rv.Field(j)
				if v.CanInterface() {
					fmt.Fprintf(w, "   Field %s (%s): %+v\n", f.Name, f.Type, v.Interface())
				}
			}
		}
		i++
	}
}
