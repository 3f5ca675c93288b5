// Package erased provides a value container that remembers the static type a
// value was stored under.
//
// A Value can be passed around and kept in heterogeneous collections. Getting
// the value back out requires naming the exact type it was stored as; any other
// request fails with ErrTypeMismatch instead of attempting a conversion.
package erased
