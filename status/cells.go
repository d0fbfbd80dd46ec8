package status

import (
	"math"
	"sync/atomic"
	"unicode/utf8"
)

// maxStringLen keeps overlay lines short
const maxStringLen = 24

// AtomicFloat is a lock-free float64 cell; the zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// AtomicString is a lock-free string cell; the zero value reads ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, cut to at most maxStringLen bytes on a rune boundary
func (s *AtomicString) Store(val string) {
	val = clip(val, maxStringLen)
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
