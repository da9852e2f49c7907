package source

import (
	"github.com/hupe1980/tickscan/internal/fs"
	"github.com/hupe1980/tickscan/internal/mmap"
	"github.com/hupe1980/tickscan/internal/resource"
)

// Advice is an access-pattern hint for mapped sources.
type Advice = mmap.AccessPattern

const (
	AdviceNormal     Advice = mmap.AccessDefault
	AdviceSequential Advice = mmap.AccessSequential
	AdviceRandom     Advice = mmap.AccessRandom
	AdviceWillNeed   Advice = mmap.AccessWillNeed
)

// ParseAdvice parses "default", "sequential", "random" or "willneed".
func ParseAdvice(s string) (Advice, error) {
	return mmap.ParseAccessPattern(s)
}

// Option configures a source constructor.
type Option func(*options)

type options struct {
	advice Advice
	rc     *resource.Controller
	fs     fs.FileSystem
}

func applyOptions(opts []Option) options {
	o := options{advice: AdviceNormal, fs: fs.Default}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithAdvice passes an access-pattern hint to the kernel for mapped sources.
// Buffered sources ignore it.
func WithAdvice(a Advice) Option {
	return func(o *options) { o.advice = a }
}

// WithController charges buffered allocations against rc's memory budget and
// throttles blob reads with its IO limiter. A nil controller imposes no limits.
func WithController(rc *resource.Controller) Option {
	return func(o *options) { o.rc = rc }
}

// WithFS sets the file system used by buffered and compressed sources.
func WithFS(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}
