//go:build !linux || !amd64

package jit

// Supported reports whether compiled programs can run on this target.
func Supported() bool {
	return false
}

// Code is a compiled program resident in executable memory. It cannot be
// obtained on this target.
type Code struct{}

// Load always fails on this target.
func Load(code []byte) (*Code, error) {
	return nil, ErrUnsupportedTarget
}

func (c *Code) Run(cells []byte) {}

func (c *Code) Release() error {
	return nil
}
