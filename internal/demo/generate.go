package demo

// namedgen:start
//go:generate go run github.com/phobologic/namedgen
// namedgen:end
