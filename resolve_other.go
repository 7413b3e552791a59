//go:build !windows

package main

func newResolver() Resolver {
	return identityResolver{}
}
