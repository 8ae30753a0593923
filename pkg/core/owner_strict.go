//go:build debug

package core

const strictOwners = true
