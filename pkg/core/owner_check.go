package core

import "github.com/go-drift/dwidget/pkg/errors"

// checkOwner is called when an operation finds no slot for the owner. Normal
// builds degrade to the default value; builds tagged debug panic.
func checkOwner(d Dependency, op string, o Owner) {
	if !strictOwners {
		return
	}
	panic(&errors.OwnerError{Dependency: d.Name(), Op: op, Owner: describe(o)})
}
