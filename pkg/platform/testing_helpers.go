package platform

// SetupTestDispatch installs a synchronous dispatch function for tests and
// registers its removal with cleanup.
//
//	platform.SetupTestDispatch(t.Cleanup)
func SetupTestDispatch(cleanup func(func())) {
	RegisterDispatch(func(cb func()) { cb() })
	cleanup(func() { RegisterDispatch(nil) })
}
