package reactive

// Reporter receives errors the reactive substrate cannot propagate to the
// mutator (spec §7: "delivered... through an optional process-wide error
// reporter"). Defaults to a no-op; flexterm.SetErrorReporter wires the
// root package's reporter through to here.
type Reporter func(scope string, err error)

var reporter Reporter = func(string, error) {}

// SetReporter installs the process-wide error reporter.
func SetReporter(r Reporter) {
	if r == nil {
		r = func(string, error) {}
	}
	reporter = r
}

// Report delivers an error through the installed reporter.
func Report(scope string, err error) {
	if err == nil {
		return
	}
	reporter(scope, err)
}
