package core

import "fmt"

// WarningCode classifies an advisory condition.
type WarningCode string

const (
	// WarnIsothermal flags a constant temperature handed to a ramp model.
	WarnIsothermal WarningCode = "isothermal"

	// WarnSourceKind flags time data of a kind the model was not designed for.
	WarnSourceKind WarningCode = "source-kind"
)

// Warning is a non-fatal diagnostic attached to a result.
type Warning struct {
	Code    WarningCode
	Message string
}

// String renders the warning as "code: message".
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// SourceKind names the instrument or experiment a time series came from.
type SourceKind string

const (
	// KindRpoThermogram is a Ramped PyrOx thermogram (CO2 evolution vs. ramped T).
	KindRpoThermogram SourceKind = "rpo-thermogram"

	// KindSynthetic is a series generated in code (tests, forward models).
	KindSynthetic SourceKind = "synthetic"

	// KindUnknown is the zero value.
	KindUnknown SourceKind = ""
)
