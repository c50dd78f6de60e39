package domain

// ExtractionError reports that the extraction tool could not resolve
// metadata for, or download, the requested URL.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return "extraction: " + e.Err.Error() }
func (e *ExtractionError) Unwrap() error { return e.Err }

// TransformError reports a failed re-encode.
type TransformError struct {
	Err error
}

func (e *TransformError) Error() string { return "transform: " + e.Err.Error() }
func (e *TransformError) Unwrap() error { return e.Err }

// DeliveryError reports that the chat platform rejected an upload or
// a message edit.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return "delivery: " + e.Err.Error() }
func (e *DeliveryError) Unwrap() error { return e.Err }
