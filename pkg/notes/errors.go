package notes

// ValidationError reports missing or unusable caller input. The relay maps it
// to a 400 rejection; it is never logged as a system fault.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func errMissing(field string) error {
	return &ValidationError{Msg: "missing " + field}
}

func errUnknownClient(id string) error {
	return &ValidationError{Msg: "unknown client: " + id}
}
