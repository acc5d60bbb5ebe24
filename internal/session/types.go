package session

import "io"

// Upload is one file received from a client.
type Upload struct {
	Filename string // as sent by the client, unsanitized
	Size     int64
	Content  io.Reader
}

// Result describes one successfully converted upload.
type Result struct {
	Original  string // client filename
	PDF       string // output filename inside the session
	SessionID string
	Pages     int // 0 when no inspector is configured
}

// FileError describes one upload that could not be converted.
// Kind is ErrUnsupportedExtension or ErrRenderingFailure.
type FileError struct {
	Filename string
	Kind     error
	Message  string // localized, user-facing
}

func (e FileError) Error() string {
	return e.Message
}

func (e FileError) Unwrap() error {
	return e.Kind
}

// Outcome is the per-file result of a conversion. Exactly one field is set.
type Outcome struct {
	Result  *Result
	Failure *FileError
}

// Manifest summarizes a conversion request.
type Manifest struct {
	SessionID string
	Results   []Result
	Errors    []FileError
}

// Messages returns the user-facing messages of the failed files, in upload order.
func (m *Manifest) Messages() []string {
	return errorMessages(m.Errors)
}

// Messages returns the user-facing messages of the failed files, in upload order.
func (e *ConversionFailedError) Messages() []string {
	return errorMessages(e.Errors)
}

func errorMessages(errs []FileError) []string {
	out := make([]string, len(errs))
	for i, fe := range errs {
		out[i] = fe.Message
	}
	return out
}
