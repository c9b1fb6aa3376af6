package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error at the operation boundary.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindTimeout
	KindAuth
	KindHTTP
	KindNetwork
	KindStorage
	KindDecode
)

var kindNames = map[Kind]string{
	KindUnknown:    "UnknownError",
	KindValidation: "ValidationError",
	KindTimeout:    "TimeoutError",
	KindAuth:       "AuthError",
	KindHTTP:       "HttpError",
	KindNetwork:    "NetworkError",
	KindStorage:    "StorageError",
	KindDecode:     "DecodeError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownError"
}

// Messages shown to the user.
const (
	MsgValidation = "Please enter both URL and API Key"
	MsgTimeout    = "Request timed out!"
	MsgAuth       = "Invalid API Key or URL."
	MsgMissing    = "URL or API key is missing!"
)

type Error interface {
	error
	ErrCode() int
}

// Err carries a Kind, an optional HTTP status code and the user-facing message.
type Err struct {
	Kind Kind
	Code int
	Msg  string
	Err  error
}

func (e *Err) ErrCode() int {
	return e.Code
}

func (e *Err) Error() string {
	return e.Msg
}

func (e *Err) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Err {
	return &Err{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, err error, format string, args ...interface{}) *Err {
	return &Err{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func Validation() *Err {
	return New(KindValidation, MsgValidation)
}

func Timeout(err error) *Err {
	return &Err{Kind: KindTimeout, Msg: MsgTimeout, Err: err}
}

func Auth(code int) *Err {
	return &Err{Kind: KindAuth, Code: code, Msg: MsgAuth}
}

// HTTP builds the generic non-2xx error. detail is appended when the server
// sent something readable, e.g. the title of an HTML error page.
func HTTP(code int, detail string) *Err {
	msg := fmt.Sprintf("Unexpected error! Status: %d", code)
	if detail != "" {
		msg += " (" + detail + ")"
	}
	return &Err{Kind: KindHTTP, Code: code, Msg: msg}
}

func Network(err error) *Err {
	return Wrap(KindNetwork, err, "Network request failed: %v", err)
}

func Storage(err error) *Err {
	return Wrap(KindStorage, err, "Could not access credential storage: %v", err)
}

func Decode(err error) *Err {
	return Wrap(KindDecode, err, "Unexpected response from server: %v", err)
}

// KindOf returns the Kind of the first *Err in the chain.
func KindOf(err error) Kind {
	var e *Err
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// CodeOf returns the HTTP status carried by err, or 0.
func CodeOf(err error) int {
	var e Error
	if errors.As(err, &e) {
		return e.ErrCode()
	}
	return 0
}
