package upload

import (
	"errors"
	"fmt"
)

// Code identifies a class of upload validation failure.
type Code string

const (
	CodeExtension             Code = "EXTENSION"
	CodeSize                  Code = "SIZE"
	CodeMIMEType              Code = "MIME_TYPE"
	CodeZipIntegrity          Code = "ZIP_INTEGRITY"
	CodeZipCorruptedFiles     Code = "ZIP_CORRUPTED_FILES"
	CodeZipExpansion          Code = "ZIP_EXPANSION"
	CodeZipContents           Code = "ZIP_CONTENTS"
	CodeXMLWellFormedness     Code = "XML_WELLFORMEDNESS"
	CodeFilesWellFormedness   Code = "FILES_WELLFORMEDNESS"
	CodeXMLSchemaConformity   Code = "XML_SCHEMA_CONFORMITY"
	CodeFilesSchemaConformity Code = "FILES_SCHEMA_CONFORMITY"
)

// User facing messages, one per Code. MIME type, size and expansion messages
// are formatted with the offending values.
const (
	MessageExtension             = "Upload must be in .zip or .xml format."
	MessageSize                  = "Upload too large. The current limit is %sMB."
	MessageMIMEType              = "File appears to be in %s format, but it is not (MIME-type: %s)."
	MessageZipIntegrity          = "Archive is corrupted"
	MessageZipCorruptedFiles     = "Archive contains corrupted files"
	MessageZipExpansion          = "Archive contents exceed the current limit of %sMB when extracted."
	MessageZipContents           = "Archive contains files that are not in XML format"
	MessageXMLWellFormedness     = "XML file is not well-formed"
	MessageFilesWellFormedness   = "Archive contains XML files that are not well-formed"
	MessageXMLSchemaConformity   = "XML file does not validate against TrendMiner XML Schema"
	MessageFilesSchemaConformity = "Archive contains XML files that do not validate against the TrendMiner XML schema"
)

// ValidationError reports why an upload was rejected. Message is safe to show
// to the uploader; Cause keeps the underlying parser or archive error.
type ValidationError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func newError(code Code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

func wrapError(code Code, message string, cause error) *ValidationError {
	return &ValidationError{Code: code, Message: message, Cause: cause}
}

// IsCode reports whether err is a *ValidationError with the given code.
func IsCode(err error, code Code) bool {
	var e *ValidationError
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf extracts the validation code from err, or "" when err is not a
// *ValidationError.
func CodeOf(err error) Code {
	var e *ValidationError
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
