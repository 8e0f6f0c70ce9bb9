package upload

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Validator inspects a File and returns a *ValidationError when it must be
// rejected. Any other error aborts the pipeline.
type Validator func(ctx context.Context, f File) error

// DefaultMaxUploadSize is the upload limit used when none is configured.
const DefaultMaxUploadSize int64 = 10 << 20

// DefaultExpansionRatio bounds the extracted size of an archive as a multiple
// of the upload limit when WithMaxExpandedSize is not given.
const DefaultExpansionRatio = 20

var (
	zipMIMETypes = []string{"application/zip", "application/x-zip", "application/x-zip-compressed"}
	xmlMIMETypes = []string{"application/xml", "text/xml", "text/plain"}
)

func formatMB(limit int64) string {
	return strconv.FormatFloat(float64(limit)/(1<<20), 'f', -1, 64)
}

// ValidateExtension accepts .zip and .xml names, ignoring case.
func ValidateExtension(_ context.Context, f File) error {
	if f.IsZip() || f.IsXML() {
		return nil
	}
	return newError(CodeExtension, MessageExtension)
}

// ValidateSize rejects files larger than limit bytes. A non-positive limit
// falls back to DefaultMaxUploadSize.
func ValidateSize(limit int64) Validator {
	if limit <= 0 {
		limit = DefaultMaxUploadSize
	}
	message := fmt.Sprintf(MessageSize, formatMB(limit))
	return func(_ context.Context, f File) error {
		if f.Size > limit {
			return newError(CodeSize, message)
		}
		return nil
	}
}

// DetectMIMEType sniffs the media type of content, without parameters.
func DetectMIMEType(content []byte) string {
	mediaType, _, _ := strings.Cut(mimetype.Detect(content).String(), ";")
	return strings.TrimSpace(mediaType)
}

// matchesMIME reports whether detected, or one of the formats it is derived
// from, is in allowed. Office documents and jars are zips; HTML and other
// markup are text.
func matchesMIME(detected *mimetype.MIME, allowed []string) bool {
	for m := detected; m != nil; m = m.Parent() {
		for _, candidate := range allowed {
			if m.Is(candidate) {
				return true
			}
		}
	}
	return false
}

// ValidateMIMEType checks that the sniffed content type agrees with the
// extension. Files with other extensions are left to ValidateExtension.
func ValidateMIMEType(_ context.Context, f File) error {
	var allowed []string
	switch {
	case f.IsZip():
		allowed = zipMIMETypes
	case f.IsXML():
		allowed = xmlMIMETypes
	default:
		return nil
	}
	if matchesMIME(mimetype.Detect(f.Content), allowed) {
		return nil
	}
	return newError(CodeMIMEType, fmt.Sprintf(MessageMIMEType, f.Ext(), DetectMIMEType(f.Content)))
}

// ValidateZipIntegrity reads every archive member so CRC and decompression
// failures surface. Extraction stops with CodeZipExpansion once the archive
// inflates past the expansion limit. Data that is not a zip archive at all is
// left to ValidateMIMEType.
func ValidateZipIntegrity(ctx context.Context, f File) error {
	if !f.IsZip() {
		return nil
	}
	archive, err := openArchive(f)
	if errors.Is(err, zip.ErrFormat) {
		return nil
	}
	if err != nil {
		return wrapError(CodeZipIntegrity, MessageZipIntegrity, err)
	}
	limit := f.expansionLimit()
	budget := limit
	for _, member := range archive.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if member.FileInfo().IsDir() {
			continue
		}
		err := extractMember(member, io.Discard, &budget)
		if errors.Is(err, errExpansionLimit) {
			return wrapError(CodeZipExpansion, fmt.Sprintf(MessageZipExpansion, formatMB(limit)), fmt.Errorf("%s: %w", member.Name, err))
		}
		if err != nil {
			return wrapError(CodeZipCorruptedFiles, MessageZipCorruptedFiles, fmt.Errorf("%s: %w", member.Name, err))
		}
	}
	return nil
}

// ValidateZipContents requires every archive member to be an XML file.
func ValidateZipContents(_ context.Context, f File) error {
	if !f.IsZip() {
		return nil
	}
	archive, err := openArchive(f)
	if err != nil {
		return nil
	}
	for _, member := range archive.File {
		if member.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(member.Name), "xml") {
			return wrapError(CodeZipContents, MessageZipContents, fmt.Errorf("member %s", member.Name))
		}
	}
	return nil
}

// ValidateWellFormedness parses XML uploads and the XML members of archives.
func ValidateWellFormedness(ctx context.Context, f File) error {
	switch {
	case f.IsXML():
		if err := checkWellFormed(f.Content); err != nil {
			return wrapError(CodeXMLWellFormedness, MessageXMLWellFormedness, err)
		}
	case f.IsZip():
		archive, err := openArchive(f)
		if err != nil {
			return nil
		}
		return xmlMembers(ctx, archive, f.expansionLimit(), func(name string, data []byte) error {
			if err := checkWellFormed(data); err != nil {
				return wrapError(CodeFilesWellFormedness, MessageFilesWellFormedness, fmt.Errorf("%s: %w", path.Base(name), err))
			}
			return nil
		})
	}
	return nil
}

// ValidateSchema checks XML uploads and archive members against schema. A nil
// schema uses DefaultSchema.
func ValidateSchema(schema *Schema) Validator {
	return func(ctx context.Context, f File) error {
		s := schema
		if s == nil {
			s = DefaultSchema()
		}
		switch {
		case f.IsXML():
			if err := s.Validate(f.Content); err != nil {
				return wrapError(CodeXMLSchemaConformity, MessageXMLSchemaConformity, err)
			}
		case f.IsZip():
			archive, err := openArchive(f)
			if err != nil {
				return nil
			}
			return xmlMembers(ctx, archive, f.expansionLimit(), func(name string, data []byte) error {
				if err := s.Validate(data); err != nil {
					return wrapError(CodeFilesSchemaConformity, MessageFilesSchemaConformity, fmt.Errorf("%s: %w", path.Base(name), err))
				}
				return nil
			})
		}
		return nil
	}
}
