package upload_test

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-trendminer/pkg/testsupport"
	"github.com/goliatone/go-trendminer/pkg/upload"
)

const notXML = "This is not valid XML."

const nonConformingXML = "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"no\" ?>\n<document></document>"

func validate(t *testing.T, f upload.File, options ...upload.Option) upload.Result {
	t.Helper()
	result, err := upload.NewPipeline(options...).Validate(context.Background(), f)
	if err != nil {
		t.Fatalf("validate %s: %v", f.Name, err)
	}
	return result
}

func expectCode(t *testing.T, result upload.Result, code upload.Code) {
	t.Helper()
	if result.Valid {
		t.Fatalf("expected %s failure, upload was accepted", code)
	}
	if !result.Has(code) {
		t.Fatalf("expected %s failure, got %v", code, result.Messages())
	}
}

func TestExtensionValidator(t *testing.T) {
	result := validate(t, upload.NewFile("fake.png", make([]byte, 1024)))

	expectCode(t, result, upload.CodeExtension)
	if diff := cmp.Diff([]string{upload.MessageExtension}, result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestExtensionValidator_IgnoresCase(t *testing.T) {
	f := upload.NewFile("ITEM.XML", []byte(testsupport.ConformingItemXML))
	if err := upload.ValidateExtension(context.Background(), f); err != nil {
		t.Fatalf("expected upper-case extension to pass: %v", err)
	}
}

func TestSizeValidator(t *testing.T) {
	validator := upload.ValidateSize(upload.DefaultMaxUploadSize)

	for _, name := range []string{"big.zip", "big.xml"} {
		err := validator(context.Background(), upload.File{Name: name, Size: upload.DefaultMaxUploadSize + 1})
		if !upload.IsCode(err, upload.CodeSize) {
			t.Fatalf("%s: expected size error, got %v", name, err)
		}
		verr := err.(*upload.ValidationError)
		if verr.Message != "Upload too large. The current limit is 10MB." {
			t.Fatalf("unexpected message %q", verr.Message)
		}
	}

	if err := validator(context.Background(), upload.File{Name: "ok.xml", Size: upload.DefaultMaxUploadSize}); err != nil {
		t.Fatalf("file at the limit must pass: %v", err)
	}
}

func TestSizeValidator_PipelineLimit(t *testing.T) {
	result := validate(t, upload.NewFile("item.xml", []byte(testsupport.ConformingItemXML)), upload.WithMaxSize(16))
	expectCode(t, result, upload.CodeSize)
}

func TestMIMETypeValidator(t *testing.T) {
	for _, ext := range []string{".zip", ".xml"} {
		result := validate(t, upload.NewFile("fake"+ext, make([]byte, 1024)))
		expectCode(t, result, upload.CodeMIMEType)

		want := "File appears to be in " + ext + " format, but it is not (MIME-type: application/octet-stream)."
		found := false
		for _, msg := range result.Messages() {
			if msg == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %q in %v", want, result.Messages())
		}
	}
}

func TestMIMETypeValidator_AcceptsEmptyArchive(t *testing.T) {
	f := upload.NewFile("empty.zip", testsupport.MustZip(t))
	if err := upload.ValidateMIMEType(context.Background(), f); err != nil {
		t.Fatalf("empty archive must pass the MIME check: %v", err)
	}
	if got := upload.DetectMIMEType(f.Content); got != "application/zip" {
		t.Fatalf("DetectMIMEType() = %q, want application/zip", got)
	}
}

func TestMIMETypeValidator_AcceptsMarkupNamedLikeHTML(t *testing.T) {
	for _, doc := range []string{"<a><b/></a>", "<html><item/></html>", "<p>text</p>"} {
		f := upload.NewFile("item.xml", []byte(doc))
		if err := upload.ValidateMIMEType(context.Background(), f); err != nil {
			t.Fatalf("%s: expected XML upload to pass the MIME check: %v", doc, err)
		}
	}
}

func TestZipIntegrityValidator(t *testing.T) {
	body := strings.Repeat("<item></item>", 8)
	archive := testsupport.MustZip(t, testsupport.ZipEntry{Name: "item.xml", Body: body, Store: true})

	idx := bytes.Index(archive, []byte(body))
	if idx < 0 {
		t.Fatalf("stored body not found in archive")
	}
	corrupt := append([]byte(nil), archive...)
	corrupt[idx+3] ^= 0xff

	result := validate(t, upload.NewFile("corrupt.zip", corrupt))
	expectCode(t, result, upload.CodeZipCorruptedFiles)
}

func TestZipExpansionLimit(t *testing.T) {
	body := "<item>" + strings.Repeat("<TESTO>aaaaaaaaaaaaaaaa</TESTO>", 80000) + "</item>"
	archive := testsupport.MustZip(t, testsupport.ZipEntry{Name: "item.xml", Body: body})
	if len(archive) > 1<<20 {
		t.Fatalf("archive should compress well below the limit, got %d bytes", len(archive))
	}

	result := validate(t, upload.NewFile("bomb.zip", archive), upload.WithMaxExpandedSize(1<<20))

	want := []string{"Archive contents exceed the current limit of 1MB when extracted."}
	if diff := cmp.Diff(want, result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	expectCode(t, result, upload.CodeZipExpansion)
	if result.Has(upload.CodeZipCorruptedFiles) {
		t.Fatalf("expansion must not be reported as corruption")
	}
}

func TestZipExpansionLimit_DefaultsToRatio(t *testing.T) {
	body := "<item>" + strings.Repeat("<TESTO></TESTO>", 1<<16) + "</item>"
	archive := testsupport.MustZip(t,
		testsupport.ZipEntry{Name: "a.xml", Body: body},
		testsupport.ZipEntry{Name: "b.xml", Body: body},
	)

	result := validate(t, upload.NewFile("items.zip", archive), upload.WithMaxSize(1<<16))
	expectCode(t, result, upload.CodeZipExpansion)
	want := "Archive contents exceed the current limit of 1.25MB when extracted."
	if messages := result.Messages(); !slices.Contains(messages, want) {
		t.Fatalf("expected %q in %v", want, messages)
	}

	result = validate(t, upload.NewFile("items.zip", archive))
	if result.Has(upload.CodeZipExpansion) {
		t.Fatalf("archive is within the default limit: %v", result.Messages())
	}
}

func TestZipContentsValidator(t *testing.T) {
	archive := testsupport.MustZip(t, testsupport.ZipEntry{Name: "fake.png", Body: string(make([]byte, 1024))})

	result := validate(t, upload.NewFile("png.zip", archive))
	expectCode(t, result, upload.CodeZipContents)
	if result.Has(upload.CodeMIMEType) {
		t.Fatalf("real archive must pass the MIME check: %v", result.Messages())
	}
}

func TestWellFormednessValidator(t *testing.T) {
	result := validate(t, upload.NewFile("malformed.xml", []byte(notXML)))
	expectCode(t, result, upload.CodeXMLWellFormedness)

	archive := testsupport.MustZip(t, testsupport.ZipEntry{Name: "malformed.xml", Body: notXML})
	result = validate(t, upload.NewFile("malformed-xml.zip", archive))
	expectCode(t, result, upload.CodeFilesWellFormedness)
}

func TestWellFormednessValidator_UnclosedElement(t *testing.T) {
	err := upload.ValidateWellFormedness(context.Background(), upload.NewFile("open.xml", []byte("<item><data>")))
	if !upload.IsCode(err, upload.CodeXMLWellFormedness) {
		t.Fatalf("expected well-formedness error, got %v", err)
	}
}

func TestSchemaValidator(t *testing.T) {
	result := validate(t, upload.NewFile("valid.xml", []byte(nonConformingXML)))
	expectCode(t, result, upload.CodeXMLSchemaConformity)
	if result.Has(upload.CodeXMLWellFormedness) {
		t.Fatalf("document is well-formed: %v", result.Messages())
	}

	archive := testsupport.MustZip(t, testsupport.ZipEntry{Name: "valid.xml", Body: nonConformingXML})
	result = validate(t, upload.NewFile("valid-xml.zip", archive))
	expectCode(t, result, upload.CodeFilesSchemaConformity)
}

func TestSuccessfulUploads(t *testing.T) {
	result := validate(t, upload.NewFile("schema-conforming.xml", []byte(testsupport.ConformingItemXML)))
	if !result.Valid {
		t.Fatalf("expected conforming XML to pass, got %v", result.Messages())
	}

	archive := testsupport.MustZip(t, testsupport.ZipEntry{Name: "schema-conforming.xml", Body: testsupport.ConformingItemXML})
	result = validate(t, upload.NewFile("schema-conforming-xml.zip", archive))
	if !result.Valid {
		t.Fatalf("expected conforming archive to pass, got %v", result.Messages())
	}
}

func TestArchiveSkipsMetadataMember(t *testing.T) {
	archive := testsupport.MustZip(t,
		testsupport.ZipEntry{Name: "om.xml", Body: notXML},
		testsupport.ZipEntry{Name: "item.xml", Body: testsupport.ConformingItemXML},
	)
	result := validate(t, upload.NewFile("with-metadata.zip", archive))
	if !result.Valid {
		t.Fatalf("om.xml must be skipped, got %v", result.Messages())
	}
}

func TestLatin1Document(t *testing.T) {
	doc := strings.Replace(testsupport.ConformingItemXML, "<TESTO></TESTO>", "<TESTO>caff\xe8</TESTO>", 1)
	doc = "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" + doc

	result := validate(t, upload.NewFile("latin1.xml", []byte(doc)))
	if !result.Valid {
		t.Fatalf("expected ISO-8859-1 document to pass, got %v", result.Messages())
	}
}

func TestPipeline_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := upload.NewPipeline().Validate(ctx, upload.NewFile("item.xml", []byte(testsupport.ConformingItemXML))); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestPipeline_UnexpectedValidatorError(t *testing.T) {
	boom := func(context.Context, upload.File) error { return context.DeadlineExceeded }
	pipeline := upload.NewPipeline(upload.WithValidators(boom))

	if _, err := pipeline.Validate(context.Background(), upload.NewFile("a.xml", nil)); err == nil {
		t.Fatalf("expected non-validation error to abort the pipeline")
	}
}

func TestPipeline_RecordsMaxSize(t *testing.T) {
	f := upload.NewFile("item.xml", []byte(testsupport.ConformingItemXML))
	if got := validate(t, f).MaxSize; got != upload.DefaultMaxUploadSize {
		t.Fatalf("MaxSize = %d, want %d", got, upload.DefaultMaxUploadSize)
	}
	if got := validate(t, f, upload.WithMaxSize(3<<20)).MaxSize; got != 3<<20 {
		t.Fatalf("MaxSize = %d, want %d", got, 3<<20)
	}
}

func TestResult_Messages(t *testing.T) {
	result := upload.Result{Errors: []*upload.ValidationError{
		{Code: upload.CodeExtension, Message: "  " + upload.MessageExtension + " "},
		{Code: "BLANK", Message: " "},
		{Code: upload.CodeExtension, Message: upload.MessageExtension},
		{Code: upload.CodeXMLWellFormedness, Message: upload.MessageXMLWellFormedness},
	}}

	want := []string{upload.MessageExtension, upload.MessageXMLWellFormedness}
	if diff := cmp.Diff(want, result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if got := (upload.Result{Valid: true}).Messages(); got != nil {
		t.Fatalf("expected nil messages, got %v", got)
	}
}

func TestPipeline_ExtraValidators(t *testing.T) {
	reject := func(_ context.Context, f upload.File) error {
		if strings.HasPrefix(f.Name, "draft") {
			return &upload.ValidationError{Code: "DRAFT", Message: "Drafts cannot be analysed"}
		}
		return nil
	}
	result := validate(t, upload.NewFile("draft.xml", []byte(testsupport.ConformingItemXML)), upload.WithExtraValidators(reject))

	if diff := cmp.Diff([]string{"Drafts cannot be analysed"}, result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}
