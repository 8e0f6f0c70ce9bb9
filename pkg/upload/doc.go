// Package upload validates documents submitted for trend analysis.
//
// Accepted uploads are single XML documents or zip archives of XML documents.
// A Pipeline runs every Validator against a File and collects the failures,
// mirroring how form field validators report all problems at once:
//
//	pipeline := upload.NewPipeline(upload.WithMaxSize(20 << 20))
//	result, err := pipeline.Validate(ctx, file)
//	if err != nil {
//	    return err // cancellation or an unexpected validator failure
//	}
//	if !result.Valid {
//	    for _, msg := range result.Messages() {
//	        fmt.Println(msg)
//	    }
//	}
//
// Validators return *ValidationError values carrying a Code so callers can
// branch on the failure class without matching message text.
//
// Archive members named om.xml are metadata files and are skipped by the
// well-formedness and schema checks.
package upload
