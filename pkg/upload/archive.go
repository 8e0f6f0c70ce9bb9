package upload

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// errExpansionLimit is returned once extracting an archive would exceed its
// expansion budget.
var errExpansionLimit = errors.New("archive expansion limit exceeded")

func openArchive(f File) (*zip.Reader, error) {
	return zip.NewReader(bytes.NewReader(f.Content), int64(len(f.Content)))
}

// xmlMembers yields the archive's XML documents, skipping directories,
// non-XML entries and the om.xml metadata file. Members that cannot be read
// are skipped and iteration stops once limit bytes have been extracted;
// ValidateZipIntegrity reports both.
func xmlMembers(ctx context.Context, archive *zip.Reader, limit int64, fn func(name string, data []byte) error) error {
	budget := limit
	for _, member := range archive.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if member.FileInfo().IsDir() {
			continue
		}
		base := path.Base(member.Name)
		if !strings.HasSuffix(strings.ToLower(base), extXML) || base == metadataMember {
			continue
		}
		data, err := readMember(member, &budget)
		if errors.Is(err, errExpansionLimit) {
			return nil
		}
		if err != nil {
			continue
		}
		if err := fn(member.Name, data); err != nil {
			return err
		}
	}
	return nil
}

func readMember(member *zip.File, budget *int64) ([]byte, error) {
	var buf bytes.Buffer
	if err := extractMember(member, &buf, budget); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// extractMember decompresses member into w and charges the bytes written to
// budget. The declared size is checked before any data is inflated.
func extractMember(member *zip.File, w io.Writer, budget *int64) error {
	if *budget < 0 || member.UncompressedSize64 > uint64(*budget) {
		return errExpansionLimit
	}
	rc, err := member.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	n, err := io.Copy(w, io.LimitReader(rc, *budget+1))
	*budget -= n
	if err != nil {
		return err
	}
	if *budget < 0 {
		return errExpansionLimit
	}
	return nil
}
