package upload

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

var errNoRoot = errors.New("document has no root element")

func newDecoder(data []byte) *xml.Decoder {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = true
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder
}

// checkWellFormed tokenizes data to EOF and requires exactly one root element
// with no text outside it.
func checkWellFormed(data []byte) error {
	decoder := newDecoder(data)
	depth, roots := 0, 0
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return fmt.Errorf("second root element <%s>", t.Name.Local)
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && strings.TrimSpace(string(t)) != "" {
				return errors.New("text outside the root element")
			}
		}
	}
	if roots == 0 {
		return errNoRoot
	}
	return nil
}

// element is a parsed child of the document root.
type element struct {
	name string
	text string
}

// parseShallow returns the root element name and its direct children with
// their trimmed text content.
func parseShallow(data []byte) (string, []element, error) {
	decoder := newDecoder(data)
	var (
		root     string
		children []element
		current  *strings.Builder
		depth    int
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				root = t.Name.Local
			case 2:
				children = append(children, element{name: t.Name.Local})
				current = &strings.Builder{}
			}
		case xml.EndElement:
			if depth == 2 && current != nil {
				children[len(children)-1].text = strings.TrimSpace(current.String())
				current = nil
			}
			depth--
		case xml.CharData:
			if depth >= 2 && current != nil {
				current.Write(t)
			}
		}
	}
	if root == "" {
		return "", nil, errNoRoot
	}
	return root, children, nil
}
