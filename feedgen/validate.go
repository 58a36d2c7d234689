package feedgen

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

// ValidateXML confirms a rendered document is well-formed XML by
// walking every token. A failure here means the serializer produced
// broken output, which callers treat as fatal.
func ValidateXML(doc []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
