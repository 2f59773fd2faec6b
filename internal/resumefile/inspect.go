// Package resumefile checks a resume file before it is uploaded.
package resumefile

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC  = "application/msword"
)

// Extensions accepted by the upload form.
var Extensions = []string{".pdf", ".doc", ".docx"}

var (
	// ErrEmptyFile is returned for zero-byte files.
	ErrEmptyFile = errors.New("resume file is empty")
	// ErrUnsupportedType is returned for extensions other than .pdf, .doc and .docx.
	ErrUnsupportedType = errors.New("unsupported resume type (want .pdf, .doc or .docx)")
)

// TooLargeError is returned when a file exceeds the upload limit.
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("resume is %s, larger than the %s upload limit", HumanSize(e.Size), HumanSize(e.Limit))
}

// Info describes a resume file as shown before upload.
type Info struct {
	Path       string
	Name       string
	Size       int64
	Ext        string
	MIME       string
	Pages      int
	TextLength int
	Warnings   []string
}

// HumanSize returns Size formatted for display.
func (i *Info) HumanSize() string {
	return HumanSize(i.Size)
}

// Inspect stats, sniffs and, for PDF and DOCX, extracts the text of the file at path.
// A maxBytes of zero disables the size check. Problems the server would reject later
// are reported as Warnings rather than errors.
func Inspect(path string, maxBytes int64) (*Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat resume: %w", err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	info := &Info{
		Path: path,
		Name: filepath.Base(path),
		Size: st.Size(),
		Ext:  strings.ToLower(filepath.Ext(path)),
	}
	if !supported(info.Ext) {
		return info, ErrUnsupportedType
	}
	if info.Size == 0 {
		return info, ErrEmptyFile
	}
	if maxBytes > 0 && info.Size > maxBytes {
		return info, &TooLargeError{Size: info.Size, Limit: maxBytes}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	mtype := mimetype.Detect(data)
	info.MIME = mtype.String()
	if want := mimeForExt(info.Ext); !mtype.Is(want) {
		info.Warnings = append(info.Warnings, fmt.Sprintf("content looks like %s, not %s", info.MIME, want))
	}

	var text string
	switch {
	case mtype.Is(MimePDF):
		text, info.Pages, err = extractPDF(data)
	case mtype.Is(MimeDOCX), info.Ext == ".docx" && mtype.Is("application/zip"):
		text, err = extractDOCX(data)
	default:
		info.Warnings = append(info.Warnings, "text could not be checked for this file type")
		return info, nil
	}
	if err != nil {
		info.Warnings = append(info.Warnings, fmt.Sprintf("failed to read text: %v", err))
	}
	info.TextLength = len([]rune(strings.TrimSpace(text)))
	if info.TextLength == 0 {
		info.Warnings = append(info.Warnings, "no extractable text; scanned resumes cannot be analyzed")
	}
	return info, nil
}

func supported(ext string) bool {
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func mimeForExt(ext string) string {
	switch ext {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	default:
		return MimeDOC
	}
}

func extractPDF(data []byte) (text string, pages int, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, err
	}
	pages = r.NumPage()
	plain, err := r.GetPlainText()
	if err != nil {
		return "", pages, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", pages, err
	}
	return buf.String(), pages, nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()
	return stripXML(doc.Editable().GetContent()), nil
}

// stripXML keeps the text runs of document.xml, one line per paragraph.
func stripXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var sb strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p", "br":
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// HumanSize formats a byte count as "512 B", "12.3 KB" or "1.50 MB".
func HumanSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	}
}
