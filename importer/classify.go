package importer

import (
	"archive/zip"
	"bufio"
	"fmt"
	"log"
	"path/filepath"
	"strings"
)

// Classification is the logical role of an archive's records. License
// archives load before application archives because application rows
// reference identifiers introduced by license rows; the store does not
// enforce that relationship itself.
type Classification string

const (
	ClassLicense     Classification = "license"
	ClassApplication Classification = "application"
)

// classifyAnchor is the member whose record tag distinguishes application
// exports; license exports do not carry AD (application detail) records.
const classifyAnchor = "AD" + dataFileExt

// ClassifyArchive resolves an archive's classification. Resolution order:
// file-name convention, then zip content inspection, then fail-open to
// license with a warning. Misclassification only affects load ordering, not
// per-table correctness, so defaulting is deliberate. Note the default can
// load application data ahead of its licenses; that matches the published
// datasets this pipeline was built against and is kept on purpose.
func ClassifyArchive(path string) Classification {
	if c, ok := classifyByName(filepath.Base(path)); ok {
		return c
	}
	if c, ok := classifyByContent(path); ok {
		return c
	}
	log.Printf("warn: cannot classify archive %s, assuming %s", path, ClassLicense)
	return ClassLicense
}

func classifyByName(base string) (Classification, bool) {
	name := strings.ToLower(base)
	switch {
	case strings.HasPrefix(name, "l_") || strings.Contains(name, "license"):
		return ClassLicense, true
	case strings.HasPrefix(name, "a_") || strings.Contains(name, "application"):
		return ClassApplication, true
	}
	return "", false
}

// classifyByContent opens the archive and looks for the anchor data file. An
// AD record tag on its first line marks an application archive; a readable
// archive without the anchor is a license archive. Unreadable archives are
// inconclusive.
func classifyByContent(path string) (Classification, bool) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", false
	}
	defer zr.Close()

	for _, member := range zr.File {
		if !strings.EqualFold(filepath.Base(member.Name), classifyAnchor) {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return "", false
		}
		sc := bufio.NewScanner(rc)
		sc.Buffer(make([]byte, 64*1024), maxLineBytes)
		tagged := false
		if sc.Scan() {
			tag := strings.SplitN(sc.Text(), "|", 2)[0]
			tagged = strings.EqualFold(strings.TrimSpace(tag), "AD")
		}
		rc.Close()
		if tagged {
			return ClassApplication, true
		}
	}
	return ClassLicense, true
}

// ParseClassification parses a user-supplied classification override. Empty
// input means no override.
func ParseClassification(s string) (Classification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case string(ClassLicense):
		return ClassLicense, nil
	case string(ClassApplication):
		return ClassApplication, nil
	}
	return "", fmt.Errorf("unsupported classification: %q", s)
}
