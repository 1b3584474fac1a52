package importer

import (
	"path/filepath"
	"testing"
)

func TestClassifyArchive_ByName(t *testing.T) {
	cases := []struct {
		path string
		want Classification
	}{
		{"l_amat.zip", ClassLicense},
		{"l_micro_20240105.zip", ClassLicense},
		{"uls_license_weekly.zip", ClassLicense},
		{"a_amat.zip", ClassApplication},
		{"a_micro_20240105.zip", ClassApplication},
		{"pending_applications.zip", ClassApplication},
	}
	for _, c := range cases {
		// Name resolution must not require the file to exist.
		if got := ClassifyArchive(filepath.Join("/nonexistent", c.path)); got != c.want {
			t.Fatalf("ClassifyArchive(%s) = %s, want %s", c.path, got, c.want)
		}
	}
}

func TestClassifyArchive_ByContentAnchor(t *testing.T) {
	tmp := t.TempDir()

	appZip := filepath.Join(tmp, "weekly_20240105.zip")
	buildZip(t, appZip, []zipMember{
		{"HD.dat", "HD|1000001|KA1AAA|A\n"},
		{"AD.dat", "AD|1000001|0001234567|NE|N\n"},
	})
	if got := ClassifyArchive(appZip); got != ClassApplication {
		t.Fatalf("expected application for archive with AD anchor, got %s", got)
	}

	licZip := filepath.Join(tmp, "weekly_20240106.zip")
	buildZip(t, licZip, []zipMember{
		{"HD.dat", "HD|1000001|KA1AAA|A\n"},
	})
	if got := ClassifyArchive(licZip); got != ClassLicense {
		t.Fatalf("expected license for archive without AD anchor, got %s", got)
	}
}

func TestClassifyArchive_FailOpenDefaultsToLicense(t *testing.T) {
	// Neither the name nor the content (file missing) resolves.
	if got := ClassifyArchive(filepath.Join(t.TempDir(), "weekly_20240105.zip")); got != ClassLicense {
		t.Fatalf("expected fail-open license default, got %s", got)
	}
}

func TestParseClassification(t *testing.T) {
	if c, err := ParseClassification(""); err != nil || c != "" {
		t.Fatalf("expected empty override, got %q err=%v", c, err)
	}
	if c, err := ParseClassification("License"); err != nil || c != ClassLicense {
		t.Fatalf("expected license, got %q err=%v", c, err)
	}
	if c, err := ParseClassification("APPLICATION"); err != nil || c != ClassApplication {
		t.Fatalf("expected application, got %q err=%v", c, err)
	}
	if _, err := ParseClassification("bogus"); err == nil {
		t.Fatal("expected error for unknown classification")
	}
}
