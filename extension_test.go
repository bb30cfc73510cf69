package squish

import (
	"errors"
	"slices"
	"testing"
)

// silenceWarnings suppresses the warning sink for the duration of a
// test and restores it afterwards.
func silenceWarnings(t *testing.T) {
	t.Helper()
	prev := SetWarningSink(func(string) {})
	t.Cleanup(func() { SetWarningSink(prev) })
}

// captureWarnings records warnings emitted during a test.
func captureWarnings(t *testing.T) *[]string {
	t.Helper()
	var got []string
	prev := SetWarningSink(func(msg string) { got = append(got, msg) })
	t.Cleanup(func() { SetWarningSink(prev) })
	return &got
}

func TestParseFilename(t *testing.T) {
	silenceWarnings(t)

	tests := []struct {
		path        string
		wantStem    string
		wantDisplay []string
		wantFormats []CompressionFormat
	}{
		{"file", "file", nil, nil},
		{"tar", "tar", nil, nil},
		{".tar", ".tar", nil, nil},
		{"file.tar", "file", []string{"tar"}, []CompressionFormat{Tar}},
		{"file.tar.gz", "file", []string{"tar", "gz"}, []CompressionFormat{Tar, Gzip}},
		{".tar.gz", ".tar", []string{"gz"}, []CompressionFormat{Gzip}},
		{"file.tgz", "file", []string{"tgz"}, []CompressionFormat{Tar, Gzip}},
		{"file.zst.gz", "file", []string{"zst", "gz"}, []CompressionFormat{Zstd, Gzip}},
		{"dir/file.tar.gz", "dir/file", []string{"tar", "gz"}, []CompressionFormat{Tar, Gzip}},
		{"file.png", "file.png", nil, nil},
		{"file.png.gz", "file.png", []string{"gz"}, []CompressionFormat{Gzip}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			stem, chain, err := ParseFilename(tt.path)
			if err != nil {
				t.Fatalf("ParseFilename(%q) error: %v", tt.path, err)
			}
			if stem != tt.wantStem {
				t.Errorf("stem = %q, want %q", stem, tt.wantStem)
			}
			var display []string
			for _, ext := range chain {
				display = append(display, ext.String())
			}
			if !slices.Equal(display, tt.wantDisplay) {
				t.Errorf("chain = %v, want %v", display, tt.wantDisplay)
			}
			if got := Flatten(chain); !slices.Equal(got, tt.wantFormats) {
				t.Errorf("flattened = %v, want %v", got, tt.wantFormats)
			}
		})
	}
}

func TestParseFilenameArchiveMisplaced(t *testing.T) {
	silenceWarnings(t)

	for _, path := range []string{
		"file.tar.zip",
		"file.7z.zst.zip.lz4",
		"file.zip.zip",
		"file.gz.tar.gz",
	} {
		t.Run(path, func(t *testing.T) {
			_, _, err := ParseFilename(path)
			if err == nil {
				t.Fatalf("ParseFilename(%q) succeeded, want error", path)
			}
			var usage *UsageError
			if !errors.As(err, &usage) {
				t.Fatalf("error type = %T, want *UsageError", err)
			}
			if len(usage.Hints) == 0 {
				t.Error("expected remediation hints in the error")
			}
		})
	}
}

func TestParseFilenameStemWarning(t *testing.T) {
	tests := []struct {
		path     string
		wantWarn bool
	}{
		{"tar", true},
		{"tgz", true},
		{".tar", true},
		{"file", false},
		{"file.tar.gz", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := captureWarnings(t)
			if _, _, err := ParseFilename(tt.path); err != nil {
				t.Fatalf("ParseFilename(%q) error: %v", tt.path, err)
			}
			if warned := len(*got) > 0; warned != tt.wantWarn {
				t.Errorf("warned = %v, want %v (warnings: %v)", warned, tt.wantWarn, *got)
			}
		})
	}
}

func TestParseFormatFlag(t *testing.T) {
	tests := []struct {
		input string
		want  []CompressionFormat
	}{
		{"tar", []CompressionFormat{Tar}},
		{".tar", []CompressionFormat{Tar}},
		{"tar.gz", []CompressionFormat{Tar, Gzip}},
		{".tar.gz", []CompressionFormat{Tar, Gzip}},
		{"..tar..gz.....", []CompressionFormat{Tar, Gzip}},
		{"tgz", []CompressionFormat{Tar, Gzip}},
		{"zst", []CompressionFormat{Zstd}},
		// The flag parser takes the list at face value: no archive
		// placement constraint applies here.
		{"gz.tar", []CompressionFormat{Gzip, Tar}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			chain, err := ParseFormatFlag(tt.input)
			if err != nil {
				t.Fatalf("ParseFormatFlag(%q) error: %v", tt.input, err)
			}
			if got := Flatten(chain); !slices.Equal(got, tt.want) {
				t.Errorf("flattened = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormatFlagErrors(t *testing.T) {
	for _, input := range []string{
		"targz",
		"tar.gz.unknown",
		".tar.gz.unknown",
		"../tar.gz",
		".tar.!@#.gz",
		"",
		".....",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseFormatFlag(input)
			if err == nil {
				t.Fatalf("ParseFormatFlag(%q) succeeded, want error", input)
			}
			var invalid *InvalidFormatError
			if !errors.As(err, &invalid) {
				t.Fatalf("error type = %T, want *InvalidFormatError", err)
			}
			if invalid.Text != input {
				t.Errorf("error text = %q, want the original input %q", invalid.Text, input)
			}
		})
	}
}

func TestSplitFirst(t *testing.T) {
	chain, err := ParseFormatFlag("tar.gz.zst")
	if err != nil {
		t.Fatal(err)
	}
	first, rest := SplitFirst(chain)
	if first != Tar {
		t.Errorf("first = %v, want Tar", first)
	}
	if !slices.Equal(rest, []CompressionFormat{Gzip, Zstd}) {
		t.Errorf("rest = %v, want [Gzip Zstd]", rest)
	}
}

func TestNewExtensionPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewExtension(nil, ...) did not panic")
		}
	}()
	NewExtension(nil, "tar")
}
