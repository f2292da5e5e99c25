package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/csvedit/internal/config"
	"github.com/xuri/excelize/v2"
)

const sample = "1,2,3\n4,5,6\n7,8,9\n10,11,12\n13,14,15\n"

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.LoadFrom(func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	return cfg
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var out, errOut bytes.Buffer
	app := New(testConfig(t), strings.NewReader(stdin), &out, &errOut)
	code := app.Execute(context.Background(), args)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestShow_CSV(t *testing.T) {
	path := writeFile(t, "data.csv", sample)

	r := run(t, "", "show", path, "--format", "csv", "--dimension", "5,3")
	if r.code != ExitOK {
		t.Fatalf("exit = %d, stderr = %s", r.code, r.stderr)
	}
	if r.stdout != sample {
		t.Errorf("stdout = %q, want %q", r.stdout, sample)
	}
}

func TestShow_Table(t *testing.T) {
	path := writeFile(t, "data.csv", "name,qty\nwidget,3\n")

	r := run(t, "", "show", path, "--header")
	if r.code != ExitOK {
		t.Fatalf("exit = %d, stderr = %s", r.code, r.stderr)
	}
	for _, want := range []string{"#", "name", "qty", "widget"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestPage(t *testing.T) {
	path := writeFile(t, "data.csv", sample)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"first page default", []string{}, sample},
		{"second page", []string{"-p", "2", "--page", "1"}, "7,8,9\n10,11,12\n"},
		{"short last page", []string{"-p", "2", "--page", "2"}, "13,14,15\n"},
		{"range", []string{"--start", "1", "--end", "3"}, "4,5,6\n7,8,9\n"},
		{"range to end", []string{"--start", "4"}, "13,14,15\n"},
		{"empty range", []string{"--start", "2", "--end", "2"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"page", path, "--format", "csv"}, tt.args...)
			r := run(t, "", args...)
			if r.code != ExitOK {
				t.Fatalf("exit = %d, stderr = %s", r.code, r.stderr)
			}
			if r.stdout != tt.want {
				t.Errorf("stdout = %q, want %q", r.stdout, tt.want)
			}
		})
	}
}

func TestPages(t *testing.T) {
	path := writeFile(t, "data.csv", sample)

	r := run(t, "", "pages", path, "--page-size", "2")
	if r.code != ExitOK {
		t.Fatalf("exit = %d, stderr = %s", r.code, r.stderr)
	}
	want := "page 0: rows 0-1 (2 rows)\npage 1: rows 2-3 (2 rows)\npage 2: rows 4-4 (1 row)\n"
	if r.stdout != want {
		t.Errorf("stdout = %q, want %q", r.stdout, want)
	}
}

func TestDelete_ToOutput(t *testing.T) {
	path := writeFile(t, "data.csv", sample)
	out := filepath.Join(t.TempDir(), "out.csv")

	r := run(t, "", "delete", path, "--row", "0", "-o", out)
	if r.code != ExitOK {
		t.Fatalf("exit = %d, stderr = %s", r.code, r.stderr)
	}
	if got := readFile(t, out); got != "4,5,6\n7,8,9\n10,11,12\n13,14,15\n" {
		t.Errorf("output file = %q", got)
	}
	if got := readFile(t, path); got != sample {
		t.Errorf("source changed: %q", got)
	}
	if !strings.Contains(r.stdout, "deleted row 0; saved "+out) {
		t.Errorf("stdout = %q", r.stdout)
	}
}

func TestSet_InPlace(t *testing.T) {
	path := writeFile(t, "data.csv", "1,2,3\n4,5,6\n")

	r := run(t, "", "set", path, "--row", "1", "--col", "0", "--value", "X")
	if r.code != ExitOK {
		t.Fatalf("exit = %d, stderr = %s", r.code, r.stderr)
	}
	if got := readFile(t, path); got != "1,2,3\nX,5,6\n" {
		t.Errorf("file = %q", got)
	}
}

func TestReplace_QuotedValues(t *testing.T) {
	path := writeFile(t, "data.csv", "1,2,3\n4,5,6\n")

	r := run(t, "", "replace", path, "--row", "0", "--values", `a,"b,c",d`)
	if r.code != ExitOK {
		t.Fatalf("exit = %d, stderr = %s", r.code, r.stderr)
	}
	if got := readFile(t, path); got != "a,\"b,c\",d\n4,5,6\n" {
		t.Errorf("file = %q", got)
	}
}

func TestInfo(t *testing.T) {
	path := writeFile(t, "data.csv", sample)

	r := run(t, "", "info", path, "-p", "2")
	if r.code != ExitOK {
		t.Fatalf("exit = %d, stderr = %s", r.code, r.stderr)
	}
	for _, want := range []string{"data.csv", "Columns:   3", "Rows:      5", "3 (page size 2)"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestExport(t *testing.T) {
	path := writeFile(t, "data.csv", "id,name\n1,ann\n")
	dest := filepath.Join(t.TempDir(), "out.xlsx")

	r := run(t, "", "export", path, dest, "--header", "--sheet", "People")
	if r.code != ExitOK {
		t.Fatalf("exit = %d, stderr = %s", r.code, r.stderr)
	}

	f, err := excelize.OpenFile(dest)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("People")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 2 || rows[0][1] != "name" || rows[1][1] != "ann" {
		t.Errorf("rows = %q", rows)
	}
}

func TestErrors(t *testing.T) {
	path := writeFile(t, "data.csv", sample)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"shape mismatch", []string{"show", path, "--dimension", "4,3"}, ExitError, "SHP001"},
		{"row out of range", []string{"delete", path, "--row", "9"}, ExitError, "IDX001"},
		{"page out of range", []string{"page", path, "--page", "3"}, ExitError, "IDX001"},
		{"column out of range", []string{"set", path, "--row", "0", "--col", "3", "--value", "x"}, ExitError, "IDX001"},
		{"replace wrong width", []string{"replace", path, "--row", "0", "--values", "a,b"}, ExitError, "SHP001"},
		{"missing file", []string{"show", filepath.Join(t.TempDir(), "none.csv")}, ExitError, "FILE002"},
		{"missing file named like a usage error", []string{"show", filepath.Join(t.TempDir(), "arg(s).csv")}, ExitError, "FILE002"},
		{"bad dimension", []string{"show", path, "--dimension", "x"}, ExitUsage, "dimension"},
		{"missing flag", []string{"delete", path}, ExitUsage, "--row is required"},
		{"missing file arg", []string{"show"}, ExitUsage, "arg(s)"},
		{"unknown command", []string{"frobnicate"}, ExitUsage, "unknown command"},
		{"unknown flag", []string{"show", path, "--nope"}, ExitUsage, "unknown flag"},
		{"bad delimiter", []string{"show", path, "--delimiter", "ab"}, ExitUsage, "--delimiter"},
		{"page and range", []string{"page", path, "--page", "1", "--start", "0"}, ExitUsage, "--page cannot be combined"},
		{"bad format", []string{"show", path, "--format", "xml"}, ExitUsage, "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, "", tt.args...)
			if r.code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr %q)", r.code, tt.wantCode, r.stderr)
			}
			if !strings.Contains(r.stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", r.stderr, tt.wantErr)
			}
		})
	}

	if got := readFile(t, path); got != sample {
		t.Errorf("failed commands modified the file: %q", got)
	}
}

func TestErrors_UnmappedHasNoHint(t *testing.T) {
	path := writeFile(t, "data.csv", sample)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	code := New(testConfig(t), strings.NewReader(""), &out, &errOut).Execute(ctx, []string{"show", path})
	if code != ExitError {
		t.Fatalf("exit = %d, want %d (stderr %q)", code, ExitError, errOut.String())
	}
	if !strings.Contains(errOut.String(), "context canceled") {
		t.Errorf("stderr = %q, want the underlying error", errOut.String())
	}
	if strings.Contains(errOut.String(), "ERR000") || strings.Contains(errOut.String(), "Code:") {
		t.Errorf("stderr = %q, want no hint line for an unmapped error", errOut.String())
	}
}

func TestErrors_MappedHasHint(t *testing.T) {
	path := writeFile(t, "data.csv", sample)

	r := run(t, "", "delete", path, "--row", "9")
	if !strings.Contains(r.stderr, "(Code: IDX001). Use zero-based indexes") {
		t.Errorf("stderr = %q, want the IDX001 hint line", r.stderr)
	}
}

func TestVersionFlag(t *testing.T) {
	r := run(t, "", "--version")
	if r.code != ExitOK {
		t.Fatalf("exit = %d, stderr = %s", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, "csvedit version "+Version) {
		t.Errorf("stdout = %q, want version line", r.stdout)
	}
}

func TestDebugFlagRaisesLogLevel(t *testing.T) {
	path := writeFile(t, "data.csv", sample)

	quiet := run(t, "", "info", path)
	if strings.Contains(quiet.stderr, "table loaded") {
		t.Errorf("info log shown at default level: %q", quiet.stderr)
	}

	loud := run(t, "", "info", path, "-d")
	if !strings.Contains(loud.stderr, "table loaded") {
		t.Errorf("-d did not enable info logs: %q", loud.stderr)
	}
}
