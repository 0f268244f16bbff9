package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const titanicCSV = `survived,pclass,sex,age,fare,embarked
0,3,male,22,7.25,S
1,1,female,38,71.2833,C
1,3,female,,7.925,S
1,1,female,35,53.1,S
0,3,male,35,8.05,S
0,3,male,,8.4583,Q
0,1,male,54,51.8625,S
0,3,male,2,21.075,S
1,3,female,27,11.1333,S
1,2,female,14,30.0708,C
`

// resetFlags clears flag values and Changed state that persist across
// invocations of the shared rootCmd.
func resetFlags() {
	runData, locateData = nil, nil
	cfgFile, debug, logFormat = "", false, ""
	cfg, logger = nil, nil
	reset := func(fl *pflag.Flag) {
		if fl.Value.Type() != "stringArray" {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	for _, c := range []*cobra.Command{rootCmd, runCmd, profileCmd, locateCmd, initCmd} {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
}

// execCLI executes the root command with args and returns its stdout.
func execCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustExec(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCLI(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out)
	}
	return out
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeDataset(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "titanic.csv")
	if err := os.WriteFile(p, []byte(titanicCSV), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return p
}

func TestCLI_RunProducesArtifacts(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	outDir := filepath.Join(home, "outputs")
	prom := filepath.Join(home, "run.prom")
	trace := filepath.Join(home, "trace.json")

	out := mustExec(t, "run", "--data", filepath.Join(home, "nope.csv"), "--data", data,
		"--out", outDir, "--metrics-file", prom, "--trace-file", trace)

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read outputs: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	want := []string{"boxplots.png", "correlation_heatmap.png", "histograms.png", "pairplot.png"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("outputs = %v, want %v", names, want)
	}
	for _, s := range []string{"=== Data Info ===", "Numeric columns: survived, pclass, age, fare", "✓ Saved pairplot -> "} {
		if !strings.Contains(out, s) {
			t.Fatalf("stdout missing %q:\n%s", s, out)
		}
	}
	if b, err := os.ReadFile(prom); err != nil || !strings.Contains(string(b), "edareport_artifacts_total") {
		t.Fatalf("metrics file not written: %v", err)
	}
	if b, err := os.ReadFile(trace); err != nil || !strings.Contains(string(b), "edareport.run") {
		t.Fatalf("trace file missing run span: %v", err)
	}
}

func TestCLI_RunDatasetNotFound(t *testing.T) {
	home := isolateHome(t)
	missing := filepath.Join(home, "absent.csv")
	_, err := execCLI(t, "run", "--data", missing, "--out", filepath.Join(home, "out"))
	if err == nil {
		t.Fatalf("expected not-found error")
	}
	if !strings.Contains(err.Error(), missing) || !strings.Contains(err.Error(), "--data") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCLI_RunRejectsInvalidGrid(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	_, err := execCLI(t, "run", "--data", data, "--grid-cols", "0")
	if err == nil || !strings.Contains(err.Error(), "grid_cols must be at least 1") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCLI_InitConfigSetShow(t *testing.T) {
	home := isolateHome(t)
	out := mustExec(t, "init")
	path := filepath.Join(home, ".edareport", "config.yaml")
	if !strings.Contains(out, path) {
		t.Fatalf("init output = %q", out)
	}
	if _, err := execCLI(t, "init"); err == nil {
		t.Fatalf("expected init to refuse overwriting")
	}
	mustExec(t, "init", "--force")

	mustExec(t, "config", "set", "grid_cols", "2")
	if _, err := execCLI(t, "config", "set", "log_format", "xml"); err == nil {
		t.Fatalf("expected invalid log_format to fail")
	}
	show := mustExec(t, "config", "show")
	if !strings.Contains(show, "grid_cols: 2") || !strings.Contains(show, "output_dir: outputs") {
		t.Fatalf("config show = %s", show)
	}
}

func TestCLI_ProfileJSON(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	out := mustExec(t, "profile", data, "--format", "json")
	var p struct {
		Rows    int `json:"rows"`
		Columns []struct {
			Name    string `json:"name"`
			Missing int    `json:"missing"`
		} `json:"columns"`
	}
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("profile json: %v\n%s", err, out)
	}
	if p.Rows != 10 || len(p.Columns) != 6 || p.Columns[3].Name != "age" || p.Columns[3].Missing != 2 {
		t.Fatalf("profile = %+v", p)
	}

	md := filepath.Join(home, "summary.md")
	mustExec(t, "profile", data, "--format", "markdown", "-o", md)
	b, err := os.ReadFile(md)
	if err != nil || !strings.Contains(string(b), "[DATASET SUMMARY]") {
		t.Fatalf("markdown profile not written: %v", err)
	}
}

func TestCLI_ProfileJSONNonFinite(t *testing.T) {
	home := isolateHome(t)
	for name, body := range map[string]string{
		"inf.csv": "a,b\n1,2\ninf,3\n2,5\n",
		"big.csv": "a,b\n-1e308,2\n1e308,3\n2,5\n",
	} {
		data := filepath.Join(home, name)
		if err := os.WriteFile(data, []byte(body), 0o644); err != nil {
			t.Fatalf("write dataset: %v", err)
		}
		out := mustExec(t, "profile", data, "--format", "json")
		var p struct {
			Columns []struct {
				Numeric map[string]*float64 `json:"numeric"`
			} `json:"columns"`
		}
		if err := json.Unmarshal([]byte(out), &p); err != nil {
			t.Fatalf("%s: profile json: %v\n%s", name, err, out)
		}
		if len(p.Columns) != 2 || p.Columns[0].Numeric == nil {
			t.Fatalf("%s: profile = %s", name, out)
		}
	}
}

func TestCLI_Locate(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	missing := filepath.Join(home, "missing.csv")
	out := mustExec(t, "locate", "--data", missing, "--data", data)
	if !strings.Contains(out, missing+" (missing)") || !strings.Contains(out, "✓ Using "+data) {
		t.Fatalf("locate output = %s", out)
	}
}

func TestCLI_LocateExpandsHomeWithoutMutatingFlag(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	out := mustExec(t, "locate", "--data", "~/titanic.csv")
	if !strings.Contains(out, data+" (found)") || !strings.Contains(out, "✓ Using "+data) {
		t.Fatalf("locate output = %s", out)
	}
	if len(locateData) != 1 || locateData[0] != "~/titanic.csv" {
		t.Fatalf("--data values rewritten in place: %v", locateData)
	}
}
