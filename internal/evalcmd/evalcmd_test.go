package evalcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/results"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const enteredHeader = "image_id,english_name,bangla_name,father_spouse_name,mother_name,dob,nid_no,plain_address\n"

type fixture struct {
	dir, person1, person2, truth string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:     dir,
		person1: filepath.Join(dir, "person1.csv"),
		person2: filepath.Join(dir, "person2.csv"),
		truth:   filepath.Join(dir, "truth.tsv"),
	}
	write := func(path, content string) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write(f.person1, enteredHeader+"IMG_0001,Rahim Uddin,,,,1990-01-02,6032068741,Mirpur\n")
	write(f.person2, enteredHeader+"IMG_0003,Jamal Hossan,,,,,1234567890,\n")
	write(f.truth, "front_image\tback_image\tname_english\tdob\tnid_no\taddress\n"+
		"a/IMG_0001.jpg\ta/IMG_0002.jpg\tRahim Uddin\t02/01/1990\t6032068741.0\tMirpur\n"+
		"a/IMG_0003.jpg\t\tJamal Hossain\t\t1234567890\t\n")
	return f
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestRunCommand(t *testing.T) {
	f := newFixture(t)
	output := filepath.Join(f.dir, "evaluation_results.csv")
	db := filepath.Join(f.dir, "entryeval.db")

	out := execute(t, NewRunCmd(),
		"--entered", f.person1,
		"--entered", f.person2,
		"--ground-truth", f.truth,
		"--output", output,
		"--db", db,
	)

	assert.Contains(t, out, "EVALUATION REPORT SUMMARY")
	assert.Contains(t, out, "Results saved to: "+output)
	assert.Contains(t, out, "Stored as run 1")

	rows, err := results.ReadCSV(output)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "IMG_0001", rows[0].ImageID)
	assert.Equal(t, 100.0, rows[0].Overall.Accuracy)
	assert.Equal(t, "IMG_0003", rows[1].ImageID)
}

func TestRunCommandNoMatches(t *testing.T) {
	f := newFixture(t)
	output := filepath.Join(f.dir, "evaluation_results.csv")
	empty := filepath.Join(f.dir, "empty.tsv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))

	out := execute(t, NewRunCmd(),
		"--entered", f.person1,
		"--ground-truth", empty,
		"--output", output,
	)
	assert.Contains(t, out, "No matching records found")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"), "only the header is written")
}

func TestMergeCommand(t *testing.T) {
	f := newFixture(t)
	merged := filepath.Join(f.dir, "merged.csv")

	out := execute(t, NewMergeCmd(), "--entered", f.person1, "--entered", f.person2, "--output", merged)
	assert.Contains(t, out, "Merged 2 records from 2 files")

	data, err := os.ReadFile(merged)
	require.NoError(t, err)
	assert.Equal(t, enteredHeader+
		"IMG_0001,Rahim Uddin,,,,1990-01-02,6032068741,Mirpur\n"+
		"IMG_0003,Jamal Hossan,,,,,1234567890,\n", string(data))
}

func TestSummaryAndInspectCommands(t *testing.T) {
	f := newFixture(t)
	output := filepath.Join(f.dir, "evaluation_results.csv")
	execute(t, NewRunCmd(), "--entered", f.person1, "--entered", f.person2, "--ground-truth", f.truth, "--output", output)

	t.Run("summary to stdout", func(t *testing.T) {
		out := execute(t, NewSummaryCmd(), "--results", output)
		assert.Contains(t, out, "NID DATA EVALUATION - OVERALL SUMMARY")
		assert.Contains(t, out, "  2 records")
	})

	t.Run("summary to file", func(t *testing.T) {
		path := filepath.Join(f.dir, "summary.txt")
		out := execute(t, NewSummaryCmd(), "--results", output, "--output", path)
		assert.Contains(t, out, "Summary saved to: "+path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "OVERALL METRICS")
	})

	t.Run("inspect one row", func(t *testing.T) {
		out := execute(t, NewInspectCmd(), "--results", output, "--row", "1")
		assert.Contains(t, out, "ROW 1 (of 2)")
		assert.Contains(t, out, "Entered:      Jamal Hossan")
		assert.Contains(t, out, "edit distance 1")
		assert.NotContains(t, out, "ROW 0")
	})

	t.Run("inspect out of range", func(t *testing.T) {
		cmd := NewInspectCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--results", output, "--row", "5"})
		assert.Error(t, cmd.Execute())
	})
}
