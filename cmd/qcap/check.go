package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/donghojung/qcap/internal/app"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the vault folders are usable",
	Long:  "Report whether the documents folder and scratchpad can be written. Nothing is created.",
	RunE:  runCheck,
}

// checkResult holds the result of a single check.
type checkResult struct {
	name     string
	ok       bool
	message  string
	required bool
}

// runCheck runs all checks and prints the results.
func runCheck(cmd *cobra.Command, args []string) error {
	application, _, cleanup, err := setupApp("check")
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "qcap Check")
	fmt.Fprintln(out, "==========")
	fmt.Fprintln(out)

	results := []checkResult{
		checkPreferences(application),
		checkDir("documents root", application.Layout.DocumentsRoot, true),
		checkDir("notes folder", application.Layout.BaseDir, true),
		checkScratchpad(application.Layout.ScratchpadFile),
	}
	if n := application.Notifications(); n != nil && n.Desktop {
		results = append(results, checkDesktopNotifier())
	}

	hasErrors := false
	for _, r := range results {
		printResult(out, r)
		if r.required && !r.ok {
			hasErrors = true
		}
	}

	fmt.Fprintln(out)
	if hasErrors {
		fmt.Fprintln(out, "❌ Captures will fail until the problems above are fixed.")
		return fmt.Errorf("vault folders not writable")
	}
	fmt.Fprintln(out, "✅ Ready to capture.")
	return nil
}

// printResult prints a single check result with appropriate formatting.
func printResult(w io.Writer, r checkResult) {
	var icon string
	if r.ok {
		icon = "✅"
	} else if r.required {
		icon = "❌"
	} else {
		icon = "⚠️ "
	}

	optionalSuffix := ""
	if !r.required && !r.ok {
		optionalSuffix = " (optional)"
	}

	fmt.Fprintf(w, "%s %s: %s%s\n", icon, r.name, r.message, optionalSuffix)
}

func checkPreferences(application *app.App) checkResult {
	result := checkResult{name: "preferences", ok: true}
	if application.HasPreferences() {
		result.message = application.GetPrefsPath()
	} else {
		result.message = "not saved yet, using defaults"
	}
	return result
}

// checkDir reports whether dir is writable, or can be created when missing.
func checkDir(name, dir string, required bool) checkResult {
	result := checkResult{name: name, required: required}

	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		result.message = dir + " exists but is not a directory"
		return result
	case errors.Is(err, fs.ErrNotExist):
		parent := nearestExisting(dir)
		if err := probeWritable(parent); err != nil {
			result.message = fmt.Sprintf("%s is missing and %s is not writable", dir, parent)
			return result
		}
		result.ok = true
		result.message = dir + " (created on first capture)"
		return result
	case err != nil:
		result.message = err.Error()
		return result
	}

	if err := probeWritable(dir); err != nil {
		result.message = dir + " is not writable"
		return result
	}
	result.ok = true
	result.message = dir
	return result
}

func checkScratchpad(path string) checkResult {
	result := checkResult{name: "scratchpad", required: true}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		dir := checkDir("scratchpad", filepath.Dir(path), true)
		result.ok = dir.ok
		if dir.ok {
			result.message = path + " (created on first append)"
		} else {
			result.message = dir.message
		}
		return result
	case err != nil:
		result.message = err.Error()
		return result
	case info.IsDir():
		result.message = path + " is a directory"
		return result
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0) //nolint:gosec // G304: path comes from preferences
	if err != nil {
		result.message = path + " is not writable"
		return result
	}
	_ = f.Close()

	result.ok = true
	result.message = fmt.Sprintf("%s (%d bytes)", path, info.Size())
	return result
}

func checkDesktopNotifier() checkResult {
	result := checkResult{name: "desktop notifications"}

	tool := "notify-send"
	if runtime.GOOS == "darwin" {
		tool = "osascript"
	}
	if _, err := exec.LookPath(tool); err != nil {
		result.message = tool + " not found"
		return result
	}
	result.ok = true
	result.message = "via " + tool
	return result
}

// nearestExisting walks up from dir to the first path that exists.
func nearestExisting(dir string) string {
	for {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// probeWritable creates and removes a temp file in dir.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".qcap-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
