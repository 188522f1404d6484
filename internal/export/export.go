package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stempeluhr/timeclock/internal/timeclock/report"
)

// usbBases are the mount roots checked for a removable drive.
var usbBases = []string{"/media", "/run/media", "/mnt"}

// Directory resolves where export files land:
//  1. the override path (TIMECLOCK_EXPORT_PATH) when set
//  2. the first mounted volume under /media, /run/media, /mnt
//  3. ./exports next to the application
//
// The chosen directory is created if missing.
func Directory(override string) (string, error) {
	target := strings.TrimSpace(override)
	if target == "" {
		if mounts := usbMounts(); len(mounts) > 0 {
			target = mounts[0]
		} else {
			target = filepath.Join(".", "exports")
		}
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return target, nil
}

// usbMounts lists mountpoints under the USB bases by scanning /proc/mounts.
// Returns nil on systems without procfs; the caller falls back to ./exports.
func usbMounts() []string {
	f, err := os.Open("/proc/mounts")
	if err != nil {
		return nil
	}
	defer f.Close()

	var mounts []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		mountpoint := fields[1]
		for _, base := range usbBases {
			if strings.HasPrefix(mountpoint, base+"/") {
				mounts = append(mounts, mountpoint)
				break
			}
		}
	}
	return mounts
}

// Filename builds "WT_Report_<Name>_<from>_<to>.<ext>" with the employee
// name reduced to filesystem-safe characters.
func Filename(name string, from, to time.Time, ext string) string {
	return fmt.Sprintf("WT_Report_%s_%s_%s.%s",
		safeName(name), from.Format("20060102"), to.Format("20060102"), ext)
}

func safeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// WriteReportCSV writes the report as CSV into dir and returns the file path.
func WriteReportCSV(dir string, rep report.Report) (string, error) {
	path := filepath.Join(dir, Filename(rep.Employee.Name, rep.From, rep.To, "csv"))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	if err := report.RenderCSV(f, rep); err != nil {
		f.Close()
		return "", fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
