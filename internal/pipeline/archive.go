package pipeline

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"openfleet/fleetkeeper/internal/logging"
	"openfleet/fleetkeeper/internal/models/dtos"
	gormModels "openfleet/fleetkeeper/internal/models/gorm"

	"github.com/google/uuid"
)

// Archive container layout:
//
//	manifest.json            ordered array of canonical vehicle records
//	files/images/<basename>
//	files/attachments/<basename>
//
// The manifest is the single source of truth; files it does not reference
// are ignored on extraction, and referenced files missing from the archive
// degrade to metadata-only records.
const (
	ManifestName = "manifest.json"
	filesRoot    = "files"
)

// archiveFileName is the name a media payload travels under inside the
// archive: the stored file's basename when a payload exists, otherwise the
// original upload name.
func archiveFileName(filePath, fileName string) string {
	if filePath != "" {
		return filepath.Base(filePath)
	}
	return fileName
}

// PackArchive writes the manifest plus every discoverable binary payload of
// the given vehicles into a zip at outPath. Binaries are best-effort: a
// missing source file is skipped silently, the metadata remains
// authoritative.
func PackArchive(outPath string, records []dtos.VehicleRecord, vehicles []gormModels.Vehicle) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	manifest, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	mw, err := zw.Create(ManifestName)
	if err != nil {
		return fmt.Errorf("failed to add manifest: %w", err)
	}
	if _, err := mw.Write(manifest); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	seen := make(map[string]bool)
	for i := range vehicles {
		for _, img := range vehicles[i].Images {
			if err := addPayload(zw, "images", img.FilePath, seen); err != nil {
				return err
			}
		}
		for _, att := range vehicles[i].Attachments {
			if err := addPayload(zw, "attachments", att.FilePath, seen); err != nil {
				return err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

func addPayload(zw *zip.Writer, kind, srcPath string, seen map[string]bool) error {
	if srcPath == "" {
		return nil
	}
	name := filesRoot + "/" + kind + "/" + filepath.Base(srcPath)
	if seen[name] {
		return nil
	}

	in, err := os.Open(srcPath)
	if err != nil {
		// best-effort for binaries
		logging.Warn("Skipping missing payload", "path", srcPath)
		return nil
	}
	defer in.Close()

	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add payload %s: %w", name, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("failed to write payload %s: %w", name, err)
	}
	seen[name] = true
	return nil
}

// UnpackedArchive is an archive extracted into a private scratch directory.
// Close removes the directory and everything under it, partially written
// files included.
type UnpackedArchive struct {
	Root    string
	Records []dtos.VehicleRecord
}

// PayloadDir is the extracted files/ tree binary references resolve against.
func (u *UnpackedArchive) PayloadDir() string {
	return filepath.Join(u.Root, filesRoot)
}

func (u *UnpackedArchive) Close() error {
	if u.Root == "" {
		return nil
	}
	return os.RemoveAll(u.Root)
}

// UnpackArchive extracts archive bytes into a uniquely named scratch
// directory under scratchParent and parses the manifest. The manifest must
// exist at the archive root; its absence is fatal for the whole run.
// hasTraversal reports whether any path segment is "..". Filenames that
// merely contain dots are legitimate.
func hasTraversal(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

func UnpackArchive(data []byte, scratchParent string) (*UnpackedArchive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ArchiveFormatError{Reason: "not a readable zip container", Err: err}
	}

	root := filepath.Join(scratchParent, "fleet-import-"+uuid.NewString())
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}

	unpacked := &UnpackedArchive{Root: root}
	cleanupOnErr := func(err error) (*UnpackedArchive, error) {
		_ = unpacked.Close()
		return nil, err
	}

	var manifestData []byte
	for _, f := range zr.File {
		name := filepath.ToSlash(f.Name)
		if hasTraversal(name) {
			return cleanupOnErr(&ArchiveFormatError{Reason: fmt.Sprintf("unsafe path %q", f.Name)})
		}

		switch {
		case name == ManifestName:
			rc, err := f.Open()
			if err != nil {
				return cleanupOnErr(&ArchiveFormatError{Reason: "failed to open manifest", Err: err})
			}
			manifestData, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return cleanupOnErr(&ArchiveFormatError{Reason: "failed to read manifest", Err: err})
			}
		case strings.HasPrefix(name, filesRoot+"/") && !f.FileInfo().IsDir():
			if err := extractFile(f, root); err != nil {
				return cleanupOnErr(fmt.Errorf("failed to extract %s: %w", f.Name, err))
			}
		default:
			// anything the manifest does not drive is ignored
		}
	}

	if manifestData == nil {
		return cleanupOnErr(&ArchiveFormatError{Reason: "manifest.json missing from archive root"})
	}

	if err := json.Unmarshal(manifestData, &unpacked.Records); err != nil {
		return cleanupOnErr(&ArchiveFormatError{Reason: "manifest is not a valid record array", Err: err})
	}

	return unpacked, nil
}

func extractFile(f *zip.File, root string) error {
	dest := filepath.Join(root, filepath.FromSlash(f.Name))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}
