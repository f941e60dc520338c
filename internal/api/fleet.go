package api

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"openfleet/fleetkeeper/internal/common"
	appcontext "openfleet/fleetkeeper/internal/context"
	"openfleet/fleetkeeper/internal/logging"
	"openfleet/fleetkeeper/internal/models/dtos"
	"openfleet/fleetkeeper/internal/pipeline"
	"openfleet/fleetkeeper/internal/services"
)

// maxArchiveUpload caps uploaded archive size at 512 MiB.
const maxArchiveUpload = 512 << 20

const downloadTokenTTL = 15 * time.Minute

// ImportHandler handles POST /api/v1/fleet/import with a JSON body of
// vehicle records.
func ImportHandler(transfer *services.TransferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := appcontext.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		var req dtos.ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
			return
		}

		result, err := transfer.ImportRecords(r.Context(), req.Records, pipeline.ImportOptions{
			OwnerID:   claims.UserID(),
			AllOwners: claims.IsAdmin(),
			SourceTag: req.Tag,
			DryRun:    req.DryRun,
		})
		if err != nil {
			logging.Error("Import run failed", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, result)
	}
}

// ImportArchiveHandler handles POST /api/v1/fleet/import/archive with a
// multipart upload carrying the zip container in the "archive" field. Tag
// and dryRun arrive as form fields.
func ImportArchiveHandler(transfer *services.TransferService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := appcontext.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		if err := r.ParseMultipartForm(maxArchiveUpload); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid multipart body: "+err.Error())
			return
		}

		file, _, err := r.FormFile("archive")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Missing archive file")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxArchiveUpload))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Failed to read archive: "+err.Error())
			return
		}

		dryRun := strings.EqualFold(r.FormValue("dryRun"), "true")

		result, err := transfer.ImportArchive(r.Context(), data, pipeline.ImportOptions{
			OwnerID:   claims.UserID(),
			AllOwners: claims.IsAdmin(),
			SourceTag: r.FormValue("tag"),
			DryRun:    dryRun,
		})
		if err != nil {
			logging.Error("Archive import run failed", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, result)
	}
}

// ExportHandler handles GET /api/v1/fleet/export?mode=json|archive. JSON
// mode returns the record graph inline; archive mode packages a zip and
// returns a presigned download URL.
func ExportHandler(transfer *services.TransferService, signer *common.URLSignerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := appcontext.GetUserClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		opts := pipeline.ExportOptions{
			OwnerID:                 claims.UserID(),
			EmbedAttachmentMetadata: r.URL.Query().Get("embedAttachmentMetadata") != "false",
		}
		if claims.IsAdmin() && r.URL.Query().Get("all") == "true" {
			opts.OwnerID = ""
			opts.AllOwners = true
		}

		mode := r.URL.Query().Get("mode")
		if mode == "" {
			mode = "json"
		}

		switch mode {
		case "json":
			result, err := transfer.Export(r.Context(), opts)
			if err != nil {
				logging.Error("Export run failed", "error", err.Error())
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			respondWithSuccess(w, http.StatusOK, result)

		case "archive":
			opts.ArchiveOutputDir = transfer.ExportDir()
			result, err := transfer.Export(r.Context(), opts)
			if err != nil {
				logging.Error("Export run failed", "error", err.Error())
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}

			if signer == nil {
				// no signing key configured; hand back the raw result
				respondWithSuccess(w, http.StatusOK, result)
				return
			}

			token, err := signer.SignDownload(claims.UserID(), result.ArchivePath, downloadTokenTTL)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to sign download URL")
				return
			}
			respondWithSuccess(w, http.StatusOK, &dtos.ExportArchiveResponse{
				DownloadURL: "/api/v1/fleet/export/download?token=" + token,
				ExpiresIn:   downloadTokenTTL.String(),
			})

		default:
			respondWithError(w, http.StatusBadRequest, "Unknown export mode: "+mode)
		}
	}
}

// DownloadArchiveHandler handles GET /api/v1/fleet/export/download?token=.
// The token is presigned and single-use; no other auth applies here so the
// URL can be handed to a browser.
func DownloadArchiveHandler(signer *common.URLSignerService, exportDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			respondWithError(w, http.StatusBadRequest, "Missing token")
			return
		}

		download, err := signer.ValidateToken(r.Context(), token)
		if err != nil {
			respondWithError(w, http.StatusForbidden, "Invalid or expired token")
			return
		}

		// tokens are minted for files inside the export dir only
		if filepath.Dir(download.ArchivePath) != filepath.Clean(exportDir) {
			respondWithError(w, http.StatusForbidden, "Invalid archive path")
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(download.ArchivePath))
		http.ServeFile(w, r, download.ArchivePath)
	}
}
