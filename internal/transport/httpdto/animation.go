package httpdto

import (
	"chat-animation/internal/domain/animation"
	"chat-animation/internal/services"
)

type TypeSummary struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	StorageKey  string `json:"storage_key"`
}

func FromTypes(types []animation.Type) []TypeSummary {
	out := make([]TypeSummary, 0, len(types))
	for _, t := range types {
		out = append(out, TypeSummary{ID: t.String(), Description: t.Description(), StorageKey: t.StorageKey()})
	}
	return out
}

type ExportFileResponse struct {
	Path string `json:"path"`
}

type ExportUploadResponse struct {
	Key         string `json:"key"`
	DownloadURL string `json:"download_url"`
}

func FromExportResult(r services.ExportResult) ExportUploadResponse {
	return ExportUploadResponse{Key: r.Key, DownloadURL: r.DownloadURL}
}

type ImportFromStorageRequest struct {
	Key   string   `json:"key" binding:"required"`
	Types []string `json:"types"`
	Apply bool     `json:"apply"`
}
