package multipartx

import (
	"path/filepath"
	"strings"
)

const DefaultContentType = "application/octet-stream"

// The table is fixed so that the inferred type does not depend on the host's mime.types.
var contentTypesByExtension = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".text": "text/plain",
	".log":  "text/plain",
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".csv":  "text/csv",
	".md":   "text/markdown",
	".rtf":  "application/rtf",
	".xml":  "application/xml",
	".json": "application/json",
	".js":   "text/javascript",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".tar":  "application/x-tar",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".odt":  "application/vnd.oasis.opendocument.text",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
}

// ContentTypeByExtension returns the media type registered for the extension of fileName,
// or DefaultContentType when there is none. Matching is case-insensitive.
func ContentTypeByExtension(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ct, ok := contentTypesByExtension[ext]; ok {
		return ct
	}
	return DefaultContentType
}
