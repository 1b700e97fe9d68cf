package handlers

import (
	"context"
	"mime/multipart"

	"github.com/danielgtaylor/huma/v2"
)

// UploadField is the multipart field holding the analysed file.
const UploadField = "upfile"

// FileAnalyseRequest is a multipart upload.
type FileAnalyseRequest struct {
	RawBody multipart.Form
}

// FileAnalyseResponse describes an uploaded file.
type FileAnalyseResponse struct {
	Body struct {
		Name string `doc:"Original file name" example:"report.pdf"      json:"name"`
		Type string `doc:"Declared MIME type" example:"application/pdf" json:"type"`
		Size int64  `doc:"Size in bytes"      example:"20480"           json:"size"`
	}
}

// AnalyseFile reports name, type and size of the uploaded file. The content is not kept.
func AnalyseFile(_ context.Context, req *FileAnalyseRequest) (*FileAnalyseResponse, error) {
	files := req.RawBody.File[UploadField]
	if len(files) == 0 {
		return nil, huma.Error400BadRequest("no file uploaded in field " + UploadField)
	}

	file := files[0]

	resp := &FileAnalyseResponse{}
	resp.Body.Name = file.Filename
	resp.Body.Type = file.Header.Get("Content-Type")
	resp.Body.Size = file.Size

	return resp, nil
}
